package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/ipfinder/cmd/device"
	"github.com/ValentinKolb/ipfinder/cmd/host"
	"github.com/ValentinKolb/ipfinder/cmd/serve"
	"github.com/ValentinKolb/ipfinder/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "ipfinder",
		Short: "network device registry",
		Long: fmt.Sprintf(`ipfinder (v%s)

A registry of network devices keyed by IP address. Devices live in a splay
tree, so frequently searched devices are found fastest.`, Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of ipfinder",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ipfinder v%s\n", Version)
		},
	}
)

func init() {
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(device.DeviceCommands)
	RootCmd.AddCommand(host.HostCmd)
	RootCmd.AddCommand(versionCmd)

	key := "serializer"
	RootCmd.PersistentFlags().String(key, "binary", util.WrapString("serializer to use (json, gob, binary)"))
	key = "transport"
	RootCmd.PersistentFlags().String(key, "http", util.WrapString("transport to use (http)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
