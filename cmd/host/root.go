package host

import (
	"fmt"

	"github.com/ValentinKolb/ipfinder/lib/hostinfo"
	"github.com/spf13/cobra"
)

// HostCmd prints the hostname and IPv4 address of this machine
var HostCmd = &cobra.Command{
	Use:   "host",
	Short: "Print hostname and IP address of this machine",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := hostinfo.Lookup()
		if err != nil {
			return err
		}
		fmt.Println(info)
		return nil
	},
}
