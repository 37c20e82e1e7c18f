package serve

import (
	"fmt"

	cmdUtil "github.com/ValentinKolb/ipfinder/cmd/util"
	"github.com/ValentinKolb/ipfinder/lib/gen"
	"github.com/ValentinKolb/ipfinder/rpc/common"
	"github.com/ValentinKolb/ipfinder/rpc/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the ipfinder server",
		Long:    `Start the ipfinder server with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is IPFINDER_<flag> (e.g. IPFINDER_SEED_COUNT=20)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	cobra.OnInitialize(cmdUtil.InitConfig)

	key := "networks"
	ServeCmd.PersistentFlags().String(key, "1=empty,2=random", cmdUtil.WrapString("Comma-separated list of networks to serve. Format: ID=TYPE where TYPE is one of: empty, random (pre-seeded with generated devices)"))

	key = "seed-count"
	ServeCmd.PersistentFlags().Int(key, gen.DefaultCount, cmdUtil.WrapString("Number of generated devices for networks of type random"))

	key = "base-ip"
	ServeCmd.PersistentFlags().String(key, gen.DefaultBaseIP, cmdUtil.WrapString("Prefix of generated IP addresses, the last octet is random"))

	key = "pet-names"
	ServeCmd.PersistentFlags().Bool(key, false, cmdUtil.WrapString("Name generated devices with random pet names (e.g. proud-otter) instead of Device-<n>. Pet names do not follow the generator seed"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int64(key, 5, cmdUtil.WrapString("Read and write timeout of requests in seconds"))

	key = "endpoint"
	ServeCmd.PersistentFlags().String(key, "0.0.0.0:8080", cmdUtil.WrapString("The address on which the API will listen (e.g. localhost:8080)"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, "info", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	if err := cmdUtil.BindCommandFlags(cmd); err != nil {
		return err
	}

	networks, err := cmdUtil.ParseNetworks(viper.GetString("networks"))
	if err != nil {
		return err
	}
	serveCmdConfig.Networks = networks

	serveCmdConfig.SeedCount = viper.GetInt("seed-count")
	if serveCmdConfig.SeedCount < 0 {
		return fmt.Errorf("seed-count must not be negative")
	}
	serveCmdConfig.BaseIP = viper.GetString("base-ip")
	serveCmdConfig.PetNames = viper.GetBool("pet-names")
	serveCmdConfig.TimeoutSecond = viper.GetInt64("timeout")
	serveCmdConfig.Endpoint = viper.GetString("endpoint")
	serveCmdConfig.LogLevel = viper.GetString("log-level")

	if _, err := common.ParseLogLevel(serveCmdConfig.LogLevel); err != nil {
		return err
	}

	return nil
}

// run starts the ipfinder server
func run(_ *cobra.Command, _ []string) error {
	s, err := cmdUtil.GetSerializer()
	if err != nil {
		return err
	}

	t, err := cmdUtil.GetServerTransport()
	if err != nil {
		return err
	}

	return server.NewRPCServer(*serveCmdConfig, t, s).Serve()
}
