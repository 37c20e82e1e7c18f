package device

import (
	"github.com/ValentinKolb/ipfinder/cmd/util"
	"github.com/ValentinKolb/ipfinder/lib/registry"
	"github.com/ValentinKolb/ipfinder/rpc/client"
	"github.com/spf13/cobra"
)

var (
	rpcRegistry registry.IRegistry

	// DeviceCommands represents the device command group
	DeviceCommands = &cobra.Command{
		Use:               "device",
		Short:             "Manage the devices of a network",
		PersistentPreRunE: setupRegistryClient,
	}
)

func init() {
	cobra.OnInitialize(util.InitConfig)

	util.SetupRPCClientFlags(DeviceCommands)

	DeviceCommands.AddCommand(addCmd)
	DeviceCommands.AddCommand(searchCmd)
	DeviceCommands.AddCommand(delCmd)
	DeviceCommands.AddCommand(updateCmd)
	DeviceCommands.AddCommand(listCmd)
	DeviceCommands.AddCommand(treeCmd)
	DeviceCommands.AddCommand(statsCmd)
	DeviceCommands.AddCommand(generateCmd)
	DeviceCommands.AddCommand(clearCmd)
}

// setupRegistryClient initializes the RPC registry client
func setupRegistryClient(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	s, err := util.GetSerializer()
	if err != nil {
		return err
	}

	t, err := util.GetClientTransport()
	if err != nil {
		return err
	}

	rpcRegistry, err = client.NewRPCRegistry(
		util.GetNetworkID(),
		*util.GetClientConfig(),
		t,
		s,
	)

	return err
}
