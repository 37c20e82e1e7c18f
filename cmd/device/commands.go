package device

import (
	"fmt"
	"strconv"

	"github.com/ValentinKolb/ipfinder/cmd/util"
	"github.com/ValentinKolb/ipfinder/lib/gen"
	"github.com/ValentinKolb/ipfinder/lib/registry"
	"github.com/spf13/cobra"
)

var (
	addName      string
	addPacket    string
	updateIP     string
	updatePacket string

	addCmd = &cobra.Command{
		Use:   "add [ip]",
		Short: "Adds a device (or updates the packet of an existing one)",
		Long:  `Adds a device. Without --name the device is called Device-<last octet>, without --packet a random packet is generated.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ip := args[0]
			if err := util.ValidateIP(ip); err != nil {
				return err
			}

			packet := addPacket
			if packet == "" {
				packet = gen.NewGenerator(nil).Packet()
			}
			name := addName
			if name == "" {
				name = gen.DefaultName(gen.DefaultDevicePrefix, ip)
			}

			inserted, err := rpcRegistry.Add(ip, name, &packet)
			if err != nil {
				return err
			}
			if inserted {
				fmt.Printf("added device %s (%s) - Packet: %s\n", name, ip, packet)
			} else {
				fmt.Printf("IP %s already registered, updated device %s - Packet: %s\n", ip, name, packet)
			}
			return nil
		},
	}
	searchCmd = &cobra.Command{
		Use:   "search [ip]",
		Short: "Searches a device and moves it to the root of the tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ip := args[0]
			device, found, err := rpcRegistry.Search(ip)
			if err != nil {
				return err
			}
			if !found {
				fmt.Printf("device with IP %s not found\n", ip)
				return nil
			}
			fmt.Printf("Name:        %s\nIP Address:  %s\nData Packet: %s\n", device.Name, device.IP, packetString(device.Packet))
			return nil
		},
	}
	delCmd = &cobra.Command{
		Use:   "del [ip]",
		Short: "Deletes a device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ip := args[0]
			removed, err := rpcRegistry.Delete(ip)
			if err != nil {
				return err
			}
			if removed {
				fmt.Printf("device %s deleted\n", ip)
			} else {
				fmt.Printf("device with IP %s not found\n", ip)
			}
			return nil
		},
	}
	updateCmd = &cobra.Command{
		Use:   "update [ip]",
		Short: "Changes the IP and/or the packet of a device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var newIP, newPacket *string
			if cmd.Flags().Changed("ip") {
				if err := util.ValidateIP(updateIP); err != nil {
					return err
				}
				newIP = &updateIP
			}
			if cmd.Flags().Changed("packet") {
				newPacket = &updatePacket
			}
			if newIP == nil && newPacket == nil {
				return fmt.Errorf("nothing to update: set --ip and/or --packet")
			}

			res, ok, err := rpcRegistry.Update(args[0], newIP, newPacket)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Printf("device with IP %s not found\n", args[0])
				return nil
			}
			if res.OldIP != nil {
				fmt.Printf("device moved from %s to %s\n", *res.OldIP, *newIP)
			}
			fmt.Printf("previous packet: %s\n", packetString(res.OldPacket))
			return nil
		},
	}
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "Lists all devices ordered by IP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			devices, err := rpcRegistry.List()
			if err != nil {
				return err
			}
			if len(devices) == 0 {
				fmt.Println("no devices registered")
				return nil
			}
			printDevices(devices)
			return nil
		},
	}
	treeCmd = &cobra.Command{
		Use:   "tree",
		Short: "Prints the structure of the splay tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := rpcRegistry.Structure()
			if err != nil {
				return err
			}
			fmt.Print(text)
			return nil
		},
	}
	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Prints the number of devices and searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := rpcRegistry.Stats()
			if err != nil {
				return err
			}
			fmt.Printf("%d devices registered, %d searches\n", stats.Size, stats.SearchCount)
			return nil
		},
	}
	generateCmd = &cobra.Command{
		Use:   "generate [count]",
		Short: fmt.Sprintf("Adds random devices (default %d)", gen.DefaultCount),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count := gen.DefaultCount
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("count must be a number: %w", err)
				}
				count = n
			}
			generated, err := rpcRegistry.Generate(count)
			if err != nil {
				return err
			}
			fmt.Printf("%d new devices generated\n", generated)
			return nil
		},
	}
	clearCmd = &cobra.Command{
		Use:   "clear",
		Short: "Removes all devices and resets the search count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rpcRegistry.Clear(); err != nil {
				return err
			}
			fmt.Println("all devices removed")
			return nil
		},
	}
)

func init() {
	addCmd.Flags().StringVar(&addName, "name", "", util.WrapString("Name of the device (default Device-<last octet>)"))
	addCmd.Flags().StringVar(&addPacket, "packet", "", util.WrapString("Data packet of the device (default random PKT-nnnn)"))

	updateCmd.Flags().StringVar(&updateIP, "ip", "", util.WrapString("New IP address of the device"))
	updateCmd.Flags().StringVar(&updatePacket, "packet", "", util.WrapString("New data packet of the device"))
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func packetString(packet *string) string {
	if packet == nil {
		return "-"
	}
	return *packet
}

func printDevices(devices []registry.Device) {
	fmt.Printf("%-18s %-24s %s\n", "IP", "NAME", "PACKET")
	for _, d := range devices {
		fmt.Printf("%-18s %-24s %s\n", d.IP, d.Name, packetString(d.Packet))
	}
	fmt.Printf("%d devices\n", len(devices))
}
