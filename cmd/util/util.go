package util

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ValentinKolb/ipfinder/rpc/common"
	"github.com/ValentinKolb/ipfinder/rpc/serializer"
	"github.com/ValentinKolb/ipfinder/rpc/transport"
	"github.com/ValentinKolb/ipfinder/rpc/transport/http"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50

	// EnvPrefix is the prefix of all environment variables (IPFINDER_<FLAG>)
	EnvPrefix = "ipfinder"
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// --------------------------------------------------------------------------
// Configuration
// --------------------------------------------------------------------------

// InitConfig loads .env files and makes viper read IPFINDER_* environment variables
func InitConfig() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// SetupRPCClientFlags adds common RPC connection flags to a command
func SetupRPCClientFlags(cmd *cobra.Command) {
	key := "timeout"
	cmd.PersistentFlags().Int(key, 10, WrapString("The timeout in seconds of the client"))

	key = "transport-endpoints"
	cmd.PersistentFlags().String(key, "http://localhost:8080", WrapString("The address of the ipfinder server. Multiple endpoints can be specified as a comma-separated list, requests are distributed round-robin"))

	key = "transport-retries"
	cmd.PersistentFlags().Int(key, 3, WrapString("How many times to try a request"))

	key = "network"
	cmd.PersistentFlags().Uint64(key, 1, WrapString("ID of the network (device registry) to use"))
}

// GetClientConfig reads client configuration from viper
func GetClientConfig() *common.ClientConfig {
	var endpoints []string
	for _, endpoint := range strings.Split(viper.GetString("transport-endpoints"), ",") {
		if endpoint = strings.TrimSpace(endpoint); endpoint != "" {
			endpoints = append(endpoints, endpoint)
		}
	}

	return &common.ClientConfig{
		Endpoints:     endpoints,
		TimeoutSecond: viper.GetInt("timeout"),
		RetryCount:    viper.GetInt("transport-retries"),
	}
}

// GetNetworkID retrieves the configured network ID
func GetNetworkID() uint64 {
	return viper.GetUint64("network")
}

// GetSerializer creates a serializer based on configuration
func GetSerializer() (serializer.IRPCSerializer, error) {
	switch viper.GetString("serializer") {
	case "json":
		return serializer.NewJSONSerializer(), nil
	case "gob":
		return serializer.NewGOBSerializer(), nil
	case "binary":
		return serializer.NewBinarySerializer(), nil
	default:
		return nil, fmt.Errorf("invalid serializer %s", viper.GetString("serializer"))
	}
}

// GetClientTransport creates the client transport based on configuration
func GetClientTransport() (transport.IRPCClientTransport, error) {
	switch viper.GetString("transport") {
	case "http":
		return http.NewHttpClientTransport(), nil
	default:
		return nil, fmt.Errorf("invalid transport %s", viper.GetString("transport"))
	}
}

// GetServerTransport creates the server transport based on configuration
func GetServerTransport() (transport.IRPCServerTransport, error) {
	switch viper.GetString("transport") {
	case "http":
		return http.NewHttpServerTransport(), nil
	default:
		return nil, fmt.Errorf("invalid transport %s", viper.GetString("transport"))
	}
}

// --------------------------------------------------------------------------
// Parsing
// --------------------------------------------------------------------------

// ParseNetworks parses a comma-separated list of networks in the format
// ID=TYPE, e.g. "1=empty,2=random"
func ParseNetworks(s string) ([]common.ServerNetwork, error) {
	var networks []common.ServerNetwork
	seen := make(map[uint64]bool)

	for _, networkConfig := range strings.Split(s, ",") {
		parts := strings.Split(networkConfig, "=")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid network format: %s (expected ID=TYPE)", networkConfig)
		}

		networkID, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid network ID %s: %w", parts[0], err)
		}
		if seen[networkID] {
			return nil, fmt.Errorf("duplicate network ID %d", networkID)
		}
		seen[networkID] = true

		networkType, err := common.ParseNetworkType(parts[1])
		if err != nil {
			return nil, err
		}

		networks = append(networks, common.ServerNetwork{
			NetworkID: networkID,
			Type:      networkType,
		})
	}

	return networks, nil
}

// ValidateIP checks the dotted-quad form of an IPv4 address: four dot
// separated integers, each between 0 and 255.
func ValidateIP(ip string) error {
	parts := strings.Split(ip, ".")
	if len(parts) != 4 {
		return fmt.Errorf("invalid IP address %q: expected 4 dot separated parts", ip)
	}
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 255 {
			return fmt.Errorf("invalid IP address %q: %q is not a number between 0 and 255", ip, part)
		}
	}
	return nil
}
