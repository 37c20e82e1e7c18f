package common

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// RPC server configuration struct
// --------------------------------------------------------------------------

// ServerNetworkType selects the map a network starts with.
type ServerNetworkType string

const (
	NetworkTypeEmpty  ServerNetworkType = "empty"  // start with an empty registry
	NetworkTypeRandom ServerNetworkType = "random" // start with generated devices
)

// ParseNetworkType converts a string into a ServerNetworkType
func ParseNetworkType(s string) (ServerNetworkType, error) {
	switch t := ServerNetworkType(strings.ToLower(strings.TrimSpace(s))); t {
	case NetworkTypeEmpty, NetworkTypeRandom:
		return t, nil
	default:
		return "", fmt.Errorf("invalid network type %q: must be one of %s, %s", s, NetworkTypeEmpty, NetworkTypeRandom)
	}
}

// ServerNetwork is a single device registry served under its own ID.
type ServerNetwork struct {
	// NetworkID is the ID of the network (part of the request path)
	NetworkID uint64
	// Type decides how the registry is populated at start
	Type ServerNetworkType
}

// ServerConfig holds all configuration parameters for the RPC server.
type ServerConfig struct {
	// the registries served by this server
	Networks []ServerNetwork

	// number of generated devices for random networks
	SeedCount int
	// base of generated IPs, e.g. "192.168.1."
	BaseIP string
	// name generated devices with random pet names instead of "Device-<n>"
	PetNames bool

	// request timeout
	TimeoutSecond int64

	// HTTP api settings
	Endpoint string

	// Logging configuration
	LogLevel string
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("RPC Server")
	addField("Endpoint", c.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))

	addSection("Logging")
	addField("Log Level", c.LogLevel)

	addSection("Generator")
	addField("Seed Count", strconv.Itoa(c.SeedCount))
	addField("Base IP", c.BaseIP+"x")
	addField("Pet Names", strconv.FormatBool(c.PetNames))

	addSection("Networks")
	for _, network := range c.Networks {
		addField(strconv.FormatUint(network.NetworkID, 10), string(network.Type))
	}

	return sb.String()
}

// --------------------------------------------------------------------------
// RPC client configuration struct
// --------------------------------------------------------------------------

type ClientConfig struct {
	Endpoints     []string
	TimeoutSecond int
	RetryCount    int
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Client Configuration")
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Retry Count", strconv.Itoa(c.RetryCount))

	addSection("Endpoints")
	for i, endpoint := range c.Endpoints {
		addField(strconv.Itoa(i), endpoint)
	}

	return sb.String()
}
