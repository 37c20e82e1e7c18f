// Package cmd implements the command-line interface of ipfinder. It provides
// a hierarchical command structure for running the server and for managing
// devices as a client.
//
// The package is organized into several subpackages:
//
//   - device: Commands for registry operations (add, search, del, update, list,
//     tree, stats, generate, clear)
//   - serve: Command for starting and configuring the ipfinder server
//   - host: Prints hostname and IP address of the local machine
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// Flags can also be set as environment variables (IPFINDER_<FLAG>) or in a
// .env / .env.local file.
//
// See ipfinder -help for a list of all commands.
package cmd
