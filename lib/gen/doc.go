// Package gen generates random devices for testing and demos: IP addresses
// inside one /24 network, "PKT-nnnn" data packets and device names.
//
// Randomness comes from a gofakeit.Faker, so a fixed Options.Seed makes the
// generated IPs and packets reproducible. With Options.PetNames device names
// are random pet names (e.g. "proud-otter") instead of "Device-<n>"; these
// are drawn from the petname package and are not affected by the seed.
package gen
