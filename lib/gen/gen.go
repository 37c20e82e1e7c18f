package gen

import (
	"fmt"
	"strings"

	"github.com/ValentinKolb/ipfinder/lib/splay"
	"github.com/brianvoe/gofakeit/v6"
	petname "github.com/dustinkirkland/golang-petname"
)

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

// Defaults used by the device generator
const (
	DefaultCount        = 11           // Devices per Generate call
	DefaultBaseIP       = "192.168.1." // Prefix of generated IP addresses
	DefaultPacketPrefix = "PKT-"       // Prefix of generated data packets
	DefaultDevicePrefix = "Device-"    // Prefix of generated device names
)

// --------------------------------------------------------------------------
// Generator
// --------------------------------------------------------------------------

// Options configures the Generator
type Options struct {
	Count        int    // Number of devices for Seed (0 = DefaultCount)
	BaseIP       string // Prefix for IPs, the last octet is random (1-254)
	PacketPrefix string // Prefix for packets, followed by a random number (1000-9999)
	DevicePrefix string // Prefix for device names
	PetNames     bool   // Use random pet names for generated devices instead of numbered names (not seeded)
	Seed         int64  // Seed for the random source (0 = random seed)
}

// DefaultOptions returns the default generator options
func DefaultOptions() *Options {
	return &Options{
		Count:        DefaultCount,
		BaseIP:       DefaultBaseIP,
		PacketPrefix: DefaultPacketPrefix,
		DevicePrefix: DefaultDevicePrefix,
	}
}

// Generator produces random test devices.
//
// Thread-safety: A Generator must not be used concurrently.
type Generator struct {
	opts  Options
	faker *gofakeit.Faker
}

// NewGenerator creates a new generator with the given options (optional)
func NewGenerator(opts *Options) *Generator {
	if opts == nil {
		opts = DefaultOptions()
	}
	o := *opts
	if o.Count <= 0 {
		o.Count = DefaultCount
	}
	return &Generator{
		opts:  o,
		faker: gofakeit.New(o.Seed),
	}
}

// IP returns a random address in the configured /24 (last octet 1-254).
func (g *Generator) IP() string {
	return fmt.Sprintf("%s%d", g.opts.BaseIP, g.faker.Number(1, 254))
}

// Packet returns a random data packet like "PKT-4711".
func (g *Generator) Packet() string {
	return fmt.Sprintf("%s%d", g.opts.PacketPrefix, g.faker.Number(1000, 9999))
}

// DeviceName returns the name of the i-th generated device (1-based).
// Pet names come from the petname package's global source and ignore
// Options.Seed.
func (g *Generator) DeviceName(i int) string {
	if g.opts.PetNames {
		return petname.Generate(2, "-")
	}
	return fmt.Sprintf("%s%d", g.opts.DevicePrefix, i)
}

// DefaultName returns the name for a device that was added without one,
// built from the last octet of its address.
func (g *Generator) DefaultName(ip string) string {
	return DefaultName(g.opts.DevicePrefix, ip)
}

// Seed returns Options.Count random entries to pre-populate a splay map.
// Duplicate addresses are possible and resolved by the map (last one wins).
func (g *Generator) Seed() []splay.Entry {
	entries := make([]splay.Entry, g.opts.Count)
	for i := range entries {
		packet := g.Packet()
		entries[i] = splay.Entry{Key: g.IP(), Value: &packet}
	}
	return entries
}

// DefaultName builds "<prefix><last octet>" for ip. For addresses without
// a dot the whole string is used.
func DefaultName(prefix, ip string) string {
	return prefix + ip[strings.LastIndex(ip, ".")+1:]
}
