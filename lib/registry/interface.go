package registry

import (
	"fmt"

	"github.com/ValentinKolb/ipfinder/lib/splay"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// MapFactory is a function type that creates the splay map used by a registry.
// It is called once when the registry is created; Clear always starts over
// with an empty map.
type MapFactory func() *splay.Map

// Device is a single registered network device.
type Device struct {
	IP     string  `json:"ip"`
	Name   string  `json:"name"`
	Packet *string `json:"packet,omitempty"`
}

// Stats is a snapshot of the registry counters.
type Stats struct {
	Size        int    `json:"size"`
	SearchCount uint64 `json:"search_count"`
}

// UpdateResult reports what an Update replaced.
// OldIP is only set if the IP address was changed.
type UpdateResult struct {
	OldIP     *string `json:"old_ip,omitempty"`
	OldPacket *string `json:"old_packet,omitempty"`
}

// IRegistry is the interface for a registry of network devices keyed by
// IP address. Not finding a device is never an error, it is reported through
// the boolean return values. The error return is reserved for failures of the
// registry itself (e.g. a broken connection for remote implementations).
type IRegistry interface {
	// Add registers a device or updates the packet of an already registered IP.
	// An empty name is replaced by a default name derived from the IP.
	// A nil packet clears the packet of an existing device.
	// inserted is false if the IP was already registered.
	Add(ip, name string, packet *string) (inserted bool, err error)
	// Search looks up a device. Every call counts towards Stats().SearchCount.
	Search(ip string) (device Device, found bool, err error)
	// Delete removes a device. Every call counts as one search.
	Delete(ip string) (removed bool, err error)
	// Update changes the packet and/or the IP of a registered device.
	// A nil newIP keeps the IP, a nil newPacket keeps the packet.
	// The device name follows the device to its new IP.
	Update(oldIP string, newIP, newPacket *string) (res UpdateResult, ok bool, err error)
	// List returns all devices ordered by IP (string order).
	List() (devices []Device, err error)
	// Structure returns a text rendering of the underlying tree.
	Structure() (text string, err error)
	// Stats returns the number of devices and the number of searches.
	Stats() (stats Stats, err error)
	// Generate adds count random devices and returns how many of them were new.
	Generate(count int) (generated int, err error)
	// Clear removes all devices and resets the counters.
	Clear() (err error)
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("RegistryError (code %s): %s", e.Code, e.Msg)
}

// NewError creates a new registry error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess          RetCode = iota // 0: Command executed successfully.
	RetCInternalError                   // 1: Command failed due to an internal error.
	RetCInvalidOperation                // 2: Invalid operation (e.g. bad arguments).
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCInternalError:
		return "InternalError"
	case RetCInvalidOperation:
		return "InvalidOperation"
	default:
		return "Unknown"
	}
}
