package common

import (
	"encoding/json"
	"fmt"
)

// --------------------------------------------------------------------------
// Message Structure
// --------------------------------------------------------------------------

// Message represents a single message used for both requests and responses.
// Which fields are used depends on the type of message.
type Message struct {
	// Type of message
	MsgType MessageType `json:"msg_type"`

	// General fields
	IP     string  `json:"ip,omitempty"`      // Used for: Add, Search, Delete, Update (old IP) requests, Search response
	NewIP  *string `json:"new_ip,omitempty"`  // Used for: Update request (nil = keep IP)
	OldIP  *string `json:"old_ip,omitempty"`  // Used for: Update response (set if the IP was changed)
	Name   string  `json:"name,omitempty"`    // Used for: Add request, Search response
	Packet *string `json:"packet,omitempty"`  // Used for: Add, Update requests, Search response, Update response (old packet)
	Count  uint64  `json:"count,omitempty"`   // Used for: Generate request/response, Stats response (size)

	// Response only fields
	SearchCount uint64        `json:"search_count,omitempty"` // Used for: Stats response
	Devices     []DeviceEntry `json:"devices,omitempty"`      // Used for: List response
	Text        string        `json:"text,omitempty"`         // Used for: Structure response
	Ok          bool          `json:"ok,omitempty"`           // Used for: Add, Search, Delete, Update responses
	Err         string        `json:"err,omitempty"`          // Empty if no error, otherwise contains the error message
}

// DeviceEntry is a single device as transported in a List response.
type DeviceEntry struct {
	IP     string  `json:"ip"`
	Name   string  `json:"name"`
	Packet *string `json:"packet,omitempty"`
}

// --------------------------------------------------------------------------
// Message Factory Functions
// --------------------------------------------------------------------------

// withErr sets the error field of msg if err is not nil
func withErr(msg *Message, err error) *Message {
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewAddRequest creates a new Add request
func NewAddRequest(ip, name string, packet *string) *Message {
	return &Message{
		MsgType: MsgTAdd,
		IP:      ip,
		Name:    name,
		Packet:  packet,
	}
}

// NewAddResponse creates a new Add response
func NewAddResponse(inserted bool, err error) *Message {
	return withErr(&Message{
		MsgType: MsgTAdd,
		Ok:      inserted,
	}, err)
}

// NewSearchRequest creates a new Search request
func NewSearchRequest(ip string) *Message {
	return &Message{
		MsgType: MsgTSearch,
		IP:      ip,
	}
}

// NewSearchResponse creates a new Search response
func NewSearchResponse(device DeviceEntry, found bool, err error) *Message {
	return withErr(&Message{
		MsgType: MsgTSearch,
		IP:      device.IP,
		Name:    device.Name,
		Packet:  device.Packet,
		Ok:      found,
	}, err)
}

// NewDeleteRequest creates a new Delete request
func NewDeleteRequest(ip string) *Message {
	return &Message{
		MsgType: MsgTDelete,
		IP:      ip,
	}
}

// NewDeleteResponse creates a new Delete response
func NewDeleteResponse(removed bool, err error) *Message {
	return withErr(&Message{
		MsgType: MsgTDelete,
		Ok:      removed,
	}, err)
}

// NewUpdateRequest creates a new Update request
func NewUpdateRequest(oldIP string, newIP, newPacket *string) *Message {
	return &Message{
		MsgType: MsgTUpdate,
		IP:      oldIP,
		NewIP:   newIP,
		Packet:  newPacket,
	}
}

// NewUpdateResponse creates a new Update response
func NewUpdateResponse(oldIP, oldPacket *string, ok bool, err error) *Message {
	return withErr(&Message{
		MsgType: MsgTUpdate,
		OldIP:   oldIP,
		Packet:  oldPacket,
		Ok:      ok,
	}, err)
}

// NewListRequest creates a new List request
func NewListRequest() *Message {
	return &Message{
		MsgType: MsgTList,
	}
}

// NewListResponse creates a new List response
func NewListResponse(devices []DeviceEntry, err error) *Message {
	return withErr(&Message{
		MsgType: MsgTList,
		Devices: devices,
	}, err)
}

// NewStructureRequest creates a new Structure request
func NewStructureRequest() *Message {
	return &Message{
		MsgType: MsgTStructure,
	}
}

// NewStructureResponse creates a new Structure response
func NewStructureResponse(text string, err error) *Message {
	return withErr(&Message{
		MsgType: MsgTStructure,
		Text:    text,
	}, err)
}

// NewStatsRequest creates a new Stats request
func NewStatsRequest() *Message {
	return &Message{
		MsgType: MsgTStats,
	}
}

// NewStatsResponse creates a new Stats response
func NewStatsResponse(size, searchCount uint64, err error) *Message {
	return withErr(&Message{
		MsgType:     MsgTStats,
		Count:       size,
		SearchCount: searchCount,
	}, err)
}

// NewGenerateRequest creates a new Generate request
func NewGenerateRequest(count uint64) *Message {
	return &Message{
		MsgType: MsgTGenerate,
		Count:   count,
	}
}

// NewGenerateResponse creates a new Generate response
func NewGenerateResponse(generated uint64, err error) *Message {
	return withErr(&Message{
		MsgType: MsgTGenerate,
		Count:   generated,
	}, err)
}

// NewClearRequest creates a new Clear request
func NewClearRequest() *Message {
	return &Message{
		MsgType: MsgTClear,
	}
}

// NewClearResponse creates a new Clear response
func NewClearResponse(err error) *Message {
	return withErr(&Message{
		MsgType: MsgTClear,
	}, err)
}

// NewErrorResponse creates a new Error response
func NewErrorResponse(err string) *Message {
	return &Message{
		MsgType: MsgTError,
		Err:     err,
	}
}

// --------------------------------------------------------------------------
// Message Type Definition
// --------------------------------------------------------------------------

// MessageType defines the type of message used in RPC communication.
type MessageType uint8

var msgTypeNames = map[MessageType]string{
	MsgTSuccess:   "success",
	MsgTError:     "error",
	MsgTAdd:       "add",
	MsgTSearch:    "search",
	MsgTDelete:    "delete",
	MsgTUpdate:    "update",
	MsgTList:      "list",
	MsgTStructure: "structure",
	MsgTStats:     "stats",
	MsgTGenerate:  "generate",
	MsgTClear:     "clear",
}

// String returns the string representation of a MessageType.
func (t MessageType) String() string {
	if name, ok := msgTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// MarshalJSON implements the json.Marshaller interface for MessageType.
// This allows MessageType to be serialized as a string in JSON.
func (t MessageType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for MessageType.
// This allows MessageType to be deserialized from a string in JSON.
func (t *MessageType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	for msgType, name := range msgTypeNames {
		if name == s {
			*t = msgType
			return nil
		}
	}
	return fmt.Errorf("unknown message type: %s", s)
}

// --------------------------------------------------------------------------
// Message Type Constants
// --------------------------------------------------------------------------

const (
	// General message types

	MsgTUnknown MessageType = iota
	MsgTSuccess             // Indicates a successful operation
	MsgTError               // Indicates an error occurred

	// IRegistry operations

	MsgTAdd       // Add a device
	MsgTSearch    // Search a device (promotes it)
	MsgTDelete    // Delete a device
	MsgTUpdate    // Change IP and/or packet of a device
	MsgTList      // List all devices in IP order
	MsgTStructure // Render the tree structure
	MsgTStats     // Size and search count
	MsgTGenerate  // Add random devices
	MsgTClear     // Remove all devices
)
