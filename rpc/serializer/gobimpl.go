package serializer

import (
	"bytes"
	"encoding/gob"

	"github.com/ValentinKolb/ipfinder/rpc/common"
)

// NewGOBSerializer creates a new serializer using Go's binary gob format
func NewGOBSerializer() IRPCSerializer {
	return &gobSerializerImpl{}
}

// gobSerializerImpl implements the IRPCSerializer interface using gob encoding
type gobSerializerImpl struct {
}

// gob skips zero values, so a pointer to "" would arrive as nil.
// Optional strings and the device list therefore carry an explicit Set flag.

type gobOptString struct {
	Set   bool
	Value string
}

type gobDevice struct {
	IP     string
	Name   string
	Packet gobOptString
}

type gobMessage struct {
	MsgType     common.MessageType
	IP          string
	NewIP       gobOptString
	OldIP       gobOptString
	Name        string
	Packet      gobOptString
	Count       uint64
	SearchCount uint64
	HasDevices  bool
	Devices     []gobDevice
	Text        string
	Ok          bool
	Err         string
}

func toOpt(s *string) gobOptString {
	if s == nil {
		return gobOptString{}
	}
	return gobOptString{Set: true, Value: *s}
}

func (o gobOptString) ptr() *string {
	if !o.Set {
		return nil
	}
	v := o.Value
	return &v
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IRPCSerializer)
// --------------------------------------------------------------------------

func (g gobSerializerImpl) Serialize(msg common.Message) ([]byte, error) {
	wire := gobMessage{
		MsgType:     msg.MsgType,
		IP:          msg.IP,
		NewIP:       toOpt(msg.NewIP),
		OldIP:       toOpt(msg.OldIP),
		Name:        msg.Name,
		Packet:      toOpt(msg.Packet),
		Count:       msg.Count,
		SearchCount: msg.SearchCount,
		HasDevices:  msg.Devices != nil,
		Text:        msg.Text,
		Ok:          msg.Ok,
		Err:         msg.Err,
	}
	for _, d := range msg.Devices {
		wire.Devices = append(wire.Devices, gobDevice{IP: d.IP, Name: d.Name, Packet: toOpt(d.Packet)})
	}

	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(wire); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g gobSerializerImpl) Deserialize(b []byte, msg *common.Message) error {
	var wire gobMessage
	buf := bytes.NewBuffer(b)
	dec := gob.NewDecoder(buf)
	if err := dec.Decode(&wire); err != nil {
		return err
	}

	*msg = common.Message{
		MsgType:     wire.MsgType,
		IP:          wire.IP,
		NewIP:       wire.NewIP.ptr(),
		OldIP:       wire.OldIP.ptr(),
		Name:        wire.Name,
		Packet:      wire.Packet.ptr(),
		Count:       wire.Count,
		SearchCount: wire.SearchCount,
		Text:        wire.Text,
		Ok:          wire.Ok,
		Err:         wire.Err,
	}
	if wire.HasDevices {
		msg.Devices = make([]common.DeviceEntry, len(wire.Devices))
		for i, d := range wire.Devices {
			msg.Devices[i] = common.DeviceEntry{IP: d.IP, Name: d.Name, Packet: d.Packet.ptr()}
		}
	}
	return nil
}
