package serializer

import (
	"encoding/binary"
	"fmt"

	"github.com/ValentinKolb/ipfinder/rpc/common"
)

// NewBinarySerializer creates a new serializer using a custom binary format
// optimized for speed and efficiency
func NewBinarySerializer() IRPCSerializer {
	return &binarySerializerImpl{}
}

// binarySerializerImpl implements IRPCSerializer using a custom binary format.
//
// Layout: 1 byte MsgType, 2 bytes flags (big endian), then every present
// field in flag order. Strings are prefixed with a 4 byte length, numbers are
// 8 bytes, Ok is 1 byte. Devices are a 4 byte count followed by
// (ip, name, packet-flag byte, [packet]) per device.
type binarySerializerImpl struct {
}

// Bit flags to indicate which optional fields are present
const (
	hasIP          uint16 = 1 << 0
	hasNewIP       uint16 = 1 << 1
	hasOldIP       uint16 = 1 << 2
	hasName        uint16 = 1 << 3
	hasPacket      uint16 = 1 << 4
	hasCount       uint16 = 1 << 5
	hasSearchCount uint16 = 1 << 6
	hasDevices     uint16 = 1 << 7
	hasText        uint16 = 1 << 8
	hasOk          uint16 = 1 << 9
	hasErr         uint16 = 1 << 10
)

const headerSize = 3 // MsgType + 2 bytes flags

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IRPCSerializer)
// --------------------------------------------------------------------------

func (b binarySerializerImpl) Serialize(msg common.Message) ([]byte, error) {
	result := make([]byte, headerSize, b.sizeBytes(msg))
	result[0] = byte(msg.MsgType)

	var flags uint16

	if msg.IP != "" {
		flags |= hasIP
		result = appendString(result, msg.IP)
	}
	if msg.NewIP != nil {
		flags |= hasNewIP
		result = appendString(result, *msg.NewIP)
	}
	if msg.OldIP != nil {
		flags |= hasOldIP
		result = appendString(result, *msg.OldIP)
	}
	if msg.Name != "" {
		flags |= hasName
		result = appendString(result, msg.Name)
	}
	if msg.Packet != nil {
		flags |= hasPacket
		result = appendString(result, *msg.Packet)
	}
	if msg.Count > 0 {
		flags |= hasCount
		result = binary.BigEndian.AppendUint64(result, msg.Count)
	}
	if msg.SearchCount > 0 {
		flags |= hasSearchCount
		result = binary.BigEndian.AppendUint64(result, msg.SearchCount)
	}
	if msg.Devices != nil {
		flags |= hasDevices
		result = binary.BigEndian.AppendUint32(result, uint32(len(msg.Devices)))
		for _, d := range msg.Devices {
			result = appendString(result, d.IP)
			result = appendString(result, d.Name)
			if d.Packet != nil {
				result = append(result, 1)
				result = appendString(result, *d.Packet)
			} else {
				result = append(result, 0)
			}
		}
	}
	if msg.Text != "" {
		flags |= hasText
		result = appendString(result, msg.Text)
	}
	if msg.Ok {
		flags |= hasOk
		result = append(result, 1)
	}
	if msg.Err != "" {
		flags |= hasErr
		result = appendString(result, msg.Err)
	}

	// Set flags after knowing which fields are present
	binary.BigEndian.PutUint16(result[1:3], flags)

	return result, nil
}

func (b binarySerializerImpl) Deserialize(data []byte, msg *common.Message) error {
	// Check minimum size (MsgType + flags)
	if len(data) < headerSize {
		return fmt.Errorf("data too short for message header")
	}

	*msg = common.Message{MsgType: common.MessageType(data[0])}
	flags := binary.BigEndian.Uint16(data[1:3])
	r := &reader{data: data, pos: headerSize}

	if flags&hasIP != 0 {
		msg.IP = r.readString("ip")
	}
	if flags&hasNewIP != 0 {
		msg.NewIP = r.readStringPtr("new ip")
	}
	if flags&hasOldIP != 0 {
		msg.OldIP = r.readStringPtr("old ip")
	}
	if flags&hasName != 0 {
		msg.Name = r.readString("name")
	}
	if flags&hasPacket != 0 {
		msg.Packet = r.readStringPtr("packet")
	}
	if flags&hasCount != 0 {
		msg.Count = r.readUint64("count")
	}
	if flags&hasSearchCount != 0 {
		msg.SearchCount = r.readUint64("search count")
	}
	if flags&hasDevices != 0 {
		n := r.readUint32("device count")
		// every device needs at least 9 bytes, this guards the allocation
		if r.err == nil && int(n) > (len(data)-r.pos)/9 {
			return fmt.Errorf("data too short for %d devices", n)
		}
		msg.Devices = make([]common.DeviceEntry, n)
		for i := range msg.Devices {
			msg.Devices[i].IP = r.readString("device ip")
			msg.Devices[i].Name = r.readString("device name")
			if r.readByte("device packet flag") != 0 {
				msg.Devices[i].Packet = r.readStringPtr("device packet")
			}
		}
	}
	if flags&hasText != 0 {
		msg.Text = r.readString("text")
	}
	if flags&hasOk != 0 {
		msg.Ok = r.readByte("ok flag") != 0
	}
	if flags&hasErr != 0 {
		msg.Err = r.readString("error")
	}

	return r.err
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// sizeBytes calculates the total size needed for serialization
func (b binarySerializerImpl) sizeBytes(msg common.Message) int {
	size := headerSize

	if msg.IP != "" {
		size += 4 + len(msg.IP)
	}
	if msg.NewIP != nil {
		size += 4 + len(*msg.NewIP)
	}
	if msg.OldIP != nil {
		size += 4 + len(*msg.OldIP)
	}
	if msg.Name != "" {
		size += 4 + len(msg.Name)
	}
	if msg.Packet != nil {
		size += 4 + len(*msg.Packet)
	}
	if msg.Count > 0 {
		size += 8
	}
	if msg.SearchCount > 0 {
		size += 8
	}
	if msg.Devices != nil {
		size += 4
		for _, d := range msg.Devices {
			size += 4 + len(d.IP) + 4 + len(d.Name) + 1
			if d.Packet != nil {
				size += 4 + len(*d.Packet)
			}
		}
	}
	if msg.Text != "" {
		size += 4 + len(msg.Text)
	}
	if msg.Ok {
		size += 1
	}
	if msg.Err != "" {
		size += 4 + len(msg.Err)
	}

	return size
}

// appendString writes a 4 byte length followed by the string bytes
func appendString(buf []byte, s string) []byte {
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(s)))
	return append(buf, s...)
}

// reader reads fields from a serialized message. After the first error all
// reads return zero values and err keeps the first error.
type reader struct {
	data []byte
	pos  int
	err  error
}

func (r *reader) need(n int, field string) bool {
	if r.err != nil {
		return false
	}
	if n < 0 || r.pos+n > len(r.data) {
		r.err = fmt.Errorf("data too short for %s", field)
		return false
	}
	return true
}

func (r *reader) readByte(field string) byte {
	if !r.need(1, field) {
		return 0
	}
	v := r.data[r.pos]
	r.pos++
	return v
}

func (r *reader) readUint32(field string) uint32 {
	if !r.need(4, field+" length") {
		return 0
	}
	v := binary.BigEndian.Uint32(r.data[r.pos : r.pos+4])
	r.pos += 4
	return v
}

func (r *reader) readUint64(field string) uint64 {
	if !r.need(8, field) {
		return 0
	}
	v := binary.BigEndian.Uint64(r.data[r.pos : r.pos+8])
	r.pos += 8
	return v
}

func (r *reader) readString(field string) string {
	n := int(r.readUint32(field))
	if !r.need(n, field+" data") {
		return ""
	}
	s := string(r.data[r.pos : r.pos+n])
	r.pos += n
	return s
}

func (r *reader) readStringPtr(field string) *string {
	s := r.readString(field)
	if r.err != nil {
		return nil
	}
	return &s
}
