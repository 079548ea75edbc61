package ntp

import (
	"encoding/binary"
	"errors"
)

var ErrShortPacket = errors.New("packet shorter than 48 bytes")

// NewRequest returns a fresh client request. Only byte 0 is set.
func NewRequest() []byte {
	packet := make([]byte, PacketSize)
	packet[0] = ClientRequestHeader
	return packet
}

func ParseHeader(encoded []byte) (Header, error) {
	if len(encoded) < 4 {
		return Header{}, ErrShortPacket
	}

	firstByte := encoded[0]
	return Header{
		Leap:    firstByte >> 6,
		Version: (firstByte >> 3) & 0b111,
		Mode:    Mode(firstByte & 0b111),
		Stratum: encoded[1],
		Poll:    int8(encoded[2]),
	}, nil
}

// TransmitTimestamp reads the transmit timestamp of a reply. The wire is
// big-endian whatever the host order is.
func TransmitTimestamp(encoded []byte) (seconds uint32, fraction uint32, err error) {
	if len(encoded) < PacketSize {
		return 0, 0, ErrShortPacket
	}

	seconds = binary.BigEndian.Uint32(encoded[TransmitOffset : TransmitOffset+4])
	fraction = binary.BigEndian.Uint32(encoded[TransmitOffset+4 : TransmitOffset+8])
	return seconds, fraction, nil
}

func PutTransmitTimestamp(encoded []byte, seconds uint32, fraction uint32) {
	binary.BigEndian.PutUint32(encoded[TransmitOffset:TransmitOffset+4], seconds)
	binary.BigEndian.PutUint32(encoded[TransmitOffset+4:TransmitOffset+8], fraction)
}
