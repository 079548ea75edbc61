package ntp

type TimestampEncoded = uint64

type Mode byte

const (
	RESERVED Mode = iota
	SYMMETRIC_ACTIVE
	SYMMETRIC_PASSIVE
	CLIENT
	SERVER
	BROADCAST_SERVER
	BROADCAST_CLIENT
	RESERVED_PRIVATE_USE
)

const (
	Port       = "123" // NTP port number
	PacketSize = 48    // request and reply length
	Version    = 3     // version sent in requests

	// Transmit timestamp: seconds at [40:44), fraction at [44:48)
	TransmitOffset = 40
)

// ClientRequestHeader is LI=0, VN=3, Mode=CLIENT packed into byte 0.
const ClientRequestHeader byte = (0 << 6) | (Version << 3) | byte(CLIENT)

// Header holds the first four bytes of a reply. None of it is validated.
type Header struct {
	Leap    byte
	Version byte
	Mode    Mode
	Stratum byte
	Poll    int8
}

func (m Mode) String() string {
	switch m {
	case SYMMETRIC_ACTIVE:
		return "symmetric active"
	case SYMMETRIC_PASSIVE:
		return "symmetric passive"
	case CLIENT:
		return "client"
	case SERVER:
		return "server"
	case BROADCAST_SERVER:
		return "broadcast server"
	case BROADCAST_CLIENT:
		return "broadcast client"
	case RESERVED_PRIVATE_USE:
		return "private"
	default:
		return "reserved"
	}
}
