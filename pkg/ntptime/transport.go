package ntptime

import (
	"errors"
	"net"
	"net/netip"
	"time"
)

// Transport opens datagram channels. Each exchange opens its own.
type Transport interface {
	Open() (Channel, error)
}

// Channel is a connectionless datagram channel bound to one peer after
// Connect. Receive must report an expired timeout with an error for which
// errors.Is(err, os.ErrDeadlineExceeded) or net.Error.Timeout() holds.
type Channel interface {
	SetTimeout(timeout time.Duration) error
	Connect(endpoint netip.AddrPort) error
	Send(packet []byte) error
	Receive(buffer []byte) (int, error)
	Close() error
}

var errNotConnected = errors.New("channel is not connected")

// UDPTransport is the Transport backed by the operating system's UDP stack.
type UDPTransport struct{}

func (UDPTransport) Open() (Channel, error) {
	return &udpChannel{}, nil
}

type udpChannel struct {
	conn    *net.UDPConn
	timeout time.Duration
}

func (c *udpChannel) SetTimeout(timeout time.Duration) error {
	c.timeout = timeout
	return nil
}

// Connect only fixes the peer. No packets are exchanged.
func (c *udpChannel) Connect(endpoint netip.AddrPort) error {
	if c.conn != nil {
		c.conn.Close()
	}
	conn, err := net.DialUDP("udp", nil, net.UDPAddrFromAddrPort(endpoint))
	if err != nil {
		return err
	}
	c.conn = conn
	return nil
}

func (c *udpChannel) Send(packet []byte) error {
	if c.conn == nil {
		return errNotConnected
	}
	_, err := c.conn.Write(packet)
	return err
}

func (c *udpChannel) Receive(buffer []byte) (int, error) {
	if c.conn == nil {
		return 0, errNotConnected
	}
	if c.timeout > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
			return 0, err
		}
	}
	return c.conn.Read(buffer)
}

func (c *udpChannel) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}
