// Package ntptime fetches the current time from an NTP server with a single
// request and reply.
//
//	t, err := ntptime.FetchTimestamp("pool.ntp.org", 3*time.Second)
//	if errors.Is(err, ntptime.ErrRequestTimedOut) {
//		...
//	}
package ntptime

import (
	"context"
	"fmt"
	"net/netip"
	"time"

	"github.com/AndrewLester/ntpaltime/internal/ntp"
	"go.uber.org/zap"
)

const (
	DefaultTimeout        = 3 * time.Second
	DefaultPort    uint16 = 123
)

type Config struct {
	Timeout       time.Duration
	Port          uint16
	Resolver      Resolver
	Transport     Transport
	SelectAddress AddressSelector
	Logger        *zap.Logger
}

type Client struct {
	timeout       time.Duration
	port          uint16
	resolver      Resolver
	transport     Transport
	selectAddress AddressSelector
	logger        *zap.Logger
}

// Response describes one completed exchange.
type Response struct {
	Time     time.Time      // decoded transmit timestamp, UTC
	Endpoint netip.AddrPort // server the request was sent to
	Header   ntp.Header     // informational, never validated

	Received    time.Time     // local clock when the reply arrived, UTC
	RTT         time.Duration // local send to local receive
	ClockOffset time.Duration // Time minus the local midpoint, Received - RTT/2
}

func New(config Config) *Client {
	client := &Client{
		timeout:       config.Timeout,
		port:          config.Port,
		resolver:      config.Resolver,
		transport:     config.Transport,
		selectAddress: config.SelectAddress,
		logger:        config.Logger,
	}

	if client.timeout <= 0 {
		client.timeout = DefaultTimeout
	}
	if client.port == 0 {
		client.port = DefaultPort
	}
	if client.resolver == nil {
		client.resolver = SystemResolver{}
	}
	if client.transport == nil {
		client.transport = UDPTransport{}
	}
	if client.selectAddress == nil {
		client.selectAddress = FirstAddress
	}
	if client.logger == nil {
		client.logger = zap.NewNop()
	}

	return client
}

// FetchTimestamp queries host once with the default configuration and the
// given timeout.
func FetchTimestamp(host string, timeout time.Duration) (time.Time, error) {
	return New(Config{Timeout: timeout}).FetchTimestamp(host)
}

func (c *Client) FetchTimestamp(host string) (time.Time, error) {
	response, err := c.Query(host)
	if err != nil {
		return time.Time{}, err
	}
	return response.Time, nil
}

// Query performs one request/reply exchange with the first selected address
// of host. Nothing is retried.
func (c *Client) Query(host string) (*Response, error) {
	endpoint, err := c.endpoint(host)
	if err != nil {
		return nil, err
	}

	channel, err := c.transport.Open()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	defer channel.Close()

	if err := channel.SetTimeout(c.timeout); err != nil {
		return nil, fmt.Errorf("set timeout: %w", err)
	}
	if err := channel.Connect(endpoint); err != nil {
		return nil, fmt.Errorf("connect %s: %w", endpoint, err)
	}

	packet := ntp.NewRequest()

	c.logger.Debug("sending request", zap.Stringer("endpoint", endpoint), zap.Duration("timeout", c.timeout))
	sent := time.Now()
	if err := channel.Send(packet); err != nil {
		return nil, fmt.Errorf("send to %s: %w", endpoint, err)
	}

	n, err := channel.Receive(packet)
	rtt := time.Since(sent)
	received := LocalTime()
	if err != nil {
		if isTimeout(err) {
			c.logger.Debug("request timed out", zap.Stringer("endpoint", endpoint))
			return nil, &TimeoutError{Endpoint: endpoint, Timeout: c.timeout}
		}
		return nil, fmt.Errorf("receive from %s: %w", endpoint, err)
	}
	if n < ntp.PacketSize {
		return nil, &MalformedReplyError{Endpoint: endpoint, Length: n}
	}

	seconds, fraction, err := ntp.TransmitTimestamp(packet[:n])
	if err != nil {
		return nil, &MalformedReplyError{Endpoint: endpoint, Length: n}
	}
	header, err := ntp.ParseHeader(packet[:n])
	if err != nil {
		return nil, &MalformedReplyError{Endpoint: endpoint, Length: n}
	}

	serverTime := ntp.Decode(seconds, fraction)

	c.logger.Info("received reply",
		zap.Stringer("endpoint", endpoint),
		zap.Uint64("transmit", ntp.NTPTimestampEncoded(seconds, fraction)),
		zap.Time("time", serverTime),
		zap.Uint8("stratum", header.Stratum),
		zap.Duration("rtt", rtt),
	)

	return &Response{
		Time:        serverTime,
		Endpoint:    endpoint,
		Header:      header,
		Received:    received,
		RTT:         rtt,
		ClockOffset: serverTime.Sub(received.Add(-rtt / 2)),
	}, nil
}

func (c *Client) endpoint(host string) (netip.AddrPort, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	addrs, err := c.resolver.LookupAddrs(ctx, host)
	if err != nil {
		return netip.AddrPort{}, err
	}
	if len(addrs) == 0 {
		return netip.AddrPort{}, fmt.Errorf("%w: %s", ErrNoAddressAvailable, host)
	}

	addr := c.selectAddress(addrs)
	c.logger.Info("resolved server", zap.String("host", host), zap.Int("addresses", len(addrs)), zap.Stringer("selected", addr))

	return netip.AddrPortFrom(addr, c.port), nil
}
