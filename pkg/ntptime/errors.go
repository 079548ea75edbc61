package ntptime

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"os"
	"time"
)

var (
	ErrHostNotFound       = errors.New("host not found")
	ErrNoAddressAvailable = errors.New("no address available")
	ErrRequestTimedOut    = errors.New("request timed out")
	ErrMalformedReply     = errors.New("malformed reply")
)

// TimeoutError is returned when no reply arrives before the timeout.
type TimeoutError struct {
	Endpoint netip.AddrPort
	Timeout  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("no reply from %s within %s", e.Endpoint, e.Timeout)
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrRequestTimedOut
}

// MalformedReplyError is returned for replies shorter than a full packet.
type MalformedReplyError struct {
	Endpoint netip.AddrPort
	Length   int
}

func (e *MalformedReplyError) Error() string {
	return fmt.Sprintf("reply from %s was %d bytes, expected 48", e.Endpoint, e.Length)
}

func (e *MalformedReplyError) Is(target error) bool {
	return target == ErrMalformedReply
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
