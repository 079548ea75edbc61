package ntptime

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/AndrewLester/ntpaltime/internal/ntp"
)

// startServer answers every 48 byte client request on loopback with
// serverTime. With silent set it reads requests and never answers.
func startServer(t *testing.T, serverTime time.Time, silent bool) (uint16, <-chan []byte) {
	t.Helper()

	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	requests := make(chan []byte, 4)
	go func() {
		buffer := make([]byte, 512)
		for {
			n, addr, err := conn.ReadFromUDP(buffer)
			if err != nil {
				return
			}
			requests <- append([]byte(nil), buffer[:n]...)
			if silent {
				continue
			}

			conn.WriteToUDP(serverReply(serverTime), addr)
		}
	}()

	return uint16(conn.LocalAddr().(*net.UDPAddr).Port), requests
}

func TestUDPTransportExchange(t *testing.T) {
	want := time.Date(2025, time.June, 30, 23, 59, 59, 250_000_000, time.UTC)
	port, requests := startServer(t, want, false)

	client := New(Config{Port: port, Timeout: 2 * time.Second})
	got, err := client.FetchTimestamp("127.0.0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	request := <-requests
	if len(request) != ntp.PacketSize || request[0] != ntp.ClientRequestHeader {
		t.Errorf("server saw unexpected request % x", request)
	}
}

func TestUDPTransportTimeout(t *testing.T) {
	port, requests := startServer(t, time.Time{}, true)

	timeout := 100 * time.Millisecond
	start := time.Now()
	_, err := New(Config{Port: port, Timeout: timeout}).FetchTimestamp("127.0.0.1")
	elapsed := time.Since(start)

	if !errors.Is(err, ErrRequestTimedOut) {
		t.Fatalf("expected ErrRequestTimedOut, got %v", err)
	}
	if elapsed < timeout || elapsed > timeout+2*time.Second {
		t.Errorf("timed out after %v, expected about %v", elapsed, timeout)
	}

	select {
	case <-requests:
	case <-time.After(time.Second):
		t.Error("server never saw the request")
	}
}

func TestUDPChannelNotConnected(t *testing.T) {
	channel, err := UDPTransport{}.Open()
	if err != nil {
		t.Fatal(err)
	}
	if err := channel.Send(ntp.NewRequest()); !errors.Is(err, errNotConnected) {
		t.Errorf("expected errNotConnected, got %v", err)
	}
	if _, err := channel.Receive(make([]byte, ntp.PacketSize)); !errors.Is(err, errNotConnected) {
		t.Errorf("expected errNotConnected, got %v", err)
	}
	if err := channel.Close(); err != nil {
		t.Errorf("closing an unconnected channel: %v", err)
	}
}

func TestLocalTime(t *testing.T) {
	local := LocalTime()
	if diff := time.Since(local); diff < -time.Second || diff > time.Second {
		t.Errorf("LocalTime is %v away from time.Now", diff)
	}
	if local.Location() != time.UTC {
		t.Errorf("expected UTC, got %v", local.Location())
	}
}
