package ntptime

import (
	"net/netip"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ntpaltime.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseConfig(t *testing.T) {
	path := writeConfig(t, `
server: time.example
timeout: 1500ms
port: 10123
nameserver: 127.0.0.1:53
address_selection: ipv4
`)

	fileConfig, err := ParseConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if fileConfig.Server != "time.example" {
		t.Errorf("unexpected server %q", fileConfig.Server)
	}

	config, err := fileConfig.ClientConfig()
	if err != nil {
		t.Fatal(err)
	}
	if config.Timeout != 1500*time.Millisecond {
		t.Errorf("unexpected timeout %v", config.Timeout)
	}
	if config.Port != 10123 {
		t.Errorf("unexpected port %d", config.Port)
	}
	resolver, ok := config.Resolver.(DNSResolver)
	if !ok || resolver.Nameserver != "127.0.0.1:53" || resolver.Timeout != 1500*time.Millisecond {
		t.Errorf("unexpected resolver %#v", config.Resolver)
	}
	v6 := netip.MustParseAddr("2001:db8::1")
	v4 := netip.MustParseAddr("192.0.2.1")
	if got := config.SelectAddress([]netip.Addr{v6, v4}); got != v4 {
		t.Errorf("expected IPv4 preference, got %s", got)
	}
}

func TestParseConfigDefaults(t *testing.T) {
	fileConfig, err := ParseConfig(writeConfig(t, "server: time.example\n"))
	if err != nil {
		t.Fatal(err)
	}
	config, err := fileConfig.ClientConfig()
	if err != nil {
		t.Fatal(err)
	}

	client := New(config)
	if client.timeout != DefaultTimeout || client.port != DefaultPort {
		t.Errorf("expected defaults, got timeout %v port %d", client.timeout, client.port)
	}
	if _, ok := client.resolver.(SystemResolver); !ok {
		t.Errorf("expected SystemResolver, got %T", client.resolver)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := map[string]string{
		"bad timeout":      "timeout: soon\n",
		"negative timeout": "timeout: -1s\n",
		"port range":       "port: 70000\n",
		"selection":        "address_selection: random\n",
		"yaml":             "server: [\n",
	}

	for name, contents := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseConfig(writeConfig(t, contents)); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := ParseConfig(filepath.Join(t.TempDir(), "missing.yaml")); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
