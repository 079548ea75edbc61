package ntptime

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk configuration read by ntpaltime.
//
//	server: time.cloudflare.com
//	timeout: 2s
//	port: 123
//	nameserver: 1.1.1.1:53
//	address_selection: ipv4
type FileConfig struct {
	Server           string `yaml:"server"`
	Timeout          string `yaml:"timeout"`
	Port             int    `yaml:"port"`
	Nameserver       string `yaml:"nameserver"`
	AddressSelection string `yaml:"address_selection"`
}

func ParseConfig(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, err
	}

	var config FileConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return FileConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if _, err := config.ClientConfig(); err != nil {
		return FileConfig{}, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	return config, nil
}

// ClientConfig converts the file values to a Config. Unset values stay zero
// so New applies its defaults.
func (f FileConfig) ClientConfig() (Config, error) {
	config := Config{}

	if f.Timeout != "" {
		timeout, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("timeout: %w", err)
		}
		if timeout <= 0 {
			return Config{}, fmt.Errorf("timeout must be positive, got %s", f.Timeout)
		}
		config.Timeout = timeout
	}

	if f.Port < 0 || f.Port > 65535 {
		return Config{}, fmt.Errorf("port %d out of range", f.Port)
	}
	config.Port = uint16(f.Port)

	selectAddress, err := ParseAddressSelector(f.AddressSelection)
	if err != nil {
		return Config{}, err
	}
	config.SelectAddress = selectAddress

	if f.Nameserver != "" {
		config.Resolver = DNSResolver{Nameserver: f.Nameserver, Timeout: config.Timeout}
	}

	return config, nil
}
