package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/AndrewLester/ntpaltime/pkg/ntptime"
)

const defaultConfigPath = "/etc/ntpaltime.yaml"
const defaultServer = "pool.ntp.org"

type options struct {
	server     string
	timeout    time.Duration
	nameserver string
	selection  string
	port       string
}

func main() {
	var config string
	var plain bool
	var reference bool
	var opts options
	flag.StringVar(&config, "config", defaultConfigPath, "Path to the ntpaltime config file.")
	flag.StringVar(&opts.server, "server", "", "NTP server to query.")
	flag.StringVar(&opts.server, "s", opts.server, "NTP server to query.")
	flag.DurationVar(&opts.timeout, "timeout", 0, "How long to wait for the reply (default 3s).")
	flag.StringVar(&opts.nameserver, "nameserver", "", "Resolve the server through this nameserver (host:port).")
	flag.StringVar(&opts.selection, "select", "", "Address selection: first, ipv4 or ipv6.")
	flag.BoolVar(&plain, "plain", false, "Print the result without the interactive UI.")
	flag.BoolVar(&reference, "reference", false, "Cross-check the result against a second NTP client.")
	flag.Parse()

	if opts.server == "" {
		opts.server = flag.Arg(0)
	}
	opts.port = os.Getenv("NTP_PORT")

	fileConfig, err := ntptime.ParseConfig(config)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal(err)
	}

	server, clientConfig, err := buildConfig(fileConfig, opts)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(2)
	}
	clientConfig.Logger = ntptime.NewLogger()
	defer clientConfig.Logger.Sync()

	query := fetchQuery{
		client:    ntptime.New(clientConfig),
		server:    server,
		timeout:   clientConfig.Timeout,
		reference: reference,
	}

	if plain {
		handlePlainCommand(query)
	} else {
		handleQueryCommand(query)
	}
}

// buildConfig layers flags and the environment over the config file.
func buildConfig(fileConfig ntptime.FileConfig, opts options) (string, ntptime.Config, error) {
	server := opts.server
	if server == "" {
		server = fileConfig.Server
	}
	if server == "" {
		server = defaultServer
	}

	if opts.timeout > 0 {
		fileConfig.Timeout = opts.timeout.String()
	}
	if opts.nameserver != "" {
		fileConfig.Nameserver = opts.nameserver
	}
	if opts.selection != "" {
		fileConfig.AddressSelection = opts.selection
	}
	if opts.port != "" {
		port, err := strconv.Atoi(opts.port)
		if err != nil {
			return "", ntptime.Config{}, fmt.Errorf("invalid NTP_PORT %q", opts.port)
		}
		fileConfig.Port = port
	}

	clientConfig, err := fileConfig.ClientConfig()
	if err != nil {
		return "", ntptime.Config{}, err
	}
	return server, clientConfig, nil
}
