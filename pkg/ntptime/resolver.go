package ntptime

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"time"

	"github.com/miekg/dns"
)

// Resolver maps a host name to candidate addresses in preference order.
// Unknown hosts are reported with an error wrapping ErrHostNotFound.
type Resolver interface {
	LookupAddrs(ctx context.Context, host string) ([]netip.Addr, error)
}

// SystemResolver resolves through the operating system's configuration.
// net.Resolver reports a missing name and a name without address records
// the same way, so not-found answers are asked again of Nameservers (or the
// servers in /etc/resolv.conf) to tell the two apart.
type SystemResolver struct {
	Resolver    *net.Resolver
	Nameservers []string // host:port
}

const resolvConfPath = "/etc/resolv.conf"

func (r SystemResolver) LookupAddrs(ctx context.Context, host string) ([]netip.Addr, error) {
	resolver := r.Resolver
	if resolver == nil {
		resolver = net.DefaultResolver
	}

	addrs, err := resolver.LookupNetIP(ctx, "ip", host)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return r.lookupNotFound(ctx, host)
		}
		return nil, err
	}

	for i, addr := range addrs {
		addrs[i] = addr.Unmap()
	}
	return addrs, nil
}

// lookupNotFound returns an empty result when a nameserver says host exists
// and ErrHostNotFound otherwise.
func (r SystemResolver) lookupNotFound(ctx context.Context, host string) ([]netip.Addr, error) {
	for _, nameserver := range r.nameservers() {
		addrs, err := DNSResolver{Nameserver: nameserver}.LookupAddrs(ctx, host)
		if errors.Is(err, ErrHostNotFound) {
			break
		}
		if err != nil {
			continue
		}
		return addrs, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrHostNotFound, host)
}

func (r SystemResolver) nameservers() []string {
	if len(r.Nameservers) > 0 {
		return r.Nameservers
	}

	config, err := dns.ClientConfigFromFile(resolvConfPath)
	if err != nil {
		return nil
	}
	nameservers := make([]string, 0, len(config.Servers))
	for _, server := range config.Servers {
		nameservers = append(nameservers, net.JoinHostPort(server, config.Port))
	}
	return nameservers
}

// DNSResolver queries a single nameserver directly, IPv4 records first.
type DNSResolver struct {
	Nameserver string // host:port
	Timeout    time.Duration
}

func (r DNSResolver) LookupAddrs(ctx context.Context, host string) ([]netip.Addr, error) {
	if addr, err := netip.ParseAddr(host); err == nil {
		return []netip.Addr{addr.Unmap()}, nil
	}

	client := &dns.Client{Net: "udp", Timeout: r.Timeout}

	addrs := []netip.Addr{}
	notFound := 0
	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		msg := new(dns.Msg)
		msg.SetQuestion(dns.Fqdn(host), qtype)
		msg.RecursionDesired = true

		reply, _, err := client.ExchangeContext(ctx, msg, r.Nameserver)
		if err != nil {
			if len(addrs) > 0 {
				return addrs, nil
			}
			return nil, fmt.Errorf("query %s for %s: %w", r.Nameserver, host, err)
		}

		switch reply.Rcode {
		case dns.RcodeSuccess:
		case dns.RcodeNameError:
			notFound++
			continue
		default:
			if len(addrs) > 0 {
				return addrs, nil
			}
			return nil, fmt.Errorf("query %s for %s: %s", r.Nameserver, host, dns.RcodeToString[reply.Rcode])
		}

		for _, rr := range reply.Answer {
			var ip net.IP
			switch record := rr.(type) {
			case *dns.A:
				ip = record.A
			case *dns.AAAA:
				ip = record.AAAA
			default:
				continue
			}
			if addr, ok := netip.AddrFromSlice(ip); ok {
				addrs = append(addrs, addr.Unmap())
			}
		}
	}

	// Both queries answered NXDOMAIN.
	if notFound == 2 {
		return nil, fmt.Errorf("%w: %s", ErrHostNotFound, host)
	}
	return addrs, nil
}

// AddressSelector picks the endpoint address from a non-empty resolver result.
type AddressSelector func(addrs []netip.Addr) netip.Addr

// FirstAddress takes the resolver's first answer. Later addresses are never
// tried.
func FirstAddress(addrs []netip.Addr) netip.Addr {
	return addrs[0]
}

func PreferIPv4(addrs []netip.Addr) netip.Addr {
	for _, addr := range addrs {
		if addr.Is4() {
			return addr
		}
	}
	return addrs[0]
}

func PreferIPv6(addrs []netip.Addr) netip.Addr {
	for _, addr := range addrs {
		if addr.Is6() {
			return addr
		}
	}
	return addrs[0]
}

func ParseAddressSelector(name string) (AddressSelector, error) {
	switch name {
	case "", "first":
		return FirstAddress, nil
	case "ipv4":
		return PreferIPv4, nil
	case "ipv6":
		return PreferIPv6, nil
	}
	return nil, fmt.Errorf("unknown address selection %q", name)
}
