// Package routes feeds a list of hostnames into the local routing
// table: read the hosts file, resolve each name to its first IPv4
// address, and add a host route per address through a chosen gateway.
package routes

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/netip"
	"os"
	"strings"

	"github.com/verscout/verscout/runner"
)

// ReadHosts reads one hostname per line. Blank lines and lines starting
// with "#" are skipped; surrounding whitespace is trimmed.
func ReadHosts(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening hosts file: %w", err)
	}
	defer f.Close()

	var hosts []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		host := strings.TrimSpace(scanner.Text())
		if host == "" || strings.HasPrefix(host, "#") {
			continue
		}
		hosts = append(hosts, host)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading hosts file: %w", err)
	}
	return hosts, nil
}

// Resolve looks up the first IPv4 address of every host, in order. A
// failed lookup aborts with the offending host named rather than
// producing a partial route set.
func Resolve(ctx context.Context, hosts []string) ([]netip.Addr, error) {
	addrs := make([]netip.Addr, 0, len(hosts))
	for _, host := range hosts {
		ips, err := net.DefaultResolver.LookupNetIP(ctx, "ip4", host)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", host, err)
		}
		if len(ips) == 0 {
			return nil, fmt.Errorf("resolving %s: no IPv4 address", host)
		}
		addrs = append(addrs, ips[0].Unmap())
	}
	return addrs, nil
}

// Add installs a /32 route per address through gateway, stopping at the
// first failure. Route-table mutation needs elevated privileges, so the
// route tool runs under sudo.
func Add(ctx context.Context, r runner.Runner, addrs []netip.Addr, gateway string) error {
	for _, addr := range addrs {
		_, err := r.Output(ctx, "sudo",
			"route", "-n", "add", "-net", addr.String()+"/32", gateway)
		if err != nil {
			return fmt.Errorf("adding route for %s: %w", addr, err)
		}
	}
	return nil
}
