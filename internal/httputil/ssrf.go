package httputil

import (
	"fmt"
	"net"
)

// blockedRanges enumerates address classes a redirect may not land in.
// Link-local unicast notably covers cloud metadata endpoints.
var blockedRanges = []struct {
	matches func(net.IP) bool
	label   string
}{
	{net.IP.IsPrivate, "private"},
	{net.IP.IsLoopback, "loopback"},
	{net.IP.IsLinkLocalUnicast, "link-local"},
	{net.IP.IsLinkLocalMulticast, "link-local multicast"},
	{net.IP.IsMulticast, "multicast"},
	{net.IP.IsUnspecified, "unspecified"},
}

// ValidateIP rejects IPs in private or local address space. The host
// is included in error messages for diagnostics.
func ValidateIP(ip net.IP, host string) error {
	for _, r := range blockedRanges {
		if r.matches(ip) {
			return fmt.Errorf("refusing redirect to %s IP: %s (%s)", r.label, host, ip)
		}
	}
	return nil
}
