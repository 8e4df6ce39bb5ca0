package routes

import (
	"context"
	"errors"
	"net/netip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verscout/verscout/runner"
)

func TestReadHosts(t *testing.T) {
	t.Run("skips comments and blanks, trims whitespace", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "hosts.txt")
		content := `# VPN-only services
registry.example.com

  db.example.com
# decommissioned:
#old.example.com
ci.example.com
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		hosts, err := ReadHosts(path)
		require.NoError(t, err)
		require.Equal(t, []string{"registry.example.com", "db.example.com", "ci.example.com"}, hosts)
	})

	t.Run("an empty file yields no hosts", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "hosts.txt")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		hosts, err := ReadHosts(path)
		require.NoError(t, err)
		require.Empty(t, hosts)
	})

	t.Run("reports a missing file", func(t *testing.T) {
		_, err := ReadHosts(filepath.Join(t.TempDir(), "absent.txt"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "opening hosts file")
	})
}

func TestResolve(t *testing.T) {
	t.Run("resolves localhost", func(t *testing.T) {
		addrs, err := Resolve(context.Background(), []string{"localhost"})
		require.NoError(t, err)
		require.Len(t, addrs, 1)
		require.True(t, addrs[0].Is4(), "want a plain IPv4 address, got %s", addrs[0])
	})

	t.Run("an unresolvable host aborts the batch", func(t *testing.T) {
		// .invalid is reserved (RFC 2606) and never resolves.
		_, err := Resolve(context.Background(), []string{"localhost", "nope.invalid"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "resolving nope.invalid")
	})

	t.Run("no hosts, no lookups", func(t *testing.T) {
		addrs, err := Resolve(context.Background(), nil)
		require.NoError(t, err)
		require.Empty(t, addrs)
	})
}

func TestAdd(t *testing.T) {
	t.Run("adds one route per address through the gateway", func(t *testing.T) {
		var calls [][]string
		run := runner.Func(func(_ context.Context, name string, args ...string) ([]byte, error) {
			calls = append(calls, append([]string{name}, args...))
			return nil, nil
		})

		addrs := []netip.Addr{
			netip.MustParseAddr("192.0.2.10"),
			netip.MustParseAddr("198.51.100.7"),
		}
		require.NoError(t, Add(context.Background(), run, addrs, "10.8.0.1"))

		require.Equal(t, [][]string{
			{"sudo", "route", "-n", "add", "-net", "192.0.2.10/32", "10.8.0.1"},
			{"sudo", "route", "-n", "add", "-net", "198.51.100.7/32", "10.8.0.1"},
		}, calls)
	})

	t.Run("stops at the first failure", func(t *testing.T) {
		var calls int
		run := runner.Func(func(_ context.Context, _ string, _ ...string) ([]byte, error) {
			calls++
			return nil, errors.New("route: writing to routing socket: Operation not permitted")
		})

		addrs := []netip.Addr{
			netip.MustParseAddr("192.0.2.10"),
			netip.MustParseAddr("198.51.100.7"),
		}
		err := Add(context.Background(), run, addrs, "10.8.0.1")
		require.Error(t, err)
		require.Contains(t, err.Error(), "adding route for 192.0.2.10")
		require.Equal(t, 1, calls, "no further routes after a failure")
	})
}
