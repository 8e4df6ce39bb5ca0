// Package spider implements version spiders: one small strategy object
// per upstream source kind, all answering the same question of what the
// newest version visible at that source is.
//
// A spider is fully configured at construction and immutable
// afterwards. Resolve performs I/O on every call; spiders never cache,
// never retry, and never log. Sources span HTML package indexes, tag
// and release APIs, container registries, local manifest files, live
// cluster resources, and distribution mirrors; the concrete types map
// one-to-one onto those source kinds.
package spider

import (
	"context"
	"net/http"
	"strings"

	"github.com/verscout/verscout/runner"
)

// Spider resolves the newest version visible at one upstream source.
//
// Implementations are safe for concurrent use provided the injected
// HTTP client or command runner is.
type Spider interface {
	// Resolve returns the newest version at the source. With normalize
	// true the result is beautified (see Beautify); with normalize
	// false the raw upstream token is returned where the source
	// distinguishes the two.
	Resolve(ctx context.Context, normalize bool) (string, error)

	// SourceDescription identifies the upstream source for logs and
	// error messages.
	SourceDescription() string
}

// options carries the cross-cutting construction knobs. Spiders ignore
// knobs that do not apply to them.
type options struct {
	httpClient *http.Client
	baseURL    string
	run        runner.Runner
}

// Option adjusts spider construction.
type Option func(*options)

// WithHTTPClient overrides the shared default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithBaseURL points a spider at an alternate endpoint, typically a
// test server or an internal mirror, replacing the canonical host.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = strings.TrimRight(u, "/") }
}

// WithRunner substitutes the external command runner used by the
// cluster-backed spiders.
func WithRunner(r runner.Runner) Option {
	return func(o *options) { o.run = r }
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o *options) client() *http.Client {
	if o.httpClient != nil {
		return o.httpClient
	}
	return defaultClient()
}

func (o *options) base(canonical string) string {
	if o.baseURL != "" {
		return o.baseURL
	}
	return canonical
}

func (o *options) commandRunner() runner.Runner {
	if o.run != nil {
		return o.run
	}
	return runner.System()
}

// applyNormalize is the shared tail of every Resolve: hand back the raw
// token or its beautified form.
func applyNormalize(version string, normalize bool) string {
	if normalize {
		return Beautify(version)
	}
	return version
}
