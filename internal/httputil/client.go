// Package httputil builds the hardened HTTP clients verscout uses to
// query upstream version sources. Spiders scrape public registries,
// release APIs, and distribution mirrors, so redirects are validated:
// HTTPS only, bounded depth, and no hops into private or local address
// space.
package httputil

import (
	"fmt"
	"net"
	"net/http"
	"time"
)

// ClientOptions configures NewSecureClient. Zero values take defaults.
type ClientOptions struct {
	// Timeout is the overall request timeout. Default: 30s.
	Timeout time.Duration

	// DialTimeout is the TCP dial timeout. Default: 10s.
	DialTimeout time.Duration

	// MaxRedirects caps the redirect chain. Default: 5.
	MaxRedirects int

	// MaxIdleConns bounds the idle connection pool. Default: 10.
	MaxIdleConns int
}

// NewSecureClient creates an HTTP client with timeouts on every phase
// of the request and redirect validation. Compression stays disabled:
// the payloads spiders read are small listings, and decompression
// bombs are not worth the exposure.
func NewSecureClient(opts ClientOptions) *http.Client {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 10 * time.Second
	}
	if opts.MaxRedirects == 0 {
		opts.MaxRedirects = 5
	}
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = 10
	}

	return &http.Client{
		Timeout: opts.Timeout,
		Transport: &http.Transport{
			DisableCompression: true,
			DialContext: (&net.Dialer{
				Timeout:   opts.DialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
			MaxIdleConns:          opts.MaxIdleConns,
			IdleConnTimeout:       90 * time.Second,
		},
		CheckRedirect: checkRedirect(opts.MaxRedirects),
	}
}

// checkRedirect builds the redirect policy: HTTPS-only targets, bounded
// depth, and every resolved IP of the target host outside blocked
// address space (resolving first defeats DNS rebinding).
func checkRedirect(maxRedirects int) func(req *http.Request, via []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if req.URL.Scheme != "https" {
			return fmt.Errorf("refusing redirect to non-HTTPS URL: %s", req.URL)
		}
		if len(via) >= maxRedirects {
			return fmt.Errorf("stopped after %d redirects", maxRedirects)
		}

		host := req.URL.Hostname()
		if ip := net.ParseIP(host); ip != nil {
			return ValidateIP(ip, host)
		}

		ips, err := net.LookupIP(host)
		if err != nil {
			return fmt.Errorf("resolving redirect host %s: %w", host, err)
		}
		for _, ip := range ips {
			if err := ValidateIP(ip, host); err != nil {
				return err
			}
		}
		return nil
	}
}
