package spider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/net/html"

	"github.com/verscout/verscout/internal/config"
	"github.com/verscout/verscout/internal/httputil"
)

// maxResponseBytes caps how much of an upstream response is read.
// Tag listings and mirror indexes are small; anything larger is junk.
const maxResponseBytes = 10 * 1024 * 1024

// NewHTTPClient creates the hardened HTTP client spiders use by
// default. The timeout is configurable via VERSCOUT_API_TIMEOUT
// (default 30s); redirects are HTTPS-only, depth-capped, and blocked
// from private address space.
func NewHTTPClient() *http.Client {
	return httputil.NewSecureClient(httputil.ClientOptions{
		Timeout:      config.GetAPITimeout(),
		DialTimeout:  10 * time.Second,
		MaxRedirects: 5,
	})
}

var defaultClient = sync.OnceValue(NewHTTPClient)

// httpGet issues a GET with context and maps transport failures and
// non-2xx statuses to KindSourceUnavailable. The caller owns the body.
func httpGet(ctx context.Context, client *http.Client, url, source string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, unavailable(source, "building request", err)
	}
	req.Header.Set("Accept-Encoding", "identity")

	resp, err := client.Do(req)
	if err != nil {
		return nil, unavailable(source, fmt.Sprintf("GET %s", url), err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, unavailable(source, fmt.Sprintf("GET %s: unexpected status %s", url, resp.Status), nil)
	}
	return resp, nil
}

// fetchHTML GETs url and parses the body as HTML.
func fetchHTML(ctx context.Context, client *http.Client, url, source string) (*html.Node, error) {
	resp, err := httpGet(ctx, client, url, source)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// html.Parse recovers from malformed markup; errors here are I/O.
	doc, err := html.Parse(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, unavailable(source, "reading response body", err)
	}
	return doc, nil
}

// fetchJSON GETs url and decodes the body into v.
func fetchJSON(ctx context.Context, client *http.Client, url, source string, v any) error {
	resp, err := httpGet(ctx, client, url, source)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(v); err != nil {
		return &Error{Kind: KindMalformedSource, Source: source, Message: "decoding response body", Err: err}
	}
	return nil
}
