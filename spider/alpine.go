package spider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

const alpineBaseURL = "https://pkgs.alpinelinux.org"

// AlpineSpider scrapes the Alpine Linux package index and reports the
// version shown for one package on one branch. The index renders the
// version in the first table cell carrying the "version" class.
type AlpineSpider struct {
	pkg    string
	branch string
	client *http.Client
	base   string
}

// NewAlpineSpider creates a spider for an Alpine package, e.g.
// NewAlpineSpider("curl", "v3.20").
func NewAlpineSpider(pkg, branch string, opts ...Option) *AlpineSpider {
	o := applyOptions(opts)
	return &AlpineSpider{
		pkg:    pkg,
		branch: branch,
		client: o.client(),
		base:   o.base(alpineBaseURL),
	}
}

// SourceDescription identifies the package and branch.
func (s *AlpineSpider) SourceDescription() string {
	return fmt.Sprintf("alpine:%s@%s", s.pkg, s.branch)
}

// Resolve fetches the package listing and returns the first version cell.
func (s *AlpineSpider) Resolve(ctx context.Context, normalize bool) (string, error) {
	q := url.Values{}
	q.Set("name", s.pkg)
	q.Set("branch", s.branch)
	q.Set("arch", "x86_64")
	pageURL := s.base + "/packages?" + q.Encode()

	doc, err := fetchHTML(ctx, s.client, pageURL, s.SourceDescription())
	if err != nil {
		return "", err
	}

	cell := findElement(doc, "td", func(n *html.Node) bool { return hasClass(n, "version") })
	if cell == nil {
		return "", notFound(s.SourceDescription(), "no version cell in package listing")
	}

	version := strings.TrimSpace(textContent(cell))
	if version == "" {
		return "", notFound(s.SourceDescription(), "empty version cell in package listing")
	}
	return applyNormalize(version, normalize), nil
}
