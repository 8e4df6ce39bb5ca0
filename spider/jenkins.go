package spider

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/net/html"
)

const jenkinsBaseURL = "https://www.jenkins.io"

// JenkinsSpider scrapes the Jenkins stable changelog page. Each LTS
// release renders as a heading inside the ratings section with the
// version as its anchor id; the first one is the newest.
type JenkinsSpider struct {
	client *http.Client
	base   string
}

// NewJenkinsSpider creates a spider over the stable changelog.
func NewJenkinsSpider(opts ...Option) *JenkinsSpider {
	o := applyOptions(opts)
	return &JenkinsSpider{client: o.client(), base: o.base(jenkinsBaseURL)}
}

// SourceDescription identifies the changelog page.
func (s *JenkinsSpider) SourceDescription() string {
	return "jenkins.io/changelog-stable"
}

// Resolve returns the id of the first release heading on the page.
func (s *JenkinsSpider) Resolve(ctx context.Context, normalize bool) (string, error) {
	doc, err := fetchHTML(ctx, s.client, s.base+"/changelog-stable/", s.SourceDescription())
	if err != nil {
		return "", err
	}

	ratings := findElement(doc, "div", func(n *html.Node) bool { return hasClass(n, "ratings") })
	if ratings == nil {
		return "", notFound(s.SourceDescription(), "no ratings section on changelog page")
	}

	heading := findElement(ratings, "h3", nil)
	if heading == nil {
		return "", notFound(s.SourceDescription(), "no release heading in ratings section")
	}

	version, ok := attrValue(heading, "id")
	if !ok || strings.TrimSpace(version) == "" {
		return "", notFound(s.SourceDescription(), "release heading has no id")
	}
	return applyNormalize(version, normalize), nil
}
