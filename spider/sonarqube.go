package spider

import (
	"context"
	"net/http"
	"strings"
)

const sonarQubeBaseURL = "https://binaries.sonarsource.com"

// SonarQubeSpider scrapes the SonarQube distribution mirror. Every
// release is listed as a "sonarqube-<version>.zip" download link; the
// naturally newest embedded version wins.
type SonarQubeSpider struct {
	client *http.Client
	base   string
}

// NewSonarQubeSpider creates a spider over the distribution listing.
func NewSonarQubeSpider(opts ...Option) *SonarQubeSpider {
	o := applyOptions(opts)
	return &SonarQubeSpider{client: o.client(), base: o.base(sonarQubeBaseURL)}
}

// SourceDescription identifies the mirror.
func (s *SonarQubeSpider) SourceDescription() string {
	return "sonarqube distribution"
}

// Resolve collects the download links and returns the newest version.
func (s *SonarQubeSpider) Resolve(ctx context.Context, normalize bool) (string, error) {
	doc, err := fetchHTML(ctx, s.client, s.base+"/Distribution/sonarqube/", s.SourceDescription())
	if err != nil {
		return "", err
	}

	var versions []string
	for _, a := range collectElements(doc, "a") {
		href, ok := attrValue(a, "href")
		if !ok {
			continue
		}
		if strings.HasPrefix(href, "sonarqube-") && strings.HasSuffix(href, ".zip") {
			versions = append(versions,
				strings.TrimSuffix(strings.TrimPrefix(href, "sonarqube-"), ".zip"))
		}
	}
	if len(versions) == 0 {
		return "", notFound(s.SourceDescription(), "failed to locate any releases")
	}

	newest := SortDescending(versions)[0]
	return applyNormalize(newest, normalize), nil
}
