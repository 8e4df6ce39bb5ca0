package spider

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
)

const dockerHubBaseURL = "https://registry.hub.docker.com/v2"

// imageTagRx matches release image tags: three numeric parts with an
// optional numeric build suffix ("1.2.3", "1.2.3-4"). Mutable tags
// such as "latest" and prerelease tags fall through.
var imageTagRx = regexp.MustCompile(`^\d+\.\d+\.\d+(-\d+)?$`)

// DockerHubSpider lists an image's tags on Docker Hub and reports the
// naturally newest release-shaped tag. Hub returns tags in push order,
// so the candidates are re-sorted before picking.
type DockerHubSpider struct {
	owner  string
	repo   string
	client *http.Client
	base   string
}

// NewDockerHubSpider creates a spider for the owner/repo image, e.g.
// NewDockerHubSpider("grafana", "grafana").
func NewDockerHubSpider(owner, repo string, opts ...Option) *DockerHubSpider {
	o := applyOptions(opts)
	return &DockerHubSpider{
		owner:  owner,
		repo:   repo,
		client: o.client(),
		base:   o.base(dockerHubBaseURL),
	}
}

// SourceDescription identifies the image repository.
func (s *DockerHubSpider) SourceDescription() string {
	return fmt.Sprintf("dockerhub:%s/%s", s.owner, s.repo)
}

// Resolve fetches one page of tags and returns the naturally newest release tag.
func (s *DockerHubSpider) Resolve(ctx context.Context, normalize bool) (string, error) {
	tagsURL := fmt.Sprintf("%s/repositories/%s/%s/tags?page_size=100", s.base, s.owner, s.repo)

	var payload struct {
		Results []struct {
			Name string `json:"name"`
		} `json:"results"`
	}
	if err := fetchJSON(ctx, s.client, tagsURL, s.SourceDescription(), &payload); err != nil {
		return "", err
	}

	var candidates []string
	for _, tag := range payload.Results {
		if imageTagRx.MatchString(tag.Name) {
			candidates = append(candidates, tag.Name)
		}
	}
	if len(candidates) == 0 {
		return "", notFound(s.SourceDescription(), "no tag matched the release pattern")
	}

	newest := SortDescending(candidates)[0]
	return applyNormalize(newest, normalize), nil
}
