package spider

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
)

const bitbucketBaseURL = "https://api.bitbucket.org/2.0"

// releaseTagRx matches plain three-part release tags such as "2.4.11",
// filtering out feature branches and oddly named tags.
var releaseTagRx = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// BitbucketSpider lists a repository's tags through the Bitbucket API
// and reports the first tag shaped like a release. Tags are requested
// name-descending, so the first match is the newest.
type BitbucketSpider struct {
	owner  string
	repo   string
	client *http.Client
	base   string
}

// NewBitbucketSpider creates a spider for owner/repo on Bitbucket.
func NewBitbucketSpider(owner, repo string, opts ...Option) *BitbucketSpider {
	o := applyOptions(opts)
	return &BitbucketSpider{
		owner:  owner,
		repo:   repo,
		client: o.client(),
		base:   o.base(bitbucketBaseURL),
	}
}

// SourceDescription identifies the repository.
func (s *BitbucketSpider) SourceDescription() string {
	return fmt.Sprintf("bitbucket:%s/%s", s.owner, s.repo)
}

// Resolve fetches one page of tags and returns the first release-shaped one.
func (s *BitbucketSpider) Resolve(ctx context.Context, normalize bool) (string, error) {
	tagsURL := fmt.Sprintf("%s/repositories/%s/%s/refs/tags?sort=-name&pagelen=100",
		s.base, s.owner, s.repo)

	var payload struct {
		Values []struct {
			Name string `json:"name"`
		} `json:"values"`
	}
	if err := fetchJSON(ctx, s.client, tagsURL, s.SourceDescription(), &payload); err != nil {
		return "", err
	}

	for _, tag := range payload.Values {
		if releaseTagRx.MatchString(tag.Name) {
			return applyNormalize(tag.Name, normalize), nil
		}
	}
	return "", notFound(s.SourceDescription(), "no tag matched the release pattern")
}
