package spider

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// newGitHubClient builds the API client the GitHub spiders share. If
// GITHUB_TOKEN is set the client authenticates with it, which raises
// the rate limit considerably.
func newGitHubClient(o options) (*github.Client, error) {
	httpClient := o.httpClient
	if httpClient == nil {
		if token := os.Getenv("GITHUB_TOKEN"); token != "" {
			ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
			httpClient = oauth2.NewClient(context.Background(), ts)
		}
	}
	client := github.NewClient(httpClient)
	if o.baseURL != "" {
		return client.WithEnterpriseURLs(o.baseURL, o.baseURL)
	}
	return client, nil
}

// listReleaseTags fetches the first page of releases (100 entries) and
// returns the tag names in API order, newest first.
func listReleaseTags(ctx context.Context, client *github.Client, owner, repo, source string) ([]string, error) {
	releases, _, err := client.Repositories.ListReleases(ctx, owner, repo,
		&github.ListOptions{PerPage: 100})
	if err != nil {
		return nil, unavailable(source, "listing releases", err)
	}

	tags := make([]string, 0, len(releases))
	for _, r := range releases {
		if tag := r.GetTagName(); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

// GitHubLatestSpider asks the releases/latest endpoint, trusting the
// backend to pick the newest non-draft, non-prerelease release.
type GitHubLatestSpider struct {
	owner   string
	repo    string
	client  *github.Client
	initErr error
}

// NewGitHubLatestSpider creates a spider for owner/repo's latest release.
func NewGitHubLatestSpider(owner, repo string, opts ...Option) *GitHubLatestSpider {
	client, err := newGitHubClient(applyOptions(opts))
	return &GitHubLatestSpider{owner: owner, repo: repo, client: client, initErr: err}
}

// SourceDescription identifies the repository.
func (s *GitHubLatestSpider) SourceDescription() string {
	return fmt.Sprintf("github:%s/%s", s.owner, s.repo)
}

// Resolve returns the latest release's tag.
func (s *GitHubLatestSpider) Resolve(ctx context.Context, normalize bool) (string, error) {
	if s.initErr != nil {
		return "", unavailable(s.SourceDescription(), "configuring client", s.initErr)
	}

	release, _, err := s.client.Repositories.GetLatestRelease(ctx, s.owner, s.repo)
	if err != nil {
		return "", unavailable(s.SourceDescription(), "fetching latest release", err)
	}
	tag := release.GetTagName()
	if tag == "" {
		return "", notFound(s.SourceDescription(), "latest release has no tag")
	}
	return applyNormalize(tag, normalize), nil
}

// GitHubPrefixSpider walks a repository's releases in API order and
// picks the first whose beautified tag starts with a prefix. Useful
// when one repository cuts releases for several version streams.
type GitHubPrefixSpider struct {
	owner   string
	repo    string
	prefix  string
	client  *github.Client
	initErr error
}

// NewGitHubPrefixSpider creates a spider that filters owner/repo's
// releases by a version prefix such as "1.9".
func NewGitHubPrefixSpider(owner, repo, prefix string, opts ...Option) *GitHubPrefixSpider {
	client, err := newGitHubClient(applyOptions(opts))
	return &GitHubPrefixSpider{owner: owner, repo: repo, prefix: prefix, client: client, initErr: err}
}

// SourceDescription identifies the repository and prefix.
func (s *GitHubPrefixSpider) SourceDescription() string {
	return fmt.Sprintf("github:%s/%s prefix=%s", s.owner, s.repo, s.prefix)
}

// Resolve returns the first release matching the prefix. The match runs
// on the beautified tag; with normalize false the matched release's raw
// tag comes back unmodified.
func (s *GitHubPrefixSpider) Resolve(ctx context.Context, normalize bool) (string, error) {
	if s.initErr != nil {
		return "", unavailable(s.SourceDescription(), "configuring client", s.initErr)
	}

	tags, err := listReleaseTags(ctx, s.client, s.owner, s.repo, s.SourceDescription())
	if err != nil {
		return "", err
	}

	for _, tag := range tags {
		version := Beautify(tag)
		if strings.HasPrefix(version, s.prefix) {
			if normalize {
				return version, nil
			}
			return tag, nil
		}
	}
	return "", notFound(s.SourceDescription(),
		fmt.Sprintf("failed to locate a release matching prefix: %s", s.prefix))
}

// GitHubReleasesSpider lists a repository's releases and reports the
// naturally newest tag, for repositories whose latest-release marker
// lags behind the actual release stream.
type GitHubReleasesSpider struct {
	owner   string
	repo    string
	client  *github.Client
	initErr error
}

// NewGitHubReleasesSpider creates a spider over owner/repo's full
// release list.
func NewGitHubReleasesSpider(owner, repo string, opts ...Option) *GitHubReleasesSpider {
	client, err := newGitHubClient(applyOptions(opts))
	return &GitHubReleasesSpider{owner: owner, repo: repo, client: client, initErr: err}
}

// SourceDescription identifies the repository.
func (s *GitHubReleasesSpider) SourceDescription() string {
	return fmt.Sprintf("github:%s/%s releases", s.owner, s.repo)
}

// Resolve returns the naturally newest release tag.
func (s *GitHubReleasesSpider) Resolve(ctx context.Context, normalize bool) (string, error) {
	if s.initErr != nil {
		return "", unavailable(s.SourceDescription(), "configuring client", s.initErr)
	}

	tags, err := listReleaseTags(ctx, s.client, s.owner, s.repo, s.SourceDescription())
	if err != nil {
		return "", err
	}
	if len(tags) == 0 {
		return "", notFound(s.SourceDescription(), "repository has no releases")
	}

	newest := SortDescending(tags)[0]
	return applyNormalize(newest, normalize), nil
}
