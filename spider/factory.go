package spider

import (
	"fmt"

	"github.com/verscout/verscout/manifest"
)

// FromArtifact builds the spider an artifact's source kind calls for,
// checking that the fields that kind needs are present. The options are
// passed through to the constructor.
func FromArtifact(a manifest.Artifact, opts ...Option) (Spider, error) {
	need := func(field, value string) error {
		if value == "" {
			return fmt.Errorf("artifact %q: source %q requires %s", a.Name, a.Source, field)
		}
		return nil
	}

	switch a.Source {
	case "static":
		if err := need("version", a.Version); err != nil {
			return nil, err
		}
		return NewStaticSpider(a.Version), nil

	case "na":
		return NewNASpider(), nil

	case "alpine":
		if err := need("package", a.Package); err != nil {
			return nil, err
		}
		if err := need("branch", a.Branch); err != nil {
			return nil, err
		}
		return NewAlpineSpider(a.Package, a.Branch, opts...), nil

	case "bitbucket":
		if err := need("owner", a.Owner); err != nil {
			return nil, err
		}
		if err := need("repo", a.Repo); err != nil {
			return nil, err
		}
		return NewBitbucketSpider(a.Owner, a.Repo, opts...), nil

	case "dockerhub":
		if err := need("owner", a.Owner); err != nil {
			return nil, err
		}
		if err := need("repo", a.Repo); err != nil {
			return nil, err
		}
		return NewDockerHubSpider(a.Owner, a.Repo, opts...), nil

	case "dockerfile":
		if err := need("path", a.Path); err != nil {
			return nil, err
		}
		return NewDockerfileSpider(a.Path), nil

	case "github-latest":
		if err := need("owner", a.Owner); err != nil {
			return nil, err
		}
		if err := need("repo", a.Repo); err != nil {
			return nil, err
		}
		return NewGitHubLatestSpider(a.Owner, a.Repo, opts...), nil

	case "github-prefix":
		if err := need("owner", a.Owner); err != nil {
			return nil, err
		}
		if err := need("repo", a.Repo); err != nil {
			return nil, err
		}
		if err := need("prefix", a.Prefix); err != nil {
			return nil, err
		}
		return NewGitHubPrefixSpider(a.Owner, a.Repo, a.Prefix, opts...), nil

	case "github-releases":
		if err := need("owner", a.Owner); err != nil {
			return nil, err
		}
		if err := need("repo", a.Repo); err != nil {
			return nil, err
		}
		return NewGitHubReleasesSpider(a.Owner, a.Repo, opts...), nil

	case "jenkins-stable":
		return NewJenkinsSpider(opts...), nil

	case "sonarqube":
		return NewSonarQubeSpider(opts...), nil

	case "kube-label":
		if err := need("kind", a.Kind); err != nil {
			return nil, err
		}
		if err := need("resource", a.Resource); err != nil {
			return nil, err
		}
		if err := need("namespace", a.Namespace); err != nil {
			return nil, err
		}
		return NewKubeLabelSpider(a.Kind, a.Resource, a.Namespace, opts...), nil

	case "kube-image":
		if err := need("kind", a.Kind); err != nil {
			return nil, err
		}
		if err := need("resource", a.Resource); err != nil {
			return nil, err
		}
		if err := need("namespace", a.Namespace); err != nil {
			return nil, err
		}
		if err := need("path", a.Path); err != nil {
			return nil, err
		}
		return NewKubeImageSpider(a.Kind, a.Resource, a.Namespace, a.Path, opts...), nil

	default:
		return nil, fmt.Errorf("artifact %q: unknown source %q", a.Name, a.Source)
	}
}

// KnownSources returns the source kinds FromArtifact accepts, for
// validation messages.
func KnownSources() []string {
	return []string{
		"static", "na", "alpine", "bitbucket", "dockerhub", "dockerfile",
		"github-latest", "github-prefix", "github-releases",
		"jenkins-stable", "sonarqube", "kube-label", "kube-image",
	}
}
