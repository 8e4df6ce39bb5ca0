package spider

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verscout/verscout/internal/config"
	"github.com/verscout/verscout/runner"
)

// versionLabelKeys are the label keys a resource may carry its version
// under, in lookup order. The "apps." variant is a historical misprint
// that still exists on older deployments.
var versionLabelKeys = []string{
	"app.kubernetes.io/version",
	"apps.kubernetes.io/version",
}

// kubectlGetYAML fetches one resource from the live cluster as YAML.
// The kubectl binary comes from VERSCOUT_KUBECTL (default "kubectl").
func kubectlGetYAML(ctx context.Context, run runner.Runner, kind, name, namespace, source string) ([]byte, error) {
	out, err := run.Output(ctx, config.GetKubectlPath(),
		"get", kind, name, "-n", namespace, "-o", "yaml")
	if err != nil {
		return nil, unavailable(source, "querying cluster", err)
	}
	return out, nil
}

// KubeLabelSpider reads the version label off a live cluster resource,
// for workloads that follow the recommended-labels convention.
type KubeLabelSpider struct {
	kind      string
	name      string
	namespace string
	run       runner.Runner
}

// NewKubeLabelSpider creates a spider over one cluster resource, e.g.
// NewKubeLabelSpider("deployment", "gateway", "edge").
func NewKubeLabelSpider(kind, name, namespace string, opts ...Option) *KubeLabelSpider {
	o := applyOptions(opts)
	return &KubeLabelSpider{
		kind:      kind,
		name:      name,
		namespace: namespace,
		run:       o.commandRunner(),
	}
}

// SourceDescription identifies the resource.
func (s *KubeLabelSpider) SourceDescription() string {
	return fmt.Sprintf("kube:%s/%s@%s", s.kind, s.name, s.namespace)
}

// Resolve fetches the resource and returns its version label.
func (s *KubeLabelSpider) Resolve(ctx context.Context, normalize bool) (string, error) {
	out, err := kubectlGetYAML(ctx, s.run, s.kind, s.name, s.namespace, s.SourceDescription())
	if err != nil {
		return "", err
	}

	var resource struct {
		Metadata struct {
			Name   string            `yaml:"name"`
			Labels map[string]string `yaml:"labels"`
		} `yaml:"metadata"`
	}
	if err := yaml.Unmarshal(out, &resource); err != nil {
		return "", &Error{Kind: KindMalformedSource, Source: s.SourceDescription(), Message: "decoding resource YAML", Err: err}
	}

	if len(resource.Metadata.Labels) == 0 {
		return "", malformed(s.SourceDescription(),
			fmt.Sprintf("no labels in metadata for %s", s.name))
	}
	for _, key := range versionLabelKeys {
		if version, ok := resource.Metadata.Labels[key]; ok {
			return applyNormalize(version, normalize), nil
		}
	}
	return "", malformed(s.SourceDescription(),
		fmt.Sprintf("label %s not found on %s", versionLabelKeys[0], s.name))
}

// KubeImageSpider reads the image tag of a container running in the
// cluster, located by a dotted field path into the resource, e.g.
// "spec.template.spec.containers.0.image" for a Deployment.
type KubeImageSpider struct {
	kind      string
	name      string
	namespace string
	path      string
	run       runner.Runner
}

// NewKubeImageSpider creates a spider that walks path through one
// cluster resource to an image reference.
func NewKubeImageSpider(kind, name, namespace, path string, opts ...Option) *KubeImageSpider {
	o := applyOptions(opts)
	return &KubeImageSpider{
		kind:      kind,
		name:      name,
		namespace: namespace,
		path:      path,
		run:       o.commandRunner(),
	}
}

// SourceDescription identifies the resource.
func (s *KubeImageSpider) SourceDescription() string {
	return fmt.Sprintf("kube:%s/%s@%s", s.kind, s.name, s.namespace)
}

// Resolve fetches the resource, walks the configured path to an image
// reference, and returns the tag after the last ":". Splitting on the
// last colon keeps registry hosts with ports out of the tag.
func (s *KubeImageSpider) Resolve(ctx context.Context, normalize bool) (string, error) {
	out, err := kubectlGetYAML(ctx, s.run, s.kind, s.name, s.namespace, s.SourceDescription())
	if err != nil {
		return "", err
	}

	var resource any
	if err := yaml.Unmarshal(out, &resource); err != nil {
		return "", &Error{Kind: KindMalformedSource, Source: s.SourceDescription(), Message: "decoding resource YAML", Err: err}
	}

	node, err := walkPath(resource, s.path, s.SourceDescription())
	if err != nil {
		return "", err
	}

	image, ok := node.(string)
	if !ok {
		return "", malformed(s.SourceDescription(),
			fmt.Sprintf("value at %q is not a string", s.path))
	}
	i := strings.LastIndex(image, ":")
	if i < 0 {
		return "", malformed(s.SourceDescription(),
			fmt.Sprintf("image %q at %q has no tag", image, s.path))
	}
	return applyNormalize(image[i+1:], normalize), nil
}
