// Package manifest loads the roster of tracked artifacts from a TOML
// file. Each entry names one artifact, the source kind its version
// comes from, and the source-specific configuration the spider for
// that kind needs. The manifest is read once and treated as immutable.
package manifest

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
)

// Artifact is one tracked artifact. Source selects the spider kind;
// the remaining fields configure it and most apply to only some kinds.
type Artifact struct {
	// Name identifies the artifact in reports. Required, unique.
	Name string `toml:"name"`

	// Source selects the spider kind, e.g. "dockerhub" or "kube-image".
	Source string `toml:"source"`

	// Owner and Repo locate a repository on GitHub, Bitbucket, or
	// Docker Hub.
	Owner string `toml:"owner"`
	Repo  string `toml:"repo"`

	// Package and Branch locate an Alpine package on a release branch.
	Package string `toml:"package"`
	Branch  string `toml:"branch"`

	// Path is a Dockerfile path for the dockerfile source, or a dotted
	// field path into the resource for the kube-image source.
	Path string `toml:"path"`

	// Prefix filters releases by beautified version prefix
	// (github-prefix source).
	Prefix string `toml:"prefix"`

	// Kind, Resource, and Namespace locate a live cluster resource
	// (kube-label and kube-image sources).
	Kind      string `toml:"kind"`
	Resource  string `toml:"resource"`
	Namespace string `toml:"namespace"`

	// Version is the fixed answer for the static source.
	Version string `toml:"version"`

	// Constraint is an optional semver range the resolved version is
	// checked against, e.g. ">= 10.0.0".
	Constraint string `toml:"constraint"`

	// Raw reports the upstream token as-is instead of beautifying it.
	Raw bool `toml:"raw"`
}

// Manifest is the full artifact roster.
type Manifest struct {
	Artifacts []Artifact `toml:"artifact"`
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m, nil
}

// Parse unmarshals and validates manifest TOML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// validate enforces the invariants the tracker relies on: named,
// uniquely named, sourced artifacts with parseable constraints.
func (m *Manifest) validate() error {
	seen := make(map[string]bool, len(m.Artifacts))
	for i, a := range m.Artifacts {
		if a.Name == "" {
			return fmt.Errorf("artifact %d: name is required", i)
		}
		if seen[a.Name] {
			return fmt.Errorf("artifact %q: duplicate name", a.Name)
		}
		seen[a.Name] = true

		if a.Source == "" {
			return fmt.Errorf("artifact %q: source is required", a.Name)
		}
		if a.Constraint != "" {
			if _, err := semver.NewConstraint(a.Constraint); err != nil {
				return fmt.Errorf("artifact %q: invalid constraint %q: %w", a.Name, a.Constraint, err)
			}
		}
	}
	return nil
}
