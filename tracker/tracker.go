// Package tracker batch-resolves the versions of every artifact in a
// manifest and evaluates the semver constraints artifacts declare. One
// artifact failing never aborts the run; its row carries the error and
// the remaining artifacts still resolve.
package tracker

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/verscout/verscout/log"
	"github.com/verscout/verscout/manifest"
	"github.com/verscout/verscout/spider"
)

// Result is one artifact's row in a check report.
type Result struct {
	Name       string // artifact name from the manifest
	Source     string // SourceDescription of the spider that ran
	Version    string // resolved version, empty on error
	Constraint string // as configured, empty when none
	Satisfied  *bool  // nil when no constraint or resolution failed
	Err        error
}

// Tracker resolves a fixed manifest of artifacts.
type Tracker struct {
	manifest   *manifest.Manifest
	logger     log.Logger
	spiderOpts []spider.Option
}

// Option adjusts tracker construction.
type Option func(*Tracker)

// WithLogger replaces the default logger.
func WithLogger(l log.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// WithSpiderOptions forwards options to every spider the tracker
// builds, typically WithHTTPClient or WithRunner for tests.
func WithSpiderOptions(opts ...spider.Option) Option {
	return func(t *Tracker) { t.spiderOpts = opts }
}

// New creates a tracker over a loaded manifest.
func New(m *manifest.Manifest, opts ...Option) *Tracker {
	t := &Tracker{manifest: m, logger: log.Default()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Check resolves every artifact in manifest order and returns one
// result per artifact. Artifacts marked raw report the upstream token
// unbeautified.
func (t *Tracker) Check(ctx context.Context) []Result {
	results := make([]Result, 0, len(t.manifest.Artifacts))
	for _, a := range t.manifest.Artifacts {
		results = append(results, t.check(ctx, a))
	}
	return results
}

func (t *Tracker) check(ctx context.Context, a manifest.Artifact) Result {
	res := Result{Name: a.Name, Constraint: a.Constraint}

	sp, err := spider.FromArtifact(a, t.spiderOpts...)
	if err != nil {
		t.logger.Warn("building spider failed", "artifact", a.Name, "error", err)
		res.Err = err
		return res
	}
	res.Source = sp.SourceDescription()

	version, err := sp.Resolve(ctx, !a.Raw)
	if err != nil {
		t.logger.Warn("resolution failed", "artifact", a.Name, "source", res.Source, "error", err)
		res.Err = err
		return res
	}
	res.Version = version
	t.logger.Debug("resolved", "artifact", a.Name, "source", res.Source, "version", version)

	if a.Constraint == "" {
		return res
	}

	satisfied, err := t.evaluate(a.Constraint, version)
	if err != nil {
		t.logger.Warn("constraint check failed", "artifact", a.Name, "constraint", a.Constraint, "error", err)
		res.Err = err
		return res
	}
	res.Satisfied = &satisfied
	t.logger.Info("constraint checked", "artifact", a.Name, "version", version,
		"constraint", a.Constraint, "satisfied", satisfied)
	return res
}

// evaluate checks a resolved version against a semver range. The
// manifest validated the constraint syntax already; the version is
// whatever the upstream produced and may not parse.
func (t *Tracker) evaluate(constraint, version string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return false, fmt.Errorf("parsing version %q: %w", version, err)
	}
	return c.Check(v), nil
}
