package spider

import "context"

// StaticSpider reports a version fixed at construction time, for
// artifacts whose version is pinned by hand.
type StaticSpider struct {
	version string
}

// NewStaticSpider creates a spider that always resolves to version.
func NewStaticSpider(version string) *StaticSpider {
	return &StaticSpider{version: version}
}

// Resolve returns the configured version. It never fails.
func (s *StaticSpider) Resolve(_ context.Context, normalize bool) (string, error) {
	return applyNormalize(s.version, normalize), nil
}

// SourceDescription identifies the source.
func (s *StaticSpider) SourceDescription() string {
	return "static"
}

// NASpider reports "N/A" for artifacts tracked outside any reachable
// source. It never fails and ignores normalization.
type NASpider struct{}

// NewNASpider creates the placeholder spider.
func NewNASpider() *NASpider {
	return &NASpider{}
}

// Resolve returns "N/A".
func (s *NASpider) Resolve(context.Context, bool) (string, error) {
	return "N/A", nil
}

// SourceDescription identifies the source.
func (s *NASpider) SourceDescription() string {
	return "n/a"
}
