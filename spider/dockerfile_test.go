package spider

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeDockerfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Dockerfile")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestDockerfileSpider_Resolve(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		normalize bool
		want      string
	}{
		{
			name:      "plain image tag",
			content:   "# build image\nFROM registry/example:1.4.0\nRUN true\n",
			normalize: true,
			want:      "1.4.0",
		},
		{
			name:      "v prefix stripped by the pattern",
			content:   "FROM quay.io/prometheus/prometheus:v2.2.1\n",
			normalize: false,
			want:      "2.2.1",
		},
		{
			name:      "registry port does not shift the tag",
			content:   "FROM registry:5000/app:1.4.2\n",
			normalize: true,
			want:      "1.4.2",
		},
		{
			name:      "first FROM wins",
			content:   "FROM golang:1.22.5\nFROM alpine:3.20.1\n",
			normalize: true,
			want:      "1.22.5",
		},
		{
			name:      "suffix kept raw",
			content:   "FROM registry/example:9.4.2-debian\n",
			normalize: false,
			want:      "9.4.2-debian",
		},
		{
			name:      "suffix dropped normalized",
			content:   "FROM registry/example:9.4.2-debian\n",
			normalize: true,
			want:      "9.4.2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewDockerfileSpider(writeDockerfile(t, tt.content))
			got, err := s.Resolve(context.Background(), tt.normalize)
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDockerfileSpider_NoVersion(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"untagged FROM", "FROM scratch\nCOPY app /app\n"},
		{"mutable tag", "FROM alpine:latest\n"},
		{"empty file", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewDockerfileSpider(writeDockerfile(t, tt.content))
			_, err := s.Resolve(context.Background(), true)
			if !IsVersionNotFound(err) {
				t.Errorf("expected VersionNotFound, got %v", err)
			}
		})
	}
}

func TestDockerfileSpider_MissingFile(t *testing.T) {
	s := NewDockerfileSpider(filepath.Join(t.TempDir(), "no-such-file"))
	_, err := s.Resolve(context.Background(), true)
	if !IsSourceUnavailable(err) {
		t.Errorf("expected SourceUnavailable, got %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		path string
		want string
	}{
		{"~/projects/Dockerfile", filepath.Join(home, "projects/Dockerfile")},
		{"~", home},
		{"/absolute/Dockerfile", "/absolute/Dockerfile"},
		{"relative/Dockerfile", "relative/Dockerfile"},
	}

	for _, tt := range tests {
		got, err := expandHome(tt.path)
		if err != nil {
			t.Fatalf("expandHome(%q) failed: %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("expandHome(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
