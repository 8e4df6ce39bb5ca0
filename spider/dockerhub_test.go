package spider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestImageTagPattern(t *testing.T) {
	tests := []struct {
		tag  string
		want bool
	}{
		{"1.2.3", true},
		{"1.2.3-4", true},
		{"10.20.30-11", true},
		{"1.2.3-alpha", false},
		{"latest", false},
		{"1.2", false},
		{"v1.2.3", false},
		{"1.2.3-4-5", false},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if got := imageTagRx.MatchString(tt.tag); got != tt.want {
				t.Errorf("imageTagRx.MatchString(%q) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestDockerHubSpider_Resolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repositories/grafana/grafana/tags" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("page_size") != "100" {
			t.Errorf("unexpected query: %v", r.URL.Query())
		}
		w.Header().Set("Content-Type", "application/json")
		// Hub returns push order, not version order, so 10.4.2 hiding
		// behind 9.5.20 is the case that matters.
		_, _ = w.Write([]byte(`{"results":[
			{"name":"latest"},
			{"name":"9.5.20"},
			{"name":"10.4.2"},
			{"name":"10.4.2-ubuntu"},
			{"name":"10.4.1-1"}
		]}`))
	}))
	defer server.Close()

	s := NewDockerHubSpider("grafana", "grafana", WithBaseURL(server.URL))
	got, err := s.Resolve(context.Background(), true)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "10.4.2" {
		t.Errorf("Resolve = %q, want %q", got, "10.4.2")
	}
}

func TestDockerHubSpider_BuildSuffixWins(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"name":"1.2.3-4"},{"name":"1.2.3-11"}]}`))
	}))
	defer server.Close()

	s := NewDockerHubSpider("acme", "app", WithBaseURL(server.URL))

	got, err := s.Resolve(context.Background(), false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "1.2.3-11" {
		t.Errorf("Resolve(raw) = %q, want %q", got, "1.2.3-11")
	}

	// Normalizing the winner drops the build suffix.
	normalized, err := s.Resolve(context.Background(), true)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if normalized != "1.2.3" {
		t.Errorf("Resolve(normalize) = %q, want %q", normalized, "1.2.3")
	}
}

func TestDockerHubSpider_NoReleaseTag(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"name":"latest"},{"name":"edge"}]}`))
	}))
	defer server.Close()

	s := NewDockerHubSpider("acme", "app", WithBaseURL(server.URL))
	_, err := s.Resolve(context.Background(), true)
	if !IsVersionNotFound(err) {
		t.Errorf("expected VersionNotFound, got %v", err)
	}
}

func TestDockerHubSpider_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	s := NewDockerHubSpider("acme", "app", WithBaseURL(server.URL))
	_, err := s.Resolve(context.Background(), true)
	if !IsSourceUnavailable(err) {
		t.Errorf("expected SourceUnavailable, got %v", err)
	}
}
