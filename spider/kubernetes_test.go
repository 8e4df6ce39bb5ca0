package spider

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/verscout/verscout/runner"
)

// fakeKubectl returns a runner that hands back the given YAML and
// records the invocation for assertion.
func fakeKubectl(t *testing.T, yamlOut string, gotArgs *[]string) runner.Runner {
	t.Helper()
	t.Setenv("VERSCOUT_KUBECTL", "")
	return runner.Func(func(_ context.Context, name string, args ...string) ([]byte, error) {
		if name != "kubectl" {
			t.Errorf("command = %q, want kubectl", name)
		}
		if gotArgs != nil {
			*gotArgs = args
		}
		return []byte(yamlOut), nil
	})
}

func TestKubeLabelSpider_Resolve(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "recommended label",
			yaml: `
metadata:
  name: gateway
  labels:
    app.kubernetes.io/name: gateway
    app.kubernetes.io/version: v1.4.2
`,
			want: "1.4.2",
		},
		{
			name: "historical apps variant",
			yaml: `
metadata:
  name: gateway
  labels:
    apps.kubernetes.io/version: 2.0.0
`,
			want: "2.0.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var args []string
			s := NewKubeLabelSpider("deployment", "gateway", "edge",
				WithRunner(fakeKubectl(t, tt.yaml, &args)))

			got, err := s.Resolve(context.Background(), true)
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve = %q, want %q", got, tt.want)
			}

			want := []string{"get", "deployment", "gateway", "-n", "edge", "-o", "yaml"}
			if strings.Join(args, " ") != strings.Join(want, " ") {
				t.Errorf("kubectl args = %v, want %v", args, want)
			}
		})
	}
}

func TestKubeLabelSpider_MissingLabels(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		message string
	}{
		{
			name:    "no labels map",
			yaml:    "metadata:\n  name: gateway\n",
			message: "no labels in metadata for gateway",
		},
		{
			name: "neither label key",
			yaml: `
metadata:
  name: gateway
  labels:
    team: edge
`,
			message: "label app.kubernetes.io/version not found on gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewKubeLabelSpider("deployment", "gateway", "edge",
				WithRunner(fakeKubectl(t, tt.yaml, nil)))

			_, err := s.Resolve(context.Background(), true)
			if !IsMalformedSource(err) {
				t.Fatalf("expected MalformedSource, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error %q should contain %q", err.Error(), tt.message)
			}
		})
	}
}

func TestKubeLabelSpider_CommandFailure(t *testing.T) {
	failing := runner.Func(func(context.Context, string, ...string) ([]byte, error) {
		return nil, errors.New(`kubectl get deployment gateway: exit status 1: Error from server (NotFound)`)
	})

	s := NewKubeLabelSpider("deployment", "gateway", "edge", WithRunner(failing))
	_, err := s.Resolve(context.Background(), true)
	if !IsSourceUnavailable(err) {
		t.Fatalf("expected SourceUnavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "NotFound") {
		t.Errorf("error should carry the command detail, got: %v", err)
	}
}

const sampleStatefulSetYAML = `
apiVersion: apps/v1
kind: StatefulSet
metadata:
  name: prometheus
spec:
  template:
    spec:
      containers:
        - name: prometheus
          image: quay.io/prometheus/prometheus:v2.2.1
`

func TestKubeImageSpider_Resolve(t *testing.T) {
	s := NewKubeImageSpider("statefulset", "prometheus", "monitoring",
		"spec.template.spec.containers.0.image",
		WithRunner(fakeKubectl(t, sampleStatefulSetYAML, nil)))

	got, err := s.Resolve(context.Background(), true)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "2.2.1" {
		t.Errorf("Resolve(normalize) = %q, want %q", got, "2.2.1")
	}

	raw, err := s.Resolve(context.Background(), false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if raw != "v2.2.1" {
		t.Errorf("Resolve(raw) = %q, want %q", raw, "v2.2.1")
	}
}

func TestKubeImageSpider_RegistryPort(t *testing.T) {
	// Splitting on the last colon keeps a registry port out of the tag.
	resource := `
spec:
  containers:
    - image: registry.internal:5000/app:1.4.2
`
	s := NewKubeImageSpider("pod", "app", "default", "spec.containers.0.image",
		WithRunner(fakeKubectl(t, resource, nil)))

	got, err := s.Resolve(context.Background(), true)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "1.4.2" {
		t.Errorf("Resolve = %q, want %q", got, "1.4.2")
	}
}

func TestKubeImageSpider_Failures(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		path string
	}{
		{
			name: "path misses",
			yaml: sampleStatefulSetYAML,
			path: "spec.template.spec.volumes.0.name",
		},
		{
			name: "image without tag",
			yaml: "spec:\n  containers:\n    - image: untagged-image\n",
			path: "spec.containers.0.image",
		},
		{
			name: "value not a string",
			yaml: "spec:\n  replicas: 3\n",
			path: "spec",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewKubeImageSpider("deployment", "app", "default", tt.path,
				WithRunner(fakeKubectl(t, tt.yaml, nil)))

			_, err := s.Resolve(context.Background(), true)
			if !IsMalformedSource(err) {
				t.Errorf("expected MalformedSource, got %v", err)
			}
		})
	}
}

func TestKubeImageSpider_CommandFailure(t *testing.T) {
	failing := runner.Func(func(context.Context, string, ...string) ([]byte, error) {
		return nil, errors.New("exec: \"kubectl\": executable file not found in $PATH")
	})

	s := NewKubeImageSpider("deployment", "app", "default", "spec.containers.0.image",
		WithRunner(failing))
	_, err := s.Resolve(context.Background(), true)
	if !IsSourceUnavailable(err) {
		t.Errorf("expected SourceUnavailable, got %v", err)
	}
}
