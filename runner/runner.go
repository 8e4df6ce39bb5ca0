// Package runner abstracts external command execution so that code
// shelling out to tools like kubectl or route stays testable. The real
// implementation is a thin wrapper over os/exec; tests substitute a
// Func closure.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes an external command and returns its stdout.
type Runner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// Func adapts a closure to the Runner interface.
type Func func(ctx context.Context, name string, args ...string) ([]byte, error)

// Output calls f.
func (f Func) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return f(ctx, name, args...)
}

type systemRunner struct{}

// System returns a Runner backed by os/exec.
func System() Runner {
	return systemRunner{}
}

func (systemRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	// CommandContext so cancellation kills the child process.
	cmd := exec.CommandContext(ctx, name, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		detail := strings.TrimSpace(stderr.String())
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && detail != "" {
			return nil, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, detail)
		}
		return nil, fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return out, nil
}
