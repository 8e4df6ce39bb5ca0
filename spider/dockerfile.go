package spider

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// fromImageRx captures the tag of a FROM instruction. The greedy match
// before the colon pins the capture to the last ":", so registry hosts
// with ports don't shift it.
var fromImageRx = regexp.MustCompile(`^FROM .*:v?(\d+.*)$`)

// DockerfileSpider reads a local Dockerfile and reports the tag of the
// first base image that carries one.
type DockerfileSpider struct {
	path string
}

// NewDockerfileSpider creates a spider over a Dockerfile path. A
// leading "~" expands to the user home directory.
func NewDockerfileSpider(path string) *DockerfileSpider {
	return &DockerfileSpider{path: path}
}

// SourceDescription identifies the file.
func (s *DockerfileSpider) SourceDescription() string {
	return fmt.Sprintf("dockerfile:%s", s.path)
}

// Resolve scans the file for the first FROM line with a version tag.
func (s *DockerfileSpider) Resolve(_ context.Context, normalize bool) (string, error) {
	path, err := expandHome(s.path)
	if err != nil {
		return "", unavailable(s.SourceDescription(), "expanding path", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", unavailable(s.SourceDescription(), "opening file", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if m := fromImageRx.FindStringSubmatch(scanner.Text()); m != nil {
			return applyNormalize(m[1], normalize), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", unavailable(s.SourceDescription(), "reading file", err)
	}
	return "", notFound(s.SourceDescription(), fmt.Sprintf("no version found in %s", path))
}

// expandHome rewrites a leading "~" to the user home directory.
func expandHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/")), nil
	}
	return path, nil
}
