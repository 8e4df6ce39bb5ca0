package spider

import (
	"fmt"
	"strconv"
	"strings"
)

// walkPath descends through decoded YAML or JSON following a
// dot-separated path and returns the node it lands on. Mapping nodes
// consume the segment as a key; sequence nodes require the segment to
// be a base-10 index. The node's own type decides: a numeric segment
// against a mapping is still a key lookup.
//
// Every failure is a KindMalformedSource error naming the offending
// segment and the path walked so far, so a broken resource dump is
// diagnosable from the message alone.
func walkPath(root any, path, source string) (any, error) {
	node := root
	segments := strings.Split(path, ".")

	for i, seg := range segments {
		walked := strings.Join(segments[:i], ".")

		switch n := node.(type) {
		case map[string]any:
			child, ok := n[seg]
			if !ok {
				return nil, malformed(source, fmt.Sprintf("key %q not found at %q", seg, walked))
			}
			node = child
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil {
				return nil, malformed(source, fmt.Sprintf("expected list index at %q, got %q", walked, seg))
			}
			if idx < 0 || idx >= len(n) {
				return nil, malformed(source, fmt.Sprintf("index %d out of range at %q (list has %d items)", idx, walked, len(n)))
			}
			node = n[idx]
		default:
			return nil, malformed(source, fmt.Sprintf("cannot descend into %q at %q: value is a scalar", seg, walked))
		}
	}
	return node, nil
}
