package audit

import (
	"sort"
	"strings"
)

// MissingMembers returns the entries of want absent from have, sorted.
// Matching is case-insensitive because account identifiers come from
// systems that disagree about mail-address casing; the returned strings
// keep their original form.
func MissingMembers(want, have []string) []string {
	haveSet := make(map[string]bool, len(have))
	for _, h := range have {
		haveSet[strings.ToLower(h)] = true
	}

	var missing []string
	for _, w := range want {
		if !haveSet[strings.ToLower(w)] {
			missing = append(missing, w)
		}
	}
	sort.Strings(missing)
	return missing
}
