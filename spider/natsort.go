package spider

import (
	"sort"
	"strings"
)

// Compare orders two version strings the way a human reads them: both
// strings are walked as alternating runs of digits and non-digits,
// digit runs compare by numeric value ("10" after "9") and other runs
// compare byte-wise. When one string is a prefix of the other, the
// longer one is greater.
//
// Returns 1 if a > b, -1 if a < b, 0 if equal. Unlike semver-aware
// comparison this makes no attempt at prerelease ordering; upstream
// tokens such as "10.6.0.92116" or "2.462.3" order correctly without
// being parseable versions.
func Compare(a, b string) int {
	for a != "" && b != "" {
		chunkA, restA, numericA := nextChunk(a)
		chunkB, restB, numericB := nextChunk(b)

		var c int
		if numericA && numericB {
			c = compareNumeric(chunkA, chunkB)
		} else {
			c = strings.Compare(chunkA, chunkB)
		}
		if c != 0 {
			return c
		}

		a, b = restA, restB
	}

	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	default:
		return 1
	}
}

// nextChunk splits off the leading run of digits or non-digits.
func nextChunk(s string) (chunk, rest string, numeric bool) {
	numeric = isDigit(s[0])
	i := 1
	for i < len(s) && isDigit(s[i]) == numeric {
		i++
	}
	return s[:i], s[i:], numeric
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// compareNumeric compares two digit runs by value without parsing them
// into integers, so arbitrarily long runs cannot overflow.
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// SortDescending returns a new slice with the versions ordered
// newest-first under Compare. The input is not mutated and equal
// elements keep their relative order.
func SortDescending(versions []string) []string {
	sorted := make([]string, len(versions))
	copy(sorted, versions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Compare(sorted[i], sorted[j]) > 0
	})
	return sorted
}
