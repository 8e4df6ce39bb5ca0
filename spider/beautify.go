package spider

import (
	"regexp"
	"strings"
)

// versionPrefixRx matches a leading run of digits and dots, the shape a
// beautified version is expected to start with.
var versionPrefixRx = regexp.MustCompile(`^[\d.]+`)

// Beautify reduces a raw upstream token to its bare version form:
// leading "v" characters are stripped, a "release-" prefix is dropped,
// and the string is truncated at the first "-" so build suffixes and
// prerelease qualifiers disappear.
//
//	Beautify("v1.2.3")       == "1.2.3"
//	Beautify("release-1.4")  == "1.4"
//	Beautify("1.2.3-alpha")  == "1.2.3"
//	Beautify("2.0")          == "2.0"
//
// Beautify is idempotent: applying it to already-clean input is a no-op.
func Beautify(version string) string {
	v := strings.TrimLeft(version, "v")
	v = strings.TrimPrefix(v, "release-")
	if i := strings.Index(v, "-"); i >= 0 {
		v = v[:i]
	}
	return v
}

// LooksLikeVersion reports whether a candidate token plausibly carries a
// version: after beautification it must start with a run of digits and
// dots. Tokens like "latest" or "stable" are rejected.
func LooksLikeVersion(candidate string) bool {
	return versionPrefixRx.MatchString(Beautify(candidate))
}
