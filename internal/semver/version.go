// Package semver implements the subset of the npm semantic-versioning
// range grammar that can be translated into RPM boolean dependencies:
// partial versions, x-ranges, tilde/caret/hyphen ranges, and the
// reduction of a conjunction of bounds to a single interval.
package semver

import (
	"strconv"
	"strings"
)

// Version is a partial version of up to three numeric components
// (major, minor, patch). A missing component is unspecified, not zero:
// "1.2" matches any patch level of 1.2, which is why comparisons only
// look at as many components as both sides carry.
type Version struct {
	parts []int
}

// NewVersion builds a Version from explicit components.
func NewVersion(parts ...int) Version {
	return Version{parts: parts}
}

// ParseVersion parses a dotted version string into a Version.
// A leading "v" is stripped, the component list is cut at the first
// wildcard token (x, X or *), and a trailing pre-release or build
// qualifier is discarded. The empty string yields the empty Version,
// which matches any version.
func ParseVersion(s string) Version {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	if s == "" {
		return Version{}
	}

	raw := strings.Split(s, ".")
	if len(raw) > 3 {
		raw = raw[:3]
	}

	var parts []int
	for _, p := range raw {
		if isWildcard(p) {
			break
		}
		n, rest := leadingNumber(p)
		if rest == len(p) && rest > 0 {
			parts = append(parts, n)
			continue
		}
		// A qualifier starts here ("3-beta.1"); keep the numeric run,
		// drop the part entirely when there is none, and stop either way.
		if rest > 0 {
			parts = append(parts, n)
		}
		break
	}

	return Version{parts: parts}
}

func isWildcard(s string) bool {
	return s == "x" || s == "X" || s == "*"
}

// leadingNumber parses the leading digit run of s, returning its value
// and how many bytes it spans.
func leadingNumber(s string) (int, int) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, 0
	}
	n, _ := strconv.Atoi(s[:i])
	return n, i
}

// Empty reports whether no components are present.
func (v Version) Empty() bool {
	return len(v.parts) == 0
}

// Len returns the number of specified components.
func (v Version) Len() int {
	return len(v.parts)
}

// Major returns the major component, or false if unspecified.
func (v Version) Major() (int, bool) { return v.component(0) }

// Minor returns the minor component, or false if unspecified.
func (v Version) Minor() (int, bool) { return v.component(1) }

// Patch returns the patch component, or false if unspecified.
func (v Version) Patch() (int, bool) { return v.component(2) }

func (v Version) component(i int) (int, bool) {
	if i >= len(v.parts) {
		return 0, false
	}
	return v.parts[i], true
}

// Incremented returns a new Version with the least-significant present
// component increased by one. The empty Version stays empty.
func (v Version) Incremented() Version {
	if v.Empty() {
		return Version{}
	}
	parts := make([]int, len(v.parts))
	copy(parts, v.parts)
	parts[len(parts)-1]++
	return Version{parts: parts}
}

// Compare orders two partial versions lexicographically over the
// components both of them specify. A shorter version is a wildcard
// prefix: Compare(1.2, 1.2.3) is 0.
func (v Version) Compare(o Version) int {
	n := len(v.parts)
	if len(o.parts) < n {
		n = len(o.parts)
	}
	for i := 0; i < n; i++ {
		if v.parts[i] < o.parts[i] {
			return -1
		}
		if v.parts[i] > o.parts[i] {
			return 1
		}
	}
	return 0
}

// Equal reports whether the versions compare equal; like Compare it
// only considers components present on both sides.
func (v Version) Equal(o Version) bool {
	return v.Compare(o) == 0
}

func (v Version) String() string {
	strs := make([]string, len(v.parts))
	for i, p := range v.parts {
		strs[i] = strconv.Itoa(p)
	}
	return strings.Join(strs, ".")
}
