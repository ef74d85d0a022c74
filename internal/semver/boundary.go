package semver

import "fmt"

// Operator is a relational operator constraining one side of a
// version interval. OpEqual only appears transiently while parsing;
// range expansion rewrites it into a lower/upper boundary pair.
type Operator string

const (
	OpLess      Operator = "<"
	OpLessEq    Operator = "<="
	OpEqual     Operator = "="
	OpGreaterEq Operator = ">="
	OpGreater   Operator = ">"
)

// strictness ranks break ties between boundaries at the same version:
// a more restrictive upper bound ranks higher, a more restrictive
// lower bound ranks lower.
var strictness = map[Operator]int{
	OpLess:      2,
	OpLessEq:    1,
	OpEqual:     0,
	OpGreaterEq: -1,
	OpGreater:   -2,
}

// Boundary is a single inequality on a version: operator plus the
// version it compares against.
type Boundary struct {
	Operator Operator
	Version  Version
}

// IsLower reports whether the boundary constrains the interval from below.
func (b Boundary) IsLower() bool {
	return b.Operator == OpGreater || b.Operator == OpGreaterEq
}

// IsUpper reports whether the boundary constrains the interval from above.
func (b Boundary) IsUpper() bool {
	return b.Operator == OpLess || b.Operator == OpLessEq
}

// Compare orders boundaries by (version, strictness). Under this
// ordering the tightest lower bound of a conjunction is the maximum of
// its lower boundaries and the tightest upper bound the minimum of its
// upper boundaries.
func (b Boundary) Compare(o Boundary) int {
	if c := b.Version.Compare(o.Version); c != 0 {
		return c
	}
	br, or := strictness[b.Operator], strictness[o.Operator]
	switch {
	case br < or:
		return -1
	case br > or:
		return 1
	}
	return 0
}

func (b Boundary) String() string {
	return string(b.Operator) + b.Version.String()
}

// Equal expands a plain or x-range version into its interval. A bare
// or partial version means "anything matching this prefix", so the
// result is the half-open interval [v, incremented(v)) at whatever
// precision v carries. The empty version matches everything and
// expands to no boundaries at all.
func Equal(v Version) []Boundary {
	if v.Empty() {
		return nil
	}
	return []Boundary{
		{Operator: OpGreaterEq, Version: v},
		{Operator: OpLess, Version: v.Incremented()},
	}
}

// Tilde expands a ~ range: patch-level freedom when a minor version is
// given, minor-level freedom when only a major is given. A version
// without a major component is a nonsense range and an error.
func Tilde(v Version) ([]Boundary, error) {
	major, ok := v.Major()
	if !ok {
		return nil, fmt.Errorf("tilde range needs at least a major version, got %q", v)
	}

	var upper Version
	if minor, ok := v.Minor(); ok {
		upper = NewVersion(major, minor+1)
	} else {
		upper = NewVersion(major + 1)
	}

	return []Boundary{
		{Operator: OpGreaterEq, Version: v},
		{Operator: OpLess, Version: upper},
	}, nil
}

// Caret expands a ^ range: anything that does not change the left-most
// non-zero component. When every present component is zero the upper
// bound falls back to incrementing at full precision, so ^0.0 still
// expands to [0.0, 0.1). An empty version is an error.
func Caret(v Version) ([]Boundary, error) {
	if v.Empty() {
		return nil, fmt.Errorf("caret range needs a version")
	}

	upper := v.Incremented()
	for i := 0; i < v.Len(); i++ {
		n, _ := v.component(i)
		if n != 0 {
			parts := make([]int, i+1)
			for j := 0; j < i; j++ {
				parts[j], _ = v.component(j)
			}
			parts[i] = n + 1
			upper = Version{parts: parts}
			break
		}
	}

	return []Boundary{
		{Operator: OpGreaterEq, Version: v},
		{Operator: OpLess, Version: upper},
	}, nil
}

// Hyphen expands an inclusive "lo - hi" range. A partial hi is an
// x-range ceiling and becomes an exclusive bound one step above it; a
// fully specified hi is an exact inclusive ceiling.
func Hyphen(lo, hi Version) []Boundary {
	upper := Boundary{Operator: OpLessEq, Version: hi}
	if hi.Len() < 3 {
		upper = Boundary{Operator: OpLess, Version: hi.Incremented()}
	}
	return []Boundary{
		{Operator: OpGreaterEq, Version: lo},
		upper,
	}
}
