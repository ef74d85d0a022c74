package semver

import (
	"errors"
	"regexp"
	"strings"
)

// ErrUnsupportedToken signals a range using the alternation operator
// "||", which has no RPM boolean-dependency equivalent. Callers are
// expected to degrade to an unversioned dependency instead of failing
// the whole run.
var ErrUnsupportedToken = errors.New("unsupported version range token")

// specifierRe matches one "<operator><version>" specifier. Anything in
// the range string that does not match is extraneous and skipped; the
// grammar is tolerant by design.
var specifierRe = regexp.MustCompile(`([<>]=?|[=~^])?\s*(v?[0-9xX*][0-9A-Za-z.+-]*)`)

// ParseRange parses an npm range expression into the boundary sequence
// it denotes. The sequence is an implicit conjunction in encounter
// order; Unify reduces it to the tightest interval. An empty range
// yields no boundaries (an unconstrained dependency). Ranges containing
// "||" fail with ErrUnsupportedToken.
func ParseRange(spec string) ([]Boundary, error) {
	if strings.Contains(spec, "||") {
		return nil, ErrUnsupportedToken
	}

	if lo, hi, ok := strings.Cut(spec, " - "); ok {
		return Hyphen(ParseVersion(lo), ParseVersion(hi)), nil
	}

	if strings.TrimSpace(spec) == "" {
		return nil, nil
	}

	var bounds []Boundary
	for _, m := range specifierRe.FindAllStringSubmatch(spec, -1) {
		op, ver := Operator(m[1]), ParseVersion(m[2])

		switch op {
		case OpLess, OpLessEq, OpGreaterEq, OpGreater:
			bounds = append(bounds, Boundary{Operator: op, Version: ver})
		case OpEqual, "":
			bounds = append(bounds, Equal(ver)...)
		case "~":
			expanded, err := Tilde(ver)
			if err != nil {
				return nil, err
			}
			bounds = append(bounds, expanded...)
		case "^":
			expanded, err := Caret(ver)
			if err != nil {
				return nil, err
			}
			bounds = append(bounds, expanded...)
		}
	}

	return bounds, nil
}
