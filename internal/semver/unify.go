package semver

import "fmt"

// Unify reduces a conjunction of boundaries to the tightest enclosing
// interval: the maximum of the lower bounds and the minimum of the
// upper bounds, each side omitted when no boundary constrains it.
// Boundaries with an empty version match anything and are dropped. The
// result has 0, 1 or 2 boundaries, lower bound first.
//
// A boundary that is neither lower nor upper should not survive range
// expansion; one reaching this point is a defect in the expansion
// stage and fails the computation.
func Unify(bounds []Boundary) ([]Boundary, error) {
	var lowers, uppers []Boundary
	for _, b := range bounds {
		switch {
		case b.Version.Empty():
			// contributes nothing to the interval
		case b.IsLower():
			lowers = append(lowers, b)
		case b.IsUpper():
			uppers = append(uppers, b)
		default:
			return nil, fmt.Errorf("boundary %q is neither a lower nor an upper bound", b)
		}
	}

	var unified []Boundary
	if len(lowers) > 0 {
		unified = append(unified, maxBoundary(lowers))
	}
	if len(uppers) > 0 {
		unified = append(unified, minBoundary(uppers))
	}
	return unified, nil
}

func maxBoundary(bounds []Boundary) Boundary {
	best := bounds[0]
	for _, b := range bounds[1:] {
		if b.Compare(best) > 0 {
			best = b
		}
	}
	return best
}

func minBoundary(bounds []Boundary) Boundary {
	best := bounds[0]
	for _, b := range bounds[1:] {
		if b.Compare(best) < 0 {
			best = b
		}
	}
	return best
}
