// Package rpm renders unified version intervals as RPM boolean
// dependency expressions.
package rpm

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/frederic-klein/npmreq/internal/semver"
)

// Formatter turns (requirement name, npm range spec) pairs into RPM
// dependency expressions. Warnings about ranges RPM cannot express are
// written to the diagnostic writer, normally stderr.
type Formatter struct {
	diag io.Writer
}

// NewFormatter creates a formatter writing diagnostics to diag.
func NewFormatter(diag io.Writer) *Formatter {
	return &Formatter{diag: diag}
}

// Format renders one dependency. An unconstrained range yields the
// bare name, a single surviving boundary a plain relational
// expression, and two boundaries a parenthesized "with" conjunction.
//
// A range using the unsupported "||" operator degrades to the bare,
// unversioned name plus a warning naming the requirement and the
// literal spec text; packagers grep for it, so the spec is reported
// un-normalized. Any other parse failure is an error in the input
// data and propagates.
func (f *Formatter) Format(name, spec string) (string, error) {
	bounds, err := semver.ParseRange(spec)
	if errors.Is(err, semver.ErrUnsupportedToken) {
		fmt.Fprintf(f.diag, "WARNING: the %s dependency uses an OR (||) range: %q\n", name, spec)
		fmt.Fprintf(f.diag, "WARNING: add a versioned %s dependency to the spec file manually if one is needed\n", name)
		return name, nil
	}
	if err != nil {
		return "", fmt.Errorf("parsing range for %s: %w", name, err)
	}

	unified, err := semver.Unify(bounds)
	if err != nil {
		return "", fmt.Errorf("unifying range for %s: %w", name, err)
	}

	exprs := make([]string, len(unified))
	for i, b := range unified {
		exprs[i] = fmt.Sprintf("%s %s %s", name, b.Operator, b.Version)
	}

	switch len(exprs) {
	case 0:
		return name, nil
	case 1:
		return exprs[0], nil
	default:
		return fmt.Sprintf("(%s)", strings.Join(exprs, " with ")), nil
	}
}
