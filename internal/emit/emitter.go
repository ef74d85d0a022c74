// Package emit writes generated dependency expressions in the order
// RPM dependency generators are expected to produce: sorted and
// deduplicated, one per line.
package emit

import (
	"fmt"
	"io"
	"sort"
)

// Emitter writes dependency expressions to an output stream.
type Emitter struct {
	w io.Writer
}

// NewEmitter creates a new emitter.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

// Emit writes the given dependency expressions sorted alphabetically,
// one per line, dropping duplicates.
func (e *Emitter) Emit(deps []string) error {
	seen := make(map[string]bool, len(deps))
	unique := make([]string, 0, len(deps))
	for _, d := range deps {
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		unique = append(unique, d)
	}
	sort.Strings(unique)

	for _, d := range unique {
		if _, err := fmt.Fprintln(e.w, d); err != nil {
			return err
		}
	}
	return nil
}
