package dep

import "fmt"

// Requirement represents a single dependency requirement: an RPM
// requirement name paired with the raw npm range specification.
type Requirement struct {
	Name string // e.g., "npm(express)" or "nodejs(engine)"
	Spec string // e.g., "^4.17.1" or ">= 1.0.0 < 2.0.0"
}

// Kind represents a dependency kind within a package manifest.
type Kind string

const (
	KindRuntime  Kind = "dependencies"
	KindDev      Kind = "devDependencies"
	KindOptional Kind = "optionalDependencies"
	KindEngine   Kind = "engines"
)

// EngineName is the RPM requirement name for the node engine constraint.
const EngineName = "nodejs(engine)"

// NPMName returns the RPM requirement name for an npm package.
func NPMName(pkg string) string {
	return fmt.Sprintf("npm(%s)", pkg)
}
