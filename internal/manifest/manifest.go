// Package manifest reads npm package manifests and turns their
// dependency fields into requirement name / range spec pairs.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/frederic-klein/npmreq/internal/dep"
)

// DepSet holds one dependency field of a manifest. In the wild the
// field is usually a mapping of package name to range spec, but it can
// also be a single package name or a list of package names, both
// meaning "any version".
type DepSet map[string]string

func (d *DepSet) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err == nil {
		*d = coerceDepMap(m)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*d = DepSet{s: ""}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*d = depSetFromList(list)
		return nil
	}
	return fmt.Errorf("dependency field is neither a mapping, a string nor a list")
}

func (d *DepSet) UnmarshalYAML(node *yaml.Node) error {
	var m map[string]interface{}
	if err := node.Decode(&m); err == nil {
		*d = coerceDepMap(m)
		return nil
	}
	var s string
	if err := node.Decode(&s); err == nil {
		*d = DepSet{s: ""}
		return nil
	}
	var list []string
	if err := node.Decode(&list); err == nil {
		*d = depSetFromList(list)
		return nil
	}
	return fmt.Errorf("dependency field is neither a mapping, a string nor a list")
}

// coerceDepMap normalizes mapping values to strings; some manifests
// carry bare numbers where a range spec belongs.
func coerceDepMap(m map[string]interface{}) DepSet {
	out := make(DepSet, len(m))
	for name, v := range m {
		switch spec := v.(type) {
		case string:
			out[name] = spec
		case float64:
			out[name] = fmt.Sprintf("%g", spec)
		case int:
			out[name] = fmt.Sprintf("%d", spec)
		default:
			out[name] = ""
		}
	}
	return out
}

func depSetFromList(names []string) DepSet {
	out := make(DepSet, len(names))
	for _, name := range names {
		out[name] = ""
	}
	return out
}

// BundleList holds a bundleDependencies field, which is either a list
// of package names or the boolean true meaning every dependency is
// bundled.
type BundleList struct {
	All   bool
	Names []string
}

func (b *BundleList) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err == nil {
		b.Names = names
		return nil
	}
	var all bool
	if err := json.Unmarshal(data, &all); err == nil {
		b.All = all
		return nil
	}
	return fmt.Errorf("bundle dependency field is neither a list nor a boolean")
}

func (b *BundleList) UnmarshalYAML(node *yaml.Node) error {
	var names []string
	if err := node.Decode(&names); err == nil {
		b.Names = names
		return nil
	}
	var all bool
	if err := node.Decode(&all); err == nil {
		b.All = all
		return nil
	}
	return fmt.Errorf("bundle dependency field is neither a list nor a boolean")
}

// Manifest represents the dependency-relevant subset of a package
// manifest.
type Manifest struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`

	Dependencies         DepSet `json:"dependencies" yaml:"dependencies"`
	DevDependencies      DepSet `json:"devDependencies" yaml:"devDependencies"`
	OptionalDependencies DepSet `json:"optionalDependencies" yaml:"optionalDependencies"`
	Engines              DepSet `json:"engines" yaml:"engines"`

	// npm accepts both spellings.
	BundleDependencies  BundleList `json:"bundleDependencies" yaml:"bundleDependencies"`
	BundledDependencies BundleList `json:"bundledDependencies" yaml:"bundledDependencies"`

	// Directory the manifest was read from; used for node_modules
	// inspection.
	dir string
}

// Parser parses package.json and package.yaml manifests.
type Parser struct{}

// NewParser creates a new manifest parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads and decodes the manifest at path. YAML manifests are
// recognized by extension; everything else is decoded as JSON.
func (p *Parser) Parse(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decoding manifest %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decoding manifest %s: %w", path, err)
		}
	}

	m.dir = filepath.Dir(path)
	return &m, nil
}

// Requirements returns the requirement pairs for the given dependency
// kinds, with bundled dependencies already excluded. KindEngine yields
// at most one requirement, for the node engine; other engines have no
// installable RPM counterpart.
func (m *Manifest) Requirements(kinds ...dep.Kind) ([]dep.Requirement, error) {
	bundled, err := m.bundled()
	if err != nil {
		return nil, err
	}

	var reqs []dep.Requirement
	for _, kind := range kinds {
		if kind == dep.KindEngine {
			if spec, ok := m.Engines["node"]; ok {
				reqs = append(reqs, dep.Requirement{Name: dep.EngineName, Spec: spec})
			}
			continue
		}
		for name, spec := range m.depSet(kind) {
			if bundled[name] {
				continue
			}
			reqs = append(reqs, dep.Requirement{Name: dep.NPMName(name), Spec: spec})
		}
	}
	return reqs, nil
}

func (m *Manifest) depSet(kind dep.Kind) DepSet {
	switch kind {
	case dep.KindRuntime:
		return m.Dependencies
	case dep.KindDev:
		return m.DevDependencies
	case dep.KindOptional:
		return m.OptionalDependencies
	}
	return nil
}

// bundled merges the manifest's bundle declarations with what is
// actually vendored under node_modules.
func (m *Manifest) bundled() (map[string]bool, error) {
	names := make(map[string]bool)

	if m.BundleDependencies.All || m.BundledDependencies.All {
		for name := range m.Dependencies {
			names[name] = true
		}
	}
	for _, name := range m.BundleDependencies.Names {
		names[name] = true
	}
	for _, name := range m.BundledDependencies.Names {
		names[name] = true
	}

	vendored, err := vendoredModules(m.dir)
	if err != nil {
		return nil, err
	}
	for name := range vendored {
		names[name] = true
	}

	return names, nil
}
