package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/frederic-klein/npmreq/internal/dep"
)

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func reqSet(reqs []dep.Requirement) map[dep.Requirement]bool {
	set := make(map[dep.Requirement]bool, len(reqs))
	for _, r := range reqs {
		set[r] = true
	}
	return set
}

func checkReqs(t *testing.T, got []dep.Requirement, want []dep.Requirement) {
	t.Helper()
	gotSet := reqSet(got)
	if len(got) != len(want) {
		t.Fatalf("got %d requirements %v, want %d %v", len(got), got, len(want), want)
	}
	for _, w := range want {
		if !gotSet[w] {
			t.Errorf("missing requirement %+v in %v", w, got)
		}
	}
}

func TestParserParse(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		kinds    []dep.Kind
		wantReqs []dep.Requirement
	}{
		{
			name: "dependencies mapping",
			file: "package.json",
			content: `{
  "name": "winston",
  "version": "0.6.2",
  "dependencies": {
    "async": "0.1.x",
    "pkginfo": "0.2.x"
  }
}`,
			kinds: []dep.Kind{dep.KindRuntime},
			wantReqs: []dep.Requirement{
				{Name: "npm(async)", Spec: "0.1.x"},
				{Name: "npm(pkginfo)", Spec: "0.2.x"},
			},
		},
		{
			name: "engines node",
			file: "package.json",
			content: `{
  "name": "express",
  "engines": {"node": ">= 0.8.0", "npm": "1.x"}
}`,
			kinds: []dep.Kind{dep.KindRuntime, dep.KindEngine},
			wantReqs: []dep.Requirement{
				{Name: "nodejs(engine)", Spec: ">= 0.8.0"},
			},
		},
		{
			name: "string-valued dependencies",
			file: "package.json",
			content: `{
  "name": "odd",
  "dependencies": "lodash"
}`,
			kinds: []dep.Kind{dep.KindRuntime},
			wantReqs: []dep.Requirement{
				{Name: "npm(lodash)", Spec: ""},
			},
		},
		{
			name: "list-valued dependencies",
			file: "package.json",
			content: `{
  "name": "odd",
  "dependencies": ["a", "b"]
}`,
			kinds: []dep.Kind{dep.KindRuntime},
			wantReqs: []dep.Requirement{
				{Name: "npm(a)", Spec: ""},
				{Name: "npm(b)", Spec: ""},
			},
		},
		{
			name: "numeric spec coerced",
			file: "package.json",
			content: `{
  "name": "odd",
  "dependencies": {"semver": 2}
}`,
			kinds: []dep.Kind{dep.KindRuntime},
			wantReqs: []dep.Requirement{
				{Name: "npm(semver)", Spec: "2"},
			},
		},
		{
			name: "bundled list excluded",
			file: "package.json",
			content: `{
  "name": "tar",
  "dependencies": {"inherits": "2", "minipass": "^3.0.0"},
  "bundledDependencies": ["minipass"]
}`,
			kinds: []dep.Kind{dep.KindRuntime},
			wantReqs: []dep.Requirement{
				{Name: "npm(inherits)", Spec: "2"},
			},
		},
		{
			name: "bundle all excluded",
			file: "package.json",
			content: `{
  "name": "vendored",
  "dependencies": {"a": "1.0", "b": "2.0"},
  "bundleDependencies": true
}`,
			kinds:    []dep.Kind{dep.KindRuntime},
			wantReqs: nil,
		},
		{
			name: "dev and optional kinds",
			file: "package.json",
			content: `{
  "name": "mix",
  "dependencies": {"a": "1"},
  "devDependencies": {"tap": "~0.4"},
  "optionalDependencies": {"fsevents": "^1.0"}
}`,
			kinds: []dep.Kind{dep.KindDev, dep.KindOptional},
			wantReqs: []dep.Requirement{
				{Name: "npm(tap)", Spec: "~0.4"},
				{Name: "npm(fsevents)", Spec: "^1.0"},
			},
		},
		{
			name: "yaml manifest",
			file: "package.yaml",
			content: `name: yamlpkg
dependencies:
  express: "^4.17.1"
engines:
  node: ">=10"
`,
			kinds: []dep.Kind{dep.KindRuntime, dep.KindEngine},
			wantReqs: []dep.Requirement{
				{Name: "npm(express)", Spec: "^4.17.1"},
				{Name: "nodejs(engine)", Spec: ">=10"},
			},
		},
	}

	parser := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, tt.file, tt.content)

			m, err := parser.Parse(path)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			reqs, err := m.Requirements(tt.kinds...)
			if err != nil {
				t.Fatalf("Requirements() error = %v", err)
			}
			checkReqs(t, reqs, tt.wantReqs)
		})
	}
}

func TestParserParseInvalid(t *testing.T) {
	parser := NewParser()

	if _, err := parser.Parse(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Parse of a missing file should fail")
	}

	path := writeManifest(t, "package.json", "{not json")
	if _, err := parser.Parse(path); err == nil {
		t.Error("Parse of malformed JSON should fail")
	}
}
