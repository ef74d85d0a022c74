package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// vendoredModules inspects node_modules next to the manifest and
// reports which dependencies are vendored into the package itself. A
// real directory is vendored; a symlink points at a separately
// packaged module and is not. Scoped packages live one level down in
// their @scope directory.
func vendoredModules(dir string) (map[string]bool, error) {
	if dir == "" {
		return nil, nil
	}

	root := filepath.Join(dir, "node_modules")
	entries, err := os.ReadDir(root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("inspecting node_modules: %w", err)
	}

	vendored := make(map[string]bool)
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		if strings.HasPrefix(name, "@") {
			if !entry.IsDir() {
				continue
			}
			scoped, err := os.ReadDir(filepath.Join(root, name))
			if err != nil {
				return nil, fmt.Errorf("inspecting node_modules/%s: %w", name, err)
			}
			for _, sub := range scoped {
				// DirEntry types come from lstat: a symlinked module
				// reports ModeSymlink, not a directory.
				if sub.IsDir() {
					vendored[name+"/"+sub.Name()] = true
				}
			}
			continue
		}

		if entry.IsDir() {
			vendored[name] = true
		}
	}

	return vendored, nil
}
