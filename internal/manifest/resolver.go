package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/pltsync/internal/fileset"
)

// App describes one project application: its logical name and the compiled
// modules it provides. Project applications are supplied by the caller, never
// discovered by the resolver.
type App struct {
	// Name is the logical application name (e.g. "myapp").
	Name string

	// EbinDir is the directory containing the application's compiled modules.
	EbinDir string

	// Files is the list of compiled-object files the application provides.
	Files []string
}

// Resolver resolves application names to the file set their artifacts provide.
type Resolver struct {
	registry Registry
}

// NewResolver creates a Resolver backed by the given registry.
func NewResolver(registry Registry) *Resolver {
	return &Resolver{registry: registry}
}

// Resolve maps the given application names to the union of their compiled
// files. Names already provided by a project application are skipped, as are
// duplicates. Input order does not affect the result.
func (r *Resolver) Resolve(appNames []string, projectApps []App) (fileset.Set, error) {
	projectNames := make(map[string]struct{}, len(projectApps))
	for _, app := range projectApps {
		projectNames[app.Name] = struct{}{}
	}

	files := make(fileset.Set)
	seen := make(map[string]struct{}, len(appNames))
	for _, name := range appNames {
		if _, ok := projectNames[name]; ok {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		dir, err := r.registry.LocateArtifacts(name)
		if err != nil {
			return nil, err
		}

		appFiles, err := ListBeamFiles(dir)
		if err != nil {
			return nil, err
		}
		files.AddAll(appFiles)
	}

	return files, nil
}

// ProjectFiles returns the union of all compiled files the given project
// applications provide. This is the input set for the whole-project
// success-typing pass.
func ProjectFiles(apps []App) fileset.Set {
	files := make(fileset.Set)
	for _, app := range apps {
		for _, f := range app.Files {
			files.Add(f)
		}
	}
	return files
}

// ListBeamFiles returns the set of compiled-object files in dir.
func ListBeamFiles(dir string) (fileset.Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact directory %s: %w", dir, err)
	}

	files := make(fileset.Set)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".beam") {
			files.Add(filepath.Join(dir, entry.Name()))
		}
	}

	return files, nil
}
