package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/pltsync/internal/analyzer"
	"github.com/danieljhkim/pltsync/internal/clock"
	"github.com/danieljhkim/pltsync/internal/engine"
	"github.com/danieljhkim/pltsync/internal/fsops"
	"github.com/danieljhkim/pltsync/internal/manifest"
)

// newEngine creates an engine with real implementations of all dependencies.
// libDirs are the library directories the application registry searches.
func newEngine(backend *analyzer.DialyzerBackend, libDirs []string) *engine.Engine {
	resolver := manifest.NewResolver(manifest.NewLibRegistry(libDirs))
	return engine.New(backend, resolver, fsops.NewRealFS(), &clock.RealClock{}, os.Stdout, logger)
}

// searchDirs assembles the application registry's search path: build deps
// first, then explicit extra directories, ERL_LIBS, and finally the runtime's
// own lib directory so the core applications always resolve.
func searchDirs(depsLibDir string, extra []string, runtimeLibDir string) []string {
	dirs := append([]string{depsLibDir}, extra...)
	dirs = append(dirs, erlLibDirs()...)
	if runtimeLibDir != "" {
		dirs = append(dirs, runtimeLibDir)
	}
	return dirs
}

// discoverApps scans a library directory (one application per subdirectory,
// each with an ebin of compiled modules) and returns the applications found.
// A missing directory yields no applications.
func discoverApps(libDir string) ([]manifest.App, error) {
	entries, err := os.ReadDir(libDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read library directory %s: %w", libDir, err)
	}

	var apps []manifest.App
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		ebin := filepath.Join(libDir, entry.Name(), "ebin")
		if info, err := os.Stat(ebin); err != nil || !info.IsDir() {
			continue
		}

		files, err := manifest.ListBeamFiles(ebin)
		if err != nil {
			return nil, err
		}

		apps = append(apps, manifest.App{
			Name:    appName(entry.Name()),
			EbinDir: ebin,
			Files:   files.Sorted(),
		})
	}

	return apps, nil
}

// appName strips a trailing -<version> from an application directory name.
// A suffix is only treated as a version when it starts with a digit, so a
// hyphenated unversioned checkout like "my-app" keeps its full name.
func appName(dirName string) string {
	if i := strings.LastIndex(dirName, "-"); i > 0 {
		suffix := dirName[i+1:]
		if suffix != "" && suffix[0] >= '0' && suffix[0] <= '9' {
			return dirName[:i]
		}
	}
	return dirName
}

// appNames returns the logical names of the given applications.
func appNames(apps []manifest.App) []string {
	names := make([]string, 0, len(apps))
	for _, app := range apps {
		names = append(names, app.Name)
	}
	return names
}

// codePath returns the ebin directories of the given applications.
func codePath(apps ...[]manifest.App) []string {
	var dirs []string
	for _, group := range apps {
		for _, app := range group {
			dirs = append(dirs, app.EbinDir)
		}
	}
	return dirs
}

// erlLibDirs returns the library directories named in ERL_LIBS.
func erlLibDirs() []string {
	env := os.Getenv("ERL_LIBS")
	if env == "" {
		return nil
	}
	var dirs []string
	for _, dir := range strings.Split(env, string(os.PathListSeparator)) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
