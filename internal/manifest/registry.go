// Package manifest resolves logical OTP application names to the compiled
// BEAM files they provide.
//
// Installed applications live under one or more library directories as
// <name>-<version>/ebin (or <name>/ebin for unversioned checkouts). The
// registry locates an application's ebin directory; the resolver turns a list
// of application names into the flat file set a PLT is required to contain.
//
// Key components:
//   - Registry: typed lookup from application name to artifact directory
//   - Resolver: name list -> FileSet, skipping project-provided applications
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Registry provides an abstraction for locating installed applications.
type Registry interface {
	// LocateArtifacts returns the directory holding the application's
	// compiled modules. Returns UnknownApplicationError if the application
	// cannot be found.
	LocateArtifacts(name string) (string, error)
}

// UnknownApplicationError indicates an application name that could not be
// located in any library directory.
type UnknownApplicationError struct {
	Name string
}

// Error returns the error message.
func (e *UnknownApplicationError) Error() string {
	return fmt.Sprintf("unknown application: %s", e.Name)
}

// LibRegistry implements Registry by scanning library directories on disk.
type LibRegistry struct {
	libDirs []string
}

// NewLibRegistry creates a LibRegistry over the given library directories.
// Directories are searched in order; the first match wins.
func NewLibRegistry(libDirs []string) *LibRegistry {
	return &LibRegistry{libDirs: libDirs}
}

// LocateArtifacts returns the ebin directory for the named application.
// A versioned directory (name-<version>) is preferred over a bare one; when
// several versions are installed the highest version is used.
func (r *LibRegistry) LocateArtifacts(name string) (string, error) {
	for _, libDir := range r.libDirs {
		entries, err := os.ReadDir(libDir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", fmt.Errorf("failed to read library directory %s: %w", libDir, err)
		}

		best := ""
		bestVersion := ""
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			dirName := entry.Name()
			if dirName != name && !strings.HasPrefix(dirName, name+"-") {
				continue
			}
			// A bare directory carries the empty version, so any
			// versioned directory outranks it.
			version := ""
			if dirName != name {
				version = dirName[len(name)+1:]
			}
			if best == "" || versionLess(bestVersion, version) {
				best = dirName
				bestVersion = version
			}
		}

		if best == "" {
			continue
		}

		ebinDir := filepath.Join(libDir, best, "ebin")
		if info, err := os.Stat(ebinDir); err == nil && info.IsDir() {
			return ebinDir, nil
		}
	}

	return "", &UnknownApplicationError{Name: name}
}

// versionLess reports whether version a orders below version b. Versions are
// compared component-wise on "." boundaries; numeric components compare
// numerically, so "5.9" orders below "5.10". Non-numeric components fall back
// to string comparison. A version that is a proper prefix of another orders
// below it.
func versionLess(a, b string) bool {
	if a == b {
		return false
	}
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] == bs[i] {
			continue
		}
		an, aerr := strconv.Atoi(as[i])
		bn, berr := strconv.Atoi(bs[i])
		if aerr == nil && berr == nil {
			return an < bn
		}
		return as[i] < bs[i]
	}
	return len(as) < len(bs)
}
