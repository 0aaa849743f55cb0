package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// PLT files are named <prefix>_<otpVersion>_plt so PLTs built against
// different runtimes never collide.
func pltFileName(prefix, otpVersion string) string {
	return fmt.Sprintf("%s_%s_plt", prefix, otpVersion)
}

// ProjectPLTPath returns the path of the project PLT for the given project
// base directory and runtime version.
func (o *Options) ProjectPLTPath(baseDir, otpVersion string) string {
	dir := o.PLTLocation
	if dir == LocationLocal || dir == "" {
		dir = baseDir
	}
	return filepath.Join(dir, pltFileName(o.PLTPrefix, otpVersion))
}

// BasePLTPath returns the path of the shared base PLT for the given runtime
// version. The global location is the user cache directory, overridable with
// PLTSYNC_CACHE_DIR.
func (o *Options) BasePLTPath(otpVersion string) (string, error) {
	dir := o.BasePLTLocation
	if dir == LocationGlobal || dir == "" {
		cacheDir, err := GlobalCacheDir()
		if err != nil {
			return "", err
		}
		dir = cacheDir
	}
	return filepath.Join(dir, pltFileName(o.EffectiveBasePrefix(), otpVersion)), nil
}

// GlobalCacheDir returns the directory holding shared base PLTs.
// The PLTSYNC_CACHE_DIR environment variable overrides the default.
func GlobalCacheDir() (string, error) {
	if dir := os.Getenv("PLTSYNC_CACHE_DIR"); dir != "" {
		return dir, nil
	}

	cache, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user cache directory: %w", err)
	}
	return filepath.Join(cache, "pltsync"), nil
}

// OutputPath returns the path of the warning output file for one run.
func OutputPath(baseDir, otpVersion string) string {
	return filepath.Join(baseDir, otpVersion+".dialyzer_warnings")
}
