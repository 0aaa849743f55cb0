package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if !opts.UpdatePLT {
		t.Fatal("UpdatePLT = false, want true")
	}
	if !opts.SuccTypings {
		t.Fatal("SuccTypings = false, want true")
	}
	if opts.GetWarnings {
		t.Fatal("GetWarnings = true, want false")
	}
	if opts.PLTPrefix != "pltsync" {
		t.Fatalf("PLTPrefix = %q, want %q", opts.PLTPrefix, "pltsync")
	}
	if opts.PLTLocation != LocationLocal {
		t.Fatalf("PLTLocation = %q, want %q", opts.PLTLocation, LocationLocal)
	}
	if opts.BasePLTLocation != LocationGlobal {
		t.Fatalf("BasePLTLocation = %q, want %q", opts.BasePLTLocation, LocationGlobal)
	}

	wantApps := []string{"erts", "crypto", "kernel", "stdlib"}
	if len(opts.BasePLTApps) != len(wantApps) {
		t.Fatalf("BasePLTApps = %v, want %v", opts.BasePLTApps, wantApps)
	}
	for i := range wantApps {
		if opts.BasePLTApps[i] != wantApps[i] {
			t.Fatalf("BasePLTApps[%d] = %q, want %q", i, opts.BasePLTApps[i], wantApps[i])
		}
	}
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	opts, err := Load(filepath.Join(t.TempDir(), "pltsync.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !opts.UpdatePLT || opts.PLTPrefix != "pltsync" {
		t.Fatalf("Load() of missing file did not return defaults: %+v", opts)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pltsync.yaml")
	content := `succ_typings: false
get_warnings: true
plt_prefix: myproj
warnings:
  - unmatched_returns
plt_extra_apps:
  - mnesia
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	opts, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if opts.SuccTypings {
		t.Fatal("SuccTypings = true, want false")
	}
	if !opts.GetWarnings {
		t.Fatal("GetWarnings = false, want true")
	}
	if opts.PLTPrefix != "myproj" {
		t.Fatalf("PLTPrefix = %q, want %q", opts.PLTPrefix, "myproj")
	}
	if len(opts.Warnings) != 1 || opts.Warnings[0] != "unmatched_returns" {
		t.Fatalf("Warnings = %v, want [unmatched_returns]", opts.Warnings)
	}
	if len(opts.PLTExtraApps) != 1 || opts.PLTExtraApps[0] != "mnesia" {
		t.Fatalf("PLTExtraApps = %v, want [mnesia]", opts.PLTExtraApps)
	}
	// Untouched keys keep their defaults.
	if !opts.UpdatePLT {
		t.Fatal("UpdatePLT = false, want default true")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pltsync.yaml")
	if err := os.WriteFile(path, []byte("update_plt: [not a bool"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load() error = nil, want parse failure")
	}
}

func TestProjectPLTPath(t *testing.T) {
	opts := DefaultOptions()

	got := opts.ProjectPLTPath("/proj/_build", "26")
	want := filepath.Join("/proj/_build", "pltsync_26_plt")
	if got != want {
		t.Fatalf("ProjectPLTPath() = %q, want %q", got, want)
	}

	opts.PLTLocation = "/custom/plts"
	opts.PLTPrefix = "myproj"
	got = opts.ProjectPLTPath("/proj/_build", "26")
	want = filepath.Join("/custom/plts", "myproj_26_plt")
	if got != want {
		t.Fatalf("ProjectPLTPath() = %q, want %q", got, want)
	}
}

func TestBasePLTPath_GlobalCache(t *testing.T) {
	cacheDir := t.TempDir()
	t.Setenv("PLTSYNC_CACHE_DIR", cacheDir)

	opts := DefaultOptions()
	got, err := opts.BasePLTPath("26")
	if err != nil {
		t.Fatalf("BasePLTPath() error = %v", err)
	}
	want := filepath.Join(cacheDir, "pltsync_26_plt")
	if got != want {
		t.Fatalf("BasePLTPath() = %q, want %q", got, want)
	}
}

func TestBasePLTPath_ExplicitDirAndPrefix(t *testing.T) {
	opts := DefaultOptions()
	opts.BasePLTLocation = "/shared/plts"
	opts.BasePLTPrefix = "team"

	got, err := opts.BasePLTPath("26")
	if err != nil {
		t.Fatalf("BasePLTPath() error = %v", err)
	}
	want := filepath.Join("/shared/plts", "team_26_plt")
	if got != want {
		t.Fatalf("BasePLTPath() = %q, want %q", got, want)
	}
}

func TestEffectiveBasePrefix_FallsBackToPLTPrefix(t *testing.T) {
	opts := DefaultOptions()
	opts.PLTPrefix = "myproj"

	if got := opts.EffectiveBasePrefix(); got != "myproj" {
		t.Fatalf("EffectiveBasePrefix() = %q, want %q", got, "myproj")
	}
}

func TestOutputPath(t *testing.T) {
	got := OutputPath("/proj/_build", "26")
	want := filepath.Join("/proj/_build", "26.dialyzer_warnings")
	if got != want {
		t.Fatalf("OutputPath() = %q, want %q", got, want)
	}
}
