package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/danieljhkim/pltsync/internal/analyzer"
	"github.com/danieljhkim/pltsync/internal/clock"
	"github.com/danieljhkim/pltsync/internal/engine"
	"github.com/danieljhkim/pltsync/internal/fsops"
	"github.com/danieljhkim/pltsync/internal/manifest"
)

// stubDialyzerScript emulates enough of the dialyzer command line for
// end-to-end runs. A stub PLT is a plain text file holding one .beam path per
// line, so --plt_info just prints the file back and the PLT maintenance
// phases become line-set edits.
const stubDialyzerScript = `#!/bin/sh
mode=analyze
plt=""
out=""
files=""
expect=""
for a in "$@"; do
  if [ "$expect" = "plt" ]; then plt="$a"; expect=""; continue; fi
  if [ "$expect" = "out" ]; then out="$a"; expect=""; continue; fi
  if [ "$expect" = "pa" ]; then expect=""; continue; fi
  case "$a" in
    --build_plt) mode=build ;;
    --add_to_plt) mode=add ;;
    --remove_from_plt) mode=remove ;;
    --check_plt) mode=check ;;
    --plt_info) mode=info ;;
    --plt) expect=plt ;;
    --output_plt) expect=out ;;
    -pa) expect=pa ;;
    -*) ;;
    *) files="$files $a" ;;
  esac
done
case "$mode" in
  build)
    : > "$out"
    for f in $files; do echo "$f" >> "$out"; done
    ;;
  add)
    cp "$plt" "$out.tmp"
    for f in $files; do echo "$f" >> "$out.tmp"; done
    sort -u "$out.tmp" > "$out"
    rm -f "$out.tmp"
    ;;
  remove)
    cp "$plt" "$out.tmp"
    for f in $files; do
      grep -v -x -F "$f" "$out.tmp" > "$out.tmp2" || :
      mv "$out.tmp2" "$out.tmp"
    done
    mv "$out.tmp" "$out"
    ;;
  check)
    if [ "$plt" != "$out" ] && [ -n "$out" ]; then cp "$plt" "$out"; fi
    ;;
  info)
    echo "Looking up modules in $plt..."
    cat "$plt"
    ;;
  analyze)
    if [ -n "$PLTSYNC_STUB_WARNINGS" ] && [ -s "$PLTSYNC_STUB_WARNINGS" ]; then
      cat "$PLTSYNC_STUB_WARNINGS"
      exit 2
    fi
    ;;
esac
exit 0
`

const stubErlScript = `#!/bin/sh
printf '26'
`

// installStubTools puts fake dialyzer and erl executables on PATH for the
// duration of the test.
func installStubTools(t *testing.T) {
	t.Helper()

	binDir := t.TempDir()
	scripts := map[string]string{
		"dialyzer": stubDialyzerScript,
		"erl":      stubErlScript,
	}
	for name, body := range scripts {
		path := filepath.Join(binDir, name)
		if err := os.WriteFile(path, []byte(body), 0755); err != nil {
			t.Fatalf("failed to write %s stub: %v", name, err)
		}
	}

	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	t.Setenv("PLTSYNC_STUB_WARNINGS", "")
}

// setStubWarnings makes the stub's success-typing pass emit the given raw
// diagnostic lines and exit with the warnings status code.
func setStubWarnings(t *testing.T, lines ...string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "warnings.txt")
	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line + "\n")
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write stub warnings: %v", err)
	}
	t.Setenv("PLTSYNC_STUB_WARNINGS", path)
}

// installApp creates <libDir>/<dirName>/ebin/<beam> for each beam name and
// returns the App describing it.
func installApp(t *testing.T, libDir, dirName, appName string, beams ...string) manifest.App {
	t.Helper()

	ebin := filepath.Join(libDir, dirName, "ebin")
	if err := os.MkdirAll(ebin, 0755); err != nil {
		t.Fatalf("failed to create ebin for %s: %v", dirName, err)
	}

	var files []string
	for _, beam := range beams {
		path := filepath.Join(ebin, beam)
		if err := os.WriteFile(path, []byte("beam"), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
		files = append(files, path)
	}

	return manifest.App{Name: appName, EbinDir: ebin, Files: files}
}

// installOTPApps populates otpLibDir with the applications every base PLT
// covers by default.
func installOTPApps(t *testing.T, otpLibDir string) []manifest.App {
	t.Helper()

	return []manifest.App{
		installApp(t, otpLibDir, "erts-14.2", "erts", "erlang.beam"),
		installApp(t, otpLibDir, "crypto-5.4", "crypto", "crypto.beam"),
		installApp(t, otpLibDir, "kernel-9.2", "kernel", "code.beam"),
		installApp(t, otpLibDir, "stdlib-5.2", "stdlib", "lists.beam"),
	}
}

// newTestEngine wires a real engine against the stub tools and the given
// library directories. Console output is captured in the returned buffer.
func newTestEngine(t *testing.T, libDirs []string) (*engine.Engine, *bytes.Buffer) {
	t.Helper()

	console := &bytes.Buffer{}
	eng := engine.New(
		analyzer.NewDialyzerBackend(nil),
		manifest.NewResolver(manifest.NewLibRegistry(libDirs)),
		fsops.NewRealFS(),
		&clock.RealClock{},
		console,
		nil,
	)
	return eng, console
}

// pltContents reads a stub PLT back as a sorted-insensitive set of lines.
func pltContents(t *testing.T, pltPath string) map[string]bool {
	t.Helper()

	data, err := os.ReadFile(pltPath)
	if err != nil {
		t.Fatalf("failed to read plt %s: %v", pltPath, err)
	}

	set := make(map[string]bool)
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(line) > 0 {
			set[string(line)] = true
		}
	}
	return set
}
