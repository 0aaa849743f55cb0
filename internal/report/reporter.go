// Package report formats analysis warnings and records them durably.
//
// Every raw diagnostic becomes one line: echoed to the console sink as it is
// produced (so progress is visible even if a later phase fails) and appended
// to the run's output file. The output file is truncate-created once at run
// start and only ever appended to afterwards, so all phases of one run
// accumulate into a single readable report.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// OutputFileError indicates the output file could not be created or appended.
type OutputFileError struct {
	Path string
	Err  error
}

// Error returns the error message.
func (e *OutputFileError) Error() string {
	return fmt.Sprintf("failed to write output file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *OutputFileError) Unwrap() error {
	return e.Err
}

// Reporter writes formatted warnings to a console sink and an output file.
type Reporter struct {
	console    io.Writer
	outputPath string
}

// NewReporter creates a Reporter. Nothing is written until Init is called.
func NewReporter(console io.Writer, outputPath string) *Reporter {
	return &Reporter{
		console:    console,
		outputPath: outputPath,
	}
}

// OutputPath returns the path of the output file.
func (r *Reporter) OutputPath() string {
	return r.outputPath
}

// Init truncate-creates the output file. Called exactly once at run start;
// every later write appends.
func (r *Reporter) Init() error {
	f, err := os.OpenFile(r.outputPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return &OutputFileError{Path: r.outputPath, Err: err}
	}
	if err := f.Close(); err != nil {
		return &OutputFileError{Path: r.outputPath, Err: err}
	}
	return nil
}

// Report formats the raw diagnostics, echoes each line to the console, and
// appends them to the output file. It returns the number of warnings
// reported. An empty input performs no file write.
func (r *Reporter) Report(raw []string) (int, error) {
	if len(raw) == 0 {
		return 0, nil
	}

	formatted := make([]string, len(raw))
	for i, diag := range raw {
		formatted[i] = Format(diag)
		fmt.Fprintln(r.console, formatted[i])
	}

	// Open for append per phase; no handle is held across phases.
	f, err := os.OpenFile(r.outputPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return 0, &OutputFileError{Path: r.outputPath, Err: err}
	}
	defer func() {
		_ = f.Close()
	}()

	for _, line := range formatted {
		if _, err := fmt.Fprintln(f, line); err != nil {
			return 0, &OutputFileError{Path: r.outputPath, Err: err}
		}
	}

	return len(formatted), nil
}

// Format renders one raw diagnostic as a single line. A degenerate ":0: "
// position prefix means "no specific source line" and is stripped down to the
// bare message.
func Format(raw string) string {
	line := strings.TrimRight(raw, "\n")
	if rest, ok := strings.CutPrefix(line, ":0: "); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(line, ":0:"); ok {
		return strings.TrimLeft(rest, " ")
	}
	return line
}
