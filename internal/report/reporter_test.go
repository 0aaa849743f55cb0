package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormat_StripsDegeneratePrefix(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{":0: Unknown function lists:foo/1", "Unknown function lists:foo/1"},
		{":0:Unknown type foo:t/0", "Unknown type foo:t/0"},
		{"m.erl:12:3: Function f/0 has no local return", "m.erl:12:3: Function f/0 has no local return"},
		{"plain message\n", "plain message"},
	}

	for _, tc := range cases {
		if got := Format(tc.raw); got != tc.want {
			t.Fatalf("Format(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestReport_EchoesAndAppends(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "26.dialyzer_warnings")
	var console bytes.Buffer
	reporter := NewReporter(&console, outputPath)

	if err := reporter.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	n, err := reporter.Report([]string{"m.erl:1:1: first", ":0: second"})
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if n != 2 {
		t.Fatalf("Report() = %d, want 2", n)
	}

	n, err = reporter.Report([]string{"m.erl:9:9: third"})
	if err != nil {
		t.Fatalf("second Report() error = %v", err)
	}
	if n != 1 {
		t.Fatalf("second Report() = %d, want 1", n)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	want := []string{"m.erl:1:1: first", "second", "m.erl:9:9: third"}
	if len(lines) != len(want) {
		t.Fatalf("output has %d lines, want %d: %q", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("output line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	if !strings.Contains(console.String(), "first") || !strings.Contains(console.String(), "third") {
		t.Fatalf("console missing echoed warnings: %q", console.String())
	}
}

func TestReport_EmptyInputWritesNothing(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "26.dialyzer_warnings")
	var console bytes.Buffer
	reporter := NewReporter(&console, outputPath)

	if err := reporter.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	n, err := reporter.Report(nil)
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if n != 0 {
		t.Fatalf("Report() = %d, want 0", n)
	}
	if console.Len() != 0 {
		t.Fatalf("console output = %q, want empty", console.String())
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("output file has %d bytes, want 0", len(data))
	}
}

func TestInit_TruncatesPreviousRun(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "26.dialyzer_warnings")
	if err := os.WriteFile(outputPath, []byte("stale line\n"), 0644); err != nil {
		t.Fatalf("failed to seed output file: %v", err)
	}

	reporter := NewReporter(&bytes.Buffer{}, outputPath)
	if err := reporter.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("output file has %d bytes after Init, want 0", len(data))
	}
}

func TestInit_UnwritablePathFails(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "missing", "26.dialyzer_warnings")
	reporter := NewReporter(&bytes.Buffer{}, outputPath)

	err := reporter.Init()

	var outErr *OutputFileError
	if !errors.As(err, &outErr) {
		t.Fatalf("Init() error = %v, want OutputFileError", err)
	}
	if outErr.Path != outputPath {
		t.Fatalf("outErr.Path = %q, want %q", outErr.Path, outputPath)
	}
}
