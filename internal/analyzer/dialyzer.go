package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/danieljhkim/pltsync/internal/fileset"
)

// DialyzerBackend implements Backend by shelling out to the dialyzer and erl
// executables.
type DialyzerBackend struct {
	dialyzerBin string
	erlBin      string
	logger      *zap.Logger
}

// NewDialyzerBackend creates a DialyzerBackend using the dialyzer and erl
// binaries found on PATH.
func NewDialyzerBackend(logger *zap.Logger) *DialyzerBackend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DialyzerBackend{
		dialyzerBin: "dialyzer",
		erlBin:      "erl",
		logger:      logger,
	}
}

// OTPVersion returns the OTP release of the runtime on PATH.
func (b *DialyzerBackend) OTPVersion(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, b.erlBin,
		"-noshell",
		"-eval", `io:format("~s", [erlang:system_info(otp_release)]), halt().`,
	)
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to determine OTP version: %w", err)
	}

	version := strings.TrimSpace(string(output))
	if version == "" {
		return "", fmt.Errorf("failed to determine OTP version: empty output")
	}
	return version, nil
}

// LibDir returns the runtime's own library directory, where the core
// applications (erts, kernel, stdlib, crypto) are installed.
func (b *DialyzerBackend) LibDir(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, b.erlBin,
		"-noshell",
		"-eval", `io:format("~s", [code:lib_dir()]), halt().`,
	)
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to determine runtime lib directory: %w", err)
	}

	dir := strings.TrimSpace(string(output))
	if dir == "" {
		return "", fmt.Errorf("failed to determine runtime lib directory: empty output")
	}
	return dir, nil
}

// PLTFiles returns the file set the PLT at pltPath currently contains, by
// parsing the output of dialyzer --plt_info.
func (b *DialyzerBackend) PLTFiles(ctx context.Context, pltPath string) (fileset.Set, error) {
	if _, err := os.Stat(pltPath); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoPLT
		}
		return nil, &PLTReadError{Path: pltPath, Err: err}
	}

	cmd := exec.CommandContext(ctx, b.dialyzerBin, "--plt_info", "--plt", pltPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return nil, &PLTReadError{Path: pltPath, Err: commandError(err, stderr.String())}
	}

	return parsePLTInfo(string(output)), nil
}

// parsePLTInfo extracts the contained file paths from plt_info output.
// The listing is one path per line after a header; anything that is not a
// compiled-object path is ignored.
func parsePLTInfo(output string) fileset.Set {
	files := make(fileset.Set)
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSuffix(line, ",")
		if strings.HasSuffix(line, ".beam") {
			files.Add(line)
		}
	}
	return files
}

// Run performs one dialyzer invocation. Dialyzer exits 0 for a clean pass and
// 2 when the analysis succeeded but produced warnings; both are successful
// runs from the backend's perspective.
func (b *DialyzerBackend) Run(ctx context.Context, req RunRequest) ([]string, error) {
	args := buildArgs(req)
	b.logger.Debug("running dialyzer", zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, b.dialyzerBin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok || exitErr.ExitCode() != 2 {
			return nil, fmt.Errorf("dialyzer %s phase failed: %w", req.Phase, commandError(err, stderr.String()))
		}
		// Exit code 2: analysis completed with warnings.
	}

	return parseWarnings(stdout.String()), nil
}

// parseWarnings splits quiet-mode dialyzer output into raw diagnostic lines.
func parseWarnings(output string) []string {
	var warnings []string
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, "done ") || line == "done" {
			continue
		}
		warnings = append(warnings, line)
	}
	return warnings
}

// commandError attaches captured stderr to an exec error.
func commandError(err error, stderr string) error {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return err
	}
	return fmt.Errorf("%w: %s", err, stderr)
}
