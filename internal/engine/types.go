package engine

import (
	"time"

	"github.com/danieljhkim/pltsync/internal/config"
	"github.com/danieljhkim/pltsync/internal/manifest"
)

// AnalyzeRequest contains the inputs for one analysis run. The project
// application list and its dependency names are supplied by the caller; the
// engine never computes a dependency graph itself.
type AnalyzeRequest struct {
	// BaseDir is the project base directory. The project PLT (when local)
	// and the warning output file live here.
	BaseDir string

	// ProjectApps is the list of project applications with their compiled
	// files.
	ProjectApps []manifest.App

	// DepApps is the list of dependency application names the project PLT
	// must cover.
	DepApps []string

	// CodePath is the list of directories passed to the backend as its
	// code search path.
	CodePath []string

	// Opts is the run configuration. Nil means defaults.
	Opts *config.Options
}

// AnalyzeResult contains the outcome of one analysis run.
type AnalyzeResult struct {
	// OTPVersion is the runtime version the run was performed against.
	OTPVersion string `json:"otp_version"`

	// ProjectPLT is the path of the project PLT.
	ProjectPLT string `json:"project_plt"`

	// BasePLT is the path of the shared base PLT.
	BasePLT string `json:"base_plt"`

	// OutputPath is the path of the warning output file.
	OutputPath string `json:"output_path"`

	// SyncWarnings is the number of warnings produced by PLT maintenance
	// phases.
	SyncWarnings int `json:"sync_warnings"`

	// SuccWarnings is the number of warnings produced by the
	// success-typing pass.
	SuccWarnings int `json:"succ_warnings"`

	// TotalWarnings is the session total across all invoked phases.
	TotalWarnings int `json:"total_warnings"`

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration `json:"elapsed_ns"`
}
