package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/pltsync/internal/analyzer"
	"github.com/danieljhkim/pltsync/internal/config"
	"github.com/danieljhkim/pltsync/internal/engine"
	"github.com/danieljhkim/pltsync/internal/fsops"
)

var (
	runBaseDir       string
	runProjectLibDir string
	runDepsLibDir    string
	runLibDirs       []string
	runConfigPath    string

	runUpdatePLT    bool
	runSuccTypings  bool
	runGetWarnings  bool
	runWarnings     []string
	runExtraApps    []string
	runPLTLocation  string
	runPLTPrefix    string
	runBaseApps     []string
	runBaseLocation string
	runBasePrefix   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Synchronize PLTs and run the success-typing analysis",
	Long: `Run the full pipeline against the project in the base directory:

  1. Bring the project PLT in line with the project's dependencies,
     building the shared base PLT first if the project PLT is missing.
  2. Run the whole-project success-typing analysis over the project
     applications, using the project PLT as background knowledge.

The run fails if any phase produces warnings; all warnings accumulate in
<base-dir>/<otp-version>.dialyzer_warnings.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadRunOptions(cmd)
		if err != nil {
			return err
		}

		baseDir, err := filepath.Abs(runBaseDir)
		if err != nil {
			return fmt.Errorf("failed to resolve base directory: %w", err)
		}
		fs := fsops.NewRealFS()
		exists, err := fs.Exists(baseDir)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("base directory does not exist: %s", baseDir)
		}

		projectLibDir := runProjectLibDir
		if projectLibDir == "" {
			projectLibDir = filepath.Join(baseDir, "lib")
		}
		depsLibDir := runDepsLibDir
		if depsLibDir == "" {
			depsLibDir = filepath.Join(baseDir, "deps")
		}

		projectApps, err := discoverApps(projectLibDir)
		if err != nil {
			return err
		}
		depApps, err := discoverApps(depsLibDir)
		if err != nil {
			return err
		}

		ctx := context.Background()
		backend := analyzer.NewDialyzerBackend(logger)

		// The deps directory doubles as a registry source so dependency
		// names resolve to the artifacts the build produced; the runtime's
		// lib directory makes the default base applications resolvable.
		runtimeLibDir, err := backend.LibDir(ctx)
		if err != nil {
			return err
		}
		libDirs := searchDirs(depsLibDir, runLibDirs, runtimeLibDir)

		// The project PLT must keep covering the base applications it was
		// seeded with, so they stay in the required set on every run.
		req := &engine.AnalyzeRequest{
			BaseDir:     baseDir,
			ProjectApps: projectApps,
			DepApps:     append(appNames(depApps), opts.BasePLTApps...),
			CodePath:    codePath(projectApps, depApps),
			Opts:        opts,
		}

		eng := newEngine(backend, libDirs)
		result, err := eng.Analyze(ctx, req)
		if err != nil {
			var warnErr *engine.WarningsError
			if errors.As(err, &warnErr) {
				PrintWarning(fmt.Sprintf("Analysis produced %s", PrintCount(warnErr.Count, "warning", "warnings")))
				PrintLabelValue("Output written to", warnErr.OutputPath)
				if jsonOutput {
					_ = outputJSON(result)
				}
			}
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}
		return nil
	},
}

// loadRunOptions reads the optional config file and applies flag overrides.
// Flags win over the file; the file wins over defaults.
func loadRunOptions(cmd *cobra.Command) (*config.Options, error) {
	configPath := runConfigPath
	if configPath == "" {
		configPath = filepath.Join(runBaseDir, "pltsync.yaml")
	}

	opts, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("update-plt") {
		opts.UpdatePLT = runUpdatePLT
	}
	if flags.Changed("succ-typings") {
		opts.SuccTypings = runSuccTypings
	}
	if flags.Changed("get-warnings") {
		opts.GetWarnings = runGetWarnings
	}
	if flags.Changed("warning") {
		opts.Warnings = runWarnings
	}
	if flags.Changed("plt-extra-app") {
		opts.PLTExtraApps = runExtraApps
	}
	if flags.Changed("plt-location") {
		opts.PLTLocation = runPLTLocation
	}
	if flags.Changed("plt-prefix") {
		opts.PLTPrefix = runPLTPrefix
	}
	if flags.Changed("base-plt-app") {
		opts.BasePLTApps = runBaseApps
	}
	if flags.Changed("base-plt-location") {
		opts.BasePLTLocation = runBaseLocation
	}
	if flags.Changed("base-plt-prefix") {
		opts.BasePLTPrefix = runBasePrefix
	}

	return opts, nil
}

func init() {
	runCmd.Flags().StringVarP(&runBaseDir, "base-dir", "d", ".", "Project base directory")
	runCmd.Flags().StringVar(&runProjectLibDir, "project-lib-dir", "", "Directory of project applications (default <base-dir>/lib)")
	runCmd.Flags().StringVar(&runDepsLibDir, "deps-lib-dir", "", "Directory of dependency applications (default <base-dir>/deps)")
	runCmd.Flags().StringArrayVar(&runLibDirs, "lib-dir", nil, "Additional library directory for application lookup (repeatable)")
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "Config file (default <base-dir>/pltsync.yaml)")

	runCmd.Flags().BoolVar(&runUpdatePLT, "update-plt", true, "Synchronize PLTs before analyzing")
	runCmd.Flags().BoolVar(&runSuccTypings, "succ-typings", true, "Run the success-typing analysis")
	runCmd.Flags().BoolVar(&runGetWarnings, "get-warnings", false, "Collect warnings during PLT maintenance phases")
	runCmd.Flags().StringArrayVarP(&runWarnings, "warning", "W", nil, "Enable a warning category (repeatable)")
	runCmd.Flags().StringArrayVar(&runExtraApps, "plt-extra-app", nil, "Extra application for the project PLT (repeatable)")
	runCmd.Flags().StringVar(&runPLTLocation, "plt-location", config.LocationLocal, "Project PLT directory, or 'local'")
	runCmd.Flags().StringVar(&runPLTPrefix, "plt-prefix", config.DefaultPrefix, "Project PLT file name prefix")
	runCmd.Flags().StringArrayVar(&runBaseApps, "base-plt-app", nil, "Application covered by the base PLT (repeatable)")
	runCmd.Flags().StringVar(&runBaseLocation, "base-plt-location", config.LocationGlobal, "Base PLT directory, or 'global'")
	runCmd.Flags().StringVar(&runBasePrefix, "base-plt-prefix", "", "Base PLT file name prefix (default the project prefix)")
}
