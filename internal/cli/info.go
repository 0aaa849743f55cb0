package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/pltsync/internal/analyzer"
	"github.com/danieljhkim/pltsync/internal/config"
)

var (
	infoBaseDir    string
	infoConfigPath string
	infoBase       bool
)

var infoCmd = &cobra.Command{
	Use:   "info [plt-path]",
	Short: "Show the file set a PLT currently contains",
	Long: `Print the compiled files recorded in a PLT.

Without an explicit path the project PLT location is derived the same way
the run command derives it; --base inspects the shared base PLT instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		backend := analyzer.NewDialyzerBackend(logger)

		pltPath := ""
		if len(args) > 0 {
			pltPath = args[0]
		} else {
			configPath := infoConfigPath
			if configPath == "" {
				configPath = filepath.Join(infoBaseDir, "pltsync.yaml")
			}
			opts, err := config.Load(configPath)
			if err != nil {
				return err
			}

			otpVersion, err := backend.OTPVersion(ctx)
			if err != nil {
				return err
			}

			if infoBase {
				pltPath, err = opts.BasePLTPath(otpVersion)
				if err != nil {
					return err
				}
			} else {
				baseDir, err := filepath.Abs(infoBaseDir)
				if err != nil {
					return fmt.Errorf("failed to resolve base directory: %w", err)
				}
				pltPath = opts.ProjectPLTPath(baseDir, otpVersion)
			}
		}

		files, err := backend.PLTFiles(ctx, pltPath)
		if err != nil {
			if errors.Is(err, analyzer.ErrNoPLT) {
				return fmt.Errorf("plt does not exist: %s", pltPath)
			}
			return err
		}

		if jsonOutput {
			return outputJSON(struct {
				Path  string   `json:"path"`
				Count int      `json:"count"`
				Files []string `json:"files"`
			}{Path: pltPath, Count: files.Len(), Files: files.Sorted()})
		}

		PrintSection("PLT Contents")
		PrintLabelValue("Path", pltPath)
		PrintLabelValue("Files", PrintCount(files.Len(), "file", "files"))
		for _, file := range files.Sorted() {
			PrintInfo("  " + file)
		}
		return nil
	},
}

func init() {
	infoCmd.Flags().StringVarP(&infoBaseDir, "base-dir", "d", ".", "Project base directory")
	infoCmd.Flags().StringVarP(&infoConfigPath, "config", "c", "", "Config file (default <base-dir>/pltsync.yaml)")
	infoCmd.Flags().BoolVar(&infoBase, "base", false, "Inspect the shared base PLT")
}
