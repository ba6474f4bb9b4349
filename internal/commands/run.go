package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/glclean/internal/config"
	"github.com/cleared-dev/glclean/internal/logger"
	"github.com/cleared-dev/glclean/internal/pipeline"
	"github.com/cleared-dev/glclean/internal/runlog"
	"github.com/cleared-dev/glclean/internal/workbook"
)

func newRunCommand(flags *globalFlags) *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process every workbook waiting in the import directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(repoDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			configPath := flags.configPath
			if !cmd.Flags().Changed("config") {
				configPath = filepath.Join(absDir, config.FileName)
			}
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if !filepath.IsAbs(cfg.Paths.Output) {
				cfg.Paths.Output = filepath.Join(absDir, cfg.Paths.Output)
			}

			return runImports(cmd, absDir, cfg)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "workspace directory")

	return cmd
}

func runImports(cmd *cobra.Command, root string, cfg *config.Config) error {
	log := logger.FromContext(cmd.Context())
	registry := workbook.DefaultRegistry()

	files, err := registry.Scan(root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No workbooks to process")
		return nil
	}

	for _, f := range files {
		opts := pipeline.NewOptions(cfg, f.Path)
		opts.Registry = registry
		res, err := pipeline.Run(cmd.Context(), opts)
		if err != nil {
			return err
		}

		if err := runlog.Append(root, []runlog.Entry{res.LogEntry(time.Now())}); err != nil {
			log.Warn().Err(err).Msg("failed to write run log")
		}
		if err := workbook.MarkProcessed(root, f.Name); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", f.Name)
		printResult(cmd.OutOrStdout(), res)
	}
	return nil
}
