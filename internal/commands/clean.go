package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/glclean/internal/logger"
	"github.com/cleared-dev/glclean/internal/pipeline"
	"github.com/cleared-dev/glclean/internal/runlog"
)

func newCleanCommand(flags *globalFlags) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "clean <workbook>",
		Short: "Clean a ledger workbook and write statements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.configPath)
			if err != nil {
				return err
			}
			if outputDir != "" {
				cfg.Paths.Output = outputDir
			}

			res, err := pipeline.Run(cmd.Context(), pipeline.NewOptions(cfg, args[0]))
			if err != nil {
				return err
			}
			if err := runlog.Append(cfg.Paths.Output, []runlog.Entry{res.LogEntry(time.Now())}); err != nil {
				log := logger.FromContext(cmd.Context())
				log.Warn().Err(err).Msg("failed to write run log")
			}

			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (overrides config)")

	return cmd
}

func printResult(w io.Writer, res *pipeline.Result) {
	fmt.Fprintf(w, "Cleaned %d accounts", len(res.Ledgers))
	if n := len(res.Skipped); n > 0 {
		fmt.Fprintf(w, " (%d sheets skipped)", n)
	}
	fmt.Fprintln(w)
	if years := res.Years(); len(years) > 0 {
		fmt.Fprintf(w, "Years: %v\n", years)
	}
	if len(res.Statements.PlugYears) > 0 {
		fmt.Fprintf(w, "Period result plugged for: %v\n", res.Statements.PlugYears)
	}
	for _, p := range res.Written {
		fmt.Fprintf(w, "Wrote %s\n", p)
	}
}
