// Package pipeline runs a general-ledger workbook through cleaning,
// statement generation and ratio analysis, and writes the output workbooks.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/glclean/internal/accounts"
	"github.com/cleared-dev/glclean/internal/cleaner"
	"github.com/cleared-dev/glclean/internal/config"
	"github.com/cleared-dev/glclean/internal/logger"
	"github.com/cleared-dev/glclean/internal/model"
	"github.com/cleared-dev/glclean/internal/ratios"
	"github.com/cleared-dev/glclean/internal/runlog"
	"github.com/cleared-dev/glclean/internal/statements"
	"github.com/cleared-dev/glclean/internal/summary"
	"github.com/cleared-dev/glclean/internal/workbook"
)

// ErrNotGenerated reports that no statements workbook exists yet.
var ErrNotGenerated = errors.New("financial statements not generated")

// Options configure one pipeline run.
type Options struct {
	Input        string
	OutputDir    string
	Outputs      config.OutputsConfig
	DefaultStart string
	DefaultEnd   string
	Generator    *statements.Generator
	Registry     *workbook.Registry
}

// NewOptions builds run options for input from cfg.
func NewOptions(cfg *config.Config, input string) Options {
	g := statements.NewGenerator()
	g.Tolerance = decimal.NewFromFloat(cfg.Statements.Tolerance)
	if cfg.Statements.PlugNumber != "" {
		g.PlugNumber = cfg.Statements.PlugNumber
	}
	if cfg.Statements.PlugName != "" {
		g.PlugName = cfg.Statements.PlugName
	}
	return Options{
		Input:        input,
		OutputDir:    cfg.Paths.Output,
		Outputs:      cfg.Outputs,
		DefaultStart: cfg.Period.DefaultStart,
		DefaultEnd:   cfg.Period.DefaultEnd,
		Generator:    g,
		Registry:     workbook.DefaultRegistry(),
	}
}

func (o *Options) withDefaults() {
	def := config.Default()
	if o.OutputDir == "" {
		o.OutputDir = def.Paths.Output
	}
	if o.Outputs == (config.OutputsConfig{}) {
		o.Outputs = def.Outputs
	}
	if o.DefaultStart == "" || o.DefaultEnd == "" {
		o.DefaultStart, o.DefaultEnd = cleaner.DefaultStart, cleaner.DefaultEnd
	}
	if o.Generator == nil {
		o.Generator = statements.NewGenerator()
	}
	if o.Registry == nil {
		o.Registry = workbook.DefaultRegistry()
	}
}

// Result is everything one run produced.
type Result struct {
	Input      string
	Accounts   *accounts.Service
	Ledgers    []model.Ledger
	Skipped    []string // sheet names that are not account labels
	Statements statements.Result
	Ratios     map[int]ratios.Set
	Charts     ratios.ChartData
	Summary    []summary.Account
	Written    []string // output paths
}

// Run processes the workbook at opts.Input. Only I/O failures are errors;
// data-quality problems are logged and defaulted.
func Run(ctx context.Context, opts Options) (*Result, error) {
	opts.withDefaults()
	log := logger.FromContext(ctx).With().Str("input", filepath.Base(opts.Input)).Logger()

	book, err := opts.Registry.Open(opts.Input)
	if err != nil {
		return nil, err
	}

	res := &Result{Input: opts.Input, Accounts: accounts.NewService(nil)}
	index := make(map[string]int)

	for _, sheet := range book.Sheets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		acct, ok := accounts.FromLabel(sheet.Name)
		if !ok {
			log.Debug().Str("sheet", sheet.Name).Msg("skipping sheet without account label")
			res.Skipped = append(res.Skipped, sheet.Name)
			continue
		}
		res.Accounts.Add(acct)

		rows := sheet.DataRows()
		period := cleaner.ParsePeriodOr(rows, opts.DefaultStart, opts.DefaultEnd)
		if period.DefaultedRange || period.MissingOpening {
			log.Debug().
				Str("account", acct.Number).
				Bool("default_range", period.DefaultedRange).
				Bool("missing_opening", period.MissingOpening).
				Msg("period defaults applied")
		}

		ledger := cleaner.Clean(rows, acct, period)
		if i, dup := index[acct.Number]; dup {
			log.Warn().Str("account", acct.Number).Str("sheet", sheet.Name).Msg("duplicate account sheet replaces earlier one")
			res.Ledgers[i] = ledger
			continue
		}
		index[acct.Number] = len(res.Ledgers)
		res.Ledgers = append(res.Ledgers, ledger)
	}

	res.Statements = opts.Generator.Generate(res.Ledgers)
	for _, a := range res.Statements.Excluded {
		log.Info().Str("account", a.Number).Msg("account has no statement class, excluded")
	}
	if len(res.Statements.PlugYears) > 0 {
		log.Info().Ints("years", res.Statements.PlugYears).Msg("balance sheet plugged with period result")
	}

	res.Ratios = ratios.Compute(res.Statements.Balance, res.Statements.Income)
	res.Charts = ratios.Charts(res.Statements.Balance, res.Statements.Income)
	res.Summary = summary.Summarize(res.Ledgers)

	if err := res.write(opts); err != nil {
		return nil, err
	}

	log.Info().
		Int("accounts", len(res.Ledgers)).
		Ints("years", res.Statements.Balance.Years).
		Msg("pipeline complete")
	return res, nil
}

func (r *Result) write(opts Options) error {
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	steps := []struct {
		name  string
		write func(path string) error
	}{
		{opts.Outputs.Ledgers, func(p string) error { return cleaner.WriteWorkbook(p, r.Ledgers) }},
		{opts.Outputs.Statements, func(p string) error {
			return statements.WriteWorkbook(p, r.Statements.Balance, r.Statements.Income)
		}},
		{opts.Outputs.Chart, r.Accounts.WriteWorkbook},
		{opts.Outputs.Summary, func(p string) error { return summary.WriteWorkbook(p, r.Summary) }},
	}
	for _, s := range steps {
		path := filepath.Join(opts.OutputDir, s.name)
		if err := s.write(path); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		r.Written = append(r.Written, path)
	}
	return nil
}

// Years returns the statements' year axis.
func (r *Result) Years() []int {
	return r.Statements.Balance.Years
}

// LogEntry summarizes the run for the run log.
func (r *Result) LogEntry(now time.Time) runlog.Entry {
	outputs := make([]string, len(r.Written))
	for i, p := range r.Written {
		outputs[i] = filepath.Base(p)
	}
	return runlog.Entry{
		Timestamp: now.UTC(),
		Input:     filepath.Base(r.Input),
		Accounts:  len(r.Ledgers),
		Years:     r.Years(),
		PlugYears: r.Statements.PlugYears,
		Outputs:   outputs,
	}
}

// LoadStatements reads previously generated statements from dir. It
// returns ErrNotGenerated when the workbook does not exist.
func LoadStatements(dir, name string) (bs, is model.Statement, err error) {
	path := filepath.Join(dir, name)
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		return bs, is, fmt.Errorf("%s: %w", path, ErrNotGenerated)
	}
	return statements.ReadWorkbook(path)
}
