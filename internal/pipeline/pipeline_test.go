package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/glclean/internal/config"
	"github.com/cleared-dev/glclean/internal/logger"
	"github.com/cleared-dev/glclean/internal/model"
	"github.com/cleared-dev/glclean/internal/statements"
)

type fixtureSheet struct {
	name string
	rows [][]string
}

var inputHeader = []string{"Date", "Texte", "Compte", "Contre écr", "Code", "Pièce", "Débit", "Crédit", "Solde"}

// writeInput builds a ledger export workbook with one header row per sheet.
func writeInput(t *testing.T, sheets ...fixtureSheet) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName(f.GetSheetName(0), s.name))
		} else {
			_, err := f.NewSheet(s.name)
			require.NoError(t, err)
		}
		for n, r := range append([][]string{inputHeader}, s.rows...) {
			cells := make([]any, len(r))
			for j, c := range r {
				cells[j] = c
			}
			cell, err := excelize.CoordinatesToCellName(1, n+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(s.name, cell, &cells))
		}
	}

	path := filepath.Join(t.TempDir(), "grand_livre.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func options(t *testing.T, input string) Options {
	opts := NewOptions(config.Default(), input)
	opts.OutputDir = t.TempDir()
	return opts
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRun_CashAndSales(t *testing.T) {
	input := writeInput(t,
		fixtureSheet{"1000 Caisse", [][]string{
			{"Solde 01.01.2023 - 31.12.2023"},
			{"Report de solde", "", "", "", "", "", "", "", "500"},
			{"15.03.2023", "Vente comptant", "", "3000", "", "", "100", "", "600"},
		}},
		fixtureSheet{"3000 Ventes", [][]string{
			{"15.03.2023", "Vente comptant", "", "1000", "", "", "", "100", "-100"},
		}},
	)

	res, err := Run(context.Background(), options(t, input))
	require.NoError(t, err)

	require.Len(t, res.Ledgers, 2)
	opening, ok := res.Ledgers[0].Opening()
	require.True(t, ok)
	assert.True(t, opening.Debit.Decimal.Equal(dec("500")))

	bs, is := res.Statements.Balance, res.Statements.Income
	assert.Equal(t, []int{2023}, bs.Years)

	i := bs.Find("1000")
	require.GreaterOrEqual(t, i, 0)
	assert.True(t, bs.Rows[i].Value(2023).Equal(dec("600")))

	i = is.Find("3000")
	require.GreaterOrEqual(t, i, 0)
	assert.True(t, is.Rows[i].Value(2023).Equal(dec("-100")))

	// The balance sheet sums to 600, so the period result row carries the
	// income statement total.
	assert.Equal(t, []int{2023}, res.Statements.PlugYears)
	i = bs.Find(statements.DefaultPlugNumber)
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, statements.DefaultPlugName, bs.Rows[i].Name)
	assert.True(t, bs.Rows[i].Value(2023).Equal(dec("-100")))

	assert.Contains(t, res.Ratios, 2023)
	assert.Equal(t, 100.0, res.Charts.Revenue[2023]["Ventes"])
}

func TestRun_VATMerge(t *testing.T) {
	input := writeInput(t,
		fixtureSheet{"_1020_Banque", [][]string{
			{"10.01.2023", "Achat fournitures", "", "4000", "", "", "100", "", "100"},
			{"", "Impôt préalable", "", "1170", "", "", "", "7.7", ""},
		}},
	)

	res, err := Run(context.Background(), options(t, input))
	require.NoError(t, err)

	require.Len(t, res.Ledgers, 1)
	entries := res.Ledgers[0].Entries
	require.Len(t, entries, 2)

	merged := entries[1]
	assert.Equal(t, "10.01.2023", merged.DateText)
	assert.True(t, merged.Debit.Valid)
	assert.True(t, merged.Debit.Decimal.Equal(dec("100")))
	assert.True(t, merged.Credit.Valid)
	assert.True(t, merged.Credit.Decimal.Equal(dec("7.7")))
}

func TestRun_WritesOutputs(t *testing.T) {
	input := writeInput(t,
		fixtureSheet{"Couverture", [][]string{{"Grand livre 2023"}}},
		fixtureSheet{"1000 Caisse", [][]string{
			{"15.03.2023", "Vente", "", "3000", "", "", "100", "", "100"},
		}},
		fixtureSheet{"9100 Bilan d'ouverture", [][]string{
			{"01.01.2023", "Ouverture", "", "", "", "", "", "50", "-50"},
		}},
	)
	opts := options(t, input)

	res, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"Couverture"}, res.Skipped)
	require.Len(t, res.Statements.Excluded, 1)
	assert.Equal(t, "9100", res.Statements.Excluded[0].Number)
	assert.Equal(t, 2, res.Accounts.Len())

	require.Len(t, res.Written, 4)
	for _, name := range config.Default().Outputs.Names() {
		_, err := os.Stat(filepath.Join(opts.OutputDir, name))
		assert.NoError(t, err, name)
	}

	bs, is, err := LoadStatements(opts.OutputDir, opts.Outputs.Statements)
	require.NoError(t, err)
	assert.Equal(t, []int{2023}, bs.Years)
	assert.Equal(t, res.Statements.Balance.Years, is.Years)
}

func TestRun_DuplicateAccountReplacesLedger(t *testing.T) {
	input := writeInput(t,
		fixtureSheet{"1000 Caisse", [][]string{
			{"15.03.2023", "Première", "", "", "", "", "100", "", "100"},
		}},
		fixtureSheet{"3000 Ventes", nil},
		fixtureSheet{"_1000_Caisse_bis", [][]string{
			{"16.03.2023", "Seconde", "", "", "", "", "200", "", "200"},
		}},
	)

	res, err := Run(context.Background(), options(t, input))
	require.NoError(t, err)

	require.Len(t, res.Ledgers, 2)
	assert.Equal(t, "1000", res.Ledgers[0].Account.Number)
	assert.Equal(t, "Seconde", res.Ledgers[0].Entries[1].Text)
	acct, ok := res.Accounts.Get("1000")
	require.True(t, ok)
	assert.Equal(t, "Caisse", acct.Name)
}

func TestRun_LogsDefaults(t *testing.T) {
	input := writeInput(t, fixtureSheet{"1000 Caisse", nil})

	buf := &bytes.Buffer{}
	ctx := logger.WithContext(context.Background(), logger.NewWithWriter(buf))
	_, err := Run(ctx, options(t, input))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "period defaults applied")
	assert.Contains(t, buf.String(), "pipeline complete")
}

func TestRun_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.xlsx")
	_, err := Run(context.Background(), options(t, path))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "absent.xlsx")
}

func TestRun_CorruptWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	_, err := Run(context.Background(), options(t, path))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.xlsx")
}

func TestRun_Canceled(t *testing.T) {
	input := writeInput(t, fixtureSheet{"1000 Caisse", nil})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, options(t, input))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadStatements_NotGenerated(t *testing.T) {
	_, _, err := LoadStatements(t.TempDir(), "Financial_Statements.xlsx")
	assert.ErrorIs(t, err, ErrNotGenerated)
}

func TestResult_LogEntry(t *testing.T) {
	res := &Result{
		Input:   "/data/import/gl.xlsx",
		Ledgers: make([]model.Ledger, 3),
		Statements: statements.Result{
			Balance:   model.Statement{Years: []int{2022, 2023}},
			PlugYears: []int{2023},
		},
		Written: []string{"/out/Comptes_Cleans.xlsx"},
	}
	now := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

	e := res.LogEntry(now)
	assert.Equal(t, now, e.Timestamp)
	assert.Equal(t, "gl.xlsx", e.Input)
	assert.Equal(t, 3, e.Accounts)
	assert.Equal(t, []int{2022, 2023}, e.Years)
	assert.Equal(t, []int{2023}, e.PlugYears)
	assert.Equal(t, []string{"Comptes_Cleans.xlsx"}, e.Outputs)
}

func TestNewOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Statements.PlugNumber = "2990"
	cfg.Statements.Tolerance = 1

	opts := NewOptions(cfg, "in.xlsx")
	assert.Equal(t, "2990", opts.Generator.PlugNumber)
	assert.True(t, opts.Generator.Tolerance.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, "Financial_Statements.xlsx", opts.Outputs.Statements)
	assert.NotNil(t, opts.Registry)
}
