package cleaner

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/glclean/internal/model"
	"github.com/cleared-dev/glclean/internal/workbook"
)

// Header is the column layout of a cleaned ledger sheet.
var Header = []string{"Date", "Texte", "Compte", "Contre écr", "Code", "Origine", "Document", "Débit", "Crédit", "Solde"}

const (
	colDebit   = 8
	colBalance = 10
)

// WriteWorkbook writes one sheet per ledger, named "<number> <name>"
// truncated to the sheet-name limit.
func WriteWorkbook(path string, ledgers []model.Ledger) error {
	w := workbook.NewWriter()
	for _, l := range ledgers {
		name, err := w.AddSheet(l.Account.Label(), Header, Rows(l))
		if err != nil {
			return fmt.Errorf("writing ledger %s: %w", l.Account.Number, err)
		}
		if err := w.FormatAmounts(name, colDebit, colBalance); err != nil {
			return err
		}
	}
	return w.SaveAs(path)
}

// Rows renders a ledger as sheet rows. Absent debit or credit cells stay blank.
func Rows(l model.Ledger) [][]any {
	rows := make([][]any, len(l.Entries))
	for i, e := range l.Entries {
		rows[i] = []any{
			e.DateText, e.Text, e.Account, e.Contra, e.Code, e.Origin, e.Document,
			amount(e.Debit), amount(e.Credit), e.Balance.InexactFloat64(),
		}
	}
	return rows
}

func amount(v decimal.NullDecimal) any {
	if !v.Valid {
		return nil
	}
	return v.Decimal.InexactFloat64()
}
