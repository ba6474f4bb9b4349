package accounts

import (
	"fmt"

	"github.com/cleared-dev/glclean/internal/workbook"
)

// SheetName is the single sheet of the chart-of-accounts workbook.
const SheetName = "Plan_Comptable"

var header = []string{"Numéro de compte", "Nom de compte", "Nature du compte"}

// WriteWorkbook writes the registry to an xlsx workbook at path.
func (s *Service) WriteWorkbook(path string) error {
	rows := make([][]any, len(s.accounts))
	for i, a := range s.accounts {
		rows[i] = []any{a.Number, a.Name, string(a.Nature)}
	}

	w := workbook.NewWriter()
	if _, err := w.AddSheet(SheetName, header, rows); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return w.SaveAs(path)
}
