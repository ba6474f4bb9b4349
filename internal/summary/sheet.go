package summary

import (
	"github.com/cleared-dev/glclean/internal/workbook"
)

// Sheet names of the summary workbook.
const (
	TotalsSheetName  = "Summary"
	PeriodsSheetName = "Periods"
)

var (
	totalsHeader  = []string{"Account Number", "Account Name", "Nature", "Total Debit", "Total Credit", "Net VAT"}
	periodsHeader = []string{"Account Number", "Granularity", "Period", "Debit", "Credit"}
)

// WriteWorkbook writes account totals and the monthly and quarterly
// breakdowns to an xlsx workbook at path.
func WriteWorkbook(path string, accounts []Account) error {
	var totals, periods [][]any
	for _, a := range accounts {
		totals = append(totals, []any{
			a.Account.Number, a.Account.Name, string(a.Account.Nature),
			a.TotalDebit.InexactFloat64(), a.TotalCredit.InexactFloat64(), a.NetVAT.InexactFloat64(),
		})
		for _, b := range a.Monthly {
			periods = append(periods, []any{a.Account.Number, "Month", b.Period, b.Debit.InexactFloat64(), b.Credit.InexactFloat64()})
		}
		for _, b := range a.Quarterly {
			periods = append(periods, []any{a.Account.Number, "Quarter", b.Period, b.Debit.InexactFloat64(), b.Credit.InexactFloat64()})
		}
	}

	w := workbook.NewWriter()
	name, err := w.AddSheet(TotalsSheetName, totalsHeader, totals)
	if err != nil {
		return err
	}
	if err := w.FormatAmounts(name, 4, 6); err != nil {
		return err
	}
	if name, err = w.AddSheet(PeriodsSheetName, periodsHeader, periods); err != nil {
		return err
	}
	if err := w.FormatAmounts(name, 4, 5); err != nil {
		return err
	}
	return w.SaveAs(path)
}
