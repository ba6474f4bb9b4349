package statements

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/glclean/internal/model"
	"github.com/cleared-dev/glclean/internal/workbook"
)

// Sheet names of the financial-statements workbook.
const (
	BalanceSheetName = "Balance Sheet"
	IncomeSheetName  = "Income Statement"
)

const (
	colNumber = "Account Number"
	colName   = "Account Name"
	numFixed  = 2
)

// ErrMissingSheet is returned when a statements workbook lacks a sheet.
var ErrMissingSheet = errors.New("statement sheet missing")

// WriteWorkbook writes both statements to an xlsx workbook at path with
// amounts formatted to two decimals.
func WriteWorkbook(path string, bs, is model.Statement) error {
	w := workbook.NewWriter()
	for _, s := range []struct {
		name string
		st   model.Statement
	}{
		{BalanceSheetName, bs},
		{IncomeSheetName, is},
	} {
		header, rows := table(s.st)
		name, err := w.AddSheet(s.name, header, rows)
		if err != nil {
			return fmt.Errorf("writing %s: %w", s.name, err)
		}
		if err := w.FormatAmounts(name, numFixed+1, numFixed+len(s.st.Years)); err != nil {
			return err
		}
	}
	return w.SaveAs(path)
}

func table(st model.Statement) ([]string, [][]any) {
	header := []string{colNumber, colName}
	for _, y := range st.Years {
		header = append(header, strconv.Itoa(y))
	}
	rows := make([][]any, len(st.Rows))
	for i, r := range st.Rows {
		row := []any{r.Number, r.Name}
		for _, y := range st.Years {
			row = append(row, r.Value(y).InexactFloat64())
		}
		rows[i] = row
	}
	return header, rows
}

// ReadWorkbook loads both statements back from a workbook written by
// WriteWorkbook.
func ReadWorkbook(path string) (bs, is model.Statement, err error) {
	book, err := workbook.DefaultRegistry().Open(path)
	if err != nil {
		return bs, is, err
	}
	if bs, err = readSheet(book, BalanceSheetName); err != nil {
		return bs, is, err
	}
	if is, err = readSheet(book, IncomeSheetName); err != nil {
		return bs, is, err
	}
	return bs, is, nil
}

func readSheet(book *workbook.Book, name string) (model.Statement, error) {
	var st model.Statement
	sheet, ok := book.Sheet(name)
	if !ok {
		return st, fmt.Errorf("%s: %q: %w", book.Path, name, ErrMissingSheet)
	}
	if len(sheet.Rows) == 0 {
		return st, nil
	}

	for i, h := range sheet.Rows[0] {
		if i < numFixed {
			continue
		}
		y, err := strconv.Atoi(strings.TrimSpace(h))
		if err != nil {
			return st, fmt.Errorf("%s: column %d: parsing year %q: %w", name, i+1, h, err)
		}
		st.Years = append(st.Years, y)
	}

	for n, cells := range sheet.Rows[1:] {
		if len(cells) == 0 {
			continue
		}
		row := model.StatementRow{Values: make(map[int]decimal.Decimal, len(st.Years))}
		row.Number = cell(cells, 0)
		row.Name = cell(cells, 1)
		for i, y := range st.Years {
			v, err := parseCell(cell(cells, numFixed+i))
			if err != nil {
				return st, fmt.Errorf("%s: row %d: %w", name, n+2, err)
			}
			row.Values[y] = v
		}
		st.Rows = append(st.Rows, row)
	}
	return st, nil
}

func cell(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}

func parseCell(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return v, nil
}
