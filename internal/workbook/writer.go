package workbook

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// MaxSheetName is the sheet-name length limit of the xlsx format.
const MaxSheetName = 31

// numFmtThousands is excelize's built-in "#,##0.00" number format.
const numFmtThousands = 4

var invalidSheetChars = strings.NewReplacer(":", " ", `\`, " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")")

// Writer builds an xlsx workbook sheet by sheet.
type Writer struct {
	file   *excelize.File
	used   map[string]bool
	fresh  bool // default sheet not yet renamed
	number int  // style ID for two-decimal amounts, 0 until created
}

// NewWriter creates an empty workbook.
func NewWriter() *Writer {
	return &Writer{file: excelize.NewFile(), used: make(map[string]bool), fresh: true}
}

// SheetName returns name made valid for the xlsx format: forbidden
// characters replaced and truncated to MaxSheetName characters.
func SheetName(name string) string {
	name = strings.Trim(invalidSheetChars.Replace(name), "'")
	if name == "" {
		name = "Sheet"
	}
	if utf8.RuneCountInString(name) > MaxSheetName {
		name = string([]rune(name)[:MaxSheetName])
	}
	return name
}

// uniqueName resolves collisions between truncated sheet names.
func (w *Writer) uniqueName(name string) string {
	name = SheetName(name)
	candidate := name
	for n := 2; w.used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf("~%d", n)
		base := []rune(name)
		if len(base)+len(suffix) > MaxSheetName {
			base = base[:MaxSheetName-len(suffix)]
		}
		candidate = string(base) + suffix
	}
	w.used[strings.ToLower(candidate)] = true
	return candidate
}

// AddSheet appends a sheet with a header row followed by rows. Cell values
// may be strings, numbers or nil for blank cells. It returns the sheet
// name actually used.
func (w *Writer) AddSheet(name string, header []string, rows [][]any) (string, error) {
	name = w.uniqueName(name)
	if w.fresh {
		if err := w.file.SetSheetName(w.file.GetSheetName(0), name); err != nil {
			return "", fmt.Errorf("naming sheet %q: %w", name, err)
		}
		w.fresh = false
	} else if _, err := w.file.NewSheet(name); err != nil {
		return "", fmt.Errorf("creating sheet %q: %w", name, err)
	}

	hdr := make([]any, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	if err := w.setRow(name, 1, hdr); err != nil {
		return "", err
	}
	for i, row := range rows {
		if err := w.setRow(name, i+2, row); err != nil {
			return "", err
		}
	}
	return name, nil
}

func (w *Writer) setRow(sheet string, n int, row []any) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return fmt.Errorf("row %d: %w", n, err)
	}
	if err := w.file.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, n, err)
	}
	return nil
}

// FormatAmounts applies the "#,##0.00" format to columns first..last
// (1-based, inclusive) of sheet.
func (w *Writer) FormatAmounts(sheet string, first, last int) error {
	if last < first {
		return nil
	}
	if w.number == 0 {
		id, err := w.file.NewStyle(&excelize.Style{NumFmt: numFmtThousands})
		if err != nil {
			return fmt.Errorf("creating number style: %w", err)
		}
		w.number = id
	}
	from, err := excelize.ColumnNumberToName(first)
	if err != nil {
		return err
	}
	to, err := excelize.ColumnNumberToName(last)
	if err != nil {
		return err
	}
	if err := w.file.SetColStyle(sheet, from+":"+to, w.number); err != nil {
		return fmt.Errorf("formatting %s %s:%s: %w", sheet, from, to, err)
	}
	return nil
}

// Empty reports whether no sheet has been added yet.
func (w *Writer) Empty() bool { return w.fresh }

// SaveAs writes the workbook to path and releases it.
func (w *Writer) SaveAs(path string) error {
	defer w.file.Close()
	if err := w.file.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// WriteTo writes the workbook to out.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	return w.file.WriteTo(out)
}
