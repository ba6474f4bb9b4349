package workbook

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/glclean/internal/model"
)

// ErrUnsupportedFormat is returned for files whose extension has no reader.
var ErrUnsupportedFormat = errors.New("unsupported workbook format")

// Sheet is one worksheet of a workbook as rows of cell text.
type Sheet struct {
	Name string
	Rows [][]string
}

// DataRows returns the sheet body as ledger rows, dropping the header row.
func (s Sheet) DataRows() []model.RawRow {
	if len(s.Rows) <= 1 {
		return nil
	}
	rows := make([]model.RawRow, 0, len(s.Rows)-1)
	for _, cells := range s.Rows[1:] {
		rows = append(rows, model.NewRawRow(cells))
	}
	return rows
}

// Book is a workbook read fully into memory, sheets in file order.
type Book struct {
	Path   string
	Sheets []Sheet
}

// Sheet returns the sheet named name.
func (b *Book) Sheet(name string) (Sheet, bool) {
	for _, s := range b.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return Sheet{}, false
}

// Reader decodes one spreadsheet file format.
type Reader interface {
	Read(r io.ReadSeeker) ([]Sheet, error)
	Format() string
}

// Registry maps file extensions to readers.
type Registry struct {
	readers map[string]Reader
}

// NewRegistry creates an empty reader registry.
func NewRegistry() *Registry {
	return &Registry{readers: make(map[string]Reader)}
}

// Register adds a reader. Panics on duplicate format.
func (r *Registry) Register(rd Reader) {
	key := strings.ToLower(rd.Format())
	if _, ok := r.readers[key]; ok {
		panic("duplicate workbook format: " + key)
	}
	r.readers[key] = rd
}

// Get returns the reader for format ("xlsx", ".XLS", ...), or nil.
func (r *Registry) Get(format string) Reader {
	return r.readers[strings.ToLower(strings.TrimPrefix(format, "."))]
}

// Supports reports whether path has an extension with a registered reader.
func (r *Registry) Supports(path string) bool {
	return r.Get(filepath.Ext(path)) != nil
}

// DefaultRegistry returns a registry with the .xlsx and .xls readers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&XLSXReader{})
	r.Register(&XLSReader{})
	return r
}

// Open reads the workbook at path. Errors carry the file name.
func (r *Registry) Open(path string) (*Book, error) {
	rd := r.Get(filepath.Ext(path))
	if rd == nil {
		return nil, fmt.Errorf("opening %s: %w", path, ErrUnsupportedFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sheets, err := rd.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &Book{Path: path, Sheets: sheets}, nil
}
