package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Column positions of the nine-column general-ledger layout.
const (
	ColDate = iota
	ColDescription
	ColCounter
	ColContra
	ColCode
	ColDocument
	ColDebit
	ColCredit
	ColBalance
	NumRawColumns
)

// RawRow is one row of an account sheet as exported. Blank fields are absent.
type RawRow [NumRawColumns]string

// NewRawRow builds a RawRow from a spreadsheet row of any length.
// Missing trailing cells are left blank and extra cells are dropped.
func NewRawRow(cells []string) RawRow {
	var r RawRow
	copy(r[:], cells)
	return r
}

// Field returns the raw text at column col.
func (r RawRow) Field(col int) string { return r[col] }

// Entry is one cleaned ledger line.
type Entry struct {
	Date     time.Time // zero when DateText does not parse
	DateText string    // "dd.mm.yyyy" as exported
	Text     string
	Account  string
	Contra   string
	Code     string
	Origin   string
	Document string
	Debit    decimal.NullDecimal // invalid = no activity in the column
	Credit   decimal.NullDecimal
	Balance  decimal.Decimal
	Opening  bool // synthetic opening-balance line
}

// Year returns the calendar year of the entry and whether its date parsed.
func (e Entry) Year() (int, bool) {
	if e.Date.IsZero() {
		return 0, false
	}
	return e.Date.Year(), true
}

// Net returns debit minus credit, treating absent columns as zero.
func (e Entry) Net() decimal.Decimal {
	return e.Debit.Decimal.Sub(e.Credit.Decimal)
}

// Ledger is the cleaned, chronologically ordered entry list of one account.
type Ledger struct {
	Account Account
	Entries []Entry
}

// Opening returns the synthetic opening-balance entry, which is always first.
func (l Ledger) Opening() (Entry, bool) {
	if len(l.Entries) == 0 || !l.Entries[0].Opening {
		return Entry{}, false
	}
	return l.Entries[0], true
}
