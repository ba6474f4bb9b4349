package model

import (
	"slices"

	"github.com/shopspring/decimal"
)

// StatementRow is one account line of a financial statement with one value
// per year of the statement's year axis.
type StatementRow struct {
	Number string
	Name   string
	Values map[int]decimal.Decimal
}

// Value returns the row's value for year, zero when the year is absent.
func (r StatementRow) Value(year int) decimal.Decimal {
	return r.Values[year]
}

// Statement is a balance sheet or income statement.
type Statement struct {
	Years []int // ascending
	Rows  []StatementRow
}

// Empty reports whether the statement has no rows.
func (s Statement) Empty() bool { return len(s.Rows) == 0 }

// Sum returns the column total for year.
func (s Statement) Sum(year int) decimal.Decimal {
	total := decimal.Zero
	for _, r := range s.Rows {
		total = total.Add(r.Value(year))
	}
	return total
}

// SumPrefix returns the column total for year over rows whose account
// number starts with any of prefixes.
func (s Statement) SumPrefix(year int, prefixes ...string) decimal.Decimal {
	total := decimal.Zero
	for _, r := range s.Rows {
		if HasAnyPrefix(r.Number, prefixes...) {
			total = total.Add(r.Value(year))
		}
	}
	return total
}

// Find returns the index of the row for account number, or -1.
func (s Statement) Find(number string) int {
	return slices.IndexFunc(s.Rows, func(r StatementRow) bool { return r.Number == number })
}

// HasYear reports whether year is on the statement's axis.
func (s Statement) HasYear(year int) bool {
	_, found := slices.BinarySearch(s.Years, year)
	return found
}

// HasAnyPrefix reports whether s starts with one of prefixes.
func HasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if len(s) >= len(p) && s[:len(p)] == p {
			return true
		}
	}
	return false
}
