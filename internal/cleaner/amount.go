package cleaner

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the dd.mm.yyyy format used throughout the export.
const DateLayout = "02.01.2006"

var thousandsSeparators = strings.NewReplacer("'", "", "’", "", " ", "", " ", "")

// ParseAmount parses a numeric cell. Blank or non-numeric text yields zero.
func ParseAmount(s string) decimal.Decimal {
	s = thousandsSeparators.Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return v
}

// ParseDate parses a dd.mm.yyyy date. It returns the zero time when the
// text is not a valid calendar date.
func ParseDate(s string) time.Time {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}
