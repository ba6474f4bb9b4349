package cleaner

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/glclean/internal/model"
)

// OpeningLabel marks the row carrying the account's opening balance.
const OpeningLabel = "Report de solde"

// Default reporting period used when a sheet has no "Solde" row.
const (
	DefaultStart = "01.01.2023"
	DefaultEnd   = "31.12.2023"
)

var periodPattern = regexp.MustCompile(`Solde (\d{2}\.\d{2}\.\d{4}) - (\d{2}\.\d{2}\.\d{4})`)

// Period is the reporting period and opening balance of one account sheet.
type Period struct {
	Start          string
	End            string
	Opening        decimal.Decimal
	DefaultedRange bool
	MissingOpening bool
}

// ParsePeriod extracts the reporting period and opening balance from an
// account sheet. The first matching row wins for both; missing values fall
// back to the default range and a zero balance.
func ParsePeriod(rows []model.RawRow) Period {
	return ParsePeriodOr(rows, DefaultStart, DefaultEnd)
}

// ParsePeriodOr is ParsePeriod with a caller-supplied fallback range.
func ParsePeriodOr(rows []model.RawRow, start, end string) Period {
	p := Period{
		Start:          start,
		End:            end,
		Opening:        decimal.Zero,
		DefaultedRange: true,
		MissingOpening: true,
	}

	for _, row := range rows {
		if m := periodPattern.FindStringSubmatch(row[model.ColDate]); m != nil {
			p.Start, p.End = m[1], m[2]
			p.DefaultedRange = false
			break
		}
	}

	for _, row := range rows {
		if row[model.ColDate] == OpeningLabel {
			p.Opening = ParseAmount(row[model.ColBalance])
			p.MissingOpening = false
			break
		}
	}
	return p
}
