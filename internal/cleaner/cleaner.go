package cleaner

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/glclean/internal/model"
)

// Clean turns the data rows of one account sheet into a cleaned ledger.
//
// The ledger always starts with a synthetic opening-balance entry dated at
// the period start. Each dated row then becomes one entry, absorbing the
// undated VAT rows that directly follow it; exchange-compensation rows
// between them are dropped. VAT rows that do not follow a dated row are
// emitted on their own, dated at the last date seen.
func Clean(rows []model.RawRow, acct model.Account, period Period) model.Ledger {
	entries := []model.Entry{openingEntry(acct.Number, period)}

	lastDate := period.Start
	for i := 0; i < len(rows); {
		row := rows[i]
		switch {
		case IsLinkPlaceholder(row):
			i++
		case IsVATRow(row, lastDate):
			m := newMerge(row, lastDate)
			entries = append(entries, m.entry(acct.Number))
			i++
		case IsExchangeCompensation(row):
			i++
		case IsDatedEntry(row):
			lastDate = strings.TrimSpace(row[model.ColDate])
			m := newMerge(row, lastDate)
			j := i + 1
			for ; j < len(rows); j++ {
				next := rows[j]
				if IsExchangeCompensation(next) {
					continue
				}
				if !IsVATRow(next, lastDate) {
					break
				}
				m.absorb(next)
			}
			entries = append(entries, m.entry(acct.Number))
			i = j
		default:
			i++
		}
	}

	return model.Ledger{Account: acct, Entries: entries}
}

func openingEntry(account string, period Period) model.Entry {
	debit, credit := decimal.Zero, decimal.Zero
	if period.Opening.IsNegative() {
		credit = period.Opening.Abs()
	} else {
		debit = period.Opening
	}
	return model.Entry{
		Date:     ParseDate(period.Start),
		DateText: period.Start,
		Text:     OpeningLabel,
		Account:  account,
		Debit:    decimal.NewNullDecimal(debit),
		Credit:   decimal.NewNullDecimal(credit),
		Balance:  period.Opening,
		Opening:  true,
	}
}

// merge accumulates an anchor row and the VAT rows folded into it.
type merge struct {
	anchor  model.RawRow
	date    string
	debit   decimal.Decimal
	credit  decimal.Decimal
	balance decimal.Decimal
}

func newMerge(anchor model.RawRow, date string) *merge {
	return &merge{
		anchor:  anchor,
		date:    date,
		debit:   ParseAmount(anchor[model.ColDebit]),
		credit:  ParseAmount(anchor[model.ColCredit]),
		balance: ParseAmount(anchor[model.ColBalance]),
	}
}

func (m *merge) absorb(vat model.RawRow) {
	m.debit = m.debit.Add(ParseAmount(vat[model.ColDebit]))
	m.credit = m.credit.Add(ParseAmount(vat[model.ColCredit]))
	if present(vat[model.ColBalance]) {
		m.balance = ParseAmount(vat[model.ColBalance])
	}
}

func (m *merge) entry(account string) model.Entry {
	code := strings.TrimSpace(m.anchor[model.ColCode])
	return model.Entry{
		Date:     ParseDate(m.date),
		DateText: m.date,
		Text:     m.anchor[model.ColDescription],
		Account:  account,
		Contra:   strings.TrimSpace(m.anchor[model.ColContra]),
		Code:     code,
		Origin:   OriginLabel(code),
		Document: strings.TrimSpace(m.anchor[model.ColDocument]),
		Debit:    nonZero(m.debit),
		Credit:   nonZero(m.credit),
		Balance:  m.balance,
	}
}

// nonZero marks an exactly-zero total as absent.
func nonZero(v decimal.Decimal) decimal.NullDecimal {
	if v.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(v)
}
