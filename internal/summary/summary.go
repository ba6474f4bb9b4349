// Package summary computes per-account activity totals for the summary workbook.
package summary

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/glclean/internal/cleaner"
	"github.com/cleared-dev/glclean/internal/model"
)

// Bucket is the debit and credit activity of one month or quarter.
type Bucket struct {
	Period string // "2023-03" or "2023Q1"
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Account summarizes one cleaned ledger.
type Account struct {
	Account     model.Account
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	NetVAT      decimal.Decimal // VAT credits minus VAT debits
	Monthly     []Bucket
	Quarterly   []Bucket
}

// Summarize computes totals for every ledger, in ledger order.
func Summarize(ledgers []model.Ledger) []Account {
	out := make([]Account, 0, len(ledgers))
	for _, l := range ledgers {
		out = append(out, summarize(l))
	}
	return out
}

func summarize(l model.Ledger) Account {
	s := Account{Account: l.Account}
	var vatDebit, vatCredit decimal.Decimal
	monthly := make(map[string]*Bucket)
	quarterly := make(map[string]*Bucket)

	for _, e := range l.Entries {
		debit, credit := e.Debit.Decimal, e.Credit.Decimal
		s.TotalDebit = s.TotalDebit.Add(debit)
		s.TotalCredit = s.TotalCredit.Add(credit)

		if cleaner.MentionsVAT(e.Contra, e.Text) {
			vatDebit = vatDebit.Add(debit)
			vatCredit = vatCredit.Add(credit)
		}

		if e.Date.IsZero() {
			continue
		}
		add(monthly, e.Date.Format("2006-01"), debit, credit)
		quarter := (int(e.Date.Month())-1)/3 + 1
		add(quarterly, fmt.Sprintf("%dQ%d", e.Date.Year(), quarter), debit, credit)
	}

	s.NetVAT = vatCredit.Sub(vatDebit)
	s.Monthly = sorted(monthly)
	s.Quarterly = sorted(quarterly)
	return s
}

func add(buckets map[string]*Bucket, period string, debit, credit decimal.Decimal) {
	b, ok := buckets[period]
	if !ok {
		b = &Bucket{Period: period}
		buckets[period] = b
	}
	b.Debit = b.Debit.Add(debit)
	b.Credit = b.Credit.Add(credit)
}

// sorted orders buckets by period; both period formats sort lexically.
func sorted(buckets map[string]*Bucket) []Bucket {
	out := make([]Bucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	slices.SortFunc(out, func(a, b Bucket) int {
		switch {
		case a.Period < b.Period:
			return -1
		case a.Period > b.Period:
			return 1
		}
		return 0
	})
	return out
}
