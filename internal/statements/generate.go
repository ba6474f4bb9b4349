// Package statements aggregates cleaned ledgers into a balance sheet and an
// income statement.
package statements

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/glclean/internal/model"
)

// Defaults for the period-result plug row.
const (
	DefaultPlugNumber = "2979"
	DefaultPlugName   = "Résultat de l’exercice"
)

// DefaultTolerance is the largest absolute balance-sheet column sum treated
// as balanced.
var DefaultTolerance = decimal.New(1, -2)

// Classify places an account on a statement by the leading digit of its
// number. Digits outside 1–8 yield ClassNone.
func Classify(number string) model.Class {
	if number == "" {
		return model.ClassNone
	}
	switch d := number[0]; {
	case d == '1':
		return model.ClassAsset
	case d == '2':
		return model.ClassLiability
	case d == '3':
		return model.ClassRevenue
	case d >= '4' && d <= '8':
		return model.ClassExpense
	}
	return model.ClassNone
}

// YearlyNet sums debit minus credit per calendar year. Entries whose date
// did not parse are left out.
func YearlyNet(entries []model.Entry) map[int]decimal.Decimal {
	net := make(map[int]decimal.Decimal)
	for _, e := range entries {
		year, ok := e.Year()
		if !ok {
			continue
		}
		net[year] = net[year].Add(e.Net())
	}
	return net
}

// Result holds both statements and the years that needed a plug row.
type Result struct {
	Balance   model.Statement
	Income    model.Statement
	PlugYears []int
	Excluded  []model.Account // accounts with no statement class
}

// Generator builds statements from cleaned ledgers.
type Generator struct {
	Tolerance  decimal.Decimal
	PlugNumber string
	PlugName   string
}

// NewGenerator returns a Generator with the default tolerance and plug account.
func NewGenerator() *Generator {
	return &Generator{
		Tolerance:  DefaultTolerance,
		PlugNumber: DefaultPlugNumber,
		PlugName:   DefaultPlugName,
	}
}

// Generate builds statements with the default settings.
func Generate(ledgers []model.Ledger) Result {
	return NewGenerator().Generate(ledgers)
}

type classified struct {
	account model.Account
	net     map[int]decimal.Decimal
}

// Generate builds the balance sheet and income statement.
//
// Balance-sheet rows (assets, then liabilities) hold the running total of
// yearly nets; income-statement rows (revenues, then expenses) hold the
// yearly net itself. Every row has a value for every year on the axis.
// When a balance-sheet column does not sum to zero within tolerance, the
// plug row receives that year's income-statement total.
func (g *Generator) Generate(ledgers []model.Ledger) Result {
	var res Result
	groups := make(map[model.Class][]classified)
	seen := make(map[int]bool)

	for _, l := range ledgers {
		class := Classify(l.Account.Number)
		if class == model.ClassNone {
			res.Excluded = append(res.Excluded, l.Account)
			continue
		}
		net := YearlyNet(l.Entries)
		for y := range net {
			seen[y] = true
		}
		groups[class] = append(groups[class], classified{account: l.Account, net: net})
	}

	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	slices.Sort(years)

	res.Balance.Years = years
	res.Income.Years = years

	for _, class := range []model.Class{model.ClassAsset, model.ClassLiability} {
		for _, c := range groups[class] {
			row := newRow(c.account)
			cumulative := decimal.Zero
			for _, y := range years {
				cumulative = cumulative.Add(c.net[y])
				row.Values[y] = cumulative
			}
			res.Balance.Rows = append(res.Balance.Rows, row)
		}
	}

	for _, class := range []model.Class{model.ClassRevenue, model.ClassExpense} {
		for _, c := range groups[class] {
			row := newRow(c.account)
			for _, y := range years {
				row.Values[y] = c.net[y]
			}
			res.Income.Rows = append(res.Income.Rows, row)
		}
	}

	res.PlugYears = g.plug(&res.Balance, res.Income)
	return res
}

// plug writes the income-statement total into the period-result row for
// every year whose balance-sheet column is out of balance, and returns
// those years. The row is appended at most once.
func (g *Generator) plug(bs *model.Statement, is model.Statement) []int {
	var plugged []int
	for _, y := range bs.Years {
		if bs.Sum(y).Abs().LessThanOrEqual(g.Tolerance) {
			continue
		}
		income := is.Sum(y)
		if i := bs.Find(g.PlugNumber); i >= 0 {
			bs.Rows[i].Values[y] = income
		} else {
			row := model.StatementRow{Number: g.PlugNumber, Name: g.PlugName, Values: make(map[int]decimal.Decimal, len(bs.Years))}
			for _, other := range bs.Years {
				row.Values[other] = decimal.Zero
			}
			row.Values[y] = income
			bs.Rows = append(bs.Rows, row)
		}
		plugged = append(plugged, y)
	}
	return plugged
}

func newRow(acct model.Account) model.StatementRow {
	return model.StatementRow{
		Number: acct.Number,
		Name:   acct.Name,
		Values: make(map[int]decimal.Decimal),
	}
}
