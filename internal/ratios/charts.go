package ratios

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/glclean/internal/model"
)

// Breakdown maps a category label to its amount for one year.
type Breakdown map[string]float64

// ChartData holds the per-year category breakdowns used by charts.
type ChartData struct {
	Assets      map[int]Breakdown `json:"assets_breakdown"`
	Liabilities map[int]Breakdown `json:"liabilities_breakdown"`
	Revenue     map[int]Breakdown `json:"revenue_breakdown"`
	Expenses    map[int]Breakdown `json:"expense_breakdown"`
}

// maxRevenueLabel is the rune limit of account names in the revenue breakdown.
const maxRevenueLabel = 30

type category struct {
	label    string
	prefixes []string
}

var (
	assetCategories = []category{
		{"Liquidités & équivalents", []string{"10"}},
		{"Créances", []string{"11"}},
		{"Stocks", []string{"12"}},
		{"Immobilisations", fixedAssetPrefixes},
		{"Autres actifs", []string{"13", "14"}},
	}
	liabilityCategories = []category{
		{"Dettes à court terme", currentLiabilityPrefixes},
		{"Dettes à long terme", longTermDebtPrefixes},
		{"Capitaux propres", equityPrefixes},
	}
	expenseCategories = []category{
		{"Coûts directs", []string{"4"}},
		{"Charges de personnel", []string{"5"}},
		{"Charges d'exploitation", []string{"6"}},
		{"Autres charges", []string{"7", "8"}},
	}
)

// Charts returns the asset, liability, revenue and expense breakdowns for
// every year on the balance sheet's axis.
//
// Assets keep positive categories only, liabilities keep non-zero ones.
// Revenue is listed per account as a magnitude; expenses are category
// magnitudes, zero categories dropped.
func Charts(bs, is model.Statement) ChartData {
	c := ChartData{
		Assets:      make(map[int]Breakdown, len(bs.Years)),
		Liabilities: make(map[int]Breakdown, len(bs.Years)),
		Revenue:     make(map[int]Breakdown, len(bs.Years)),
		Expenses:    make(map[int]Breakdown, len(bs.Years)),
	}
	for _, y := range bs.Years {
		c.Assets[y] = breakdown(bs, y, assetCategories, false, decimal.Decimal.IsPositive)
		c.Liabilities[y] = breakdown(bs, y, liabilityCategories, false, nonZero)
		c.Expenses[y] = breakdown(is, y, expenseCategories, true, decimal.Decimal.IsPositive)
		c.Revenue[y] = revenue(is, y)
	}
	return c
}

func nonZero(d decimal.Decimal) bool { return !d.IsZero() }

func breakdown(s model.Statement, year int, cats []category, magnitude bool, keep func(decimal.Decimal) bool) Breakdown {
	b := make(Breakdown)
	for _, cat := range cats {
		v := s.SumPrefix(year, cat.prefixes...)
		if magnitude {
			v = v.Abs()
		}
		if keep(v) {
			b[cat.label] = v.InexactFloat64()
		}
	}
	return b
}

func revenue(is model.Statement, year int) Breakdown {
	b := make(Breakdown)
	for _, r := range is.Rows {
		if !model.HasAnyPrefix(r.Number, revenuePrefixes...) {
			continue
		}
		v := r.Value(year)
		if v.IsZero() {
			continue
		}
		b[truncate(r.Name, maxRevenueLabel)] = v.Abs().InexactFloat64()
	}
	return b
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
