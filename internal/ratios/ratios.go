// Package ratios derives per-year financial ratios and chart breakdowns
// from a balance sheet and an income statement.
package ratios

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/glclean/internal/model"
)

// Set holds the ratios for one year. Percentages are already scaled by 100.
type Set struct {
	CurrentRatio       float64 `json:"current_ratio"`
	QuickRatio         float64 `json:"quick_ratio"`
	CashRatio          float64 `json:"cash_ratio"`
	WorkingCapital     float64 `json:"working_capital"`
	NetMargin          float64 `json:"net_margin"`
	ROA                float64 `json:"roa"`
	ROE                float64 `json:"roe"`
	EBITDAMargin       float64 `json:"ebitda_margin"`
	EquityRatio        float64 `json:"equity_ratio"`
	DebtToEquity       float64 `json:"debt_to_equity"`
	DebtToAssets       float64 `json:"debt_to_assets"`
	InterestCoverage   float64 `json:"interest_coverage"`
	AssetTurnover      float64 `json:"asset_turnover"`
	FixedAssetTurnover float64 `json:"fixed_asset_turnover"`
}

// Account-number prefixes of each bucket.
var (
	currentAssetPrefixes     = []string{"10", "11", "12", "13"}
	cashPrefixes             = []string{"10"}
	inventoryPrefixes        = []string{"12"}
	fixedAssetPrefixes       = []string{"15", "16", "17", "18"}
	totalAssetPrefixes       = []string{"1"}
	currentLiabilityPrefixes = []string{"20", "21", "22", "23"}
	longTermDebtPrefixes     = []string{"24", "25", "27"}
	equityPrefixes           = []string{"28", "29"}

	revenuePrefixes   = []string{"3"}
	cogsPrefixes      = []string{"4"}
	personnelPrefixes = []string{"5"}
	otherPrefixes     = []string{"6", "7"}
	financialPrefixes = []string{"8"}
)

var hundred = decimal.NewFromInt(100)

// buckets are the aggregates of one year.
type buckets struct {
	currentAssets, cash, inventory, fixedAssets, totalAssets decimal.Decimal
	currentLiabilities, longTermDebt, equity                 decimal.Decimal
	revenue, cogs, personnel, other, financial               decimal.Decimal
}

func bucketize(bs, is model.Statement, year int) buckets {
	return buckets{
		currentAssets:      bs.SumPrefix(year, currentAssetPrefixes...),
		cash:               bs.SumPrefix(year, cashPrefixes...),
		inventory:          bs.SumPrefix(year, inventoryPrefixes...),
		fixedAssets:        bs.SumPrefix(year, fixedAssetPrefixes...),
		totalAssets:        bs.SumPrefix(year, totalAssetPrefixes...),
		currentLiabilities: bs.SumPrefix(year, currentLiabilityPrefixes...),
		longTermDebt:       bs.SumPrefix(year, longTermDebtPrefixes...),
		equity:             bs.SumPrefix(year, equityPrefixes...),

		// Revenues are stored negative; every income bucket is a magnitude.
		revenue:   is.SumPrefix(year, revenuePrefixes...).Abs(),
		cogs:      is.SumPrefix(year, cogsPrefixes...).Abs(),
		personnel: is.SumPrefix(year, personnelPrefixes...).Abs(),
		other:     is.SumPrefix(year, otherPrefixes...).Abs(),
		financial: is.SumPrefix(year, financialPrefixes...).Abs(),
	}
}

// Compute returns the ratio set for every year on the balance sheet's axis.
func Compute(bs, is model.Statement) map[int]Set {
	out := make(map[int]Set, len(bs.Years))
	for _, y := range bs.Years {
		out[y] = compute(bucketize(bs, is, y))
	}
	return out
}

func compute(b buckets) Set {
	totalDebt := b.currentLiabilities.Add(b.longTermDebt)
	workingCapital := b.currentAssets.Sub(b.currentLiabilities)
	totalExpenses := b.cogs.Add(b.personnel).Add(b.other).Add(b.financial)
	netIncome := b.revenue.Sub(totalExpenses)
	ebitda := b.revenue.Sub(b.cogs).Sub(b.personnel).Sub(b.other)

	return Set{
		CurrentRatio:       safeDiv(b.currentAssets, b.currentLiabilities),
		QuickRatio:         safeDiv(b.currentAssets.Sub(b.inventory), b.currentLiabilities),
		CashRatio:          safeDiv(b.cash, b.currentLiabilities),
		WorkingCapital:     workingCapital.InexactFloat64(),
		NetMargin:          percent(netIncome, b.revenue),
		ROA:                percent(netIncome, b.totalAssets),
		ROE:                percent(netIncome, b.equity),
		EBITDAMargin:       percent(ebitda, b.revenue),
		EquityRatio:        safeDiv(b.equity, b.totalAssets),
		DebtToEquity:       safeDiv(totalDebt, b.equity),
		DebtToAssets:       safeDiv(totalDebt, b.totalAssets),
		InterestCoverage:   safeDiv(ebitda, b.financial),
		AssetTurnover:      safeDiv(b.revenue, b.totalAssets),
		FixedAssetTurnover: safeDiv(b.revenue, b.fixedAssets),
	}
}

// safeDiv divides, returning 0 when the denominator is exactly zero.
func safeDiv(numerator, denominator decimal.Decimal) float64 {
	if denominator.IsZero() {
		return 0
	}
	return numerator.Div(denominator).InexactFloat64()
}

func percent(numerator, denominator decimal.Decimal) float64 {
	if denominator.IsZero() {
		return 0
	}
	return numerator.Div(denominator).Mul(hundred).InexactFloat64()
}
