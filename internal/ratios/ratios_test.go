package ratios

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/glclean/internal/model"
)

func row(number, name string, values map[int]string) model.StatementRow {
	r := model.StatementRow{Number: number, Name: name, Values: make(map[int]decimal.Decimal)}
	for y, v := range values {
		r.Values[y] = decimal.RequireFromString(v)
	}
	return r
}

// sample is a small balanced company for 2023.
func sample() (model.Statement, model.Statement) {
	bs := model.Statement{
		Years: []int{2023},
		Rows: []model.StatementRow{
			row("1000", "Caisse", map[int]string{2023: "200"}),
			row("1100", "Débiteurs", map[int]string{2023: "300"}),
			row("1200", "Stock", map[int]string{2023: "100"}),
			row("1500", "Machines", map[int]string{2023: "400"}),
			row("2000", "Créanciers", map[int]string{2023: "250"}),
			row("2400", "Emprunt", map[int]string{2023: "250"}),
			row("2800", "Capital", map[int]string{2023: "500"}),
		},
	}
	is := model.Statement{
		Years: []int{2023},
		Rows: []model.StatementRow{
			row("3000", "Ventes", map[int]string{2023: "-1000"}),
			row("4000", "Achats", map[int]string{2023: "400"}),
			row("5000", "Salaires", map[int]string{2023: "200"}),
			row("6000", "Loyer", map[int]string{2023: "100"}),
			row("8000", "Intérêts", map[int]string{2023: "50"}),
		},
	}
	return bs, is
}

func TestCompute(t *testing.T) {
	bs, is := sample()
	got := Compute(bs, is)
	require.Contains(t, got, 2023)
	s := got[2023]

	// current assets 600, current liabilities 250
	assert.InDelta(t, 2.4, s.CurrentRatio, 1e-9)
	assert.InDelta(t, 2.0, s.QuickRatio, 1e-9)
	assert.InDelta(t, 0.8, s.CashRatio, 1e-9)
	assert.InDelta(t, 350, s.WorkingCapital, 1e-9)

	// revenue 1000, net income 250, EBITDA 300, total assets 1000, equity 500
	assert.InDelta(t, 25, s.NetMargin, 1e-9)
	assert.InDelta(t, 25, s.ROA, 1e-9)
	assert.InDelta(t, 50, s.ROE, 1e-9)
	assert.InDelta(t, 30, s.EBITDAMargin, 1e-9)

	assert.InDelta(t, 0.5, s.EquityRatio, 1e-9)
	assert.InDelta(t, 1.0, s.DebtToEquity, 1e-9)
	assert.InDelta(t, 0.5, s.DebtToAssets, 1e-9)
	assert.InDelta(t, 6.0, s.InterestCoverage, 1e-9)

	assert.InDelta(t, 1.0, s.AssetTurnover, 1e-9)
	assert.InDelta(t, 2.5, s.FixedAssetTurnover, 1e-9)
}

func TestCompute_ZeroDenominators(t *testing.T) {
	bs := model.Statement{Years: []int{2023}}
	is := model.Statement{Years: []int{2023}}

	s := Compute(bs, is)[2023]
	assert.Equal(t, Set{}, s)
}

func TestCompute_OnlyRevenue(t *testing.T) {
	bs := model.Statement{Years: []int{2023}, Rows: []model.StatementRow{
		row("1000", "Caisse", map[int]string{2023: "100"}),
	}}
	is := model.Statement{Years: []int{2023}, Rows: []model.StatementRow{
		row("3000", "Ventes", map[int]string{2023: "-100"}),
	}}

	s := Compute(bs, is)[2023]
	assert.Zero(t, s.CurrentRatio)
	assert.Zero(t, s.ROE)
	assert.Zero(t, s.InterestCoverage)
	assert.Zero(t, s.FixedAssetTurnover)
	assert.InDelta(t, 100, s.NetMargin, 1e-9)
	assert.InDelta(t, 100, s.ROA, 1e-9)
}

func TestCompute_YearsFollowBalanceSheet(t *testing.T) {
	bs := model.Statement{Years: []int{2022, 2023}}
	got := Compute(bs, model.Statement{Years: []int{2022, 2023}})
	assert.Len(t, got, 2)
	assert.Contains(t, got, 2022)
}

func TestSet_JSONKeys(t *testing.T) {
	raw, err := json.Marshal(Set{CurrentRatio: 1.5, ROE: 12})
	require.NoError(t, err)

	var m map[string]float64
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Len(t, m, 14)
	assert.Equal(t, 1.5, m["current_ratio"])
	assert.Equal(t, 12.0, m["roe"])
}
