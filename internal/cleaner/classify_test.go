package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cleared-dev/glclean/internal/model"
)

// row builds a RawRow from the columns that matter in these tests.
func row(date, desc, contra, debit, credit, balance string) model.RawRow {
	var r model.RawRow
	r[model.ColDate] = date
	r[model.ColDescription] = desc
	r[model.ColContra] = contra
	r[model.ColDebit] = debit
	r[model.ColCredit] = credit
	r[model.ColBalance] = balance
	return r
}

func TestIsDatedEntry(t *testing.T) {
	tests := []struct {
		date string
		want bool
	}{
		{"15.03.2023", true},
		{" 15.03.2023 ", true},
		{"1.3.2023", false},
		{"2023-03-15", false},
		{"Solde 01.01.2023 - 31.12.2023", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsDatedEntry(row(tt.date, "", "", "", "", "")), "IsDatedEntry(%q)", tt.date)
	}
}

func TestIsVATRow(t *testing.T) {
	tests := []struct {
		name     string
		row      model.RawRow
		lastDate string
		want     bool
	}{
		{"contra 117", row("", "Vorsteuer", "1170", "", "7.7", ""), "10.01.2023", true},
		{"contra 2200", row("", "", "2200", "3", "", ""), "10.01.2023", true},
		{"description TVA", row("", "tva 7.7%", "", "", "", "12"), "10.01.2023", true},
		{"description VAT", row("", "Input VAT", "", "1", "", ""), "10.01.2023", true},
		{"no amounts", row("", "TVA", "1170", "", "", ""), "10.01.2023", false},
		{"non-numeric amount counts as present", row("", "TVA", "", "n/a", "", ""), "10.01.2023", true},
		{"dated row", row("10.01.2023", "TVA", "1170", "1", "", ""), "10.01.2023", false},
		{"unrelated contra", row("", "Frais", "1020", "1", "", ""), "10.01.2023", false},
		{"no anchor", row("", "TVA", "1170", "1", "", ""), "", false},
		{"exchange compensation", row("", "Compensation de change TVA", "1170", "1", "", ""), "10.01.2023", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsVATRow(tt.row, tt.lastDate))
		})
	}
}

func TestIsExchangeCompensation(t *testing.T) {
	assert.True(t, IsExchangeCompensation(row("", "Compensation de change EUR", "", "", "", "")))
	assert.True(t, IsExchangeCompensation(row("", "COMPENSATION DE CHANGE", "", "", "", "")))
	assert.False(t, IsExchangeCompensation(row("", "Frais de compensation de change", "", "", "", "")))
}

func TestIsLinkPlaceholder(t *testing.T) {
	assert.True(t, IsLinkPlaceholder(row("", "https://bank.example/doc/1", "", "", "", "")))
	assert.False(t, IsLinkPlaceholder(row("10.01.2023", "https://bank.example/doc/1", "", "", "", "")))
	assert.False(t, IsLinkPlaceholder(row("", "Paiement", "", "", "", "")))
}

func TestOriginLabel(t *testing.T) {
	assert.Equal(t, "Saisie facture d’achat", OriginLabel("K"))
	assert.Equal(t, "Paiement facture d’achat", OriginLabel("k"))
	assert.Equal(t, unknownOrigin, OriginLabel(""))
	assert.Equal(t, unknownOrigin, OriginLabel("Z"))
}

func TestMentionsVAT(t *testing.T) {
	assert.True(t, MentionsVAT("1171", ""))
	assert.True(t, MentionsVAT("", "Décompte TVA T1"))
	assert.False(t, MentionsVAT("1020", "Virement"))
}
