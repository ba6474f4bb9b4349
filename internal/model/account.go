package model

// Nature is the coarse classification of an account derived from the
// leading digit of its number.
type Nature string

const (
	NatureAsset         Nature = "Actif"
	NatureLiability     Nature = "Passif"
	NatureRevenue       Nature = "Produit"
	NatureDirectCost    Nature = "Charge directe"
	NaturePersonnel     Nature = "Charges de personnel"
	NatureOperating     Nature = "Autres charges d’exploitation"
	NatureAncillary     Nature = "Charges/produits annexes"
	NatureExtraordinary Nature = "Charges/produits extraordinaires"
	NatureClearing      Nature = "Comptes auxiliaires/clôtures"
	NatureUnknown       Nature = "Inconnue"
)

// Class places an account on one of the two financial statements.
type Class string

const (
	ClassNone      Class = ""
	ClassAsset     Class = "Asset"
	ClassLiability Class = "Liability"
	ClassRevenue   Class = "Revenue"
	ClassExpense   Class = "Expense"
)

// OnBalanceSheet reports whether accounts of this class carry cumulative balances.
func (c Class) OnBalanceSheet() bool {
	return c == ClassAsset || c == ClassLiability
}

// OnIncomeStatement reports whether accounts of this class carry yearly nets.
func (c Class) OnIncomeStatement() bool {
	return c == ClassRevenue || c == ClassExpense
}

// Account is one sheet of the general-ledger export.
type Account struct {
	Number string
	Name   string
	Nature Nature
}

// Label returns "<number> <name>", the form used for cleaned sheet names.
func (a Account) Label() string {
	if a.Name == "" {
		return a.Number
	}
	return a.Number + " " + a.Name
}

// LeadingDigit returns the first byte of the account number, or 0 when empty.
func (a Account) LeadingDigit() byte {
	if a.Number == "" {
		return 0
	}
	return a.Number[0]
}
