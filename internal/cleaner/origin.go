package cleaner

const unknownOrigin = "Écriture manuelle ou inconnue"

var originLabels = map[string]string{
	"F": "Comptabilité financière",
	"K": "Saisie facture d’achat",
	"k": "Paiement facture d’achat",
	"D": "Saisie facture de vente",
	"d": "Paiement facture de vente",
	"Y": "EBICS (Electronic Banking)",
	"L": "Salaire (Lohn)",
	"":  unknownOrigin,
}

// OriginLabel returns the description of an origin code. Codes are case
// sensitive: "K" records a purchase invoice, "k" its payment.
func OriginLabel(code string) string {
	if label, ok := originLabels[code]; ok {
		return label
	}
	return unknownOrigin
}
