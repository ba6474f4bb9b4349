package accounts

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/cleared-dev/glclean/internal/model"
)

var (
	labelPattern = regexp.MustCompile(`^_?(\d+)[_\s]+(.+)$`)
	separatorRun = regexp.MustCompile(`[_\s]+`)
)

var natureByDigit = map[byte]model.Nature{
	'1': model.NatureAsset,
	'2': model.NatureLiability,
	'3': model.NatureRevenue,
	'4': model.NatureDirectCost,
	'5': model.NaturePersonnel,
	'6': model.NatureOperating,
	'7': model.NatureAncillary,
	'8': model.NatureExtraordinary,
	'9': model.NatureClearing,
}

// ParseLabel splits a sheet label such as "_1020_Banque___UBS" or
// "1020 Banque UBS" into account number and name. Separator runs inside
// the name collapse to a single space.
func ParseLabel(label string) (number, name string, ok bool) {
	m := labelPattern.FindStringSubmatch(norm.NFC.String(strings.TrimSpace(label)))
	if m == nil {
		return "", "", false
	}
	name = strings.TrimSpace(separatorRun.ReplaceAllString(m[2], " "))
	if name == "" {
		return "", "", false
	}
	return m[1], name, true
}

// NatureOf returns the nature of an account number from its leading digit.
func NatureOf(number string) model.Nature {
	if number == "" {
		return model.NatureUnknown
	}
	if n, ok := natureByDigit[number[0]]; ok {
		return n
	}
	return model.NatureUnknown
}

// FromLabel builds an Account from a sheet label.
func FromLabel(label string) (model.Account, bool) {
	number, name, ok := ParseLabel(label)
	if !ok {
		return model.Account{}, false
	}
	return model.Account{Number: number, Name: name, Nature: NatureOf(number)}, true
}
