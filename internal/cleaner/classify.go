package cleaner

import (
	"regexp"
	"strings"

	"github.com/cleared-dev/glclean/internal/model"
)

var (
	datePattern = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)
	vatPattern  = regexp.MustCompile(`(?i)TVA|VAT`)
)

// vatContraPrefixes are the VAT control accounts of the Swiss chart.
var vatContraPrefixes = []string{"117", "2200"}

const exchangePrefix = "compensation de change"

// IsDatedEntry reports whether the row's date field is a dd.mm.yyyy date.
func IsDatedEntry(row model.RawRow) bool {
	return datePattern.MatchString(strings.TrimSpace(row[model.ColDate]))
}

// IsVATRow reports whether row is an undated VAT adjustment that can be
// attached to the dated entry at lastDate. An empty lastDate means no anchor
// has been seen and the row is unclassifiable.
//
// Exchange-compensation rows are never VAT rows, even when their text
// mentions VAT.
func IsVATRow(row model.RawRow, lastDate string) bool {
	if lastDate == "" || IsDatedEntry(row) || IsExchangeCompensation(row) {
		return false
	}
	if !present(row[model.ColDebit]) && !present(row[model.ColCredit]) && !present(row[model.ColBalance]) {
		return false
	}
	return MentionsVAT(row[model.ColContra], row[model.ColDescription])
}

// MentionsVAT reports whether a contra account or text ties a line to VAT.
func MentionsVAT(contra, text string) bool {
	return model.HasAnyPrefix(contra, vatContraPrefixes...) || vatPattern.MatchString(text)
}

// IsExchangeCompensation reports whether the row is a currency
// compensation line, which the cleaner drops.
func IsExchangeCompensation(row model.RawRow) bool {
	return strings.HasPrefix(strings.ToLower(row[model.ColDescription]), exchangePrefix)
}

// IsLinkPlaceholder reports whether the row only carries a hyperlink.
func IsLinkPlaceholder(row model.RawRow) bool {
	return !present(row[model.ColDate]) && strings.HasPrefix(row[model.ColDescription], "http")
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}
