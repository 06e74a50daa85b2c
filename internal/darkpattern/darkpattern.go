// Package darkpattern scans listing pages for manipulative UX signals. It is
// a separate system from the compliance rule engine: it looks at the raw page
// rather than structured disclosure fields, and its findings are merged into
// the violation list by the API layer.
package darkpattern

import (
	"regexp"
	"strings"

	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/model"
)

// Finding is one detected dark-pattern signal.
type Finding struct {
	Code     string         `json:"code"`
	Severity model.Severity `json:"severity"`
	Message  string         `json:"message"`
}

// pattern pairs a detection regex with the finding it produces. Patterns run
// against the lowercased page text, so they are written lowercase.
type pattern struct {
	code     string
	severity model.Severity
	message  string
	re       *regexp.Regexp
}

var patterns = []pattern{
	{
		code:     "DP-URGENCY",
		severity: model.SeverityMedium,
		message:  "False urgency: countdown or deadline pressure on the listing",
		re:       regexp.MustCompile(`hurry|offer ends|ends in \d|limited time|sale ends|deal of the day ends`),
	},
	{
		code:     "DP-SCARCITY",
		severity: model.SeverityMedium,
		message:  "Scarcity pressure: low-stock claim used as a purchase prod",
		re:       regexp.MustCompile(`only \d+ left|last \d+ (?:items?|pieces?)|almost sold out|selling fast`),
	},
	{
		code:     "DP-CONFIRMSHAME",
		severity: model.SeverityLow,
		message:  "Confirmshaming: decline option worded to guilt the buyer",
		re:       regexp.MustCompile(`no,? i (?:don.?t|do not) want|no thanks,? i (?:hate|prefer)`),
	},
	{
		code:     "DP-SUBSCRIPTION",
		severity: model.SeverityHigh,
		message:  "Hidden subscription: recurring charge attached to a one-off purchase",
		re:       regexp.MustCompile(`auto.?renew|subscribe (?:and|&) save|recurring (?:payment|charge)|billed (?:monthly|annually) after`),
	},
	{
		code:     "DP-PRETICKED",
		severity: model.SeverityMedium,
		message:  "Pre-ticked add-on: extra item or service opted in by default",
		re:       regexp.MustCompile(`checked[ ="']+checked|type="checkbox"[^>]*checked`),
	},
	{
		code:     "DP-PRICE-ANCHOR",
		severity: model.SeverityLow,
		message:  "Inflated anchor price: strikethrough price suggesting a discount",
		re:       regexp.MustCompile(`<(?:s|del|strike)>\s*(?:₹|rs\.?|inr)?\s*[\d,]+`),
	},
}

// Detect runs every pattern over the listing page and the product's own text
// fields. Each pattern reports at most once; findings preserve the pattern
// table order.
func Detect(p model.Product, page []byte) []Finding {
	haystack := strings.ToLower(string(page) + " " + p.Title + " " + p.Description)
	var out []Finding
	for _, pat := range patterns {
		if pat.re.MatchString(haystack) {
			out = append(out, Finding{Code: pat.code, Severity: pat.severity, Message: pat.message})
		}
	}
	return out
}
