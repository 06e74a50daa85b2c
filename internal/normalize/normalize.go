package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// Strip anything outside letters, digits, whitespace and _-.,
	// Scraped blobs carry invisible characters, currency symbols and
	// decorative punctuation that only confuse downstream matching.
	// Letters and digits match across scripts: Indian listings label
	// fields in Devanagari and other scripts, and those values must
	// survive canonicalization.
	junkRe       = regexp.MustCompile(`[^\p{L}\p{N}_\s\-.,]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Text canonicalizes a scraped text fragment for matching: NFKC fold,
// lowercase, strip characters outside {word, whitespace, -.,}, collapse
// whitespace runs to a single space, trim. Empty input yields empty output;
// the function is total and never fails.
func Text(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFKC.String(s)
	s = strings.ToLower(s)
	s = junkRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
