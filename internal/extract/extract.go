package extract

import (
	"regexp"
	"strings"

	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/normalize"
)

// Logical field names produced by Fields. They match the extraction-only
// attributes on the product record so the enrichment step can merge them
// without a translation table.
const (
	FieldBrand               = "brand"
	FieldManufacturer        = "manufacturer"
	FieldOriginCountry       = "origin_country"
	FieldUsage               = "usage"
	FieldIngredients         = "ingredients"
	FieldExpiry              = "expiry"
	FieldCustomerCareContact = "customer_care_contact"
	FieldImporter            = "importer"
	FieldPacker              = "packer"
)

// fieldPatterns anchor each logical field on the label vocabulary that
// marketplace technical-details blobs actually use. Captures run up to the
// next |-delimited segment or end of string. Where a pattern has alternative
// groups the first non-empty capture wins, checked left to right.
var fieldPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{FieldBrand, regexp.MustCompile(`brand\s*:\s*([^|]+)`)},
	{FieldManufacturer, regexp.MustCompile(`manufacturer\s*:\s*([^|]+)`)},
	{FieldOriginCountry, regexp.MustCompile(`country of origin\s*:\s*([^|]+)|country as labeled\s*:\s*([^|]+)`)},
	{FieldUsage, regexp.MustCompile(`usage\s*:\s*([^|]+)`)},
	{FieldIngredients, regexp.MustCompile(`ingredients\s*:\s*([^|]+)`)},
	{FieldExpiry, regexp.MustCompile(`(?:expiry|best before)\s*:\s*([^|]+)`)},
	{FieldCustomerCareContact, regexp.MustCompile(`((?:toll free|customer care)[^|]*)`)},
	{FieldImporter, regexp.MustCompile(`importer\s*contact\s*information\s*:\s*([^|]+)`)},
	{FieldPacker, regexp.MustCompile(`packer\s*contact\s*information\s*:\s*([^|]+)`)},
}

// Fields applies one heuristic pattern per logical field against a
// technical-details blob and returns whatever matched, normalized. A field
// with no match is simply absent from the result; a partial or empty mapping
// is a normal outcome, never an error. Empty input yields an empty mapping.
func Fields(blob string) map[string]string {
	out := map[string]string{}
	if strings.TrimSpace(blob) == "" {
		return out
	}
	lowered := strings.ToLower(blob)
	for _, fp := range fieldPatterns {
		m := fp.re.FindStringSubmatch(lowered)
		if m == nil {
			continue
		}
		for _, g := range m[1:] {
			if g == "" {
				continue
			}
			if v := normalize.Text(g); v != "" {
				out[fp.name] = v
			}
			break
		}
	}
	return out
}
