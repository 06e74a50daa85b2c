// Package enrich derives structured product fields that the scraper could not
// fill directly: it runs the heuristic extractor over the technical-details
// blob and falls back to title inference. Enrichment is a pure transformation;
// the input product is never mutated, so concurrent scans can share nothing.
package enrich

import (
	"strings"

	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/extract"
	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/model"
	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/normalize"
)

// usageKeywords mark personal-care products whose title alone implies how the
// product is used.
var usageKeywords = []string{"lotion", "cream", "moistur"}

// inferredUsage is the fixed usage text assigned on a keyword match.
const inferredUsage = "skin application"

// Apply returns a copy of p with extracted and inferred fields filled in.
// Extractor output only lands on fields that are currently empty; scraped
// data always wins over extraction. Title inference runs after the merge, so
// it is the lowest-priority fallback and never fires for a field extraction
// already supplied.
func Apply(p model.Product) model.Product {
	out := p

	if strings.TrimSpace(out.TechnicalDetails) != "" {
		merge(&out, extract.Fields(out.TechnicalDetails))
	}

	title := strings.TrimSpace(out.Title)
	if out.Brand == "" && title != "" {
		// The inferred brand goes through the same canonical form the
		// extractor produces, so downstream matching treats both alike.
		out.Brand = normalize.Text(strings.Fields(title)[0])
	}
	if out.Usage == "" && containsAny(strings.ToLower(title), usageKeywords) {
		out.Usage = inferredUsage
	}
	if out.Category == "" {
		out.Category = InferCategory(out)
	}
	return out
}

// merge writes extracted fields onto the product wherever the product's own
// field is still empty.
func merge(p *model.Product, fields map[string]string) {
	set := func(dst *string, key string) {
		if *dst == "" {
			if v, ok := fields[key]; ok {
				*dst = v
			}
		}
	}
	set(&p.Brand, extract.FieldBrand)
	set(&p.Manufacturer, extract.FieldManufacturer)
	set(&p.OriginCountry, extract.FieldOriginCountry)
	set(&p.Usage, extract.FieldUsage)
	set(&p.Ingredients, extract.FieldIngredients)
	set(&p.Expiry, extract.FieldExpiry)
	set(&p.CustomerCareContact, extract.FieldCustomerCareContact)
	set(&p.Importer, extract.FieldImporter)
	set(&p.Packer, extract.FieldPacker)
}

// categoryKeywords gate category-specific rules. Matching is deliberately
// coarse: a wrong category only changes which optional rule groups run, and
// an unmatched product simply skips all category-specific rules.
var categoryKeywords = map[string][]string{
	"personal_care": {"lotion", "cream", "moistur", "shampoo", "soap", "serum", "sunscreen", "face wash"},
	"food":          {"chocolate", "biscuit", "snack", "tea", "coffee", "juice", "masala", "flour", "edible"},
	"electronics":   {"charger", "earphone", "headphone", "bluetooth", "battery", "adapter", "usb", "power bank"},
}

// InferCategory guesses a product category from the title and description.
// Returns empty when nothing matches; category-specific rules then do not
// apply.
func InferCategory(p model.Product) string {
	haystack := strings.ToLower(p.Title + " " + p.Description)
	for _, category := range []string{"personal_care", "food", "electronics"} {
		if containsAny(haystack, categoryKeywords[category]) {
			return category
		}
	}
	return ""
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
