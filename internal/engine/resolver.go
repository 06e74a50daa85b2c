package engine

import (
	"regexp"
	"strings"

	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/model"
)

// quantityRe finds a net-quantity declaration in a product title: a number
// followed, with at most one space, by a unit token.
var quantityRe = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s?(?:ml|l|g|kg)\b`)

// accessor reads one concrete product attribute.
type accessor func(model.Product) string

// productAccessors maps every concrete attribute name to its reader. Built
// once at package init; lookups never touch reflection.
var productAccessors = map[string]accessor{
	"url":                   func(p model.Product) string { return p.URL },
	"title":                 func(p model.Product) string { return p.Title },
	"brand":                 func(p model.Product) string { return p.Brand },
	"manufacturer":          func(p model.Product) string { return p.Manufacturer },
	"seller":                func(p model.Product) string { return p.Seller },
	"price":                 func(p model.Product) string { return p.Price },
	"description":           func(p model.Product) string { return p.Description },
	"technical_details":     func(p model.Product) string { return p.TechnicalDetails },
	"origin_country":        func(p model.Product) string { return p.OriginCountry },
	"usage":                 func(p model.Product) string { return p.Usage },
	"returns":               func(p model.Product) string { return p.Returns },
	"delivery":              func(p model.Product) string { return p.Delivery },
	"warranty":              func(p model.Product) string { return p.Warranty },
	"category":              func(p model.Product) string { return p.Category },
	"ingredients":           func(p model.Product) string { return p.Ingredients },
	"expiry":                func(p model.Product) string { return p.Expiry },
	"customer_care_contact": func(p model.Product) string { return p.CustomerCareContact },
	"importer":              func(p model.Product) string { return p.Importer },
	"packer":                func(p model.Product) string { return p.Packer },
}

// resolver decides whether a logical disclosure field is present on a
// product. It is built once per engine from the policy's alias and
// unverifiable sets.
type resolver struct {
	aliases      map[string][]string
	unverifiable map[string]struct{}
}

func newResolver(p Policy) *resolver {
	r := &resolver{
		aliases:      map[string][]string{},
		unverifiable: map[string]struct{}{},
	}
	for logical, attrs := range p.Aliases {
		r.aliases[logical] = append([]string(nil), attrs...)
	}
	for _, f := range p.Unverifiable {
		r.unverifiable[f] = struct{}{}
	}
	return r
}

// known reports whether the logical field name means anything to this
// resolver: a derived field, an aliased field, an unverifiable field, or a
// concrete product attribute. Rules referencing unknown names are skipped by
// the engine instead of penalized, so the rule table stays forward compatible.
func (r *resolver) known(field string) bool {
	if field == "quantity" {
		return true
	}
	if _, ok := r.aliases[field]; ok {
		return true
	}
	if _, ok := r.unverifiable[field]; ok {
		return true
	}
	_, ok := productAccessors[field]
	return ok
}

// present reports whether the logical field resolves on the product.
// Resolution order: derived fields, then aliased attributes, then the
// unverifiable override, then a label-mention fallback against raw text.
// Unknown names resolve to false; nothing here can fail.
func (r *resolver) present(p model.Product, field string) bool {
	// Derived fields are computed, never read from a stored attribute.
	if field == "quantity" {
		return quantityRe.MatchString(p.Title)
	}

	attrs, aliased := r.aliases[field]
	if !aliased {
		attrs = []string{field}
	}
	for _, attr := range attrs {
		if get, ok := productAccessors[attr]; ok {
			if strings.TrimSpace(get(p)) != "" {
				return true
			}
		}
	}

	// Fields we cannot confirm from a scraped page count as present so
	// they never feed violations.
	if _, ok := r.unverifiable[field]; ok {
		return true
	}

	// Last resort: the raw listing text mentions the disclosure label even
	// though no structured field captured it.
	label := strings.ReplaceAll(field, "_", " ")
	raw := strings.ToLower(p.TechnicalDetails + " " + p.Description)
	return strings.Contains(raw, label+":")
}
