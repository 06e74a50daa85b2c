package model

import "time"

// Severity grades how serious a disclosure violation is. The three levels map
// directly onto the risk-score penalties applied by the rule engine.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// Known reports whether s is one of the three recognized levels.
func (s Severity) Known() bool {
	switch s {
	case SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// Product is a scraped e-commerce listing. Every field is optional: an empty
// string means the page did not disclose the value, and callers must treat
// empty and absent as the same thing. The scraper constructs it, the
// enrichment step derives a populated copy, and everything downstream reads it
// without modifying it.
type Product struct {
	URL              string `json:"url,omitempty"`
	Title            string `json:"title,omitempty"`
	Brand            string `json:"brand,omitempty"`
	Manufacturer     string `json:"manufacturer,omitempty"`
	Seller           string `json:"seller,omitempty"`
	Price            string `json:"price,omitempty"`
	Description      string `json:"description,omitempty"`
	TechnicalDetails string `json:"technical_details,omitempty"`
	OriginCountry    string `json:"origin_country,omitempty"`
	Usage            string `json:"usage,omitempty"`
	Returns          string `json:"returns,omitempty"`
	Delivery         string `json:"delivery,omitempty"`
	Warranty         string `json:"warranty,omitempty"`
	Category         string `json:"category,omitempty"`

	// Extraction-only fields. These are never scraped directly; they are
	// pulled out of the technical-details blob by the heuristic extractor.
	Ingredients         string `json:"ingredients,omitempty"`
	Expiry              string `json:"expiry,omitempty"`
	CustomerCareContact string `json:"customer_care_contact,omitempty"`
	Importer            string `json:"importer,omitempty"`
	Packer              string `json:"packer,omitempty"`
}

// Violation is a single failed disclosure check. Dark-pattern findings are
// converted into the same shape by the API layer so that report rendering and
// persistence see one uniform list.
type Violation struct {
	RuleID      string   `json:"rule_id"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Suggestion  string   `json:"suggestion"`
}

// TrustIndex summarizes seller/returns/origin disclosure plus violation
// severity into a separate buyer-facing score. It is computed outside the
// rule engine and is distinct from the risk score.
type TrustIndex struct {
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// ScanResult aggregates everything a single scan produced. The ID and
// Reference are assigned by the store when the result is persisted; the
// evaluation core never assigns identifiers.
type ScanResult struct {
	ID         uint        `json:"id,omitempty"`
	Reference  string      `json:"reference,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
	Product    Product     `json:"product"`
	RiskScore  int         `json:"risk_score"`
	Violations []Violation `json:"violations"`
	TrustIndex *TrustIndex `json:"trust_index,omitempty"`
}
