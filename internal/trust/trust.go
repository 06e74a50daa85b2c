// Package trust computes the buyer-facing trust index: a summary of
// seller/returns/origin disclosure plus violation severity. It is computed
// outside the rule engine and deliberately uses smaller weights, so a listing
// can carry a poor risk score while keeping moderate trust, and vice versa.
package trust

import (
	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/model"
)

const (
	maxScore          = 100
	missingFieldCost  = 10
	highViolationCost = 5
	medViolationCost  = 3
)

// Compute derives the trust index for an enriched product and the full merged
// violation list (compliance plus dark-pattern). The score is clamped to
// [0,100] and each deduction is explained in Reasons.
func Compute(p model.Product, violations []model.Violation) model.TrustIndex {
	score := maxScore
	reasons := []string{}

	if p.Seller == "" {
		score -= missingFieldCost
		reasons = append(reasons, "Seller information missing.")
	}
	if p.Returns == "" {
		score -= missingFieldCost
		reasons = append(reasons, "Returns policy unclear.")
	}
	if p.OriginCountry == "" {
		score -= missingFieldCost
		reasons = append(reasons, "Country of origin not disclosed.")
	}

	for _, v := range violations {
		switch v.Severity {
		case model.SeverityHigh:
			score -= highViolationCost
		case model.SeverityMedium:
			score -= medViolationCost
		}
	}

	if score < 0 {
		score = 0
	}
	return model.TrustIndex{Score: score, Reasons: reasons}
}
