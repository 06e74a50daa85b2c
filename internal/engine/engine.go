// Package engine implements the compliance rule engine: it walks the static
// rule table against an enriched product, emits violations for undisclosed
// required fields, and folds violation severities into a risk score.
package engine

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/enrich"
	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/model"
	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/rules"
)

const (
	// maxScore is the risk score of a clean scan; the score floor is zero.
	maxScore = 100

	advisoryMarker = " (advisory)"
)

// Engine evaluates products against an immutable rule table under a fixed
// policy. It holds no mutable state after construction, so a single Engine is
// safe for concurrent use across simultaneous scans.
type Engine struct {
	table     []rules.Rule
	skip      map[string]struct{}
	advisory  map[string]struct{}
	penalties map[model.Severity]int
	res       *resolver
}

// New builds an engine from an ordered rule table and a policy. The table and
// policy are treated as immutable from here on.
func New(table []rules.Rule, policy Policy) *Engine {
	e := &Engine{
		table:     table,
		skip:      map[string]struct{}{},
		advisory:  map[string]struct{}{},
		penalties: map[model.Severity]int{},
		res:       newResolver(policy),
	}
	for _, id := range policy.Skip {
		e.skip[id] = struct{}{}
	}
	for _, id := range policy.Advisory {
		e.advisory[id] = struct{}{}
	}
	for sev, pen := range policy.Penalties {
		e.penalties[sev] = pen
	}
	return e
}

// FieldPresent reports whether the logical field resolves as disclosed on the
// product. Unknown field names resolve to false rather than erroring.
func (e *Engine) FieldPresent(p model.Product, field string) bool {
	return e.res.present(p, field)
}

// Evaluate enriches a copy of the product and checks it against the rule
// table in declared order. It returns the enriched product, the risk score in
// [0,100], and the violations in table order. Evaluation never fails: unknown
// fields or categories degrade to "no violation for that rule".
func (e *Engine) Evaluate(p model.Product) (model.Product, int, []model.Violation) {
	enriched := enrich.Apply(p)

	score := maxScore
	violations := make([]model.Violation, 0, len(e.table))

	for _, rule := range e.table {
		if _, skipped := e.skip[rule.ID]; skipped {
			continue
		}
		if rule.Category != rules.CategoryAll && rule.Category != enriched.Category {
			continue
		}

		missing := e.missingFields(enriched, rule)
		if len(missing) == 0 {
			continue
		}

		v := e.buildViolation(rule, missing)
		score -= e.penalties[v.Severity]
		violations = append(violations, v)
	}

	if score < 0 {
		score = 0
	}
	log.Debug().
		Str("title", enriched.Title).
		Int("risk_score", score).
		Int("violations", len(violations)).
		Msg("compliance evaluation complete")
	return enriched, score, violations
}

// missingFields returns the rule's required fields that are neither
// unverifiable nor resolvable on the product, preserving declaration order.
// Field names the resolver does not know are ignored, never penalized.
func (e *Engine) missingFields(p model.Product, rule rules.Rule) []string {
	var missing []string
	for _, f := range rule.RequiredFields {
		if !e.res.known(f) {
			continue
		}
		if _, ok := e.res.unverifiable[f]; ok {
			continue
		}
		if !e.res.present(p, f) {
			missing = append(missing, f)
		}
	}
	return missing
}

func (e *Engine) buildViolation(rule rules.Rule, missing []string) model.Violation {
	fields := strings.Join(missing, ", ")
	desc := fmt.Sprintf("%s [%s]: missing %s", rule.Title, rule.Law, fields)

	severity := rule.Severity
	if _, advisory := e.advisory[rule.ID]; advisory {
		severity = model.SeverityLow
		desc += advisoryMarker
	}

	suggestion := rule.Suggestion
	if suggestion == "" {
		suggestion = fmt.Sprintf("Ensure %s is clearly displayed on the product page", fields)
	}
	return model.Violation{
		RuleID:      rule.ID,
		Severity:    severity,
		Description: desc,
		Suggestion:  suggestion,
	}
}

// Penalty returns the configured risk-score deduction for a severity. The API
// layer reuses it when folding dark-pattern findings into the same score.
func (e *Engine) Penalty(sev model.Severity) int {
	return e.penalties[sev]
}
