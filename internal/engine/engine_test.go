package engine

import (
	"reflect"
	"strings"
	"testing"

	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/model"
	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/rules"
)

func disclosureRule(id string, sev model.Severity, required ...string) rules.Rule {
	return rules.Rule{
		ID:             id,
		Title:          "Disclosure check " + id,
		Law:            "Test Law",
		Severity:       sev,
		Category:       rules.CategoryAll,
		RequiredFields: required,
	}
}

func TestEvaluate_ExtractedFieldsSatisfyRules(t *testing.T) {
	table := []rules.Rule{
		disclosureRule("R-1", model.SeverityHigh, "brand", "origin", "usage"),
	}
	e := New(table, DefaultPolicy())

	p := model.Product{
		TechnicalDetails: "Brand: Acme | Country of Origin: India | Usage: skin application",
	}
	enriched, score, violations := e.Evaluate(p)

	if enriched.Brand != "acme" || enriched.OriginCountry != "india" || enriched.Usage != "skin application" {
		t.Fatalf("unexpected enrichment: %+v", enriched)
	}
	if len(violations) != 0 {
		t.Fatalf("expected no violations, got %v", violations)
	}
	if score != 100 {
		t.Fatalf("score = %d, want 100", score)
	}
}

func TestEvaluate_SingleHighViolation(t *testing.T) {
	table := []rules.Rule{
		disclosureRule("R-HIGH", model.SeverityHigh, "seller", "returns", "origin_country"),
	}
	e := New(table, DefaultPolicy())

	_, score, violations := e.Evaluate(model.Product{Title: "Widget"})

	if len(violations) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(violations))
	}
	v := violations[0]
	if v.Severity != model.SeverityHigh {
		t.Fatalf("severity = %q, want HIGH", v.Severity)
	}
	for _, f := range []string{"seller", "returns", "origin_country"} {
		if !strings.Contains(v.Description, f) {
			t.Fatalf("description %q does not name missing field %q", v.Description, f)
		}
	}
	if score != 80 {
		t.Fatalf("score = %d, want 80", score)
	}
}

func TestEvaluate_AdvisoryDowngrade(t *testing.T) {
	table := []rules.Rule{
		disclosureRule("R-ADV", model.SeverityHigh, "seller", "returns", "origin_country"),
	}
	policy := DefaultPolicy()
	policy.Advisory = []string{"R-ADV"}
	e := New(table, policy)

	_, score, violations := e.Evaluate(model.Product{Title: "Widget"})

	if len(violations) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(violations))
	}
	if violations[0].Severity != model.SeverityLow {
		t.Fatalf("severity = %q, want LOW", violations[0].Severity)
	}
	if !strings.Contains(violations[0].Description, "(advisory)") {
		t.Fatalf("description %q lacks advisory marker", violations[0].Description)
	}
	if score != 95 {
		t.Fatalf("score = %d, want 95", score)
	}
}

func TestEvaluate_SkippedRuleNeverFires(t *testing.T) {
	table := []rules.Rule{
		disclosureRule("R-SKIP", model.SeverityHigh, "seller", "returns", "origin_country"),
	}
	policy := DefaultPolicy()
	policy.Skip = []string{"R-SKIP"}
	e := New(table, policy)

	_, score, violations := e.Evaluate(model.Product{})

	if len(violations) != 0 {
		t.Fatalf("skipped rule produced violations: %v", violations)
	}
	if score != 100 {
		t.Fatalf("score = %d, want 100", score)
	}
}

func TestEvaluate_CategoryGating(t *testing.T) {
	food := disclosureRule("R-FOOD", model.SeverityHigh, "seller")
	food.Category = "food"
	e := New([]rules.Rule{food}, DefaultPolicy())

	// No category on the product: category-specific rule is skipped.
	_, score, violations := e.Evaluate(model.Product{Title: "Mystery Box"})
	if len(violations) != 0 || score != 100 {
		t.Fatalf("uncategorized product should skip food rule: score=%d violations=%v", score, violations)
	}

	// Matching category fires the rule.
	_, score, violations = e.Evaluate(model.Product{Title: "Masala Snack Pack 100g"})
	if len(violations) != 1 {
		t.Fatalf("expected food rule to fire, got %v", violations)
	}
	if score != 80 {
		t.Fatalf("score = %d, want 80", score)
	}
}

func TestEvaluate_UnknownRequiredFieldIsIgnored(t *testing.T) {
	table := []rules.Rule{
		disclosureRule("R-FWD", model.SeverityMedium, "seller", "hologram_certificate"),
	}
	e := New(table, DefaultPolicy())

	// hologram_certificate is unknown to the resolver: it is skipped, not
	// penalized, so a product with a seller passes the rule cleanly.
	_, score, violations := e.Evaluate(model.Product{Seller: "Acme Retail"})
	if len(violations) != 0 {
		t.Fatalf("unknown field should be ignored, got %v", violations)
	}
	if score != 100 {
		t.Fatalf("score = %d, want 100", score)
	}
}

func TestEvaluate_ScoreClampedToFloor(t *testing.T) {
	var table []rules.Rule
	for _, id := range []string{"A", "B", "C", "D", "E", "F"} {
		table = append(table, disclosureRule("R-"+id, model.SeverityHigh, "seller"))
	}
	e := New(table, DefaultPolicy())

	_, score, violations := e.Evaluate(model.Product{})
	if len(violations) != 6 {
		t.Fatalf("expected 6 violations, got %d", len(violations))
	}
	if score != 0 {
		t.Fatalf("score = %d, want floor 0", score)
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	table, err := rules.Default()
	if err != nil {
		t.Fatal(err)
	}
	e := New(table, DefaultPolicy())
	p := model.Product{
		Title:            "Acme Moisturizing Lotion 200ml",
		TechnicalDetails: "Brand: Acme | Country of Origin: India",
		Seller:           "Acme Retail",
	}

	_, score1, v1 := e.Evaluate(p)
	_, score2, v2 := e.Evaluate(p)
	if score1 != score2 {
		t.Fatalf("score drifted: %d vs %d", score1, score2)
	}
	if !reflect.DeepEqual(v1, v2) {
		t.Fatalf("violations drifted:\n%v\n%v", v1, v2)
	}
	if score1 < 0 || score1 > 100 {
		t.Fatalf("score out of range: %d", score1)
	}
}

func TestEvaluate_ViolationOrderFollowsTable(t *testing.T) {
	table := []rules.Rule{
		disclosureRule("R-2", model.SeverityLow, "warranty"),
		disclosureRule("R-1", model.SeverityHigh, "seller"),
	}
	e := New(table, DefaultPolicy())

	_, _, violations := e.Evaluate(model.Product{})
	if len(violations) != 2 {
		t.Fatalf("expected 2 violations, got %d", len(violations))
	}
	if violations[0].RuleID != "R-2" || violations[1].RuleID != "R-1" {
		t.Fatalf("violations re-ordered: %v", violations)
	}
}
