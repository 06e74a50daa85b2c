package engine

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/model"
)

// Policy holds the tunable knobs of the rule engine, kept apart from the
// matching logic so deployments can swap policy without touching code. All
// fields are optional in a policy file; anything left empty falls back to the
// built-in default.
type Policy struct {
	// Skip lists rule ids excluded from evaluation entirely, typically
	// rules that proved legally ambiguous or duplicate other coverage.
	Skip []string `yaml:"skip"`
	// Advisory lists rule ids whose violations are always downgraded to
	// LOW with an advisory marker, capping false-positive cost for
	// low-confidence checks.
	Advisory []string `yaml:"advisory"`
	// Aliases maps a logical field name to the concrete product
	// attributes that can satisfy it. Unaliased names resolve to the
	// attribute of the same name.
	Aliases map[string][]string `yaml:"aliases"`
	// Unverifiable lists logical fields that scraped pages cannot
	// reliably confirm. They are treated as always present and never
	// generate violations.
	Unverifiable []string `yaml:"unverifiable"`
	// Penalties are risk-score deductions per violation severity.
	Penalties map[model.Severity]int `yaml:"penalties"`
}

// DefaultPolicy returns the policy the service ships with.
func DefaultPolicy() Policy {
	return Policy{
		Skip:     []string{"LMPC-003"},
		Advisory: []string{"ECOM-005"},
		Aliases: map[string][]string{
			"origin":            {"origin_country"},
			"country_of_origin": {"origin_country"},
			"contact":           {"customer_care_contact"},
			"customer_care":     {"customer_care_contact"},
			"mrp":               {"price"},
		},
		Unverifiable: []string{
			"ingredients",
			"expiry",
			"batch_number",
			"cruelty_free_certification",
			"epr_registration_number",
		},
		Penalties: map[model.Severity]int{
			model.SeverityHigh:   20,
			model.SeverityMedium: 10,
			model.SeverityLow:    5,
		},
	}
}

// LoadPolicy reads a policy overlay from a YAML file and fills gaps from the
// default policy. An empty path selects the default outright.
func LoadPolicy(path string) (Policy, error) {
	def := DefaultPolicy()
	if path == "" {
		return def, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return def, fmt.Errorf("read policy: %w", err)
	}
	var p Policy
	if err := yaml.Unmarshal(b, &p); err != nil {
		return def, fmt.Errorf("parse policy %s: %w", path, err)
	}
	if p.Skip == nil {
		p.Skip = def.Skip
	}
	if p.Advisory == nil {
		p.Advisory = def.Advisory
	}
	if p.Aliases == nil {
		p.Aliases = def.Aliases
	}
	if p.Unverifiable == nil {
		p.Unverifiable = def.Unverifiable
	}
	if p.Penalties == nil {
		p.Penalties = def.Penalties
	}
	return p, nil
}
