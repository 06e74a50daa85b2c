// Package rules loads the static disclosure-rule catalog the engine evaluates
// against. The table is ordered, hand-curated, loaded once at process start
// and immutable afterwards; it is safe for concurrent reads.
package rules

import (
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/model"
)

// CategoryAll marks a rule that applies to every product regardless of
// category.
const CategoryAll = "all"

// Rule is one regulatory disclosure requirement. RequiredFields reference
// logical field names; names the resolver does not know are ignored during
// evaluation rather than treated as errors, so the table stays forward
// compatible with fields the resolver does not support yet.
type Rule struct {
	ID             string         `yaml:"id" json:"id"`
	Title          string         `yaml:"title" json:"title"`
	Law            string         `yaml:"law" json:"law"`
	Severity       model.Severity `yaml:"severity" json:"severity"`
	Category       string         `yaml:"category" json:"category"`
	RequiredFields []string       `yaml:"required_fields" json:"required_fields"`
	Suggestion     string         `yaml:"suggestion,omitempty" json:"suggestion,omitempty"`
}

//go:embed catalog.yaml
var defaultCatalog []byte

// Default returns the built-in rule catalog.
func Default() ([]Rule, error) {
	return parse(defaultCatalog)
}

// Load reads an ordered rule table from a YAML file. An empty path selects
// the embedded default catalog.
func Load(path string) ([]Rule, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule table: %w", err)
	}
	rs, err := parse(b)
	if err != nil {
		return nil, fmt.Errorf("rule table %s: %w", path, err)
	}
	return rs, nil
}

func parse(b []byte) ([]Rule, error) {
	var rs []Rule
	if err := yaml.Unmarshal(b, &rs); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := validate(rs); err != nil {
		return nil, err
	}
	return rs, nil
}

// validate enforces the table invariants: globally unique ids, known
// severities, non-empty categories.
func validate(rs []Rule) error {
	seen := map[string]struct{}{}
	for i, r := range rs {
		if r.ID == "" {
			return fmt.Errorf("rule %d: missing id", i)
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("rule %s: duplicate id", r.ID)
		}
		seen[r.ID] = struct{}{}
		if !r.Severity.Known() {
			return fmt.Errorf("rule %s: unknown severity %q", r.ID, r.Severity)
		}
		if r.Category == "" {
			return fmt.Errorf("rule %s: missing category", r.ID)
		}
	}
	return nil
}
