// Package app wires the scan pipeline together: fetch, scrape, compliance
// evaluation, dark-pattern detection, trust index, persistence. Each scan is
// one synchronous pass; the packages underneath hold no cross-call state.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/darkpattern"
	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/engine"
	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/fetch"
	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/model"
	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/rules"
	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/scrape"
	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/store"
	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/trust"
)

const darkPatternSuggestion = "Review pricing/UX for potential dark patterns."

// App owns the long-lived pieces of the service: rule engine, scraper and
// store. Safe for concurrent scans; every per-scan value is request-local.
type App struct {
	cfg     Config
	engine  *engine.Engine
	scraper *scrape.Scraper
	store   store.Store
}

// New loads the rule table and policy, builds the engine and scraper, and
// binds the store.
func New(cfg Config, st store.Store) (*App, error) {
	table, err := rules.Load(cfg.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	policy, err := engine.LoadPolicy(cfg.PolicyPath)
	if err != nil {
		return nil, fmt.Errorf("load policy: %w", err)
	}
	log.Info().Int("rules", len(table)).Int("skipped", len(policy.Skip)).Msg("rule table loaded")

	client := &fetch.Client{
		UserAgent:         cfg.ScrapeUserAgent,
		MaxAttempts:       cfg.ScrapeAttempts,
		PerRequestTimeout: cfg.ScrapeTimeout,
		MaxConcurrent:     8,
	}
	return &App{
		cfg:     cfg,
		engine:  engine.New(table, policy),
		scraper: &scrape.Scraper{Client: client},
		store:   st,
	}, nil
}

// Scan runs the full pipeline for one listing URL and persists the outcome.
// Scrape failures surface as typed errors before any compliance logic runs.
func (a *App) Scan(ctx context.Context, url string) (model.ScanResult, error) {
	log.Info().Str("url", url).Msg("scanning product")

	page, err := a.scraper.Fetch(ctx, url)
	if err != nil {
		return model.ScanResult{}, err
	}
	product, err := scrape.Parse(url, page)
	if err != nil {
		return model.ScanResult{}, err
	}

	enriched, riskScore, violations := a.engine.Evaluate(product)

	findings := darkpattern.Detect(enriched, page)
	for _, f := range findings {
		violations = append(violations, model.Violation{
			RuleID:      f.Code,
			Severity:    f.Severity,
			Description: f.Message,
			Suggestion:  darkPatternSuggestion,
		})
		riskScore -= a.engine.Penalty(f.Severity)
	}
	if riskScore < 0 {
		riskScore = 0
	}

	trustIndex := trust.Compute(enriched, violations)
	result := model.ScanResult{
		Timestamp:  time.Now().UTC(),
		Product:    enriched,
		RiskScore:  riskScore,
		Violations: violations,
		TrustIndex: &trustIndex,
	}

	rec, err := store.NewRecord(result)
	if err != nil {
		return model.ScanResult{}, fmt.Errorf("build scan record: %w", err)
	}
	if err := a.store.Save(ctx, &rec); err != nil {
		return model.ScanResult{}, fmt.Errorf("persist scan: %w", err)
	}
	result.ID = rec.ID
	result.Reference = rec.Reference

	log.Info().
		Uint("id", result.ID).
		Int("risk_score", result.RiskScore).
		Int("violations", len(result.Violations)).
		Int("dark_patterns", len(findings)).
		Msg("scan complete")
	return result, nil
}

// History returns recent scans, newest first.
func (a *App) History(ctx context.Context, limit int) ([]store.ScanRecord, error) {
	return a.store.History(ctx, limit)
}
