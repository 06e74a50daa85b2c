package store

import (
	"context"
	"testing"
	"time"

	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/model"
)

func TestNewRecord_RoundTrip(t *testing.T) {
	result := model.ScanResult{
		Timestamp: time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC),
		Product: model.Product{
			URL:    "https://shop.example/p",
			Title:  "Acme Lotion 200ml",
			Seller: "Acme Retail",
		},
		RiskScore: 80,
		Violations: []model.Violation{
			{RuleID: "ECOM-002", Severity: model.SeverityMedium, Description: "d", Suggestion: "s"},
		},
		TrustIndex: &model.TrustIndex{Score: 87, Reasons: []string{"Seller information missing."}},
	}
	rec, err := NewRecord(result)
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	if rec.Reference == "" {
		t.Fatal("record has no reference id")
	}
	if rec.TrustScore != 87 || rec.RiskScore != 80 {
		t.Fatalf("scores not copied: %+v", rec)
	}

	back, err := rec.Result()
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	if back.Product.Title != result.Product.Title {
		t.Fatalf("product title = %q", back.Product.Title)
	}
	if len(back.Violations) != 1 || back.Violations[0].RuleID != "ECOM-002" {
		t.Fatalf("violations = %v", back.Violations)
	}
	if back.TrustIndex == nil || back.TrustIndex.Score != 87 {
		t.Fatalf("trust index = %+v", back.TrustIndex)
	}
	if len(back.TrustIndex.Reasons) != 1 || back.TrustIndex.Reasons[0] != "Seller information missing." {
		t.Fatalf("trust reasons = %v", back.TrustIndex.Reasons)
	}
}

func TestMemory_AssignsSequentialIDs(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		rec := ScanRecord{URL: "u", CreatedAt: time.Now()}
		if err := m.Save(ctx, &rec); err != nil {
			t.Fatal(err)
		}
		if rec.ID != uint(i+1) {
			t.Fatalf("id = %d, want %d", rec.ID, i+1)
		}
	}
}

func TestMemory_HistoryNewestFirst(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		rec := ScanRecord{URL: "u", CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := m.Save(ctx, &rec); err != nil {
			t.Fatal(err)
		}
	}
	recs, err := m.History(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("history len = %d, want 2", len(recs))
	}
	if !recs[0].CreatedAt.After(recs[1].CreatedAt) {
		t.Fatalf("history not newest first: %v, %v", recs[0].CreatedAt, recs[1].CreatedAt)
	}
}
