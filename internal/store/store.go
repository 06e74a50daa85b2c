// Package store persists scan results. Identifiers are assigned here, never
// by the evaluation core: the numeric ID comes from the database and the
// reference UUID is minted when a record is built.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Siddhardha-11/e---commerce-compliance-tool/internal/model"
)

// ScanRecord is the persisted shape of one scan. Product and violations are
// stored as JSON documents; the relational columns carry only what history
// listings and lookups need.
type ScanRecord struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Reference      string    `gorm:"size:36;uniqueIndex" json:"reference"`
	URL            string    `gorm:"size:2048" json:"url"`
	RiskScore      int       `json:"risk_score"`
	TrustScore     int       `json:"trust_score"`
	ProductJSON    string    `gorm:"type:longtext" json:"-"`
	ViolationsJSON string    `gorm:"type:longtext" json:"-"`
	TrustJSON      string    `gorm:"type:longtext" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewRecord converts a scan result into its persisted shape and mints the
// reference identifier.
func NewRecord(result model.ScanResult) (ScanRecord, error) {
	productJSON, err := json.Marshal(result.Product)
	if err != nil {
		return ScanRecord{}, fmt.Errorf("marshal product: %w", err)
	}
	violationsJSON, err := json.Marshal(result.Violations)
	if err != nil {
		return ScanRecord{}, fmt.Errorf("marshal violations: %w", err)
	}
	rec := ScanRecord{
		Reference:      uuid.NewString(),
		URL:            result.Product.URL,
		RiskScore:      result.RiskScore,
		ProductJSON:    string(productJSON),
		ViolationsJSON: string(violationsJSON),
		CreatedAt:      result.Timestamp,
	}
	if result.TrustIndex != nil {
		trustJSON, err := json.Marshal(result.TrustIndex)
		if err != nil {
			return ScanRecord{}, fmt.Errorf("marshal trust index: %w", err)
		}
		rec.TrustScore = result.TrustIndex.Score
		rec.TrustJSON = string(trustJSON)
	}
	return rec, nil
}

// Result rebuilds the scan result stored in the record.
func (r ScanRecord) Result() (model.ScanResult, error) {
	out := model.ScanResult{
		ID:        r.ID,
		Reference: r.Reference,
		Timestamp: r.CreatedAt,
		RiskScore: r.RiskScore,
	}
	if r.ProductJSON != "" {
		if err := json.Unmarshal([]byte(r.ProductJSON), &out.Product); err != nil {
			return out, fmt.Errorf("unmarshal product: %w", err)
		}
	}
	if r.ViolationsJSON != "" {
		if err := json.Unmarshal([]byte(r.ViolationsJSON), &out.Violations); err != nil {
			return out, fmt.Errorf("unmarshal violations: %w", err)
		}
	}
	if r.TrustJSON != "" {
		out.TrustIndex = &model.TrustIndex{}
		if err := json.Unmarshal([]byte(r.TrustJSON), out.TrustIndex); err != nil {
			return out, fmt.Errorf("unmarshal trust index: %w", err)
		}
	}
	return out, nil
}

// Store is the persistence contract the API layer depends on.
type Store interface {
	// Save persists the record and fills in its database-assigned ID.
	Save(ctx context.Context, rec *ScanRecord) error
	// History returns the most recent records, newest first. A
	// non-positive limit returns everything.
	History(ctx context.Context, limit int) ([]ScanRecord, error)
}

// DB is the MySQL-backed store.
type DB struct {
	db *gorm.DB
}

// Open connects to MySQL with the given DSN and migrates the scan table.
func Open(dsn string) (*DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	if err := db.AutoMigrate(&ScanRecord{}); err != nil {
		return nil, fmt.Errorf("migrate scan records: %w", err)
	}
	return &DB{db: db}, nil
}

func (s *DB) Save(ctx context.Context, rec *ScanRecord) error {
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("save scan record: %w", err)
	}
	return nil
}

func (s *DB) History(ctx context.Context, limit int) ([]ScanRecord, error) {
	q := s.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var recs []ScanRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("load scan history: %w", err)
	}
	return recs, nil
}
