package store

import (
	"context"
	"sort"
	"sync"
)

// Memory is an in-process store used when no database DSN is configured and
// by tests. Semantics mirror the MySQL store: sequential IDs, newest-first
// history.
type Memory struct {
	mu   sync.Mutex
	recs []ScanRecord
	next uint
}

func NewMemory() *Memory {
	return &Memory{next: 1}
}

func (m *Memory) Save(_ context.Context, rec *ScanRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.ID = m.next
	m.next++
	m.recs = append(m.recs, *rec)
	return nil
}

func (m *Memory) History(_ context.Context, limit int) ([]ScanRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]ScanRecord(nil), m.recs...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
