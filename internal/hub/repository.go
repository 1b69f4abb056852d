package hub

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/park285/gamehub/internal/domain"
)

// Repository stores finished game records keyed by game id.
type Repository interface {
	SaveResult(ctx context.Context, rec *domain.GameRecord) error
	GetResult(ctx context.Context, id string) (*domain.GameRecord, error)
	RecentResults(ctx context.Context, limit int) ([]*domain.GameRecord, error)
}

// memrepo is the in-process Repository used when no Redis is configured.
type memrepo struct {
	mu   sync.RWMutex
	byID map[string]*domain.GameRecord
}

func NewMemoryRepository() Repository {
	return &memrepo{byID: make(map[string]*domain.GameRecord)}
}

func (m *memrepo) SaveResult(ctx context.Context, rec *domain.GameRecord) error {
	if rec == nil || strings.TrimSpace(rec.ID) == "" {
		return nil
	}
	cp := copyRecord(rec)
	m.mu.Lock()
	m.byID[cp.ID] = cp
	m.mu.Unlock()
	return nil
}

func (m *memrepo) GetResult(ctx context.Context, id string) (*domain.GameRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.byID[strings.TrimSpace(id)]
	if !ok {
		return nil, nil
	}
	return copyRecord(rec), nil
}

func (m *memrepo) RecentResults(ctx context.Context, limit int) ([]*domain.GameRecord, error) {
	m.mu.RLock()
	items := make([]*domain.GameRecord, 0, len(m.byID))
	for _, rec := range m.byID {
		items = append(items, copyRecord(rec))
	}
	m.mu.RUnlock()
	// EndedAt desc, then id for a stable order
	sort.Slice(items, func(i, j int) bool {
		if !items[i].EndedAt.Equal(items[j].EndedAt) {
			return items[i].EndedAt.After(items[j].EndedAt)
		}
		return items[i].ID < items[j].ID
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func copyRecord(rec *domain.GameRecord) *domain.GameRecord {
	cp := *rec
	cp.MovesUCI = append([]string(nil), rec.MovesUCI...)
	cp.MovesSAN = append([]string(nil), rec.MovesSAN...)
	cp.Annotations = append([]string(nil), rec.Annotations...)
	return &cp
}
