package calculation

import (
	"context"
	"sync"
	"time"
)

type memEntry struct {
	rec       *Record
	expiresAt time.Time
}

type memRepo struct {
	mu      sync.Mutex
	records map[string]memEntry // id -> record
	keys    map[string]string   // request key -> id
	now     func() time.Time
}

// NewMemoryRepo keeps records in process; used when no redis is configured.
func NewMemoryRepo() Repo {
	return &memRepo{
		records: make(map[string]memEntry),
		keys:    make(map[string]string),
		now:     time.Now,
	}
}

func (m *memRepo) Save(ctx context.Context, rec *Record, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := memEntry{rec: rec}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.records[rec.ID] = e
	if rec.Key != "" {
		m.keys[rec.Key] = rec.ID
	}
	return nil
}

func (m *memRepo) Get(ctx context.Context, id string) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookup(id), nil
}

func (m *memRepo) FindByKey(ctx context.Context, key string) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.keys[key]
	if !ok {
		return nil, nil
	}
	rec := m.lookup(id)
	if rec == nil {
		delete(m.keys, key)
	}
	return rec, nil
}

// lookup drops expired entries on the way; caller holds mu.
func (m *memRepo) lookup(id string) *Record {
	e, ok := m.records[id]
	if !ok {
		return nil
	}
	if !e.expiresAt.IsZero() && m.now().After(e.expiresAt) {
		delete(m.records, id)
		return nil
	}
	return e.rec
}
