package store

import (
	"context"
	"slices"
	"sync"

	"github.com/hpungsan/tally/internal/errors"
	"github.com/hpungsan/tally/internal/record"
)

// Memory is a map-backed Store guarded by a read/write mutex.
type Memory struct {
	mu      sync.RWMutex
	byKey   map[string]*record.Record
	byValue map[string]string // value -> key
	order   []string          // keys in insertion order
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		byKey:   make(map[string]*record.Record),
		byValue: make(map[string]string),
	}
}

func (m *Memory) Insert(_ context.Context, rec *record.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if key, ok := m.byValue[rec.Value]; ok {
		return errors.NewDuplicateValue(key)
	}
	if _, ok := m.byKey[rec.ID]; ok {
		return errors.NewDuplicateValue(rec.ID)
	}

	m.byKey[rec.ID] = rec
	m.byValue[rec.Value] = rec.ID
	m.order = append(m.order, rec.ID)
	return nil
}

func (m *Memory) GetByKey(_ context.Context, key string) (*record.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.byKey[key]
	if !ok {
		return nil, errors.NewNotFound(key)
	}
	return rec, nil
}

func (m *Memory) GetByValue(_ context.Context, value string) (*record.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	key, ok := m.byValue[value]
	if !ok {
		return nil, errors.NewNotFound(value)
	}
	return m.byKey[key], nil
}

func (m *Memory) ExistsByValue(_ context.Context, value string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.byValue[value]
	return ok, nil
}

func (m *Memory) DeleteByValue(_ context.Context, value string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key, ok := m.byValue[value]
	if !ok {
		return false, nil
	}
	m.remove(key)
	return true, nil
}

func (m *Memory) DeleteByKey(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byKey[key]; !ok {
		return false, nil
	}
	m.remove(key)
	return true, nil
}

// remove drops key from every index. Caller holds the write lock.
func (m *Memory) remove(key string) {
	rec := m.byKey[key]
	delete(m.byKey, key)
	delete(m.byValue, rec.Value)
	if i := slices.Index(m.order, key); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
}

func (m *Memory) ListAll(ctx context.Context) ([]*record.Record, error) {
	return m.Filter(ctx, record.Filters{})
}

func (m *Memory) Filter(_ context.Context, f record.Filters) ([]*record.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*record.Record, 0, len(m.order))
	for _, key := range m.order {
		rec := m.byKey[key]
		if f.Matches(rec) {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (m *Memory) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.byKey), nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
