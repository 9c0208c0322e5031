package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"coevo/internal/model"
)

// MemoryStore holds encoded run records so callers never share slices with
// the store.
type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	runs        map[string][]byte
	order       []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[string][]byte)
	s.order = nil
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, record model.RunRecord) error {
	if record.ID == "" {
		return errors.New("run id is required")
	}
	data, err := EncodeRunRecord(record)
	if err != nil {
		return fmt.Errorf("encode run %s: %w", record.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errors.New("store is not initialized")
	}
	if _, exists := s.runs[record.ID]; !exists {
		s.order = append(s.order, record.ID)
	}
	s.runs[record.ID] = data
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (model.RunRecord, bool, error) {
	s.mu.RLock()
	data, ok := s.runs[id]
	s.mu.RUnlock()

	if !ok {
		return model.RunRecord{}, false, nil
	}
	record, err := DecodeRunRecord(data)
	if err != nil {
		return model.RunRecord{}, false, fmt.Errorf("decode run %s: %w", id, err)
	}
	return record, true, nil
}

func (s *MemoryStore) ListRuns(ctx context.Context, limit int) ([]model.RunRecord, error) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		ids = append(ids, s.order[i])
		if limit > 0 && len(ids) == limit {
			break
		}
	}
	s.mu.RUnlock()

	out := make([]model.RunRecord, 0, len(ids))
	for _, id := range ids {
		record, ok, err := s.GetRun(ctx, id)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, record)
		}
	}
	return out, nil
}
