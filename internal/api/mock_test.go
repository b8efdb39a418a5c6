package api

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/QTest-hq/qtest-studio/internal/db"
)

// MockStore keeps exports and models in memory
type MockStore struct {
	mu      sync.Mutex
	exports []db.Export
	models  map[uuid.UUID]*db.SavedModel
	listErr error
}

var _ Store = (*MockStore)(nil)
var _ Store = (*db.Store)(nil)

func NewMockStore() *MockStore {
	return &MockStore{models: make(map[uuid.UUID]*db.SavedModel)}
}

func (m *MockStore) RecordExport(_ context.Context, e *db.Export) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = uuid.New()
	m.exports = append(m.exports, *e)
	return nil
}

func (m *MockStore) ListExports(_ context.Context, projectRoot string, limit, offset int) ([]db.Export, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]db.Export, 0)
	for _, e := range m.exports {
		if projectRoot == "" || e.ProjectRoot == projectRoot {
			out = append(out, e)
		}
	}
	if offset >= len(out) {
		return []db.Export{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockStore) SaveModel(_ context.Context, sm *db.SavedModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sm.ID == uuid.Nil {
		sm.ID = uuid.New()
	}
	m.models[sm.ID] = sm
	return nil
}

func (m *MockStore) GetModel(_ context.Context, id uuid.UUID) (*db.SavedModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.models[id], nil
}

var errUnavailable = errors.New("connection refused")
