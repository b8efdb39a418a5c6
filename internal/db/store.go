package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store provides database operations
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new store
func NewStore(db *DB) *Store {
	return &Store{pool: db.Pool()}
}

// Ping verifies database connectivity
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Export is one written test file
type Export struct {
	ID          uuid.UUID `json:"id"`
	ProjectRoot string    `json:"project_root"`
	FileName    string    `json:"file_name"`
	Path        string    `json:"path"`
	Category    string    `json:"category"`
	Formatted   bool      `json:"formatted"`
	Source      string    `json:"source,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// SavedModel is a test-case model kept between editor sessions
type SavedModel struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	ProjectRoot string          `json:"project_root"`
	ModelData   json.RawMessage `json:"model_data"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// RecordExport inserts an export record
func (s *Store) RecordExport(ctx context.Context, e *Export) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = time.Now()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO exports (id, project_root, file_name, path, category, formatted, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, e.ID, e.ProjectRoot, e.FileName, e.Path, e.Category, e.Formatted, e.Source, e.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to record export: %w", err)
	}

	return nil
}

// GetExport gets an export by ID. A missing export returns nil, nil.
func (s *Store) GetExport(ctx context.Context, id uuid.UUID) (*Export, error) {
	e := &Export{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, project_root, file_name, path, category, formatted, source, created_at
		FROM exports WHERE id = $1
	`, id).Scan(&e.ID, &e.ProjectRoot, &e.FileName, &e.Path, &e.Category, &e.Formatted, &e.Source, &e.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get export: %w", err)
	}

	return e, nil
}

// ListExports lists exports newest first. An empty projectRoot lists all
// projects. Source is not loaded.
func (s *Store) ListExports(ctx context.Context, projectRoot string, limit, offset int) ([]Export, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, project_root, file_name, path, category, formatted, created_at
		FROM exports
		WHERE $1 = '' OR project_root = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, projectRoot, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	defer rows.Close()

	exports := make([]Export, 0)
	for rows.Next() {
		var e Export
		if err := rows.Scan(&e.ID, &e.ProjectRoot, &e.FileName, &e.Path, &e.Category, &e.Formatted, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan export: %w", err)
		}
		exports = append(exports, e)
	}

	return exports, rows.Err()
}

// SaveModel inserts a model or replaces the one with the same ID
func (s *Store) SaveModel(ctx context.Context, m *SavedModel) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now

	_, err := s.pool.Exec(ctx, `
		INSERT INTO models (id, name, project_root, model_data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, project_root = EXCLUDED.project_root,
			model_data = EXCLUDED.model_data, updated_at = EXCLUDED.updated_at
	`, m.ID, m.Name, m.ProjectRoot, m.ModelData, m.CreatedAt, m.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to save model: %w", err)
	}

	return nil
}

// GetModel gets a saved model by ID. A missing model returns nil, nil.
func (s *Store) GetModel(ctx context.Context, id uuid.UUID) (*SavedModel, error) {
	m := &SavedModel{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, project_root, model_data, created_at, updated_at
		FROM models WHERE id = $1
	`, id).Scan(&m.ID, &m.Name, &m.ProjectRoot, &m.ModelData, &m.CreatedAt, &m.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get model: %w", err)
	}

	return m, nil
}

// ListModels lists saved models of a project, most recently updated first
func (s *Store) ListModels(ctx context.Context, projectRoot string, limit int) ([]SavedModel, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, project_root, model_data, created_at, updated_at
		FROM models
		WHERE $1 = '' OR project_root = $1
		ORDER BY updated_at DESC
		LIMIT $2
	`, projectRoot, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	defer rows.Close()

	models := make([]SavedModel, 0)
	for rows.Next() {
		var m SavedModel
		if err := rows.Scan(&m.ID, &m.Name, &m.ProjectRoot, &m.ModelData, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan model: %w", err)
		}
		models = append(models, m)
	}

	return models, rows.Err()
}
