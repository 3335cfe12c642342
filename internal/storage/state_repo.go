package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"liferpg/internal/engine"
)

type StateRepo struct {
	db DBTX
}

func NewStateRepo(db DBTX) *StateRepo {
	return &StateRepo{db: db}
}

// Get loads the state saved under key, or nil if nothing was saved yet.
func (r *StateRepo) Get(ctx context.Context, key string) (*engine.CharacterState, error) {
	row := r.db.QueryRowContext(ctx, `SELECT schema_version, data FROM character_state WHERE key = ?`, key)

	var (
		version int
		data    string
	)
	if err := row.Scan(&version, &data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("state get: %w", err)
	}
	if version > SchemaVersion {
		return nil, fmt.Errorf("state get: schema version %d is newer than supported %d", version, SchemaVersion)
	}
	var s engine.CharacterState
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("state decode: %w", err)
	}
	s.Normalize()
	return &s, nil
}

// GetOrCreate loads the state under key, saving a fresh one when missing.
func (r *StateRepo) GetOrCreate(ctx context.Context, key string, now time.Time) (*engine.CharacterState, error) {
	s, err := r.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if s != nil {
		return s, nil
	}
	s = engine.NewState(now)
	if err := r.Save(ctx, key, s, now); err != nil {
		return nil, err
	}
	return s, nil
}

// Save replaces the stored document.
func (r *StateRepo) Save(ctx context.Context, key string, s *engine.CharacterState, now time.Time) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("state encode: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO character_state (key, schema_version, data, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			schema_version = excluded.schema_version,
			data = excluded.data,
			updated_at = excluded.updated_at
	`, key, SchemaVersion, string(data), now.UTC())
	if err != nil {
		return fmt.Errorf("state save: %w", err)
	}
	return nil
}

func (r *StateRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM character_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("state delete: %w", err)
	}
	return nil
}
