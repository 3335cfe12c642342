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

type BackupRepo struct {
	db DBTX
}

func NewBackupRepo(db DBTX) *BackupRepo {
	return &BackupRepo{db: db}
}

// Insert snapshots s under key and returns the backup id.
func (r *BackupRepo) Insert(ctx context.Context, key, reason string, s *engine.CharacterState, createdAt time.Time) (int64, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return 0, fmt.Errorf("backup encode: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO state_backups (key, reason, level, data, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, key, reason, s.Level, string(data), createdAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("backup insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("backup last insert id: %w", err)
	}
	return id, nil
}

// List returns the backups for key, newest first, without their payloads.
func (r *BackupRepo) List(ctx context.Context, key string) ([]Backup, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, key, reason, level, note, created_at
		FROM state_backups
		WHERE key = ?
		ORDER BY created_at DESC, id DESC
	`, key)
	if err != nil {
		return nil, fmt.Errorf("backup list: %w", err)
	}
	defer rows.Close()

	var out []Backup
	for rows.Next() {
		var b Backup
		if err := rows.Scan(&b.ID, &b.Key, &b.Reason, &b.Level, &b.Note, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("backup scan: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("backup rows: %w", err)
	}
	return out, nil
}

// Get returns a backup with its payload, or nil if id is unknown.
func (r *BackupRepo) Get(ctx context.Context, id int64) (*Backup, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, key, reason, level, note, created_at, data
		FROM state_backups
		WHERE id = ?
	`, id)
	var (
		b    Backup
		data string
	)
	if err := row.Scan(&b.ID, &b.Key, &b.Reason, &b.Level, &b.Note, &b.CreatedAt, &data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("backup get: %w", err)
	}
	b.Data = []byte(data)
	return &b, nil
}

// Decode unpacks a backup payload into a normalized state.
func (b *Backup) Decode() (*engine.CharacterState, error) {
	var s engine.CharacterState
	if err := json.Unmarshal(b.Data, &s); err != nil {
		return nil, fmt.Errorf("backup decode: %w", err)
	}
	s.Normalize()
	return &s, nil
}

// SetNote attaches a free-text note to a backup. An empty note clears it.
func (r *BackupRepo) SetNote(ctx context.Context, id int64, note string) error {
	var v any
	if note != "" {
		v = note
	}
	res, err := r.db.ExecContext(ctx, `UPDATE state_backups SET note = ? WHERE id = ?`, v, id)
	if err != nil {
		return fmt.Errorf("backup set note: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("backup set note: %w", err)
	}
	if n == 0 {
		return engine.NotFoundError{Kind: "backup", ID: fmt.Sprint(id)}
	}
	return nil
}
