package db

import (
	"context"
	"fmt"
	"time"

	"github.com/stickpad/stickpad/internal/model"
)

// ListTags returns every tag
func (db *DB) ListTags(ctx context.Context) ([]model.Tag, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, color, created_at, updated_at FROM tags ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var tag model.Tag
		var createdAt, updatedAt string
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Color, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		if tag.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		if tag.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
			return nil, fmt.Errorf("failed to parse updated_at: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// UpsertTag inserts or updates a tag row by id
func (db *DB) UpsertTag(ctx context.Context, tag model.Tag) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO tags (id, name, color, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			color = excluded.color,
			updated_at = excluded.updated_at`,
		tag.ID, tag.Name, tag.Color,
		tag.CreatedAt.Format(timeLayout), tag.UpdatedAt.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to upsert tag: %w", err)
	}
	return nil
}

// DeleteTag removes a tag and every association referencing it as a
// single atomic unit. A partial failure must not leave dangling
// association rows, so both statements share one transaction.
func (db *DB) DeleteTag(ctx context.Context, id string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM note_tags WHERE tag_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete tag associations: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	return tx.Commit()
}
