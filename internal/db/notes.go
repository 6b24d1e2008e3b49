package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/stickpad/stickpad/internal/model"
)

// timeLayout is how timestamps are stored in text columns
const timeLayout = time.RFC3339Nano

const noteColumns = `id, title, content, color, pinned, starred, created_at, updated_at,
	deleted, deleted_at, original_position, enc_ciphertext, enc_salt, enc_iv, enc_algorithm`

// ListNotes returns every note with its tag set resolved from the
// association table. Encryption fields are normalized: a note either has
// a complete envelope or none at all.
func (db *DB) ListNotes(ctx context.Context) ([]model.Note, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+noteColumns+` FROM notes ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	index := make(map[string]int)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		index[note.ID] = len(notes)
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tagRows, err := db.QueryContext(ctx, `SELECT note_id, tag_id FROM note_tags`)
	if err != nil {
		return nil, fmt.Errorf("failed to query note tags: %w", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var noteID, tagID string
		if err := tagRows.Scan(&noteID, &tagID); err != nil {
			return nil, err
		}
		if i, ok := index[noteID]; ok {
			notes[i].Tags = append(notes[i].Tags, tagID)
		}
	}
	if err := tagRows.Err(); err != nil {
		return nil, err
	}

	return notes, nil
}

// UpsertNote inserts or replaces the full note row, then replaces its tag
// associations with exactly the given set. The association replacement is
// delete-all-then-reinsert, not a diff, and runs in the same transaction
// as the row write.
func (db *DB) UpsertNote(ctx context.Context, note model.Note) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO notes (`+noteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			color = excluded.color,
			pinned = excluded.pinned,
			starred = excluded.starred,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			deleted = excluded.deleted,
			deleted_at = excluded.deleted_at,
			original_position = excluded.original_position,
			enc_ciphertext = excluded.enc_ciphertext,
			enc_salt = excluded.enc_salt,
			enc_iv = excluded.enc_iv,
			enc_algorithm = excluded.enc_algorithm`,
		noteArgs(note)...); err != nil {
		return fmt.Errorf("failed to upsert note: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM note_tags WHERE note_id = ?`, note.ID); err != nil {
		return fmt.Errorf("failed to clear note tags: %w", err)
	}
	for _, tagID := range note.Tags {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO note_tags (note_id, tag_id) VALUES (?, ?)`,
			note.ID, tagID); err != nil {
			return fmt.Errorf("failed to insert note tag: %w", err)
		}
	}

	return tx.Commit()
}

// UpdateNote updates the note's columns in place by id. Tag associations
// are not touched.
func (db *DB) UpdateNote(ctx context.Context, note model.Note) error {
	_, err := db.ExecContext(ctx, `
		UPDATE notes SET
			title = ?, content = ?, color = ?, pinned = ?, starred = ?,
			created_at = ?, updated_at = ?, deleted = ?, deleted_at = ?,
			original_position = ?, enc_ciphertext = ?, enc_salt = ?,
			enc_iv = ?, enc_algorithm = ?
		WHERE id = ?`,
		append(noteArgs(note)[1:], note.ID)...)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	return nil
}

// DeleteNote permanently removes a note. Association rows go first so a
// failure can never leave them orphaned.
func (db *DB) DeleteNote(ctx context.Context, id string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM note_tags WHERE note_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete note tags: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	return tx.Commit()
}

// AddTagToNote inserts a single association row. Duplicate inserts are a
// no-op.
func (db *DB) AddTagToNote(ctx context.Context, noteID, tagID string) error {
	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO note_tags (note_id, tag_id) VALUES (?, ?)`, noteID, tagID)
	if err != nil {
		return fmt.Errorf("failed to add tag to note: %w", err)
	}
	return nil
}

// RemoveTagFromNote deletes a single association row
func (db *DB) RemoveTagFromNote(ctx context.Context, noteID, tagID string) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM note_tags WHERE note_id = ? AND tag_id = ?`, noteID, tagID)
	if err != nil {
		return fmt.Errorf("failed to remove tag from note: %w", err)
	}
	return nil
}

// noteArgs flattens a note into the column order of noteColumns
func noteArgs(note model.Note) []interface{} {
	var deletedAt sql.NullString
	if note.DeletedAt != nil {
		deletedAt = sql.NullString{String: note.DeletedAt.Format(timeLayout), Valid: true}
	}
	var position sql.NullInt64
	if note.OriginalPosition != nil {
		position = sql.NullInt64{Int64: int64(*note.OriginalPosition), Valid: true}
	}
	var ciphertext, salt, iv, algorithm sql.NullString
	if note.Encryption != nil {
		ciphertext = sql.NullString{String: note.Encryption.Ciphertext, Valid: true}
		salt = sql.NullString{String: note.Encryption.Salt, Valid: true}
		iv = sql.NullString{String: note.Encryption.IV, Valid: true}
		algorithm = sql.NullString{String: note.Encryption.Algorithm, Valid: true}
	}

	return []interface{}{
		note.ID, note.Title, note.Content, note.Color, note.Pinned, note.Starred,
		note.CreatedAt.Format(timeLayout), note.UpdatedAt.Format(timeLayout),
		note.Deleted, deletedAt, position, ciphertext, salt, iv, algorithm,
	}
}

// scanNote reads one row in noteColumns order
func scanNote(rows *sql.Rows) (model.Note, error) {
	var note model.Note
	var createdAt, updatedAt string
	var deletedAt sql.NullString
	var position sql.NullInt64
	var ciphertext, salt, iv, algorithm sql.NullString

	if err := rows.Scan(&note.ID, &note.Title, &note.Content, &note.Color,
		&note.Pinned, &note.Starred, &createdAt, &updatedAt,
		&note.Deleted, &deletedAt, &position,
		&ciphertext, &salt, &iv, &algorithm); err != nil {
		return note, fmt.Errorf("failed to scan note: %w", err)
	}

	var err error
	if note.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return note, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if note.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return note, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	if deletedAt.Valid {
		t, err := time.Parse(timeLayout, deletedAt.String)
		if err != nil {
			return note, fmt.Errorf("failed to parse deleted_at: %w", err)
		}
		note.DeletedAt = &t
	}
	if position.Valid {
		p := int(position.Int64)
		note.OriginalPosition = &p
	}

	// All four encryption columns or none
	if ciphertext.Valid && salt.Valid && iv.Valid && algorithm.Valid {
		note.Encryption = &model.Encryption{
			Ciphertext: ciphertext.String,
			Salt:       salt.String,
			IV:         iv.String,
			Algorithm:  algorithm.String,
		}
	}

	note.Tags = []string{}
	return note, nil
}
