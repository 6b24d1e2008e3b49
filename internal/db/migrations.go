package db

import "fmt"

// migrate runs all database migrations. The CREATE TABLE set establishes
// the current schema on first open; addMissingColumns upgrades stores
// created before the optional columns existed. Migrations are additive
// only and never touch existing rows.
func (db *DB) migrate() error {
	migrations := []string{
		migrationCreateNotes,
		migrationCreateTags,
		migrationCreateNoteTags,
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return db.addMissingColumns()
}

const migrationCreateNotes = `
CREATE TABLE IF NOT EXISTS notes (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    color TEXT NOT NULL,
    pinned INTEGER DEFAULT 0,
    starred INTEGER DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    deleted INTEGER DEFAULT 0,
    deleted_at TEXT,
    original_position INTEGER,
    enc_ciphertext TEXT,
    enc_salt TEXT,
    enc_iv TEXT,
    enc_algorithm TEXT
);

CREATE INDEX IF NOT EXISTS idx_notes_deleted ON notes(deleted);
`

const migrationCreateTags = `
CREATE TABLE IF NOT EXISTS tags (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    color TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

const migrationCreateNoteTags = `
CREATE TABLE IF NOT EXISTS note_tags (
    note_id TEXT NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
    tag_id TEXT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
    PRIMARY KEY (note_id, tag_id)
);

CREATE INDEX IF NOT EXISTS idx_note_tags_tag ON note_tags(tag_id);
`

// optionalNoteColumns are columns added after the initial release. Older
// databases are upgraded in place with ALTER TABLE ADD COLUMN.
var optionalNoteColumns = map[string]string{
	"pinned":            "INTEGER DEFAULT 0",
	"starred":           "INTEGER DEFAULT 0",
	"deleted":           "INTEGER DEFAULT 0",
	"deleted_at":        "TEXT",
	"original_position": "INTEGER",
	"enc_ciphertext":    "TEXT",
	"enc_salt":          "TEXT",
	"enc_iv":            "TEXT",
	"enc_algorithm":     "TEXT",
}

// addMissingColumns inspects the notes table and adds any optional column
// an older database is missing
func (db *DB) addMissingColumns() error {
	rows, err := db.Query(`SELECT name FROM pragma_table_info('notes')`)
	if err != nil {
		return fmt.Errorf("failed to inspect notes schema: %w", err)
	}
	defer rows.Close()

	existing := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		existing[name] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for col, def := range optionalNoteColumns {
		if existing[col] {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE notes ADD COLUMN %s %s", col, def)
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to add column %s: %w", col, err)
		}
	}

	return nil
}
