package store

import (
	"context"
	"time"

	"github.com/stickpad/stickpad/internal/logger"
	"github.com/stickpad/stickpad/internal/model"
)

// NotePatch describes a partial note update. Nil fields are left as-is.
type NotePatch struct {
	Title   *string
	Content *string
	Color   *string
	Pinned  *bool
	Starred *bool

	// Encryption replaces the note's envelope; DropEncryption removes it.
	Encryption     *model.Encryption
	DropEncryption bool
}

// AddNote creates a note, persists it with its tag set, and on success
// appends it to the list. Returns the created note.
func (s *Store) AddNote(ctx context.Context, title, content, color string, tags []string) (*model.Note, error) {
	note := model.NewNote(title, content, color)
	for _, tagID := range tags {
		if s.tagIndex(tagID) >= 0 && !note.HasTag(tagID) {
			note.Tags = append(note.Tags, tagID)
		}
	}

	if err := s.db.UpsertNote(ctx, note); err != nil {
		logger.Error("Failed to save note", logger.F("id", note.ID), logger.F("error", err))
		return nil, err
	}

	s.notes = append(s.notes, note)
	return &note, nil
}

// UpdateNote applies a partial update to a note and refreshes its update
// timestamp. Unknown ids are a silent no-op.
func (s *Store) UpdateNote(ctx context.Context, id string, patch NotePatch) error {
	i := s.noteIndex(id)
	if i < 0 {
		return nil
	}

	updated := s.notes[i]
	if patch.Title != nil {
		updated.Title = *patch.Title
	}
	if patch.Content != nil {
		updated.Content = *patch.Content
	}
	if patch.Color != nil {
		updated.Color = *patch.Color
	}
	if patch.Pinned != nil {
		updated.Pinned = *patch.Pinned
	}
	if patch.Starred != nil {
		updated.Starred = *patch.Starred
	}
	if patch.DropEncryption {
		updated.Encryption = nil
	} else if patch.Encryption != nil {
		updated.Encryption = patch.Encryption
	}
	updated.UpdatedAt = time.Now()

	if err := s.db.UpdateNote(ctx, updated); err != nil {
		logger.Error("Failed to update note", logger.F("id", id), logger.F("error", err))
		return err
	}

	s.notes[i] = updated
	return nil
}

// TogglePin flips the pinned flag of a note
func (s *Store) TogglePin(ctx context.Context, id string) error {
	note, ok := s.NoteByID(id)
	if !ok {
		return nil
	}
	pinned := !note.Pinned
	return s.UpdateNote(ctx, id, NotePatch{Pinned: &pinned})
}

// ToggleStar flips the starred flag of a note
func (s *Store) ToggleStar(ctx context.Context, id string) error {
	note, ok := s.NoteByID(id)
	if !ok {
		return nil
	}
	starred := !note.Starred
	return s.UpdateNote(ctx, id, NotePatch{Starred: &starred})
}

// AddTagToNote attaches a tag to a note. Idempotent: attaching a tag the
// note already carries is a no-op. Refreshes the note's update timestamp.
func (s *Store) AddTagToNote(ctx context.Context, noteID, tagID string) error {
	i := s.noteIndex(noteID)
	if i < 0 || s.notes[i].HasTag(tagID) {
		return nil
	}

	if err := s.db.AddTagToNote(ctx, noteID, tagID); err != nil {
		logger.Error("Failed to add tag to note",
			logger.F("note", noteID), logger.F("tag", tagID), logger.F("error", err))
		return err
	}

	s.notes[i].Tags = append(s.notes[i].Tags, tagID)
	s.notes[i].UpdatedAt = time.Now()
	return nil
}

// RemoveTagFromNote detaches a tag from a note and refreshes the note's
// update timestamp
func (s *Store) RemoveTagFromNote(ctx context.Context, noteID, tagID string) error {
	i := s.noteIndex(noteID)
	if i < 0 || !s.notes[i].HasTag(tagID) {
		return nil
	}

	if err := s.db.RemoveTagFromNote(ctx, noteID, tagID); err != nil {
		logger.Error("Failed to remove tag from note",
			logger.F("note", noteID), logger.F("tag", tagID), logger.F("error", err))
		return err
	}

	tags := s.notes[i].Tags[:0]
	for _, id := range s.notes[i].Tags {
		if id != tagID {
			tags = append(tags, id)
		}
	}
	s.notes[i].Tags = tags
	s.notes[i].UpdatedAt = time.Now()
	return nil
}
