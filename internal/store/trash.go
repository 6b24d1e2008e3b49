package store

import (
	"context"
	"time"

	"github.com/stickpad/stickpad/internal/config"
	"github.com/stickpad/stickpad/internal/logger"
)

// MoveToTrash soft-deletes a note: the current list index is remembered
// as the original position and the deletion time is stamped. Persisted as
// an update, not a physical delete.
func (s *Store) MoveToTrash(ctx context.Context, id string) error {
	i := s.noteIndex(id)
	if i < 0 || s.notes[i].Deleted {
		return nil
	}

	now := time.Now()
	position := i

	trashed := s.notes[i]
	trashed.Deleted = true
	trashed.DeletedAt = &now
	trashed.OriginalPosition = &position
	trashed.UpdatedAt = now

	if err := s.db.UpdateNote(ctx, trashed); err != nil {
		logger.Error("Failed to trash note", logger.F("id", id), logger.F("error", err))
		return err
	}

	s.notes[i] = trashed
	return nil
}

// RestoreFromTrash returns a note to the active list. Reinsertion at the
// original position is best-effort: if intervening edits shrank the list
// below that index, the note is appended instead.
func (s *Store) RestoreFromTrash(ctx context.Context, id string) error {
	i := s.noteIndex(id)
	if i < 0 || !s.notes[i].Deleted {
		return nil
	}

	position := s.notes[i].OriginalPosition

	restored := s.notes[i]
	restored.Deleted = false
	restored.DeletedAt = nil
	restored.OriginalPosition = nil
	restored.UpdatedAt = time.Now()

	if err := s.db.UpdateNote(ctx, restored); err != nil {
		logger.Error("Failed to restore note", logger.F("id", id), logger.F("error", err))
		return err
	}

	s.notes = append(s.notes[:i], s.notes[i+1:]...)
	if position != nil && *position < len(s.notes) {
		s.notes = append(s.notes, restored)
		copy(s.notes[*position+1:], s.notes[*position:])
		s.notes[*position] = restored
	} else {
		s.notes = append(s.notes, restored)
	}
	return nil
}

// DeletePermanently purges a note and its tag associations from storage.
// Irreversible; this is the only true deletion.
func (s *Store) DeletePermanently(ctx context.Context, id string) error {
	if s.noteIndex(id) < 0 {
		return nil
	}

	if err := s.db.DeleteNote(ctx, id); err != nil {
		logger.Error("Failed to purge note", logger.F("id", id), logger.F("error", err))
		return err
	}

	s.removeNote(id)
	return nil
}

// EmptyTrash purges every trashed note
func (s *Store) EmptyTrash(ctx context.Context) error {
	for _, n := range s.TrashNotes() {
		if err := s.DeletePermanently(ctx, n.ID); err != nil {
			return err
		}
	}
	return nil
}

// AutoCleanTrash purges trashed notes that have outlived the retention
// window. A no-op unless auto-clean is enabled. The schedule is the
// caller's concern; this only applies the predicate.
func (s *Store) AutoCleanTrash(ctx context.Context, cfg config.TrashConfig) error {
	if !cfg.AutoClean {
		return nil
	}

	now := time.Now()
	for _, n := range s.TrashNotes() {
		if n.Expired(now, cfg.RetentionDays) {
			logger.Info("Sweeping expired note from trash", logger.F("id", n.ID))
			if err := s.DeletePermanently(ctx, n.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

// removeNote drops a note from the in-memory list
func (s *Store) removeNote(id string) {
	if i := s.noteIndex(id); i >= 0 {
		s.notes = append(s.notes[:i], s.notes[i+1:]...)
	}
}
