// Package store is the authoritative in-memory model of notes and tags.
// Every mutation is persisted first and applied to memory only after the
// persistence layer confirms success, so the in-memory and durable state
// agree at every observable point.
package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/stickpad/stickpad/internal/model"
)

// Persister is the durable storage the store reconciles against
type Persister interface {
	ListNotes(ctx context.Context) ([]model.Note, error)
	UpsertNote(ctx context.Context, note model.Note) error
	UpdateNote(ctx context.Context, note model.Note) error
	DeleteNote(ctx context.Context, id string) error
	ListTags(ctx context.Context) ([]model.Tag, error)
	UpsertTag(ctx context.Context, tag model.Tag) error
	DeleteTag(ctx context.Context, id string) error
	AddTagToNote(ctx context.Context, noteID, tagID string) error
	RemoveTagFromNote(ctx context.Context, noteID, tagID string) error
}

// Store owns the note and tag collections
type Store struct {
	db Persister

	notes       []model.Note
	tags        []model.Tag
	searchQuery string
	selectedTag string // empty means no tag filter
}

// New creates a store backed by the given persister
func New(db Persister) *Store {
	return &Store{db: db}
}

// Load replaces the in-memory collections with the durable state. Called
// once at startup; the persistence layer is the source of truth across
// restarts.
func (s *Store) Load(ctx context.Context) error {
	notes, err := s.db.ListNotes(ctx)
	if err != nil {
		return fmt.Errorf("failed to load notes: %w", err)
	}
	tags, err := s.db.ListTags(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tags: %w", err)
	}
	s.notes = notes
	s.tags = tags
	return nil
}

// SetSearchQuery sets the free-text filter used by FilteredNotes
func (s *Store) SetSearchQuery(query string) {
	s.searchQuery = query
}

// SearchQuery returns the current free-text filter
func (s *Store) SearchQuery() string {
	return s.searchQuery
}

// SelectTag sets the tag filter used by FilteredNotes. Empty clears it.
func (s *Store) SelectTag(tagID string) {
	s.selectedTag = tagID
}

// SelectedTag returns the current tag filter, empty if none
func (s *Store) SelectedTag() string {
	return s.selectedTag
}

// NoteByID returns a copy of the note with the given id
func (s *Store) NoteByID(id string) (model.Note, bool) {
	if i := s.noteIndex(id); i >= 0 {
		return s.notes[i], true
	}
	return model.Note{}, false
}

// Notes returns every note in display order: pinned notes first, then by
// most recent update.
func (s *Store) Notes() []model.Note {
	out := make([]model.Note, len(s.notes))
	copy(out, s.notes)
	displaySort(out)
	return out
}

// displaySort orders notes for display: pinned first, then by most recent
// update. Stable, so equal notes keep their list order.
func displaySort(notes []model.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].Pinned != notes[j].Pinned {
			return notes[i].Pinned
		}
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})
}

// ActiveNotes returns the notes not in the trash, in list order
func (s *Store) ActiveNotes() []model.Note {
	var out []model.Note
	for _, n := range s.notes {
		if !n.Deleted {
			out = append(out, n)
		}
	}
	return out
}

// TrashNotes returns the soft-deleted notes
func (s *Store) TrashNotes() []model.Note {
	var out []model.Note
	for _, n := range s.notes {
		if n.Deleted {
			out = append(out, n)
		}
	}
	return out
}

// PinnedNotes returns the pinned notes
func (s *Store) PinnedNotes() []model.Note {
	var out []model.Note
	for _, n := range s.notes {
		if n.Pinned {
			out = append(out, n)
		}
	}
	return out
}

// FilteredNotes returns the active notes matching the current search
// query and selected tag, in display order. The query is a
// case-insensitive substring match against title, content and the names
// of attached tags. Recomputed from current state on every call.
func (s *Store) FilteredNotes() []model.Note {
	query := strings.ToLower(s.searchQuery)

	var out []model.Note
	for _, n := range s.notes {
		if n.Deleted {
			continue
		}
		if s.selectedTag != "" && !n.HasTag(s.selectedTag) {
			continue
		}
		if query != "" && !s.matchesQuery(&n, query) {
			continue
		}
		out = append(out, n)
	}
	displaySort(out)
	return out
}

// matchesQuery reports whether the lowercased query hits the note's
// title, content or any attached tag name
func (s *Store) matchesQuery(n *model.Note, query string) bool {
	if strings.Contains(strings.ToLower(n.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(n.Content), query) {
		return true
	}
	for _, tagID := range n.Tags {
		if name, ok := s.TagName(tagID); ok && strings.Contains(strings.ToLower(name), query) {
			return true
		}
	}
	return false
}

// noteIndex returns the position of a note in list order, -1 if absent
func (s *Store) noteIndex(id string) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}

// tagIndex returns the position of a tag, -1 if absent
func (s *Store) tagIndex(id string) int {
	for i := range s.tags {
		if s.tags[i].ID == id {
			return i
		}
	}
	return -1
}
