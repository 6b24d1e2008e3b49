// Package api is the command boundary between the presentation shell and
// the note store. Each operation is a tagged request with a typed payload
// that is validated before it reaches the store.
package api

import (
	"encoding/json"

	"github.com/stickpad/stickpad/internal/model"
)

// Op tags a request with the operation it carries
type Op string

const (
	OpListNotes   Op = "list-notes"
	OpCreateNote  Op = "create-note"
	OpUpdateNote  Op = "update-note"
	OpTrashNote   Op = "trash-note"
	OpRestoreNote Op = "restore-note"
	OpPurgeNote   Op = "purge-note"
	OpEmptyTrash  Op = "empty-trash"
	OpSweepTrash  Op = "sweep-trash"
	OpListTags    Op = "list-tags"
	OpCreateTag   Op = "create-tag"
	OpUpdateTag   Op = "update-tag"
	OpDeleteTag   Op = "delete-tag"
	OpAttachTag   Op = "attach-tag"
	OpDetachTag   Op = "detach-tag"
	OpSetSearch   Op = "set-search"
	OpSelectTag   Op = "select-tag"
)

// Request is the envelope every shell command arrives in
type Request struct {
	Op      Op              `json:"op" validate:"required"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response is the envelope every command result leaves in
type Response struct {
	OK    bool         `json:"ok"`
	Error string       `json:"error,omitempty"`
	Note  *model.Note  `json:"note,omitempty"`
	Notes []model.Note `json:"notes,omitempty"`
	Tag   *model.Tag   `json:"tag,omitempty"`
	Tags  []model.Tag  `json:"tags,omitempty"`
}

// CreateNotePayload carries a new note's fields
type CreateNotePayload struct {
	Title   string   `json:"title" validate:"max=200"`
	Content string   `json:"content" validate:"max=1000000"`
	Color   string   `json:"color" validate:"omitempty,hexcolor"`
	Tags    []string `json:"tags" validate:"omitempty,unique,dive,uuid4"`
}

// UpdateNotePayload carries a partial note update; nil fields are untouched
type UpdateNotePayload struct {
	ID      string  `json:"id" validate:"required,uuid4"`
	Title   *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Content *string `json:"content,omitempty" validate:"omitempty,max=1000000"`
	Color   *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Pinned  *bool   `json:"pinned,omitempty"`
	Starred *bool   `json:"starred,omitempty"`
}

// NoteIDPayload addresses one note
type NoteIDPayload struct {
	ID string `json:"id" validate:"required,uuid4"`
}

// CreateTagPayload carries a new tag's fields
type CreateTagPayload struct {
	Name  string `json:"name" validate:"required,min=1,max=50"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

// UpdateTagPayload carries a partial tag update
type UpdateTagPayload struct {
	ID    string  `json:"id" validate:"required,uuid4"`
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Color *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// TagIDPayload addresses one tag
type TagIDPayload struct {
	ID string `json:"id" validate:"required,uuid4"`
}

// AssociationPayload addresses a note-tag pair
type AssociationPayload struct {
	NoteID string `json:"note_id" validate:"required,uuid4"`
	TagID  string `json:"tag_id" validate:"required,uuid4"`
}

// SearchPayload sets the free-text filter
type SearchPayload struct {
	Query string `json:"query" validate:"max=500"`
}

// SelectTagPayload sets or clears the tag filter
type SelectTagPayload struct {
	TagID string `json:"tag_id" validate:"omitempty,uuid4"`
}
