package model

import (
	"time"

	"github.com/google/uuid"
)

// Note colors from the fixed palette
const (
	ColorYellow = "#FFE66D"
	ColorGreen  = "#95E1A3"
	ColorBlue   = "#4ECDC4"
	ColorPink   = "#FF8FAB"
	ColorOrange = "#FFB347"
	ColorGray   = "#6C757D"
)

// Palette lists every color a note may carry, in display order.
var Palette = []string{ColorYellow, ColorGreen, ColorBlue, ColorPink, ColorOrange, ColorGray}

// Encryption holds the at-rest encryption envelope of a note. A note is
// encrypted iff its Encryption pointer is non-nil; the four fields are
// always populated together.
type Encryption struct {
	Ciphertext string `json:"ciphertext"`
	Salt       string `json:"salt"`
	IV         string `json:"iv"`
	Algorithm  string `json:"algorithm"`
}

// Note represents a single sticky note
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Color     string    `json:"color"`
	Pinned    bool      `json:"pinned"`
	Starred   bool      `json:"starred"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Trash state. DeletedAt and OriginalPosition are set iff Deleted.
	Deleted          bool       `json:"deleted"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty"`
	OriginalPosition *int       `json:"original_position,omitempty"`

	Encryption *Encryption `json:"encryption,omitempty"`
}

// NewNote creates a new note with defaults
func NewNote(title, content, color string) Note {
	now := time.Now()
	if color == "" {
		color = ColorYellow
	}
	return Note{
		ID:        uuid.New().String(),
		Title:     title,
		Content:   content,
		Color:     color,
		Tags:      []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// InTrash returns true if the note is soft-deleted
func (n *Note) InTrash() bool {
	return n.Deleted
}

// Encrypted returns true if the note content is stored as ciphertext
func (n *Note) Encrypted() bool {
	return n.Encryption != nil
}

// HasTag returns true if the note carries the given tag id
func (n *Note) HasTag(tagID string) bool {
	for _, id := range n.Tags {
		if id == tagID {
			return true
		}
	}
	return false
}

// Expired reports whether a trashed note has outlived the retention
// window. Notes that are not in the trash never expire.
func (n *Note) Expired(now time.Time, retentionDays int) bool {
	if !n.Deleted || n.DeletedAt == nil {
		return false
	}
	threshold := time.Duration(retentionDays) * 24 * time.Hour
	return now.Sub(*n.DeletedAt) >= threshold
}
