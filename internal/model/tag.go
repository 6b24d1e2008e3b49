package model

import (
	"time"

	"github.com/google/uuid"
)

// Tag represents a named, colored label attached to notes
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTag creates a new tag with defaults
func NewTag(name, color string) Tag {
	now := time.Now()
	if color == "" {
		color = ColorGray
	}
	return Tag{
		ID:        uuid.New().String(),
		Name:      name,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
