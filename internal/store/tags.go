package store

import (
	"context"
	"time"

	"github.com/stickpad/stickpad/internal/logger"
	"github.com/stickpad/stickpad/internal/model"
)

// TagPatch describes a partial tag update. Nil fields are left as-is.
type TagPatch struct {
	Name  *string
	Color *string
}

// Tags returns a copy of the tag list
func (s *Store) Tags() []model.Tag {
	out := make([]model.Tag, len(s.tags))
	copy(out, s.tags)
	return out
}

// TagByID returns a copy of the tag with the given id
func (s *Store) TagByID(id string) (model.Tag, bool) {
	if i := s.tagIndex(id); i >= 0 {
		return s.tags[i], true
	}
	return model.Tag{}, false
}

// TagName returns the name of a tag
func (s *Store) TagName(id string) (string, bool) {
	if tag, ok := s.TagByID(id); ok {
		return tag.Name, true
	}
	return "", false
}

// TagColor returns the color of a tag
func (s *Store) TagColor(id string) (string, bool) {
	if tag, ok := s.TagByID(id); ok {
		return tag.Color, true
	}
	return "", false
}

// TagByName finds a tag by its display name
func (s *Store) TagByName(name string) (model.Tag, bool) {
	for _, t := range s.tags {
		if t.Name == name {
			return t, true
		}
	}
	return model.Tag{}, false
}

// AddTag creates a tag and persists it. Returns the created tag.
func (s *Store) AddTag(ctx context.Context, name, color string) (*model.Tag, error) {
	tag := model.NewTag(name, color)

	if err := s.db.UpsertTag(ctx, tag); err != nil {
		logger.Error("Failed to save tag", logger.F("name", name), logger.F("error", err))
		return nil, err
	}

	s.tags = append(s.tags, tag)
	return &tag, nil
}

// UpdateTag applies a partial update to a tag. Unknown ids are a silent
// no-op.
func (s *Store) UpdateTag(ctx context.Context, id string, patch TagPatch) error {
	i := s.tagIndex(id)
	if i < 0 {
		return nil
	}

	updated := s.tags[i]
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Color != nil {
		updated.Color = *patch.Color
	}
	updated.UpdatedAt = time.Now()

	if err := s.db.UpsertTag(ctx, updated); err != nil {
		logger.Error("Failed to update tag", logger.F("id", id), logger.F("error", err))
		return err
	}

	s.tags[i] = updated
	return nil
}

// RemoveTag deletes a tag. The persisted cascade strips its association
// rows; the in-memory note tag sets are stripped here to match.
func (s *Store) RemoveTag(ctx context.Context, id string) error {
	i := s.tagIndex(id)
	if i < 0 {
		return nil
	}

	if err := s.db.DeleteTag(ctx, id); err != nil {
		logger.Error("Failed to delete tag", logger.F("id", id), logger.F("error", err))
		return err
	}

	s.tags = append(s.tags[:i], s.tags[i+1:]...)
	if s.selectedTag == id {
		s.selectedTag = ""
	}
	for n := range s.notes {
		if !s.notes[n].HasTag(id) {
			continue
		}
		tags := s.notes[n].Tags[:0]
		for _, tagID := range s.notes[n].Tags {
			if tagID != id {
				tags = append(tags, tagID)
			}
		}
		s.notes[n].Tags = tags
	}
	return nil
}
