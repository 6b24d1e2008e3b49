package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/stickpad/stickpad/internal/config"
	"github.com/stickpad/stickpad/internal/store"
)

// Dispatcher routes validated requests into the note store
type Dispatcher struct {
	store    *store.Store
	cfg      *config.Config
	validate *validator.Validate
}

// NewDispatcher creates a dispatcher over the given store and config
func NewDispatcher(s *store.Store, cfg *config.Config) *Dispatcher {
	return &Dispatcher{
		store:    s,
		cfg:      cfg,
		validate: validator.New(),
	}
}

// HandleJSON decodes a raw request, handles it, and encodes the response
func (d *Dispatcher) HandleJSON(ctx context.Context, raw []byte) []byte {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return mustMarshal(fail(fmt.Errorf("malformed request: %w", err)))
	}
	return mustMarshal(d.Handle(ctx, req))
}

// Handle executes one shell command. Invalid payloads and unknown ops are
// rejected before the store is touched.
func (d *Dispatcher) Handle(ctx context.Context, req Request) Response {
	switch req.Op {
	case OpListNotes:
		return Response{OK: true, Notes: d.store.Notes()}

	case OpCreateNote:
		var p CreateNotePayload
		if err := d.decode(req.Payload, &p); err != nil {
			return fail(err)
		}
		note, err := d.store.AddNote(ctx, p.Title, p.Content, p.Color, p.Tags)
		if err != nil {
			return fail(err)
		}
		return Response{OK: true, Note: note}

	case OpUpdateNote:
		var p UpdateNotePayload
		if err := d.decode(req.Payload, &p); err != nil {
			return fail(err)
		}
		patch := store.NotePatch{
			Title:   p.Title,
			Content: p.Content,
			Color:   p.Color,
			Pinned:  p.Pinned,
			Starred: p.Starred,
		}
		if err := d.store.UpdateNote(ctx, p.ID, patch); err != nil {
			return fail(err)
		}
		return Response{OK: true}

	case OpTrashNote:
		var p NoteIDPayload
		if err := d.decode(req.Payload, &p); err != nil {
			return fail(err)
		}
		if err := d.store.MoveToTrash(ctx, p.ID); err != nil {
			return fail(err)
		}
		return Response{OK: true}

	case OpRestoreNote:
		var p NoteIDPayload
		if err := d.decode(req.Payload, &p); err != nil {
			return fail(err)
		}
		if err := d.store.RestoreFromTrash(ctx, p.ID); err != nil {
			return fail(err)
		}
		return Response{OK: true}

	case OpPurgeNote:
		var p NoteIDPayload
		if err := d.decode(req.Payload, &p); err != nil {
			return fail(err)
		}
		if err := d.store.DeletePermanently(ctx, p.ID); err != nil {
			return fail(err)
		}
		return Response{OK: true}

	case OpEmptyTrash:
		if err := d.store.EmptyTrash(ctx); err != nil {
			return fail(err)
		}
		return Response{OK: true}

	case OpSweepTrash:
		if err := d.store.AutoCleanTrash(ctx, d.cfg.Trash()); err != nil {
			return fail(err)
		}
		return Response{OK: true}

	case OpListTags:
		return Response{OK: true, Tags: d.store.Tags()}

	case OpCreateTag:
		var p CreateTagPayload
		if err := d.decode(req.Payload, &p); err != nil {
			return fail(err)
		}
		tag, err := d.store.AddTag(ctx, p.Name, p.Color)
		if err != nil {
			return fail(err)
		}
		return Response{OK: true, Tag: tag}

	case OpUpdateTag:
		var p UpdateTagPayload
		if err := d.decode(req.Payload, &p); err != nil {
			return fail(err)
		}
		if err := d.store.UpdateTag(ctx, p.ID, store.TagPatch{Name: p.Name, Color: p.Color}); err != nil {
			return fail(err)
		}
		return Response{OK: true}

	case OpDeleteTag:
		var p TagIDPayload
		if err := d.decode(req.Payload, &p); err != nil {
			return fail(err)
		}
		if err := d.store.RemoveTag(ctx, p.ID); err != nil {
			return fail(err)
		}
		return Response{OK: true}

	case OpAttachTag:
		var p AssociationPayload
		if err := d.decode(req.Payload, &p); err != nil {
			return fail(err)
		}
		if err := d.store.AddTagToNote(ctx, p.NoteID, p.TagID); err != nil {
			return fail(err)
		}
		return Response{OK: true}

	case OpDetachTag:
		var p AssociationPayload
		if err := d.decode(req.Payload, &p); err != nil {
			return fail(err)
		}
		if err := d.store.RemoveTagFromNote(ctx, p.NoteID, p.TagID); err != nil {
			return fail(err)
		}
		return Response{OK: true}

	case OpSetSearch:
		var p SearchPayload
		if err := d.decode(req.Payload, &p); err != nil {
			return fail(err)
		}
		d.store.SetSearchQuery(p.Query)
		return Response{OK: true, Notes: d.store.FilteredNotes()}

	case OpSelectTag:
		var p SelectTagPayload
		if err := d.decode(req.Payload, &p); err != nil {
			return fail(err)
		}
		d.store.SelectTag(p.TagID)
		return Response{OK: true, Notes: d.store.FilteredNotes()}

	default:
		return fail(fmt.Errorf("unknown operation: %q", req.Op))
	}
}

// decode unmarshals and validates a payload
func (d *Dispatcher) decode(raw json.RawMessage, payload interface{}) error {
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	if err := json.Unmarshal(raw, payload); err != nil {
		return fmt.Errorf("malformed payload: %w", err)
	}
	if err := d.validate.Struct(payload); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}

func fail(err error) Response {
	return Response{OK: false, Error: err.Error()}
}

func mustMarshal(resp Response) []byte {
	out, err := json.Marshal(resp)
	if err != nil {
		return []byte(`{"ok":false,"error":"failed to encode response"}`)
	}
	return out
}
