package api

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stickpad/stickpad/internal/config"
	"github.com/stickpad/stickpad/internal/model"
	"github.com/stickpad/stickpad/internal/store"
)

// memDB is a minimal in-memory persister for dispatcher tests
type memDB struct {
	notes map[string]model.Note
	tags  map[string]model.Tag
}

func newMemDB() *memDB {
	return &memDB{notes: map[string]model.Note{}, tags: map[string]model.Tag{}}
}

func (m *memDB) ListNotes(ctx context.Context) ([]model.Note, error) { return nil, nil }
func (m *memDB) UpsertNote(ctx context.Context, n model.Note) error {
	m.notes[n.ID] = n
	return nil
}
func (m *memDB) UpdateNote(ctx context.Context, n model.Note) error {
	m.notes[n.ID] = n
	return nil
}
func (m *memDB) DeleteNote(ctx context.Context, id string) error {
	delete(m.notes, id)
	return nil
}
func (m *memDB) ListTags(ctx context.Context) ([]model.Tag, error) { return nil, nil }
func (m *memDB) UpsertTag(ctx context.Context, t model.Tag) error {
	m.tags[t.ID] = t
	return nil
}
func (m *memDB) DeleteTag(ctx context.Context, id string) error {
	delete(m.tags, id)
	return nil
}
func (m *memDB) AddTagToNote(ctx context.Context, noteID, tagID string) error      { return nil }
func (m *memDB) RemoveTagFromNote(ctx context.Context, noteID, tagID string) error { return nil }

func newDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	s := store.New(newMemDB())
	return NewDispatcher(s, config.DefaultConfig())
}

func payload(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestDispatch_CreateAndListNotes(t *testing.T) {
	d := newDispatcher(t)
	ctx := context.Background()

	resp := d.Handle(ctx, Request{Op: OpCreateNote, Payload: payload(t, CreateNotePayload{
		Title:   "Groceries",
		Content: "milk",
		Color:   "#FFE66D",
	})})
	require.True(t, resp.OK, resp.Error)
	require.NotNil(t, resp.Note)

	resp = d.Handle(ctx, Request{Op: OpListNotes})
	require.True(t, resp.OK)
	assert.Len(t, resp.Notes, 1)
}

func TestDispatch_TrashRestorePurge(t *testing.T) {
	d := newDispatcher(t)
	ctx := context.Background()

	created := d.Handle(ctx, Request{Op: OpCreateNote, Payload: payload(t, CreateNotePayload{Title: "x"})})
	require.True(t, created.OK)
	id := created.Note.ID

	resp := d.Handle(ctx, Request{Op: OpTrashNote, Payload: payload(t, NoteIDPayload{ID: id})})
	require.True(t, resp.OK, resp.Error)

	resp = d.Handle(ctx, Request{Op: OpRestoreNote, Payload: payload(t, NoteIDPayload{ID: id})})
	require.True(t, resp.OK, resp.Error)

	resp = d.Handle(ctx, Request{Op: OpTrashNote, Payload: payload(t, NoteIDPayload{ID: id})})
	require.True(t, resp.OK)
	resp = d.Handle(ctx, Request{Op: OpPurgeNote, Payload: payload(t, NoteIDPayload{ID: id})})
	require.True(t, resp.OK)

	resp = d.Handle(ctx, Request{Op: OpListNotes})
	assert.Empty(t, resp.Notes)
}

func TestDispatch_RejectsInvalidPayload(t *testing.T) {
	d := newDispatcher(t)
	ctx := context.Background()

	// Missing required id
	resp := d.Handle(ctx, Request{Op: OpTrashNote, Payload: json.RawMessage(`{}`)})
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Error, "invalid payload")

	// Not a UUID
	resp = d.Handle(ctx, Request{Op: OpPurgeNote, Payload: payload(t, NoteIDPayload{ID: "42"})})
	assert.False(t, resp.OK)

	// Bad color
	resp = d.Handle(ctx, Request{Op: OpCreateNote, Payload: payload(t, CreateNotePayload{
		Title: "x", Color: "chartreuse",
	})})
	assert.False(t, resp.OK)
}

func TestDispatch_UnknownOp(t *testing.T) {
	d := newDispatcher(t)
	resp := d.Handle(context.Background(), Request{Op: "self-destruct"})
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Error, "unknown operation")
}

func TestDispatch_TagLifecycle(t *testing.T) {
	d := newDispatcher(t)
	ctx := context.Background()

	created := d.Handle(ctx, Request{Op: OpCreateTag, Payload: payload(t, CreateTagPayload{
		Name: "home", Color: "#95E1A3",
	})})
	require.True(t, created.OK, created.Error)
	tagID := created.Tag.ID

	note := d.Handle(ctx, Request{Op: OpCreateNote, Payload: payload(t, CreateNotePayload{Title: "n"})})
	require.True(t, note.OK)

	resp := d.Handle(ctx, Request{Op: OpAttachTag, Payload: payload(t, AssociationPayload{
		NoteID: note.Note.ID, TagID: tagID,
	})})
	require.True(t, resp.OK, resp.Error)

	resp = d.Handle(ctx, Request{Op: OpDeleteTag, Payload: payload(t, TagIDPayload{ID: tagID})})
	require.True(t, resp.OK)

	resp = d.Handle(ctx, Request{Op: OpListTags})
	assert.Empty(t, resp.Tags)
}

func TestDispatch_SearchAndSelect(t *testing.T) {
	d := newDispatcher(t)
	ctx := context.Background()

	d.Handle(ctx, Request{Op: OpCreateNote, Payload: payload(t, CreateNotePayload{Title: "Shopping"})})
	d.Handle(ctx, Request{Op: OpCreateNote, Payload: payload(t, CreateNotePayload{Title: "Work"})})

	resp := d.Handle(ctx, Request{Op: OpSetSearch, Payload: payload(t, SearchPayload{Query: "shop"})})
	require.True(t, resp.OK)
	require.Len(t, resp.Notes, 1)
	assert.Equal(t, "Shopping", resp.Notes[0].Title)
}

func TestHandleJSON_RoundTrip(t *testing.T) {
	d := newDispatcher(t)

	out := d.HandleJSON(context.Background(), []byte(`{"op":"list-notes"}`))
	var resp Response
	require.NoError(t, json.Unmarshal(out, &resp))
	assert.True(t, resp.OK)

	out = d.HandleJSON(context.Background(), []byte(`not json`))
	require.NoError(t, json.Unmarshal(out, &resp))
	assert.False(t, resp.OK)
}
