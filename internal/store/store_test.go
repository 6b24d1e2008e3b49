package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stickpad/stickpad/internal/config"
	"github.com/stickpad/stickpad/internal/model"
)

// fakeDB is an in-memory persister with failure injection
type fakeDB struct {
	notes map[string]model.Note
	tags  map[string]model.Tag
	err   error // returned by every mutating call when set
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		notes: make(map[string]model.Note),
		tags:  make(map[string]model.Tag),
	}
}

func (f *fakeDB) ListNotes(ctx context.Context) ([]model.Note, error) {
	var out []model.Note
	for _, n := range f.notes {
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeDB) UpsertNote(ctx context.Context, note model.Note) error {
	if f.err != nil {
		return f.err
	}
	f.notes[note.ID] = note
	return nil
}

func (f *fakeDB) UpdateNote(ctx context.Context, note model.Note) error {
	if f.err != nil {
		return f.err
	}
	if existing, ok := f.notes[note.ID]; ok {
		note.Tags = existing.Tags // column update does not touch associations
		f.notes[note.ID] = note
	}
	return nil
}

func (f *fakeDB) DeleteNote(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.notes, id)
	return nil
}

func (f *fakeDB) ListTags(ctx context.Context) ([]model.Tag, error) {
	var out []model.Tag
	for _, t := range f.tags {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeDB) UpsertTag(ctx context.Context, tag model.Tag) error {
	if f.err != nil {
		return f.err
	}
	f.tags[tag.ID] = tag
	return nil
}

func (f *fakeDB) DeleteTag(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.tags, id)
	for nid, n := range f.notes {
		var tags []string
		for _, t := range n.Tags {
			if t != id {
				tags = append(tags, t)
			}
		}
		n.Tags = tags
		f.notes[nid] = n
	}
	return nil
}

func (f *fakeDB) AddTagToNote(ctx context.Context, noteID, tagID string) error {
	if f.err != nil {
		return f.err
	}
	n, ok := f.notes[noteID]
	if !ok {
		return nil
	}
	for _, t := range n.Tags {
		if t == tagID {
			return nil
		}
	}
	n.Tags = append(n.Tags, tagID)
	f.notes[noteID] = n
	return nil
}

func (f *fakeDB) RemoveTagFromNote(ctx context.Context, noteID, tagID string) error {
	if f.err != nil {
		return f.err
	}
	n, ok := f.notes[noteID]
	if !ok {
		return nil
	}
	var tags []string
	for _, t := range n.Tags {
		if t != tagID {
			tags = append(tags, t)
		}
	}
	n.Tags = tags
	f.notes[noteID] = n
	return nil
}

func newTestStore(t *testing.T) (*Store, *fakeDB) {
	t.Helper()
	db := newFakeDB()
	return New(db), db
}

func TestAddNote(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	note, err := s.AddNote(ctx, "Groceries", "milk, eggs", model.ColorYellow, nil)
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.NotEmpty(t, note.ID)
	assert.False(t, note.Deleted)
	assert.Nil(t, note.DeletedAt)

	// Persisted and in memory
	assert.Contains(t, db.notes, note.ID)
	assert.Len(t, s.ActiveNotes(), 1)
}

func TestAddNote_PersistenceFailureLeavesMemoryUnchanged(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	db.err = errors.New("disk full")
	note, err := s.AddNote(ctx, "doomed", "", "", nil)
	assert.Error(t, err)
	assert.Nil(t, note)
	assert.Empty(t, s.ActiveNotes())
}

func TestUpdateNote_RefreshesTimestamp(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	note, err := s.AddNote(ctx, "v1", "", "", nil)
	require.NoError(t, err)
	before := note.UpdatedAt

	time.Sleep(5 * time.Millisecond)
	title := "v2"
	require.NoError(t, s.UpdateNote(ctx, note.ID, NotePatch{Title: &title}))

	got, ok := s.NoteByID(note.ID)
	require.True(t, ok)
	assert.Equal(t, "v2", got.Title)
	assert.True(t, got.UpdatedAt.After(before))
}

func TestUpdateNote_UnknownIDIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)
	title := "x"
	assert.NoError(t, s.UpdateNote(context.Background(), "no-such-id", NotePatch{Title: &title}))
}

func TestUpdateNote_FailureKeepsOldState(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	note, err := s.AddNote(ctx, "original", "", "", nil)
	require.NoError(t, err)

	db.err = errors.New("constraint violated")
	title := "changed"
	assert.Error(t, s.UpdateNote(ctx, note.ID, NotePatch{Title: &title}))

	got, _ := s.NoteByID(note.ID)
	assert.Equal(t, "original", got.Title)
}

func TestTrashInvariants(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	note, err := s.AddNote(ctx, "a", "", "", nil)
	require.NoError(t, err)

	// Active: no trash fields
	got, _ := s.NoteByID(note.ID)
	assert.False(t, got.Deleted)
	assert.Nil(t, got.DeletedAt)
	assert.Nil(t, got.OriginalPosition)

	require.NoError(t, s.MoveToTrash(ctx, note.ID))
	got, _ = s.NoteByID(note.ID)
	assert.True(t, got.Deleted)
	require.NotNil(t, got.DeletedAt)
	require.NotNil(t, got.OriginalPosition)

	require.NoError(t, s.RestoreFromTrash(ctx, note.ID))
	got, _ = s.NoteByID(note.ID)
	assert.False(t, got.Deleted)
	assert.Nil(t, got.DeletedAt)
	assert.Nil(t, got.OriginalPosition)
}

func TestRestore_ReturnsToOriginalIndex(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	a, _ := s.AddNote(ctx, "a", "", "", nil)
	b, _ := s.AddNote(ctx, "b", "", "", nil)
	c, _ := s.AddNote(ctx, "c", "", "", nil)

	require.NoError(t, s.MoveToTrash(ctx, b.ID))
	require.NoError(t, s.RestoreFromTrash(ctx, b.ID))

	var ids []string
	for _, n := range s.notes {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, ids)
}

func TestRestore_AppendsWhenPositionOutOfBounds(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	a, _ := s.AddNote(ctx, "a", "", "", nil)
	b, _ := s.AddNote(ctx, "b", "", "", nil)
	c, _ := s.AddNote(ctx, "c", "", "", nil)

	require.NoError(t, s.MoveToTrash(ctx, c.ID)) // original position 2

	// Purge the earlier notes so position 2 no longer fits
	require.NoError(t, s.DeletePermanently(ctx, a.ID))
	require.NoError(t, s.DeletePermanently(ctx, b.ID))

	require.NoError(t, s.RestoreFromTrash(ctx, c.ID))
	active := s.ActiveNotes()
	require.Len(t, active, 1)
	assert.Equal(t, c.ID, active[0].ID)
}

func TestDeletePermanently(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	note, _ := s.AddNote(ctx, "gone", "", "", nil)
	require.NoError(t, s.MoveToTrash(ctx, note.ID))
	require.NoError(t, s.DeletePermanently(ctx, note.ID))

	_, ok := s.NoteByID(note.ID)
	assert.False(t, ok)
	assert.NotContains(t, db.notes, note.ID)
}

func TestEmptyTrash(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	a, _ := s.AddNote(ctx, "keep", "", "", nil)
	b, _ := s.AddNote(ctx, "toss", "", "", nil)
	require.NoError(t, s.MoveToTrash(ctx, b.ID))

	require.NoError(t, s.EmptyTrash(ctx))
	assert.Empty(t, s.TrashNotes())
	_, ok := s.NoteByID(a.ID)
	assert.True(t, ok)
}

func TestAddTagToNote_Idempotent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	tag, err := s.AddTag(ctx, "home", "")
	require.NoError(t, err)
	note, _ := s.AddNote(ctx, "a", "", "", nil)

	require.NoError(t, s.AddTagToNote(ctx, note.ID, tag.ID))
	require.NoError(t, s.AddTagToNote(ctx, note.ID, tag.ID))

	got, _ := s.NoteByID(note.ID)
	assert.Equal(t, []string{tag.ID}, got.Tags)
}

func TestRemoveTagFromNote(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	tag, _ := s.AddTag(ctx, "home", "")
	note, _ := s.AddNote(ctx, "a", "", "", []string{tag.ID})

	require.NoError(t, s.RemoveTagFromNote(ctx, note.ID, tag.ID))
	got, _ := s.NoteByID(note.ID)
	assert.Empty(t, got.Tags)
}

func TestRemoveTag_CascadesIntoEveryNote(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	tag, _ := s.AddTag(ctx, "work", "")
	other, _ := s.AddTag(ctx, "home", "")
	a, _ := s.AddNote(ctx, "a", "", "", []string{tag.ID, other.ID})
	b, _ := s.AddNote(ctx, "b", "", "", []string{tag.ID})

	require.NoError(t, s.RemoveTag(ctx, tag.ID))

	_, ok := s.TagByID(tag.ID)
	assert.False(t, ok)
	gotA, _ := s.NoteByID(a.ID)
	gotB, _ := s.NoteByID(b.ID)
	assert.Equal(t, []string{other.ID}, gotA.Tags)
	assert.Empty(t, gotB.Tags)
	assert.NotContains(t, db.tags, tag.ID)
}

func TestRemoveTag_ClearsSelection(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	tag, _ := s.AddTag(ctx, "temp", "")
	s.SelectTag(tag.ID)

	require.NoError(t, s.RemoveTag(ctx, tag.ID))
	assert.Equal(t, "", s.SelectedTag())
}

func TestFilteredNotes_NoFilterReturnsActiveOnly(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	a, _ := s.AddNote(ctx, "a", "", "", nil)
	b, _ := s.AddNote(ctx, "b", "", "", nil)
	require.NoError(t, s.MoveToTrash(ctx, b.ID))

	got := s.FilteredNotes()
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)
}

func TestFilteredNotes_QueryMatchesTitleContentAndTagName(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	urgent, _ := s.AddTag(ctx, "Urgent", "")
	byTitle, _ := s.AddNote(ctx, "Shopping list", "", "", nil)
	byContent, _ := s.AddNote(ctx, "x", "go SHOPPING later", "", nil)
	byTag, _ := s.AddNote(ctx, "y", "", "", []string{urgent.ID})
	s.AddNote(ctx, "unrelated", "nothing", "", nil)

	s.SetSearchQuery("shop")
	ids := noteIDs(s.FilteredNotes())
	assert.ElementsMatch(t, []string{byTitle.ID, byContent.ID}, ids)

	s.SetSearchQuery("urg")
	ids = noteIDs(s.FilteredNotes())
	assert.Equal(t, []string{byTag.ID}, ids)
}

func TestFilteredNotes_TagFilterAndQueryCombine(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	home, _ := s.AddTag(ctx, "home", "")
	office, _ := s.AddTag(ctx, "office", "")
	a, _ := s.AddNote(ctx, "Shopping", "", "", []string{home.ID})
	s.AddNote(ctx, "Shopping", "", "", []string{office.ID})

	s.SetSearchQuery("shopping")
	s.SelectTag(home.ID)

	ids := noteIDs(s.FilteredNotes())
	assert.Equal(t, []string{a.ID}, ids)
}

func TestFilteredNotes_TrashRestoreScenario(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	home, _ := s.AddTag(ctx, "home", "")
	office, _ := s.AddTag(ctx, "office", "")
	a, _ := s.AddNote(ctx, "Shopping", "", "", []string{home.ID})
	s.AddNote(ctx, "Work", "", "", []string{office.ID})

	require.NoError(t, s.MoveToTrash(ctx, a.ID))
	s.SetSearchQuery("shop")
	assert.Empty(t, s.FilteredNotes())

	require.NoError(t, s.RestoreFromTrash(ctx, a.ID))
	ids := noteIDs(s.FilteredNotes())
	assert.Equal(t, []string{a.ID}, ids)
}

func TestFilteredNotes_ReturnsDisplayOrder(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	old, _ := s.AddNote(ctx, "Shopping old", "", "", nil)
	time.Sleep(5 * time.Millisecond)
	newer, _ := s.AddNote(ctx, "Shopping new", "", "", nil)
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, s.TogglePin(ctx, old.ID))

	s.SetSearchQuery("shopping")
	got := s.FilteredNotes()
	require.Len(t, got, 2)
	assert.Equal(t, old.ID, got[0].ID) // pinned wins over recency
	assert.Equal(t, newer.ID, got[1].ID)
}

func TestNotes_PinnedFirstThenMostRecent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	old, _ := s.AddNote(ctx, "old", "", "", nil)
	time.Sleep(5 * time.Millisecond)
	newer, _ := s.AddNote(ctx, "newer", "", "", nil)
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, s.TogglePin(ctx, old.ID))

	got := s.Notes()
	require.Len(t, got, 2)
	assert.Equal(t, old.ID, got[0].ID) // pinned wins over recency
	assert.Equal(t, newer.ID, got[1].ID)
}

func TestAutoCleanTrash(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	fresh, _ := s.AddNote(ctx, "fresh", "", "", nil)
	stale, _ := s.AddNote(ctx, "stale", "", "", nil)
	require.NoError(t, s.MoveToTrash(ctx, fresh.ID))
	require.NoError(t, s.MoveToTrash(ctx, stale.ID))

	// Backdate deletion times directly
	backdate(s, fresh.ID, 29*24*time.Hour)
	backdate(s, stale.ID, 31*24*time.Hour)

	// Disabled: nothing is removed regardless of age
	require.NoError(t, s.AutoCleanTrash(ctx, config.TrashConfig{AutoClean: false, RetentionDays: 30}))
	assert.Len(t, s.TrashNotes(), 2)

	// Enabled: only the note past the threshold goes
	require.NoError(t, s.AutoCleanTrash(ctx, config.TrashConfig{AutoClean: true, RetentionDays: 30}))
	trash := s.TrashNotes()
	require.Len(t, trash, 1)
	assert.Equal(t, fresh.ID, trash[0].ID)
}

func backdate(s *Store, id string, age time.Duration) {
	i := s.noteIndex(id)
	past := time.Now().Add(-age)
	s.notes[i].DeletedAt = &past
}

func noteIDs(notes []model.Note) []string {
	var ids []string
	for _, n := range notes {
		ids = append(ids, n.ID)
	}
	return ids
}
