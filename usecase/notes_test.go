package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/dto"
	"main/model"
	"main/services"
)

type noteFixture struct {
	svc   *NoteService
	repo  *fakeNotesRepo
	store *memoryStore
	queue *fakeQueue
}

func newNoteFixture(t *testing.T) *noteFixture {
	t.Helper()
	repo := newFakeNotesRepo()
	store := newMemoryStore()
	cache := services.NewNoteCache(store, repo)
	queue := &fakeQueue{}
	users := &fakeUsers{users: map[string]*model.User{
		"owner":  {UserID: "owner", Username: "ada", Email: "ada@example.com"},
		"reader": {UserID: "reader", Username: "bob", Email: "bob@example.com"},
		"writer": {UserID: "writer", Username: "cid", Email: "cid@example.com"},
	}}
	scheduler := services.NewReminderScheduler(repo, users, cache, fakeMailer{}, queue, "noreply@example.com", time.Minute)
	labels := &fakeLabels{labels: map[string]*model.Label{
		"l1": {ID: "l1", UserID: "owner", Name: "work"},
	}}
	return &noteFixture{
		svc: &NoteService{
			Notes:     repo,
			Cache:     cache,
			Scheduler: scheduler,
			Users:     users,
			Labels:    labels,
		},
		repo:  repo,
		store: store,
		queue: queue,
	}
}

// sharedNote seeds a note owned by "owner" with a read_only and a
// read_write collaborator.
func (f *noteFixture) sharedNote(t *testing.T, id string) *model.Note {
	t.Helper()
	note := &model.Note{
		ID:     id,
		UserID: "owner",
		Title:  "release checklist",
		Collaborators: []model.Collaborator{
			{UserID: "reader", Access: model.AccessReadOnly},
			{UserID: "writer", Access: model.AccessReadWrite},
		},
	}
	require.NoError(t, f.repo.CreateNote(context.Background(), note))
	return note
}

func newTitle(s string) *string { return &s }

func TestCreateNoteRequiresTitle(t *testing.T) {
	f := newNoteFixture(t)

	_, err := f.svc.Create(context.Background(), "owner", dto.CreateNoteRequest{Title: "   "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateNoteAssignsIDAndOwner(t *testing.T) {
	f := newNoteFixture(t)

	note, err := f.svc.Create(context.Background(), "owner", dto.CreateNoteRequest{Title: "  groceries  "})
	require.NoError(t, err)
	assert.NotEmpty(t, note.ID)
	assert.Equal(t, "owner", note.UserID)
	assert.Equal(t, "groceries", note.Title)
	assert.Equal(t, 0, f.queue.count())
}

func TestCreateNoteWithFutureReminderSchedulesJob(t *testing.T) {
	f := newNoteFixture(t)

	at := time.Now().Add(time.Hour)
	_, err := f.svc.Create(context.Background(), "owner", dto.CreateNoteRequest{Title: "call", Reminder: &at})
	require.NoError(t, err)
	assert.Equal(t, 1, f.queue.count())
}

func TestCreateNoteWithPastReminderLeftToSweep(t *testing.T) {
	f := newNoteFixture(t)

	at := time.Now().Add(-time.Hour)
	_, err := f.svc.Create(context.Background(), "owner", dto.CreateNoteRequest{Title: "call", Reminder: &at})
	require.NoError(t, err)
	assert.Equal(t, 0, f.queue.count())
}

func TestGetHidesExistenceFromStrangers(t *testing.T) {
	f := newNoteFixture(t)
	f.sharedNote(t, "n1")

	_, err := f.svc.Get(context.Background(), "stranger", "n1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.Get(context.Background(), "owner", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetVisibleToCollaborators(t *testing.T) {
	f := newNoteFixture(t)
	f.sharedNote(t, "n1")

	note, err := f.svc.Get(context.Background(), "reader", "n1")
	require.NoError(t, err)
	assert.Equal(t, "release checklist", note.Title)
}

func TestUpdateAuthorization(t *testing.T) {
	tests := []struct {
		name    string
		actor   string
		wantErr error
	}{
		{"owner may update", "owner", nil},
		{"read_write collaborator may update", "writer", nil},
		{"read_only collaborator is forbidden", "reader", ErrForbidden},
		{"stranger sees not found", "stranger", ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newNoteFixture(t)
			f.sharedNote(t, "n1")

			_, err := f.svc.Update(context.Background(), tt.actor, "n1", dto.UpdateNoteRequest{Title: newTitle("updated")})
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, "updated", f.repo.notes["n1"].Title)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestUpdateRejectsBlankTitle(t *testing.T) {
	f := newNoteFixture(t)
	f.sharedNote(t, "n1")

	_, err := f.svc.Update(context.Background(), "owner", "n1", dto.UpdateNoteRequest{Title: newTitle("  ")})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateInvalidatesCollaboratorLists(t *testing.T) {
	ctx := context.Background()
	f := newNoteFixture(t)
	f.sharedNote(t, "n1")

	// Warm every viewer's cached list.
	for _, uid := range []string{"owner", "reader", "writer"} {
		_, err := f.svc.List(ctx, uid)
		require.NoError(t, err)
	}

	_, err := f.svc.Update(ctx, "owner", "n1", dto.UpdateNoteRequest{Title: newTitle("updated")})
	require.NoError(t, err)

	assert.True(t, f.store.has("notes:owner"), "actor's list is patched in place")
	assert.False(t, f.store.has("notes:reader"))
	assert.False(t, f.store.has("notes:writer"))
}

func TestDeleteIsOwnerOnly(t *testing.T) {
	ctx := context.Background()
	f := newNoteFixture(t)
	f.sharedNote(t, "n1")

	assert.ErrorIs(t, f.svc.Delete(ctx, "writer", "n1"), ErrForbidden)
	assert.ErrorIs(t, f.svc.Delete(ctx, "stranger", "n1"), ErrNotFound)

	require.NoError(t, f.svc.Delete(ctx, "owner", "n1"))
	_, ok := f.repo.notes["n1"]
	assert.False(t, ok)
}

func TestToggleArchiveInvalidatesAllAffectedLists(t *testing.T) {
	ctx := context.Background()
	f := newNoteFixture(t)
	f.sharedNote(t, "n1")

	for _, uid := range []string{"owner", "reader", "writer"} {
		_, err := f.svc.List(ctx, uid)
		require.NoError(t, err)
	}

	note, err := f.svc.ToggleArchive(ctx, "owner", "n1")
	require.NoError(t, err)
	assert.True(t, note.IsArchive)

	// Archiving moves the note across derived views: every affected
	// cached list is dropped, the actor's included.
	assert.False(t, f.store.has("notes:owner"))
	assert.False(t, f.store.has("notes:reader"))
	assert.False(t, f.store.has("notes:writer"))

	active, err := f.svc.List(ctx, "owner")
	require.NoError(t, err)
	assert.Empty(t, active)

	archived, err := f.svc.ListArchived(ctx, "owner")
	require.NoError(t, err)
	assert.Len(t, archived, 1)
}

func TestToggleTrashRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newNoteFixture(t)
	f.sharedNote(t, "n1")

	note, err := f.svc.ToggleTrash(ctx, "writer", "n1")
	require.NoError(t, err)
	assert.True(t, note.IsTrash)

	trashed, err := f.svc.ListTrashed(ctx, "owner")
	require.NoError(t, err)
	assert.Len(t, trashed, 1)

	note, err = f.svc.ToggleTrash(ctx, "owner", "n1")
	require.NoError(t, err)
	assert.False(t, note.IsTrash)
}

func TestAddCollaboratorsIsOwnerOnly(t *testing.T) {
	ctx := context.Background()
	f := newNoteFixture(t)
	f.sharedNote(t, "n1")

	req := dto.AddCollaboratorsRequest{UserIDs: []string{"reader"}}
	_, err := f.svc.AddCollaborators(ctx, "writer", "n1", req)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAddCollaboratorsRejectsOwner(t *testing.T) {
	ctx := context.Background()
	f := newNoteFixture(t)
	f.sharedNote(t, "n1")

	req := dto.AddCollaboratorsRequest{UserIDs: []string{"owner"}}
	_, err := f.svc.AddCollaborators(ctx, "owner", "n1", req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddCollaboratorsRejectsUnknownUser(t *testing.T) {
	ctx := context.Background()
	f := newNoteFixture(t)
	f.sharedNote(t, "n1")

	req := dto.AddCollaboratorsRequest{UserIDs: []string{"nobody"}}
	_, err := f.svc.AddCollaborators(ctx, "owner", "n1", req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddCollaboratorsSkipsDuplicatesAndExisting(t *testing.T) {
	ctx := context.Background()
	f := newNoteFixture(t)
	f.sharedNote(t, "n1")

	// "reader" is already on the note; "writer" appears twice in the
	// request. Neither may produce a duplicate pair.
	req := dto.AddCollaboratorsRequest{UserIDs: []string{"reader", "writer", "writer"}, Access: model.AccessReadWrite}
	note, err := f.svc.AddCollaborators(ctx, "owner", "n1", req)
	require.NoError(t, err)
	assert.Len(t, note.Collaborators, 2)
}

func TestAddCollaboratorsDefaultsToReadOnly(t *testing.T) {
	ctx := context.Background()
	f := newNoteFixture(t)
	note := &model.Note{ID: "n1", UserID: "owner", Title: "solo"}
	require.NoError(t, f.repo.CreateNote(ctx, note))

	req := dto.AddCollaboratorsRequest{UserIDs: []string{"reader"}}
	updated, err := f.svc.AddCollaborators(ctx, "owner", "n1", req)
	require.NoError(t, err)
	require.Len(t, updated.Collaborators, 1)
	assert.Equal(t, model.AccessReadOnly, updated.Collaborators[0].Access)
}

func TestRemoveCollaboratorsNoMatchIsValidationError(t *testing.T) {
	ctx := context.Background()
	f := newNoteFixture(t)
	f.sharedNote(t, "n1")

	_, err := f.svc.RemoveCollaborators(ctx, "owner", "n1", dto.RemoveCollaboratorsRequest{UserIDs: []string{}})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.RemoveCollaborators(ctx, "owner", "n1", dto.RemoveCollaboratorsRequest{UserIDs: []string{"stranger"}})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRemoveCollaboratorsRevokesAccess(t *testing.T) {
	ctx := context.Background()
	f := newNoteFixture(t)
	f.sharedNote(t, "n1")

	note, err := f.svc.RemoveCollaborators(ctx, "owner", "n1", dto.RemoveCollaboratorsRequest{UserIDs: []string{"reader"}})
	require.NoError(t, err)
	assert.Len(t, note.Collaborators, 1)

	_, err = f.svc.Get(ctx, "reader", "n1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddLabelsRejectsUnknownLabel(t *testing.T) {
	ctx := context.Background()
	f := newNoteFixture(t)
	f.sharedNote(t, "n1")

	_, err := f.svc.AddLabels(ctx, "owner", "n1", dto.NoteLabelsRequest{LabelIDs: []string{"l1", "missing"}})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddAndRemoveLabels(t *testing.T) {
	ctx := context.Background()
	f := newNoteFixture(t)
	f.sharedNote(t, "n1")

	note, err := f.svc.AddLabels(ctx, "writer", "n1", dto.NoteLabelsRequest{LabelIDs: []string{"l1"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"l1"}, note.Labels)

	// Attaching again is a no-op, not a duplicate.
	note, err = f.svc.AddLabels(ctx, "owner", "n1", dto.NoteLabelsRequest{LabelIDs: []string{"l1"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"l1"}, note.Labels)

	note, err = f.svc.RemoveLabels(ctx, "owner", "n1", dto.NoteLabelsRequest{LabelIDs: []string{"l1"}})
	require.NoError(t, err)
	assert.Empty(t, note.Labels)
}

func TestLabelOpsForbiddenForReadOnly(t *testing.T) {
	ctx := context.Background()
	f := newNoteFixture(t)
	f.sharedNote(t, "n1")

	_, err := f.svc.AddLabels(ctx, "reader", "n1", dto.NoteLabelsRequest{LabelIDs: []string{"l1"}})
	assert.ErrorIs(t, err, ErrForbidden)
}
