package usecase

import (
	"context"
	"sync"
	"time"

	"main/model"
)

type memoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string]string)}
}

func (s *memoryStore) Get(ctx context.Context, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.data[key]
	return value, ok
}

func (s *memoryStore) Save(ctx context.Context, key string, value string, expiry time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

func (s *memoryStore) Delete(ctx context.Context, keys ...string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed int64
	for _, key := range keys {
		if _, ok := s.data[key]; ok {
			delete(s.data, key)
			removed++
		}
	}
	return removed
}

func (s *memoryStore) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[key]
	return ok
}

// fakeNotesRepo is an in-memory NotesRepository.
type fakeNotesRepo struct {
	mu    sync.Mutex
	order []string
	notes map[string]*model.Note
}

func newFakeNotesRepo() *fakeNotesRepo {
	return &fakeNotesRepo{notes: make(map[string]*model.Note)}
}

func visible(note *model.Note, userID string) bool {
	return note.UserID == userID || note.CollaboratorAccess(userID) != ""
}

func (r *fakeNotesRepo) CreateNote(ctx context.Context, note *model.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	note.CreatedAt = time.Now()
	note.UpdatedAt = note.CreatedAt
	r.notes[note.ID] = note
	r.order = append(r.order, note.ID)
	return nil
}

func (r *fakeNotesRepo) GetNote(ctx context.Context, noteID string, userID string) (*model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	note, ok := r.notes[noteID]
	if !ok || !visible(note, userID) {
		return nil, nil
	}
	return note, nil
}

func (r *fakeNotesRepo) ListNotes(ctx context.Context, userID string, f model.NoteFilter) ([]*model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []*model.Note{}
	for _, id := range r.order {
		note := r.notes[id]
		if !visible(note, userID) {
			continue
		}
		if f.Archive != nil && note.IsArchive != *f.Archive {
			continue
		}
		if f.Trash != nil && note.IsTrash != *f.Trash {
			continue
		}
		result = append(result, note)
	}
	return result, nil
}

func (r *fakeNotesRepo) UpdateNote(ctx context.Context, noteID string, patch model.NotePatch) (*model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	note, ok := r.notes[noteID]
	if !ok {
		return nil, nil
	}
	if patch.Title != nil {
		note.Title = *patch.Title
	}
	if patch.Description != nil {
		note.Description = *patch.Description
	}
	if patch.Color != nil {
		note.Color = *patch.Color
	}
	if patch.Image != nil {
		note.Image = *patch.Image
	}
	if patch.Reminder != nil {
		note.Reminder = patch.Reminder
		note.IsReminded = false
	}
	note.UpdatedAt = time.Now()
	return note, nil
}

func (r *fakeNotesRepo) DeleteNote(ctx context.Context, noteID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.notes, noteID)
	for i, id := range r.order {
		if id == noteID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeNotesRepo) DueReminders(ctx context.Context, now time.Time) ([]*model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	due := []*model.Note{}
	for _, id := range r.order {
		note := r.notes[id]
		if note.Reminder != nil && !note.Reminder.After(now) && !note.IsReminded {
			due = append(due, note)
		}
	}
	return due, nil
}

func (r *fakeNotesRepo) MarkReminded(ctx context.Context, noteID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if note, ok := r.notes[noteID]; ok {
		note.IsReminded = true
	}
	return nil
}

func (r *fakeNotesRepo) ToggleArchive(ctx context.Context, noteID string) (*model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	note := r.notes[noteID]
	note.IsArchive = !note.IsArchive
	return note, nil
}

func (r *fakeNotesRepo) ToggleTrash(ctx context.Context, noteID string) (*model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	note := r.notes[noteID]
	note.IsTrash = !note.IsTrash
	return note, nil
}

func (r *fakeNotesRepo) AddCollaborators(ctx context.Context, noteID string, collaborators []model.Collaborator) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	note := r.notes[noteID]
	note.Collaborators = append(note.Collaborators, collaborators...)
	return nil
}

func (r *fakeNotesRepo) RemoveCollaborators(ctx context.Context, noteID string, userIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	note := r.notes[noteID]
	drop := map[string]bool{}
	for _, id := range userIDs {
		drop[id] = true
	}
	kept := note.Collaborators[:0]
	for _, c := range note.Collaborators {
		if !drop[c.UserID] {
			kept = append(kept, c)
		}
	}
	note.Collaborators = kept
	return nil
}

func (r *fakeNotesRepo) AddLabels(ctx context.Context, noteID string, labelIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	note := r.notes[noteID]
	existing := map[string]bool{}
	for _, id := range note.Labels {
		existing[id] = true
	}
	for _, id := range labelIDs {
		if !existing[id] {
			note.Labels = append(note.Labels, id)
		}
	}
	return nil
}

func (r *fakeNotesRepo) RemoveLabels(ctx context.Context, noteID string, labelIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	note := r.notes[noteID]
	drop := map[string]bool{}
	for _, id := range labelIDs {
		drop[id] = true
	}
	kept := note.Labels[:0]
	for _, id := range note.Labels {
		if !drop[id] {
			kept = append(kept, id)
		}
	}
	note.Labels = kept
	return nil
}

// fakeUsers resolves registered users by id.
type fakeUsers struct {
	users map[string]*model.User
}

func (s *fakeUsers) FindUserByID(ctx context.Context, userID string) (*model.User, error) {
	return s.users[userID], nil
}

// fakeLabels serves a fixed label set.
type fakeLabels struct {
	labels map[string]*model.Label
}

func (s *fakeLabels) FindLabels(ctx context.Context, labelIDs []string) ([]*model.Label, error) {
	found := []*model.Label{}
	for _, id := range labelIDs {
		if label, ok := s.labels[id]; ok {
			found = append(found, label)
		}
	}
	return found, nil
}

// fakeQueue records reminder jobs without running them.
type fakeQueue struct {
	mu   sync.Mutex
	jobs []string
}

func (q *fakeQueue) Enqueue(jobID string, noteID string, userID string, runAt time.Time) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, jobID)
}

func (q *fakeQueue) count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

// fakeMailer accepts every send.
type fakeMailer struct{}

func (fakeMailer) Send(subject, body, from string, to []string) error { return nil }
