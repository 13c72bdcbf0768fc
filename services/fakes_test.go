package services

import (
	"context"
	"sync"
	"time"

	"main/model"
)

// memoryStore is an in-memory CacheStore used across the service tests.
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

// brokenStore degrades every operation, as a failing Redis would after the
// fail-soft wrapper absorbs the error.
type brokenStore struct{}

func (brokenStore) Get(ctx context.Context, key string) (string, bool) { return "", false }
func (brokenStore) Save(ctx context.Context, key, value string, expiry time.Duration) {
}
func (brokenStore) Delete(ctx context.Context, keys ...string) int64 { return 0 }

// fakeNoteStore is an in-memory NoteStore tracking repository round trips.
type fakeNoteStore struct {
	mu        sync.Mutex
	order     []string
	notes     map[string]*model.Note
	listCalls int
	getCalls  int
}

func newFakeNoteStore() *fakeNoteStore {
	return &fakeNoteStore{notes: make(map[string]*model.Note)}
}

func (s *fakeNoteStore) CreateNote(ctx context.Context, note *model.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	note.CreatedAt = time.Now()
	note.UpdatedAt = note.CreatedAt
	s.notes[note.ID] = note
	s.order = append(s.order, note.ID)
	return nil
}

func visible(note *model.Note, userID string) bool {
	return note.UserID == userID || note.CollaboratorAccess(userID) != ""
}

func (s *fakeNoteStore) GetNote(ctx context.Context, noteID string, userID string) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++
	note, ok := s.notes[noteID]
	if !ok || !visible(note, userID) {
		return nil, nil
	}
	return note, nil
}

func (s *fakeNoteStore) ListNotes(ctx context.Context, userID string, f model.NoteFilter) ([]*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	result := []*model.Note{}
	for _, id := range s.order {
		note := s.notes[id]
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

func (s *fakeNoteStore) UpdateNote(ctx context.Context, noteID string, patch model.NotePatch) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	note, ok := s.notes[noteID]
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

func (s *fakeNoteStore) DeleteNote(ctx context.Context, noteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.notes, noteID)
	for i, id := range s.order {
		if id == noteID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *fakeNoteStore) DueReminders(ctx context.Context, now time.Time) ([]*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	due := []*model.Note{}
	for _, id := range s.order {
		note := s.notes[id]
		if note.Reminder != nil && !note.Reminder.After(now) && !note.IsReminded {
			due = append(due, note)
		}
	}
	return due, nil
}

func (s *fakeNoteStore) MarkReminded(ctx context.Context, noteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if note, ok := s.notes[noteID]; ok {
		note.IsReminded = true
	}
	return nil
}

func (s *fakeNoteStore) calls() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls, s.getCalls
}

// fakeUserStore resolves owners for delivery tests.
type fakeUserStore struct {
	users map[string]*model.User
}

func (s *fakeUserStore) FindUserByID(ctx context.Context, userID string) (*model.User, error) {
	return s.users[userID], nil
}

// fakeMailer records outbound mail, optionally failing.
type fakeMailer struct {
	mu   sync.Mutex
	sent []string // "subject|to"
	fail bool
}

func (m *fakeMailer) Send(subject, body, from string, to []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errFailedSend
	}
	m.sent = append(m.sent, subject+"|"+to[0])
	return nil
}

var errFailedSend = &mailError{}

type mailError struct{}

func (*mailError) Error() string { return "smtp unavailable" }

// fakeQueue records enqueued jobs without running them.
type fakeQueue struct {
	mu   sync.Mutex
	jobs []queuedJob
}

type queuedJob struct {
	jobID  string
	noteID string
	userID string
	runAt  time.Time
}

func (q *fakeQueue) Enqueue(jobID string, noteID string, userID string, runAt time.Time) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, queuedJob{jobID, noteID, userID, runAt})
}

func (q *fakeQueue) count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}
