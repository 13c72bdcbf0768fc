package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"main/dto"
	"main/model"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/google/uuid"
)

// NotesRepository is the full notes store surface the service needs: the
// cache/scheduler slice plus collaborator, label and status operations.
type NotesRepository interface {
	services.NoteStore
	ToggleArchive(ctx context.Context, noteID string) (*model.Note, error)
	ToggleTrash(ctx context.Context, noteID string) (*model.Note, error)
	AddCollaborators(ctx context.Context, noteID string, collaborators []model.Collaborator) error
	RemoveCollaborators(ctx context.Context, noteID string, userIDs []string) error
	AddLabels(ctx context.Context, noteID string, labelIDs []string) error
	RemoveLabels(ctx context.Context, noteID string, labelIDs []string) error
}

// LabelFinder verifies label ids before they are attached to a note.
type LabelFinder interface {
	FindLabels(ctx context.Context, labelIDs []string) ([]*model.Label, error)
}

// NoteService orchestrates the repository, the note cache and the reminder
// scheduler per request, and owns per-operation authorization: every
// mutation resolves the actor's relation to the note before any write.
type NoteService struct {
	Notes     NotesRepository
	Cache     *services.NoteCache
	Scheduler *services.ReminderScheduler
	Users     services.UserStore
	Labels    LabelFinder
}

// noteForActor resolves the note as the actor sees it. A note that is
// absent and a note the actor has no relation to are both ErrNotFound, so
// existence never leaks.
func (s *NoteService) noteForActor(ctx context.Context, actorID string, noteID string) (*model.Note, error) {
	note, err := s.Notes.GetNote(ctx, noteID, actorID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNotFound
	}
	return note, nil
}

// canWrite reports whether the actor may mutate note content: the owner or
// a read_write collaborator.
func canWrite(note *model.Note, actorID string) bool {
	if note.UserID == actorID {
		return true
	}
	return note.CollaboratorAccess(actorID) == model.AccessReadWrite
}

// othersOf lists affected users except the actor.
func othersOf(note *model.Note, actorID string) []string {
	others := []string{}
	for _, uid := range note.AffectedUsers() {
		if uid != actorID {
			others = append(others, uid)
		}
	}
	return others
}

func mapStoreErr(err error) error {
	if errors.Is(err, repository.ErrNoteNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *NoteService) List(ctx context.Context, actorID string) ([]*model.Note, error) {
	return s.Cache.List(ctx, actorID)
}

// ListArchived bypasses the cache: only the active list is cached.
func (s *NoteService) ListArchived(ctx context.Context, actorID string) ([]*model.Note, error) {
	return s.Notes.ListNotes(ctx, actorID, model.ArchivedNotes())
}

func (s *NoteService) ListTrashed(ctx context.Context, actorID string) ([]*model.Note, error) {
	return s.Notes.ListNotes(ctx, actorID, model.TrashedNotes())
}

func (s *NoteService) Get(ctx context.Context, actorID string, noteID string) (*model.Note, error) {
	note, err := s.Cache.Get(ctx, actorID, noteID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNotFound
	}
	return note, nil
}

func (s *NoteService) Create(ctx context.Context, actorID string, req dto.CreateNoteRequest) (*model.Note, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: note title is required", ErrValidation)
	}

	note := &model.Note{
		ID:          uuid.New().String(),
		UserID:      actorID,
		Title:       title,
		Description: req.Description,
		Color:       req.Color,
		Image:       req.Image,
		Reminder:    req.Reminder,
	}

	if err := s.Cache.Create(ctx, note); err != nil {
		return nil, err
	}
	utils.TrackNoteOperation("create")

	s.Scheduler.Schedule(note, time.Now())
	return note, nil
}

func (s *NoteService) Update(ctx context.Context, actorID string, noteID string, req dto.UpdateNoteRequest) (*model.Note, error) {
	note, err := s.noteForActor(ctx, actorID, noteID)
	if err != nil {
		return nil, err
	}
	if !canWrite(note, actorID) {
		return nil, ErrForbidden
	}

	patch := model.NotePatch{
		Description: req.Description,
		Color:       req.Color,
		Image:       req.Image,
		Reminder:    req.Reminder,
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: note title cannot be empty", ErrValidation)
		}
		patch.Title = &title
	}

	updated, err := s.Cache.Update(ctx, actorID, noteID, patch)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	s.Cache.Invalidate(ctx, othersOf(note, actorID)...)
	utils.TrackNoteOperation("update")

	s.Scheduler.Schedule(updated, time.Now())
	return updated, nil
}

// Delete hard-deletes a note. Only the owner holds delete rights; a
// collaborator sees the note but may not remove it.
func (s *NoteService) Delete(ctx context.Context, actorID string, noteID string) error {
	note, err := s.noteForActor(ctx, actorID, noteID)
	if err != nil {
		return err
	}
	if note.UserID != actorID {
		return ErrForbidden
	}

	if err := s.Cache.Delete(ctx, actorID, noteID); err != nil {
		return mapStoreErr(err)
	}
	s.Cache.Invalidate(ctx, othersOf(note, actorID)...)
	utils.TrackNoteOperation("delete")
	return nil
}

// ToggleArchive flips the archive flag and drops every affected cached
// list: the note moves between derived views, so in-place patching could
// leave it duplicated across them.
func (s *NoteService) ToggleArchive(ctx context.Context, actorID string, noteID string) (*model.Note, error) {
	return s.toggleStatus(ctx, actorID, noteID, "archive")
}

func (s *NoteService) ToggleTrash(ctx context.Context, actorID string, noteID string) (*model.Note, error) {
	return s.toggleStatus(ctx, actorID, noteID, "trash")
}

func (s *NoteService) toggleStatus(ctx context.Context, actorID string, noteID string, op string) (*model.Note, error) {
	note, err := s.noteForActor(ctx, actorID, noteID)
	if err != nil {
		return nil, err
	}
	if !canWrite(note, actorID) {
		return nil, ErrForbidden
	}

	var updated *model.Note
	if op == "archive" {
		updated, err = s.Notes.ToggleArchive(ctx, noteID)
	} else {
		updated, err = s.Notes.ToggleTrash(ctx, noteID)
	}
	if err != nil {
		return nil, mapStoreErr(err)
	}

	s.Cache.Invalidate(ctx, note.AffectedUsers()...)
	utils.TrackNoteOperation(op)
	return updated, nil
}

// AddCollaborators grants access to more users. Owner-only; the owner
// cannot be added to their own note, and existing (note, user) pairs are
// silently ignored. The repository applies the batch in one atomic update.
func (s *NoteService) AddCollaborators(ctx context.Context, actorID string, noteID string, req dto.AddCollaboratorsRequest) (*model.Note, error) {
	note, err := s.noteForActor(ctx, actorID, noteID)
	if err != nil {
		return nil, err
	}
	if note.UserID != actorID {
		return nil, ErrForbidden
	}

	if len(req.UserIDs) == 0 {
		return nil, fmt.Errorf("%w: user_ids is required", ErrValidation)
	}

	access := req.Access
	if access == "" {
		access = model.AccessReadOnly
	}

	seen := map[string]bool{}
	toAdd := []model.Collaborator{}
	for _, userID := range req.UserIDs {
		if userID == note.UserID {
			return nil, fmt.Errorf("%w: cannot add the owner as a collaborator", ErrValidation)
		}
		if seen[userID] || note.CollaboratorAccess(userID) != "" {
			continue
		}
		seen[userID] = true

		user, err := s.Users.FindUserByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, fmt.Errorf("%w: user %s not found", ErrValidation, userID)
		}
		toAdd = append(toAdd, model.Collaborator{UserID: userID, Access: access})
	}

	if len(toAdd) > 0 {
		if err := s.Notes.AddCollaborators(ctx, noteID, toAdd); err != nil {
			return nil, mapStoreErr(err)
		}
	}

	affected := note.AffectedUsers()
	for _, c := range toAdd {
		affected = append(affected, c.UserID)
	}
	s.Cache.Invalidate(ctx, affected...)

	return s.noteForActor(ctx, actorID, noteID)
}

// RemoveCollaborators revokes access. An empty or no-match user_ids list
// is a validation failure, not a silent success.
func (s *NoteService) RemoveCollaborators(ctx context.Context, actorID string, noteID string, req dto.RemoveCollaboratorsRequest) (*model.Note, error) {
	note, err := s.noteForActor(ctx, actorID, noteID)
	if err != nil {
		return nil, err
	}
	if note.UserID != actorID {
		return nil, ErrForbidden
	}

	matched := []string{}
	for _, userID := range req.UserIDs {
		if note.CollaboratorAccess(userID) != "" {
			matched = append(matched, userID)
		}
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("%w: no collaborators removed", ErrValidation)
	}

	if err := s.Notes.RemoveCollaborators(ctx, noteID, matched); err != nil {
		return nil, mapStoreErr(err)
	}

	s.Cache.Invalidate(ctx, note.AffectedUsers()...)

	return s.noteForActor(ctx, actorID, noteID)
}

// AddLabels attaches existing labels to the note; unknown label ids are a
// validation failure. Labels already attached are skipped by the store.
func (s *NoteService) AddLabels(ctx context.Context, actorID string, noteID string, req dto.NoteLabelsRequest) (*model.Note, error) {
	note, err := s.noteForActor(ctx, actorID, noteID)
	if err != nil {
		return nil, err
	}
	if !canWrite(note, actorID) {
		return nil, ErrForbidden
	}
	if len(req.LabelIDs) == 0 {
		return nil, fmt.Errorf("%w: label_ids is required", ErrValidation)
	}

	labels, err := s.Labels.FindLabels(ctx, req.LabelIDs)
	if err != nil {
		return nil, err
	}
	found := map[string]bool{}
	for _, label := range labels {
		found[label.ID] = true
	}
	for _, id := range req.LabelIDs {
		if !found[id] {
			return nil, fmt.Errorf("%w: label %s not found", ErrValidation, id)
		}
	}

	if err := s.Notes.AddLabels(ctx, noteID, req.LabelIDs); err != nil {
		return nil, mapStoreErr(err)
	}

	s.Cache.Invalidate(ctx, note.AffectedUsers()...)

	return s.noteForActor(ctx, actorID, noteID)
}

func (s *NoteService) RemoveLabels(ctx context.Context, actorID string, noteID string, req dto.NoteLabelsRequest) (*model.Note, error) {
	note, err := s.noteForActor(ctx, actorID, noteID)
	if err != nil {
		return nil, err
	}
	if !canWrite(note, actorID) {
		return nil, ErrForbidden
	}
	if len(req.LabelIDs) == 0 {
		return nil, fmt.Errorf("%w: label_ids is required", ErrValidation)
	}

	if err := s.Notes.RemoveLabels(ctx, noteID, req.LabelIDs); err != nil {
		return nil, mapStoreErr(err)
	}

	s.Cache.Invalidate(ctx, note.AffectedUsers()...)

	return s.noteForActor(ctx, actorID, noteID)
}
