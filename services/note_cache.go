package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"main/model"
	"main/utils"
)

// NoteStore is the slice of the notes repository the cache manager and
// reminder scheduler depend on.
type NoteStore interface {
	CreateNote(ctx context.Context, note *model.Note) error
	GetNote(ctx context.Context, noteID string, userID string) (*model.Note, error)
	ListNotes(ctx context.Context, userID string, f model.NoteFilter) ([]*model.Note, error)
	UpdateNote(ctx context.Context, noteID string, patch model.NotePatch) (*model.Note, error)
	DeleteNote(ctx context.Context, noteID string) error
	DueReminders(ctx context.Context, now time.Time) ([]*model.Note, error)
	MarkReminded(ctx context.Context, noteID string) error
}

// NoteCache keeps a per-user serialized list of active notes in front of
// the repository. Reads populate lazily; writes go to the repository first
// and then patch the cached list of the acting user. The single key scheme
// is notes:<userID> holding the full active list; there are no per-note
// keys.
type NoteCache struct {
	store CacheStore
	notes NoteStore
}

func NewNoteCache(store CacheStore, notes NoteStore) *NoteCache {
	return &NoteCache{store: store, notes: notes}
}

func noteListKey(userID string) string {
	return "notes:" + userID
}

// cachedList returns the deserialized list for the user, or false when no
// usable entry exists. A corrupt entry is dropped so the next read rebuilds.
func (c *NoteCache) cachedList(ctx context.Context, userID string) ([]*model.Note, bool) {
	raw, ok := c.store.Get(ctx, noteListKey(userID))
	if !ok {
		return nil, false
	}

	var notes []*model.Note
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		log.Printf("Dropping corrupt cache entry for user %s: %v", userID, err)
		c.store.Delete(ctx, noteListKey(userID))
		return nil, false
	}
	return notes, true
}

// saveList stores the list with no expiry; invalidation is explicit.
func (c *NoteCache) saveList(ctx context.Context, userID string, notes []*model.Note) {
	data, err := json.Marshal(notes)
	if err != nil {
		log.Printf("Failed to marshal notes for user %s: %v", userID, err)
		return
	}
	c.store.Save(ctx, noteListKey(userID), string(data), 0)
}

// List returns the cached list verbatim on a hit. On a miss it queries the
// repository for active notes, populates the cache and returns the result.
func (c *NoteCache) List(ctx context.Context, userID string) ([]*model.Note, error) {
	if notes, ok := c.cachedList(ctx, userID); ok {
		utils.TrackCacheOperation("list", "hit")
		return notes, nil
	}
	utils.TrackCacheOperation("list", "miss")

	notes, err := c.notes.ListNotes(ctx, userID, model.ActiveNotes())
	if err != nil {
		return nil, err
	}
	c.saveList(ctx, userID, notes)
	return notes, nil
}

// Get resolves a single note. When the user's list is cached the lookup
// stays inside it: a cached list that lacks the id means not found, with
// no repository fallback. Only when no list is cached at all does Get go
// to the repository directly, leaving the cache absent so the next List
// performs a full rebuild.
func (c *NoteCache) Get(ctx context.Context, userID string, noteID string) (*model.Note, error) {
	if notes, ok := c.cachedList(ctx, userID); ok {
		for _, note := range notes {
			if note.ID == noteID {
				utils.TrackCacheOperation("get", "hit")
				return note, nil
			}
		}
		utils.TrackCacheOperation("get", "stale_miss")
		return nil, nil
	}

	utils.TrackCacheOperation("get", "miss")
	return c.notes.GetNote(ctx, noteID, userID)
}

// Create writes to the repository first, then appends to the user's cached
// list if one exists. With no cached list the cache stays absent and the
// next List rebuilds it.
func (c *NoteCache) Create(ctx context.Context, note *model.Note) error {
	if err := c.notes.CreateNote(ctx, note); err != nil {
		return err
	}
	if notes, ok := c.cachedList(ctx, note.UserID); ok {
		c.saveList(ctx, note.UserID, append(notes, note))
	}
	return nil
}

// Update writes to the repository first, then replaces the matching entry
// in the acting user's cached list. Other parties' lists are the caller's
// responsibility (see Invalidate).
func (c *NoteCache) Update(ctx context.Context, actorID string, noteID string, patch model.NotePatch) (*model.Note, error) {
	updated, err := c.notes.UpdateNote(ctx, noteID, patch)
	if err != nil {
		return nil, err
	}
	c.Replace(ctx, actorID, updated)
	return updated, nil
}

// Delete removes from the repository first, then drops the entry from the
// acting user's cached list.
func (c *NoteCache) Delete(ctx context.Context, actorID string, noteID string) error {
	if err := c.notes.DeleteNote(ctx, noteID); err != nil {
		return err
	}
	if notes, ok := c.cachedList(ctx, actorID); ok {
		remaining := notes[:0]
		for _, note := range notes {
			if note.ID != noteID {
				remaining = append(remaining, note)
			}
		}
		c.saveList(ctx, actorID, remaining)
	}
	return nil
}

// Replace swaps the matching entry in the user's cached list in place.
// A no-op when the list is not cached or the id is absent from it.
func (c *NoteCache) Replace(ctx context.Context, userID string, note *model.Note) {
	notes, ok := c.cachedList(ctx, userID)
	if !ok {
		return
	}
	for i := range notes {
		if notes[i].ID == note.ID {
			notes[i] = note
			c.saveList(ctx, userID, notes)
			return
		}
	}
}

// Invalidate deletes the cached lists outright, forcing a rebuild on the
// next read. Archive/trash toggles use this instead of in-place patching:
// the toggle changes which derived list the note belongs to, and a partial
// patch could leave it duplicated across views.
func (c *NoteCache) Invalidate(ctx context.Context, userIDs ...string) {
	keys := make([]string, 0, len(userIDs))
	for _, userID := range userIDs {
		keys = append(keys, noteListKey(userID))
	}
	c.store.Delete(ctx, keys...)
}
