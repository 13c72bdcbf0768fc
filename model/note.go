package model

import (
	"time"
)

const (
	AccessReadOnly  = "read_only"
	AccessReadWrite = "read_write"
)

// Collaborator grants a non-owner user access to a single note.
// At most one entry per (note, user) pair.
type Collaborator struct {
	UserID string `bson:"user_id" json:"user_id"`
	Access string `bson:"access" json:"access"`
}

type Note struct {
	ID            string         `bson:"_id,omitempty" json:"id"`
	UserID        string         `bson:"user_id" json:"user_id"`
	Title         string         `bson:"title" json:"title" binding:"required"`
	Description   string         `bson:"description,omitempty" json:"description,omitempty"`
	Color         string         `bson:"color,omitempty" json:"color,omitempty"`
	Image         string         `bson:"image,omitempty" json:"image,omitempty"`
	IsArchive     bool           `bson:"is_archive" json:"is_archive"`
	IsTrash       bool           `bson:"is_trash" json:"is_trash"`
	Reminder      *time.Time     `bson:"reminder,omitempty" json:"reminder,omitempty"`
	IsReminded    bool           `bson:"is_reminded" json:"is_reminded"`
	Collaborators []Collaborator `bson:"collaborators,omitempty" json:"collaborators,omitempty"`
	Labels        []string       `bson:"labels,omitempty" json:"labels,omitempty"`
	CreatedAt     time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `bson:"updated_at" json:"updated_at"`
}

// CollaboratorAccess returns the access level of userID on the note,
// or "" when the user is not a collaborator.
func (n *Note) CollaboratorAccess(userID string) string {
	for _, c := range n.Collaborators {
		if c.UserID == userID {
			return c.Access
		}
	}
	return ""
}

// AffectedUsers lists every user whose note list contains this note:
// the owner plus all collaborators.
func (n *Note) AffectedUsers() []string {
	users := []string{n.UserID}
	for _, c := range n.Collaborators {
		users = append(users, c.UserID)
	}
	return users
}

// NotePatch carries a partial update; nil fields are left untouched.
type NotePatch struct {
	Title       *string
	Description *string
	Color       *string
	Image       *string
	Reminder    *time.Time
}

// NoteFilter narrows list queries; nil fields match any value.
type NoteFilter struct {
	Archive *bool
	Trash   *bool
}

// ActiveNotes matches the default listing: not archived, not trashed.
func ActiveNotes() NoteFilter {
	f := false
	return NoteFilter{Archive: &f, Trash: &f}
}

func ArchivedNotes() NoteFilter {
	a, t := true, false
	return NoteFilter{Archive: &a, Trash: &t}
}

func TrashedNotes() NoteFilter {
	tr := true
	return NoteFilter{Trash: &tr}
}
