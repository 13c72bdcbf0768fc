package dto

import "time"

type CreateNoteRequest struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Description string     `json:"description"`
	Color       string     `json:"color" binding:"max=50"`
	Image       string     `json:"image"`
	Reminder    *time.Time `json:"reminder"`
}

// UpdateNoteRequest is a partial update; omitted fields keep their value.
type UpdateNoteRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Color       *string    `json:"color"`
	Image       *string    `json:"image"`
	Reminder    *time.Time `json:"reminder"`
}

type AddCollaboratorsRequest struct {
	UserIDs []string `json:"user_ids" binding:"required"`
	Access  string   `json:"access" binding:"omitempty,oneof=read_only read_write"`
}

type RemoveCollaboratorsRequest struct {
	UserIDs []string `json:"user_ids" binding:"required"`
}

type NoteLabelsRequest struct {
	LabelIDs []string `json:"label_ids" binding:"required"`
}
