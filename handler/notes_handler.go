package handler

import (
	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type NoteHandler struct {
	Service *usecase.NoteService
}

func NewNoteHandler(service *usecase.NoteService) *NoteHandler {
	return &NoteHandler{Service: service}
}

func (h *NoteHandler) List(c *gin.Context) {
	userID := c.GetString("user_id")

	notes, err := h.Service.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Note")
		return
	}
	utils.Success(c, "Notes retrieved successfully", notes)
}

func (h *NoteHandler) ListArchived(c *gin.Context) {
	userID := c.GetString("user_id")

	notes, err := h.Service.ListArchived(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Note")
		return
	}
	utils.Success(c, "Archived notes fetched successfully", notes)
}

func (h *NoteHandler) ListTrashed(c *gin.Context) {
	userID := c.GetString("user_id")

	notes, err := h.Service.ListTrashed(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Note")
		return
	}
	utils.Success(c, "Trashed notes fetched successfully", notes)
}

func (h *NoteHandler) Get(c *gin.Context) {
	userID := c.GetString("user_id")
	noteID := c.Param("id")

	note, err := h.Service.Get(c.Request.Context(), userID, noteID)
	if err != nil {
		respondError(c, err, "Note")
		return
	}
	utils.Success(c, "Note retrieved successfully", note)
}

func (h *NoteHandler) Create(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	note, err := h.Service.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Note")
		return
	}
	utils.Created(c, "Note created successfully", note)
}

func (h *NoteHandler) Update(c *gin.Context) {
	userID := c.GetString("user_id")
	noteID := c.Param("id")

	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	note, err := h.Service.Update(c.Request.Context(), userID, noteID, req)
	if err != nil {
		respondError(c, err, "Note")
		return
	}
	utils.Success(c, "Note updated successfully", note)
}

func (h *NoteHandler) Delete(c *gin.Context) {
	userID := c.GetString("user_id")
	noteID := c.Param("id")

	if err := h.Service.Delete(c.Request.Context(), userID, noteID); err != nil {
		respondError(c, err, "Note")
		return
	}
	utils.Deleted(c)
}

func (h *NoteHandler) ToggleArchive(c *gin.Context) {
	userID := c.GetString("user_id")
	noteID := c.Param("id")

	note, err := h.Service.ToggleArchive(c.Request.Context(), userID, noteID)
	if err != nil {
		respondError(c, err, "Note")
		return
	}
	utils.Success(c, "Note archive status updated", note)
}

func (h *NoteHandler) ToggleTrash(c *gin.Context) {
	userID := c.GetString("user_id")
	noteID := c.Param("id")

	note, err := h.Service.ToggleTrash(c.Request.Context(), userID, noteID)
	if err != nil {
		respondError(c, err, "Note")
		return
	}
	utils.Success(c, "Note trash status updated", note)
}

func (h *NoteHandler) AddCollaborators(c *gin.Context) {
	userID := c.GetString("user_id")
	noteID := c.Param("id")

	var req dto.AddCollaboratorsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	note, err := h.Service.AddCollaborators(c.Request.Context(), userID, noteID, req)
	if err != nil {
		respondError(c, err, "Note")
		return
	}
	utils.Success(c, "Collaborators added successfully", note)
}

func (h *NoteHandler) RemoveCollaborators(c *gin.Context) {
	userID := c.GetString("user_id")
	noteID := c.Param("id")

	var req dto.RemoveCollaboratorsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	note, err := h.Service.RemoveCollaborators(c.Request.Context(), userID, noteID, req)
	if err != nil {
		respondError(c, err, "Note")
		return
	}
	utils.Success(c, "Collaborators removed successfully", note)
}

func (h *NoteHandler) AddLabels(c *gin.Context) {
	userID := c.GetString("user_id")
	noteID := c.Param("id")

	var req dto.NoteLabelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	note, err := h.Service.AddLabels(c.Request.Context(), userID, noteID, req)
	if err != nil {
		respondError(c, err, "Note")
		return
	}
	utils.Success(c, "Labels added successfully", note)
}

func (h *NoteHandler) RemoveLabels(c *gin.Context) {
	userID := c.GetString("user_id")
	noteID := c.Param("id")

	var req dto.NoteLabelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	note, err := h.Service.RemoveLabels(c.Request.Context(), userID, noteID, req)
	if err != nil {
		respondError(c, err, "Note")
		return
	}
	utils.Success(c, "Labels removed successfully", note)
}
