package handler

import (
	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type LabelHandler struct {
	Service *usecase.LabelService
}

func NewLabelHandler(service *usecase.LabelService) *LabelHandler {
	return &LabelHandler{Service: service}
}

func (h *LabelHandler) List(c *gin.Context) {
	userID := c.GetString("user_id")

	labels, err := h.Service.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Label")
		return
	}
	utils.Success(c, "Labels retrieved successfully", labels)
}

func (h *LabelHandler) Get(c *gin.Context) {
	userID := c.GetString("user_id")
	labelID := c.Param("id")

	label, err := h.Service.Get(c.Request.Context(), userID, labelID)
	if err != nil {
		respondError(c, err, "Label")
		return
	}
	utils.Success(c, "Label retrieved successfully", label)
}

func (h *LabelHandler) Create(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	label, err := h.Service.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Label")
		return
	}
	utils.Created(c, "Label created successfully", label)
}

func (h *LabelHandler) Update(c *gin.Context) {
	userID := c.GetString("user_id")
	labelID := c.Param("id")

	var req dto.UpdateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	label, err := h.Service.Update(c.Request.Context(), userID, labelID, req)
	if err != nil {
		respondError(c, err, "Label")
		return
	}
	utils.Success(c, "Label updated successfully", label)
}

func (h *LabelHandler) Delete(c *gin.Context) {
	userID := c.GetString("user_id")
	labelID := c.Param("id")

	if err := h.Service.Delete(c.Request.Context(), userID, labelID); err != nil {
		respondError(c, err, "Label")
		return
	}
	utils.Deleted(c)
}
