package handler

import (
	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Service *usecase.UserService
}

func NewAuthHandler(service *usecase.UserService) *AuthHandler {
	return &AuthHandler{Service: service}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	user, token, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "User")
		return
	}

	utils.Created(c, "User registered successfully", gin.H{
		"user":  user,
		"token": token,
	})
}

// Verify consumes the token from the emailed verification link.
func (h *AuthHandler) Verify(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		utils.BadRequest(c, "Verification token is required", nil)
		return
	}

	if err := h.Service.Verify(c.Request.Context(), token); err != nil {
		respondError(c, err, "User")
		return
	}
	utils.Success(c, "Email verified successfully", nil)
}
