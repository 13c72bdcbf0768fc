package handler

import (
	"main/dto"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	user, token, err := h.Service.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "User")
		return
	}

	utils.Success(c, "Login successful", gin.H{
		"user":  user,
		"token": token,
	})
}
