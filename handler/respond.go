package handler

import (
	"errors"
	"log"

	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error kind to the response envelope exactly
// once. Anything outside the taxonomy is a storage or unexpected failure.
func respondError(c *gin.Context, err error, resource string) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		utils.TrackError("validation")
		utils.BadRequest(c, err.Error(), nil)
	case errors.Is(err, usecase.ErrUnauthorized):
		utils.TrackError("auth")
		utils.Unauthorized(c, err.Error())
	case errors.Is(err, usecase.ErrForbidden):
		utils.TrackError("auth")
		utils.Forbidden(c, "You do not have permission to perform this action")
	case errors.Is(err, usecase.ErrNotFound):
		utils.NotFound(c, resource+" not found")
	case errors.Is(err, usecase.ErrConflict):
		utils.Conflict(c, err.Error())
	default:
		log.Printf("Unexpected error: %v", err)
		utils.TrackError("db")
		utils.InternalError(c, "An unexpected error occurred")
	}
}
