package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint returns.
// Status is "success" or "error".
type Response struct {
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, &Response{
		Message: message,
		Status:  "success",
		Data:    data,
	})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, &Response{
		Message: message,
		Status:  "success",
		Data:    data,
	})
}

// Deleted writes a bare 204; the status code carries no body.
func Deleted(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func BadRequest(c *gin.Context, message string, errs interface{}) {
	c.JSON(http.StatusBadRequest, &Response{
		Message: message,
		Status:  "error",
		Errors:  errs,
	})
}

func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, &Response{
		Message: message,
		Status:  "error",
	})
}

func Forbidden(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, &Response{
		Message: message,
		Status:  "error",
	})
}

func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, &Response{
		Message: message,
		Status:  "error",
	})
}

func Conflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, &Response{
		Message: message,
		Status:  "error",
	})
}

func InternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, &Response{
		Message: message,
		Status:  "error",
	})
}
