package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error   string `json:"error"`   // error code (for front-end mapping)
	Message string `json:"message"` // human-readable message
}

// RespondWithError writes the standard error payload.
// statusCode: HTTP status code
// errorCode: one of the constants in codes.go
// message: message shown to the user
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// Shortcuts for the common responses.

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func StorageError(c *gin.Context, message string) {
	if message == "" {
		message = "Could not save your changes. Please try again"
	}
	RespondWithError(c, http.StatusInternalServerError, StorageSaveFailed, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Something went wrong. Please try again in a moment"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}
