package errors

import (
	"errors"
	"net/http"

	"codeberg.org/libroteca/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// standard error codes
const (
	CodeValidationError    = "validation_error"
	CodeNotFound           = "not_found"
	CodeServerError        = "server_error"
	CodeStorageError       = "storage_error"
	CodeGenerationFailed   = "generation_failed"
	CodeServiceUnavailable = "service_unavailable"
	CodeTooManyRequests    = "too_many_requests"
	CodeInvalidThreshold   = "invalid_threshold"
)

// maps a pipeline error onto the right HTTP response using the error kinds
func Respond(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   CodeValidationError,
			Message: err.Error(),
		})

	case errors.Is(err, ErrDomain):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   CodeInvalidThreshold,
			Message: err.Error(),
		})

	case errors.Is(err, ErrStorage):
		logger.ErrorErr(err, "storage failure")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   CodeStorageError,
			Message: "vector store operation failed",
			Details: sanitize(err),
		})

	case errors.Is(err, ErrGeneratorUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:   CodeServiceUnavailable,
			Message: "text generation service is not configured",
		})

	case errors.Is(err, ErrGenerator):
		logger.ErrorErr(err, "generation failure")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   CodeGenerationFailed,
			Message: "failed to generate answer",
			Details: sanitize(err),
		})

	default:
		InternalError(c, "request failed", err)
	}
}

// returns a 400 bad request error for malformed request bodies
func ValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   CodeValidationError,
		Message: "validation failed",
		Details: sanitize(err),
	})
}

// returns a 404 not found error
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "resource not found"
	}

	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   CodeNotFound,
		Message: message,
	})
}

// returns a 500 internal server error and logs the underlying cause
func InternalError(c *gin.Context, message string, err error) {
	logger.ErrorErr(err, message, "path", c.FullPath())

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   CodeServerError,
		Message: message,
		Details: sanitize(err),
	})
}
