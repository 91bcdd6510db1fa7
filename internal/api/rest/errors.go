package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/propchain/propchain-api/internal/api/shared/errors"
	"github.com/propchain/propchain-api/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusUnprocessableEntity, apierrors.NewValidationError(message))
}

// respondUnauthorized responds with an unauthorized error
func respondUnauthorized(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusUnauthorized, apierrors.NewUnauthorizedError(message, details...))
}

// respondInternalError responds with an internal server error and logs it
func respondInternalError(c *gin.Context, err error, message string) {
	logger.Error(err, zap.String("path", c.Request.URL.Path))
	c.JSON(http.StatusInternalServerError, apierrors.NewInternalError(message))
}

// statusForCode maps executor error codes onto HTTP status codes
func statusForCode(code apierrors.ErrorCode) int {
	switch code {
	case apierrors.ErrCodeBadRequest:
		return http.StatusBadRequest
	case apierrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apierrors.ErrCodeValidationFailed:
		return http.StatusUnprocessableEntity
	case apierrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apierrors.ErrCodeForbidden:
		return http.StatusForbidden
	case apierrors.ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes an executor error. Structured errors keep their code
// and status; anything else becomes an opaque 500.
func respondError(c *gin.Context, err error) {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		status := statusForCode(apiErr.Code)
		if status >= http.StatusInternalServerError {
			logger.Error(err, zap.String("path", c.Request.URL.Path))
		}
		c.JSON(status, apiErr)
		return
	}

	respondInternalError(c, err, "Internal server error")
}
