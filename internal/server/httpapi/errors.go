package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/nutricare/internal/common"
	"github.com/gin-gonic/gin"
)

// statusFor maps service errors to HTTP status codes. The mapping is the
// same for every resource.
func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrDataSourceUnavailable),
		errors.Is(err, common.ErrNoNutritionData):
		return http.StatusNotFound
	case errors.Is(err, common.ErrInvalidFileType),
		errors.Is(err, common.ErrMissingField),
		errors.Is(err, common.ErrorValidation),
		errors.Is(err, common.ErrEmptyQuery):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrPayloadTooLarge), errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func errorMessage(err error) string {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, common.ErrEmptyQuery):
		return "please enter a food item"
	case errors.Is(err, common.ErrNoNutritionData):
		return "no nutrition data found for this food item"
	case errors.Is(err, common.ErrDataSourceUnavailable):
		return "local data not found"
	case errors.Is(err, common.ErrInvalidFileType):
		return "invalid file type, please upload an image file"
	case errors.Is(err, common.ErrPayloadTooLarge), errors.As(err, &maxBytes):
		return "file too large"
	case errors.Is(err, common.ErrMissingField), errors.Is(err, common.ErrorValidation):
		return err.Error()
	case errors.Is(err, common.ErrorAlreadyExists):
		return "username already exists"
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return "refresh token expired"
	case errors.Is(err, common.ErrInvalidToken):
		return "invalid token"
	case errors.Is(err, common.ErrorUnauthorized):
		return "unauthorized"
	case errors.Is(err, common.ErrorNotFound):
		return "not found or access denied"
	default:
		return "internal error"
	}
}

// writeError logs unexpected errors and answers with {"error": msg}.
func (s *HTTPServer) writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": errorMessage(err)})
}

// bindError answers a body that failed to bind: 413 when the body limit
// tripped during decoding, 400 otherwise.
func (s *HTTPServer) bindError(c *gin.Context, err error) {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		s.writeError(c, err)
		return
	}
	badRequest(c, "invalid request body")
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}

func notFound(c *gin.Context, what string) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": what + " not found or access denied"})
}
