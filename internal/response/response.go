package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/insurely/brochure-backend/internal/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// RespondClassified maps a service error onto the HTTP surface: not-found
// to 404, validation to 422, upstream generator failure to 502, everything
// else (database errors included) to 500.
func RespondClassified(c *gin.Context, err error) {
	var notFound *apierr.NotFoundError
	var validation *apierr.ValidationError
	var upstream *apierr.UpstreamError

	switch {
	case errors.As(err, &notFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.As(err, &validation):
		RespondError(c, http.StatusUnprocessableEntity, "validation_failed", err)
	case errors.As(err, &upstream):
		RespondError(c, http.StatusBadGateway, "upstream_failed", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal_error", err)
	}
}
