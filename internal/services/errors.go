package services

import (
	"errors"

	"github.com/insurely/brochure-backend/internal/apierr"
)

// classified reports whether err already carries a domain classification
// (not-found or validation) and should pass through a transaction boundary
// unwrapped instead of being folded into a database error.
func classified(err error) bool {
	var notFound *apierr.NotFoundError
	var validation *apierr.ValidationError
	return errors.As(err, &notFound) || errors.As(err, &validation)
}
