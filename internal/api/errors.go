package api

import (
	"errors"
	"net/http"

	"github.com/yourorg/catalogadmin/internal/apperrors"
)

// handleServiceError maps the apperrors taxonomy onto HTTP statuses.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		notFound     *apperrors.NotFoundError
		invalid      *apperrors.ValidationError
		unauthorized *apperrors.UnauthorizedError
		unavailable  *apperrors.ServiceUnavailableError
		timeout      *apperrors.TimeoutError
	)

	switch {
	case errors.As(err, &notFound):
		NotFound(w, r, err, err.Error())
	case errors.As(err, &invalid):
		BadRequest(w, r, err, invalid.Message, invalid.Field)
	case errors.As(err, &unauthorized):
		Unauthorized(w, r, err, err.Error())
	case errors.As(err, &unavailable):
		ServiceUnavailable(w, r, err)
	case errors.As(err, &timeout):
		GatewayTimeout(w, r, err)
	default:
		InternalError(w, r, err)
	}
}
