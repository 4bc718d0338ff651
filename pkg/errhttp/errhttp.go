// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/beanbridge/pkg/httpx"
	contentdomain "github.com/ghuser/beanbridge/services/content/domain"
	rfqdomain "github.com/ghuser/beanbridge/services/rfq/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, rfqdomain.ErrRFQNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, rfqdomain.ErrInvalidListQuery),
		errors.Is(err, contentdomain.ErrMissingSlug):
		return http.StatusBadRequest // 400
	case errors.Is(err, rfqdomain.ErrMissingField),
		errors.Is(err, rfqdomain.ErrInvalidEmail),
		errors.Is(err, rfqdomain.ErrInvalidQuantity),
		errors.Is(err, rfqdomain.ErrInvalidStatus):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, rfqdomain.ErrDuplicateRFQNumber):
		return http.StatusConflict // 409
	default:
		return http.StatusInternalServerError // 500
	}
}
