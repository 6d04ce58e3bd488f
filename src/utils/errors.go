package utils

import (
	"errors"
	"net/http"
	"triphub/src/types"
)

// StatusFor maps an error from the domain packages onto an HTTP status.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, types.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, types.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrConflict), errors.Is(err, types.ErrInventoryExhausted):
		return http.StatusConflict
	case errors.Is(err, types.ErrUpstream):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
