// Package handlers is the JSON surface over the pipeline services. It
// translates the error taxonomy to HTTP statuses: unresolved names map to
// 404, bad scope tags to 400, everything else to 500.
package handlers

import (
	"errors"
	"net/http"

	"github.com/zarandamon/usd-mercury-pipeline/internal/pkg/pipeerr"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, pipeerr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, pipeerr.ErrInvalidScope):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func codeFor(err error) string {
	switch {
	case errors.Is(err, pipeerr.ErrNotFound):
		return "not_found"
	case errors.Is(err, pipeerr.ErrInvalidScope):
		return "invalid_scope"
	default:
		return "internal_error"
	}
}
