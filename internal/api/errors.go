package api

import (
	"errors"
	"net/http"
	"strings"

	"vegtrace/internal/batch"
)

// statusForError maps a chaincode failure onto an HTTP status. Typed
// errors are matched first; errors that crossed the Fabric boundary only
// survive as strings, so those fall back to message classification. The
// matching is confined to this one function at the transport edge.
func statusForError(err error) int {
	switch {
	case errors.Is(err, batch.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, batch.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, batch.ErrInvalidQuantity),
		errors.Is(err, batch.ErrExceedsQuantity),
		errors.Is(err, batch.ErrInvalidLocation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, batch.ErrMalformedInput):
		return http.StatusBadRequest
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "already exists"):
		return http.StatusConflict
	case strings.Contains(msg, "does not exist"), strings.Contains(msg, "no batch found"):
		return http.StatusNotFound
	case strings.Contains(msg, "cannot exceed"),
		strings.Contains(msg, "must be positive"),
		strings.Contains(msg, "must not be negative"),
		strings.Contains(msg, "invalid quantity"),
		strings.Contains(msg, "invalid location"):
		return http.StatusUnprocessableEntity
	case strings.Contains(msg, "malformed input"):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
