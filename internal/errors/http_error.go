package errors

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ValidationError reports per-field failures on a turno request. Campos maps
// field name to a user-facing message.
type ValidationError struct {
	Campos map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Campos) == 0 {
		return "solicitud inválida"
	}
	fields := make([]string, 0, len(e.Campos))
	for f := range e.Campos {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Campos[f]))
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Status() int { return http.StatusBadRequest }

// ConflictError signals that the (fecha, hora) slot is already booked.
// It is an expected outcome, not an internal failure.
type ConflictError struct {
	Fecha string
	Hora  string
}

func (e *ConflictError) Error() string {
	return "Ya existe un turno reservado para la misma fecha y hora."
}

func (e *ConflictError) Status() int { return http.StatusBadRequest }

// QueryError wraps a read failure from the store.
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string { return e.Err.Error() }
func (e *QueryError) Unwrap() error { return e.Err }
func (e *QueryError) Status() int   { return http.StatusInternalServerError }

// WriteError wraps an insert failure from the store.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string { return e.Err.Error() }
func (e *WriteError) Unwrap() error { return e.Err }
func (e *WriteError) Status() int   { return http.StatusInternalServerError }
