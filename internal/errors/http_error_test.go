package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Campos: map[string]string{
		"telefono": "El teléfono debe contener solo números y tener entre 10 y 15 dígitos",
		"nombre":   "El nombre es requerido",
	}}

	// Los campos salen en orden estable.
	assert.Equal(t,
		"nombre: El nombre es requerido; telefono: El teléfono debe contener solo números y tener entre 10 y 15 dígitos",
		err.Error())
	assert.Equal(t, http.StatusBadRequest, err.Status())

	assert.Equal(t, "solicitud inválida", (&ValidationError{}).Error())
}

func TestStatuses(t *testing.T) {
	conflict := &ConflictError{Fecha: "2026-09-04", Hora: "10:00"}
	assert.Equal(t, http.StatusBadRequest, conflict.Status())
	assert.Equal(t, "Ya existe un turno reservado para la misma fecha y hora.", conflict.Error())

	assert.Equal(t, http.StatusInternalServerError, (&QueryError{Err: assert.AnError}).Status())
	assert.Equal(t, http.StatusInternalServerError, (&WriteError{Err: assert.AnError}).Status())
	assert.Equal(t, assert.AnError.Error(), (&QueryError{Err: assert.AnError}).Error())
}
