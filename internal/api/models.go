package api

import "barberia/internal/db"

// Reservar
type ReservarResponse struct {
	Message string    `json:"message"`
	Data    *db.Turno `json:"data"`
}

// Verificar
type VerificarResponse struct {
	Reservado bool `json:"reservado"`
}

// Reservas por fecha
type HorasOcupadasResponse struct {
	HorasOcupadas []string `json:"horasOcupadas"`
}

// Test (store probe)
type TestResponse struct {
	Message string     `json:"message"`
	Data    []db.Turno `json:"data"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	// Campos carries field-scoped validation messages when present.
	Campos map[string]string `json:"campos,omitempty"`
}
