package db

import "time"

// Turno is a booking for a single half-hour slot. Fecha and Hora are kept as
// the local "YYYY-MM-DD" / "HH:MM" strings the clients send; together they
// are unique in the turnos table.
type Turno struct {
	ID        int       `json:"id"`
	Nombre    string    `json:"nombre"`
	Telefono  string    `json:"telefono"`
	Fecha     string    `json:"fecha"`
	Hora      string    `json:"hora"`
	Servicio  string    `json:"servicio"`
	CreatedAt time.Time `json:"created_at"`
}
