package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"barberia/internal/db"

	"github.com/lib/pq"
)

// ErrTurnoDuplicado is returned when an insert lands on an already-booked
// (fecha, hora) pair. The UNIQUE constraint is the authoritative gate: two
// concurrent inserts for the same slot can both pass the prior existence
// check, but only one survives the constraint.
var ErrTurnoDuplicado = errors.New("ya existe un turno para esa fecha y hora")

const pgUniqueViolation = "23505"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS turnos (
	id SERIAL PRIMARY KEY,
	nombre TEXT NOT NULL,
	telefono TEXT NOT NULL,
	fecha TEXT NOT NULL,
	hora TEXT NOT NULL,
	servicio TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT turnos_fecha_hora_key UNIQUE (fecha, hora)
);

CREATE INDEX IF NOT EXISTS idx_turnos_fecha ON turnos (fecha);
`

type TurnoRepository struct {
	DB *sql.DB
}

func NewTurnoRepository(db *sql.DB) *TurnoRepository {
	return &TurnoRepository{DB: db}
}

// Migrate creates the turnos table and its uniqueness constraint.
func (r *TurnoRepository) Migrate() error {
	if _, err := r.DB.Exec(schemaSQL); err != nil {
		return fmt.Errorf("error creating turnos schema: %w", err)
	}
	return nil
}

// CreateTurno inserts the turno and fills in its ID and CreatedAt.
func (r *TurnoRepository) CreateTurno(t *db.Turno) error {
	query := `
		INSERT INTO turnos (nombre, telefono, fecha, hora, servicio)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.DB.QueryRow(query, t.Nombre, t.Telefono, t.Fecha, t.Hora, t.Servicio).
		Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return ErrTurnoDuplicado
		}
		return fmt.Errorf("error inserting turno: %w", err)
	}
	return nil
}

// ExistsByFechaHora reports whether a turno already occupies the exact
// (fecha, hora) pair.
func (r *TurnoRepository) ExistsByFechaHora(fecha, hora string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM turnos WHERE fecha = $1 AND hora = $2)`
	if err := r.DB.QueryRow(query, fecha, hora).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking turno availability: %w", err)
	}
	return exists, nil
}

// HorasByFecha returns the booked times for a date, earliest first.
func (r *TurnoRepository) HorasByFecha(fecha string) ([]string, error) {
	query := `SELECT hora FROM turnos WHERE fecha = $1 ORDER BY hora`
	rows, err := r.DB.Query(query, fecha)
	if err != nil {
		return nil, fmt.Errorf("error querying horas for fecha %s: %w", fecha, err)
	}
	defer rows.Close()

	horas := []string{}
	for rows.Next() {
		var hora string
		if err := rows.Scan(&hora); err != nil {
			return nil, fmt.Errorf("error scanning hora: %w", err)
		}
		horas = append(horas, hora)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating horas: %w", err)
	}
	return horas, nil
}

// TurnosByFecha returns every turno booked for a date, earliest first.
// Used by the reminder and agenda jobs.
func (r *TurnoRepository) TurnosByFecha(fecha string) ([]db.Turno, error) {
	query := `
		SELECT id, nombre, telefono, fecha, hora, servicio, created_at
		FROM turnos WHERE fecha = $1 ORDER BY hora`
	rows, err := r.DB.Query(query, fecha)
	if err != nil {
		return nil, fmt.Errorf("error querying turnos for fecha %s: %w", fecha, err)
	}
	defer rows.Close()

	var turnos []db.Turno
	for rows.Next() {
		var t db.Turno
		if err := rows.Scan(&t.ID, &t.Nombre, &t.Telefono, &t.Fecha, &t.Hora, &t.Servicio, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning turno: %w", err)
		}
		turnos = append(turnos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating turnos: %w", err)
	}
	return turnos, nil
}

// SampleTurnos fetches up to limit rows. Backs the /test connectivity probe.
func (r *TurnoRepository) SampleTurnos(limit int) ([]db.Turno, error) {
	query := `
		SELECT id, nombre, telefono, fecha, hora, servicio, created_at
		FROM turnos ORDER BY id LIMIT $1`
	rows, err := r.DB.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying sample turnos: %w", err)
	}
	defer rows.Close()

	turnos := []db.Turno{}
	for rows.Next() {
		var t db.Turno
		if err := rows.Scan(&t.ID, &t.Nombre, &t.Telefono, &t.Fecha, &t.Hora, &t.Servicio, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning turno: %w", err)
		}
		turnos = append(turnos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating sample turnos: %w", err)
	}
	return turnos, nil
}
