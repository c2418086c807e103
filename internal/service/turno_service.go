package service

import (
	"errors"
	"log"
	"regexp"
	"strings"
	"time"

	"barberia/internal/db"
	"barberia/internal/entities"
	apperrors "barberia/internal/errors"
	"barberia/internal/repository"
	"barberia/internal/schedule"
)

var telefonoRegex = regexp.MustCompile(`^[0-9]{10,15}$`)

type TurnoService struct {
	Repo *repository.TurnoRepository

	// Notifier may be nil when SMS/email credentials are not configured.
	Notifier *NotifyService

	// now is swappable for tests.
	now func() time.Time
}

func NewTurnoService(repo *repository.TurnoRepository, notifier *NotifyService) *TurnoService {
	return &TurnoService{Repo: repo, Notifier: notifier, now: time.Now}
}

// ValidateTurnoRequest applies the booking rules to every field and collects
// the failures. The server is the authoritative gate: client-side checks are
// UX only.
func ValidateTurnoRequest(req *entities.TurnoRequest, now time.Time) *apperrors.ValidationError {
	campos := map[string]string{}

	if strings.TrimSpace(req.Nombre) == "" {
		campos["nombre"] = "El nombre es requerido"
	}
	if !telefonoRegex.MatchString(req.Telefono) {
		campos["telefono"] = "El teléfono debe contener solo números y tener entre 10 y 15 dígitos"
	}

	if req.Fecha == "" {
		campos["fecha"] = "La fecha es requerida"
	} else if fecha, err := schedule.ParseFecha(req.Fecha); err != nil {
		campos["fecha"] = "La fecha debe tener formato YYYY-MM-DD"
	} else if schedule.IsPast(fecha, now) {
		campos["fecha"] = "La fecha no puede ser en el pasado"
	} else if schedule.IsClosedDay(fecha) {
		campos["fecha"] = "El local permanece cerrado los miércoles"
	}

	if req.Hora == "" {
		campos["hora"] = "La hora es requerida"
	} else if !schedule.IsValidSlot(req.Hora) {
		campos["hora"] = "La hora debe ser un turno de media hora entre las 09:00 y las 22:00"
	}

	if req.Servicio == "" {
		campos["servicio"] = "Debe seleccionar un servicio"
	} else if !schedule.IsValidServicio(req.Servicio) {
		campos["servicio"] = "El servicio seleccionado no existe"
	}

	if len(campos) == 0 {
		return nil
	}
	return &apperrors.ValidationError{Campos: campos}
}

// CreateTurno runs a booking request through validation, the availability
// pre-check and the insert. The pre-check gives the common-case early
// rejection; the UNIQUE (fecha, hora) constraint decides under concurrency,
// so a duplicate insert also comes back as a conflict.
func (s *TurnoService) CreateTurno(req *entities.TurnoRequest) (*db.Turno, error) {
	if verr := ValidateTurnoRequest(req, s.now()); verr != nil {
		return nil, verr
	}

	taken, err := s.Repo.ExistsByFechaHora(req.Fecha, req.Hora)
	if err != nil {
		log.Printf("Error al verificar la disponibilidad del turno: %v", err)
		return nil, &apperrors.QueryError{Err: err}
	}
	if taken {
		return nil, &apperrors.ConflictError{Fecha: req.Fecha, Hora: req.Hora}
	}

	turno := &db.Turno{
		Nombre:   strings.TrimSpace(req.Nombre),
		Telefono: req.Telefono,
		Fecha:    req.Fecha,
		Hora:     req.Hora,
		Servicio: req.Servicio,
	}
	if err := s.Repo.CreateTurno(turno); err != nil {
		if errors.Is(err, repository.ErrTurnoDuplicado) {
			return nil, &apperrors.ConflictError{Fecha: req.Fecha, Hora: req.Hora}
		}
		log.Printf("Error al registrar el turno: %v", err)
		return nil, &apperrors.WriteError{Err: err}
	}

	if s.Notifier != nil {
		// Fire and forget: an SMS failure never fails the booking.
		go s.Notifier.SendConfirmacionSMS(*turno)
	}

	return turno, nil
}

// CheckDisponibilidad reports whether the exact (fecha, hora) pair is
// already reserved.
func (s *TurnoService) CheckDisponibilidad(fecha, hora string) (*entities.Disponibilidad, error) {
	taken, err := s.Repo.ExistsByFechaHora(fecha, hora)
	if err != nil {
		log.Printf("Error al consultar disponibilidad: %v", err)
		return nil, &apperrors.QueryError{Err: err}
	}
	return &entities.Disponibilidad{Fecha: fecha, Hora: hora, Reservado: taken}, nil
}

// HorasOcupadas returns the occupied times for a date. Empty slice when the
// day has no bookings.
func (s *TurnoService) HorasOcupadas(fecha string) (*entities.HorasOcupadas, error) {
	horas, err := s.Repo.HorasByFecha(fecha)
	if err != nil {
		log.Printf("Error al obtener las reservas: %v", err)
		return nil, &apperrors.QueryError{Err: err}
	}
	return &entities.HorasOcupadas{Fecha: fecha, Horas: horas}, nil
}

// SampleTurnos backs the /test store probe.
func (s *TurnoService) SampleTurnos(limit int) ([]db.Turno, error) {
	turnos, err := s.Repo.SampleTurnos(limit)
	if err != nil {
		log.Printf("Error en la prueba de conexión: %v", err)
		return nil, &apperrors.QueryError{Err: err}
	}
	return turnos, nil
}
