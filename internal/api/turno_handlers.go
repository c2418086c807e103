package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"barberia/internal/entities"
	apperrors "barberia/internal/errors"
	"barberia/internal/service"
)

type TurnoHandler struct {
	Service *service.TurnoService
}

func NewTurnoHandler(svc *service.TurnoService) *TurnoHandler {
	return &TurnoHandler{Service: svc}
}

func (h *TurnoHandler) Root(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Servidor de barbería funcionando"))
}

func (h *TurnoHandler) Reservar(w http.ResponseWriter, r *http.Request) {
	var req entities.TurnoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Cuerpo de la solicitud inválido"})
		return
	}

	turno, err := h.Service.CreateTurno(&req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ReservarResponse{
		Message: "Turno registrado con éxito!",
		Data:    turno,
	})
}

func (h *TurnoHandler) Verificar(w http.ResponseWriter, r *http.Request) {
	fecha := r.URL.Query().Get("fecha")
	hora := r.URL.Query().Get("hora")
	if fecha == "" || hora == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Los parámetros fecha y hora son requeridos"})
		return
	}

	disp, err := h.Service.CheckDisponibilidad(fecha, hora)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Error al consultar la disponibilidad"})
		return
	}
	writeJSON(w, http.StatusOK, VerificarResponse{Reservado: disp.Reservado})
}

func (h *TurnoHandler) ReservasPorFecha(w http.ResponseWriter, r *http.Request) {
	fecha := r.URL.Query().Get("fecha")
	if fecha == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "El parámetro fecha es requerido"})
		return
	}

	ocupadas, err := h.Service.HorasOcupadas(fecha)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Error al obtener las reservas"})
		return
	}
	writeJSON(w, http.StatusOK, HorasOcupadasResponse{HorasOcupadas: ocupadas.Horas})
}

func (h *TurnoHandler) Test(w http.ResponseWriter, r *http.Request) {
	turnos, err := h.Service.SampleTurnos(1)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, TestResponse{
		Message: "Conexión con la base de datos exitosa!",
		Data:    turnos,
	})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Conflict and validation are expected outcomes (400); store failures
// surface verbatim as internal errors (500).
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, verr.Status(), ErrorResponse{Error: verr.Error(), Campos: verr.Campos})
		return
	}
	var cerr *apperrors.ConflictError
	if errors.As(err, &cerr) {
		writeJSON(w, cerr.Status(), ErrorResponse{Error: cerr.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
