package client

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"

	"barberia/internal/db"
	"barberia/internal/entities"
	"barberia/internal/schedule"
)

var (
	// ErrEnvioEnCurso: a submission is already in flight; the caller must
	// wait for it before starting another.
	ErrEnvioEnCurso = errors.New("ya hay un envío en curso")

	// ErrCamposInvalidos: local validation failed; see Errores().
	ErrCamposInvalidos = errors.New("el formulario tiene campos inválidos")

	// ErrHorarioOcupado: the pre-submit re-check found the slot taken.
	ErrHorarioOcupado = errors.New("ya existe un turno reservado para la misma fecha y hora")

	// ErrFormularioCerrado: the form was torn down.
	ErrFormularioCerrado = errors.New("el formulario fue cerrado")
)

var telefonoRegex = regexp.MustCompile(`^[0-9]{10,15}$`)

const successNoticeTTL = 3 * time.Second

// TurnoForm drives the booking flow on the client side: local field
// validation, occupied-slot loading on date change, a pre-submit
// availability re-check, and an in-flight guard so the same client can
// never race itself into a double submission. These checks are UX; the
// server re-validates everything and owns the uniqueness invariant.
type TurnoForm struct {
	api *Client
	now func() time.Time

	mu            sync.Mutex
	data          entities.TurnoRequest
	errores       map[string]string
	horasOcupadas []string
	diasCompletos map[string]bool
	errorEnvio    string
	mensajeExito  string
	exitoExpira   time.Time
	enviando      bool
	cerrado       bool
	fetchSeq      int
}

func NewTurnoForm(api *Client) *TurnoForm {
	return &TurnoForm{
		api:           api,
		now:           time.Now,
		errores:       map[string]string{},
		diasCompletos: map[string]bool{},
	}
}

// Each setter rebuilds the request value instead of mutating shared state,
// so a submission always sees a consistent snapshot.

func (f *TurnoForm) SetNombre(v string) { f.setField(func(d *entities.TurnoRequest) { d.Nombre = v }) }

func (f *TurnoForm) SetTelefono(v string) {
	f.setField(func(d *entities.TurnoRequest) { d.Telefono = v })
}

func (f *TurnoForm) SetHora(v string) { f.setField(func(d *entities.TurnoRequest) { d.Hora = v }) }

func (f *TurnoForm) SetServicio(v string) {
	f.setField(func(d *entities.TurnoRequest) { d.Servicio = v })
}

func (f *TurnoForm) setField(apply func(*entities.TurnoRequest)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data := f.data
	apply(&data)
	f.data = data
}

// SetFecha selects a date and loads its occupied slots. A fetch error is
// not fatal: the occupied set resets to empty and the user may retry by
// re-selecting. Responses that arrive after a newer selection, or after
// Close, are dropped.
func (f *TurnoForm) SetFecha(ctx context.Context, fecha string) error {
	f.mu.Lock()
	if f.cerrado {
		f.mu.Unlock()
		return ErrFormularioCerrado
	}
	data := f.data
	data.Fecha = fecha
	f.data = data
	f.fetchSeq++
	seq := f.fetchSeq
	f.mu.Unlock()

	horas, err := f.api.HorasOcupadas(ctx, fecha)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cerrado || seq != f.fetchSeq {
		return nil
	}
	if err != nil {
		f.horasOcupadas = nil
		return err
	}
	f.horasOcupadas = horas
	if len(horas) >= schedule.SlotCount {
		f.diasCompletos[fecha] = true
	}
	return nil
}

// Validar applies the local field rules and records the failures.
func (f *TurnoForm) Validar() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errores = validarCampos(f.data, f.now())
	return copia(f.errores)
}

func validarCampos(data entities.TurnoRequest, now time.Time) map[string]string {
	errores := map[string]string{}

	if strings.TrimSpace(data.Nombre) == "" {
		errores["nombre"] = "El nombre es requerido"
	}
	if !telefonoRegex.MatchString(data.Telefono) {
		errores["telefono"] = "El teléfono debe contener solo números y tener entre 10 y 15 dígitos"
	}
	if data.Fecha == "" {
		errores["fecha"] = "La fecha es requerida"
	} else if fecha, err := schedule.ParseFecha(data.Fecha); err != nil {
		errores["fecha"] = "La fecha debe tener formato YYYY-MM-DD"
	} else if schedule.IsPast(fecha, now) {
		errores["fecha"] = "La fecha no puede ser en el pasado"
	}
	if data.Hora == "" {
		errores["hora"] = "La hora es requerida"
	}
	if data.Servicio == "" {
		errores["servicio"] = "Debe seleccionar un servicio"
	}
	return errores
}

// EsDiaCompleto reports whether every slot of the selected date is booked.
// Distinct from FechaSeleccionable's closed-day rule: a full day and a
// closed day disable the form for different reasons.
func (f *TurnoForm) EsDiaCompleto() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.horasOcupadas) >= schedule.SlotCount
}

// HoraOcupada reports whether a slot of the selected date is booked.
func (f *TurnoForm) HoraOcupada(hora string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, h := range f.horasOcupadas {
		if h == hora {
			return true
		}
	}
	return false
}

// FechaSeleccionable is the date-picker filter: closed weekdays are never
// selectable, and a date detected as fully booked stays disabled.
func (f *TurnoForm) FechaSeleccionable(fecha time.Time) bool {
	if schedule.IsClosedDay(fecha) {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.diasCompletos[fecha.Format(schedule.FechaLayout)]
}

// Enviar submits the turno: re-validate, re-check the exact slot, then
// book. On success the form resets and a transient success notice is set;
// on any failure the entered data is kept so the user can correct it.
func (f *TurnoForm) Enviar(ctx context.Context) (*db.Turno, error) {
	f.mu.Lock()
	if f.cerrado {
		f.mu.Unlock()
		return nil, ErrFormularioCerrado
	}
	if f.enviando {
		f.mu.Unlock()
		return nil, ErrEnvioEnCurso
	}
	f.mensajeExito = ""
	f.errorEnvio = ""
	f.errores = validarCampos(f.data, f.now())
	if len(f.errores) > 0 {
		f.mu.Unlock()
		return nil, ErrCamposInvalidos
	}
	f.enviando = true
	req := f.data
	f.mu.Unlock()

	turno, err := f.submit(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.enviando = false
	if f.cerrado {
		// Torn down while in flight: do not apply the result.
		return nil, ErrFormularioCerrado
	}
	switch {
	case err == nil:
		f.data = entities.TurnoRequest{}
		f.errores = map[string]string{}
		f.mensajeExito = "Turno registrado con éxito!"
		f.exitoExpira = f.now().Add(successNoticeTTL)
	case errors.Is(err, ErrHorarioOcupado):
		f.errorEnvio = "Ya existe un turno reservado para la misma fecha y hora."
	default:
		f.errorEnvio = "Error al registrar el turno."
	}
	return turno, err
}

func (f *TurnoForm) submit(ctx context.Context, req entities.TurnoRequest) (*db.Turno, error) {
	reservado, err := f.api.Verificar(ctx, req.Fecha, req.Hora)
	if err != nil {
		return nil, err
	}
	if reservado {
		return nil, ErrHorarioOcupado
	}
	return f.api.Reservar(ctx, req)
}

// MensajeExito returns the success notice, empty once it has expired.
func (f *TurnoForm) MensajeExito() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mensajeExito == "" || f.now().After(f.exitoExpira) {
		return ""
	}
	return f.mensajeExito
}

// ErrorEnvio returns the form-scoped message of the last failed submission.
func (f *TurnoForm) ErrorEnvio() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errorEnvio
}

// Errores returns the field-scoped messages of the last validation.
func (f *TurnoForm) Errores() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copia(f.errores)
}

// Enviando reports whether a submission is in flight.
func (f *TurnoForm) Enviando() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enviando
}

// Datos returns a snapshot of the current form fields.
func (f *TurnoForm) Datos() entities.TurnoRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data
}

// Close tears the form down; late responses are ignored from here on.
func (f *TurnoForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cerrado = true
}

func copia(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
