package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"barberia/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend is an in-memory rendition of the booking service.
type fakeBackend struct {
	mu         sync.Mutex
	turnos     map[string]bool // "fecha|hora"
	verificars int
	reservars  int
	bloquear   chan struct{} // when set, /verificar waits on it
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{turnos: map[string]bool{}}
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/reservas-por-fecha", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		horas := []string{}
		for _, slot := range schedule.Slots() {
			if b.turnos[r.URL.Query().Get("fecha")+"|"+slot] {
				horas = append(horas, slot)
			}
		}
		b.mu.Unlock()
		json.NewEncoder(w).Encode(map[string][]string{"horasOcupadas": horas})
	})
	mux.HandleFunc("/verificar", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.verificars++
		bloquear := b.bloquear
		reservado := b.turnos[r.URL.Query().Get("fecha")+"|"+r.URL.Query().Get("hora")]
		b.mu.Unlock()
		if bloquear != nil {
			<-bloquear
		}
		json.NewEncoder(w).Encode(map[string]bool{"reservado": reservado})
	})
	mux.HandleFunc("/reservar", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Nombre, Telefono, Fecha, Hora, Servicio string
		}
		json.NewDecoder(r.Body).Decode(&req)
		b.mu.Lock()
		b.reservars++
		key := req.Fecha + "|" + req.Hora
		if b.turnos[key] {
			b.mu.Unlock()
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{
				"error": "Ya existe un turno reservado para la misma fecha y hora.",
			})
			return
		}
		b.turnos[key] = true
		b.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "Turno registrado con éxito!",
			"data": map[string]interface{}{
				"id": 1, "nombre": req.Nombre, "fecha": req.Fecha, "hora": req.Hora,
			},
		})
	})
	return mux
}

func (b *fakeBackend) ocupar(fecha string, horas ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, h := range horas {
		b.turnos[fecha+"|"+h] = true
	}
}

func setupForm(t *testing.T) (*TurnoForm, *fakeBackend) {
	t.Helper()
	backend := newFakeBackend()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)
	return NewTurnoForm(New(srv.URL)), backend
}

// proximaFechaHabil returns the next open, bookable date.
func proximaFechaHabil() string {
	d := time.Now().AddDate(0, 0, 1)
	for schedule.IsClosedDay(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format(schedule.FechaLayout)
}

func llenarFormulario(f *TurnoForm, fecha string) {
	f.SetNombre("Ana")
	f.SetTelefono("1122334455")
	f.SetHora("10:00")
	f.SetServicio("Corte")
	if fecha != "" {
		f.SetFecha(context.Background(), fecha)
	}
}

func TestValidarCamposRequeridos(t *testing.T) {
	f, _ := setupForm(t)

	errores := f.Validar()

	assert.Equal(t, "El nombre es requerido", errores["nombre"])
	assert.Equal(t, "La fecha es requerida", errores["fecha"])
	assert.Equal(t, "La hora es requerida", errores["hora"])
	assert.Equal(t, "Debe seleccionar un servicio", errores["servicio"])
	assert.Contains(t, errores["telefono"], "entre 10 y 15 dígitos")
}

func TestValidarTelefono(t *testing.T) {
	tests := []struct {
		telefono string
		valido   bool
	}{
		{"12345", false},
		{"0123456789", true},
		{"abc1234567", false},
		{"123456789012345", true},
		{"1234567890123456", false},
		{"11 2233 4455", false},
	}
	for _, tt := range tests {
		f, _ := setupForm(t)
		llenarFormulario(f, proximaFechaHabil())
		f.SetTelefono(tt.telefono)

		errores := f.Validar()
		if tt.valido {
			assert.NotContains(t, errores, "telefono", "telefono %q", tt.telefono)
		} else {
			assert.Contains(t, errores, "telefono", "telefono %q", tt.telefono)
		}
	}
}

func TestValidarFechaPasada(t *testing.T) {
	f, _ := setupForm(t)
	llenarFormulario(f, "")
	ayer := time.Now().AddDate(0, 0, -1).Format(schedule.FechaLayout)
	f.SetFecha(context.Background(), ayer)

	errores := f.Validar()
	assert.Equal(t, "La fecha no puede ser en el pasado", errores["fecha"])
}

func TestSetFechaCargaHorasOcupadas(t *testing.T) {
	f, backend := setupForm(t)
	fecha := proximaFechaHabil()
	backend.ocupar(fecha, "10:00", "14:30")

	require.NoError(t, f.SetFecha(context.Background(), fecha))

	assert.True(t, f.HoraOcupada("10:00"))
	assert.True(t, f.HoraOcupada("14:30"))
	assert.False(t, f.HoraOcupada("11:00"))
	assert.False(t, f.EsDiaCompleto())
}

func TestDiaCompleto(t *testing.T) {
	f, backend := setupForm(t)
	fecha := proximaFechaHabil()
	backend.ocupar(fecha, schedule.Slots()...)

	require.NoError(t, f.SetFecha(context.Background(), fecha))

	assert.True(t, f.EsDiaCompleto())

	// Una vez detectado completo, el día queda deshabilitado en el picker.
	dia, err := schedule.ParseFecha(fecha)
	require.NoError(t, err)
	assert.False(t, f.FechaSeleccionable(dia))
}

func TestFechaSeleccionableMiercoles(t *testing.T) {
	f, _ := setupForm(t)

	miercoles := time.Date(2026, 9, 9, 0, 0, 0, 0, time.Local)
	require.Equal(t, time.Wednesday, miercoles.Weekday())

	// El miércoles queda afuera sin necesidad de consultar el backend.
	assert.False(t, f.FechaSeleccionable(miercoles))
	assert.True(t, f.FechaSeleccionable(miercoles.AddDate(0, 0, 1)))
}

func TestEnviarExito(t *testing.T) {
	f, backend := setupForm(t)
	llenarFormulario(f, proximaFechaHabil())

	turno, err := f.Enviar(context.Background())
	require.NoError(t, err)
	require.NotNil(t, turno)

	// Reverificó justo antes de reservar.
	assert.Equal(t, 1, backend.verificars)
	assert.Equal(t, 1, backend.reservars)

	// Éxito: el formulario se resetea y el aviso aparece.
	assert.Empty(t, f.Datos().Nombre)
	assert.Empty(t, f.Datos().Fecha)
	assert.Equal(t, "Turno registrado con éxito!", f.MensajeExito())
	assert.Empty(t, f.ErrorEnvio())
	assert.False(t, f.Enviando())
}

func TestMensajeExitoExpira(t *testing.T) {
	f, _ := setupForm(t)
	llenarFormulario(f, proximaFechaHabil())

	_, err := f.Enviar(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, f.MensajeExito())

	// Pasado el plazo, el aviso se limpia solo.
	f.now = func() time.Time { return time.Now().Add(successNoticeTTL + time.Second) }
	assert.Empty(t, f.MensajeExito())
}

func TestEnviarHorarioOcupado(t *testing.T) {
	f, backend := setupForm(t)
	fecha := proximaFechaHabil()
	backend.ocupar(fecha, "10:00")
	llenarFormulario(f, fecha)

	_, err := f.Enviar(context.Background())
	require.ErrorIs(t, err, ErrHorarioOcupado)

	// La reverificación cortó antes de llamar a reservar.
	assert.Equal(t, 0, backend.reservars)
	assert.Equal(t, "Ya existe un turno reservado para la misma fecha y hora.", f.ErrorEnvio())

	// El formulario conserva lo ingresado para corregir.
	assert.Equal(t, "Ana", f.Datos().Nombre)
}

func TestEnviarCamposInvalidos(t *testing.T) {
	f, backend := setupForm(t)
	llenarFormulario(f, proximaFechaHabil())
	f.SetTelefono("12345")

	_, err := f.Enviar(context.Background())
	require.ErrorIs(t, err, ErrCamposInvalidos)

	assert.Contains(t, f.Errores(), "telefono")
	assert.Equal(t, 0, backend.verificars)
	assert.Equal(t, 0, backend.reservars)
}

func TestEnviarDobleEnvio(t *testing.T) {
	f, backend := setupForm(t)
	llenarFormulario(f, proximaFechaHabil())

	backend.mu.Lock()
	backend.bloquear = make(chan struct{})
	backend.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		_, err := f.Enviar(context.Background())
		done <- err
	}()

	// Esperar a que el primer envío esté en vuelo.
	require.Eventually(t, f.Enviando, time.Second, 5*time.Millisecond)

	_, err := f.Enviar(context.Background())
	assert.ErrorIs(t, err, ErrEnvioEnCurso)

	close(backend.bloquear)
	require.NoError(t, <-done)
	assert.Equal(t, 1, backend.reservars)
}

func TestCerradoIgnoraRespuestaTardia(t *testing.T) {
	f, backend := setupForm(t)
	llenarFormulario(f, proximaFechaHabil())

	backend.mu.Lock()
	backend.bloquear = make(chan struct{})
	backend.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		_, err := f.Enviar(context.Background())
		done <- err
	}()
	require.Eventually(t, f.Enviando, time.Second, 5*time.Millisecond)

	f.Close()
	close(backend.bloquear)

	assert.ErrorIs(t, <-done, ErrFormularioCerrado)
	// La respuesta tardía no se aplica al estado del formulario.
	assert.Empty(t, f.MensajeExito())
}

func TestEnviarFormularioCerrado(t *testing.T) {
	f, _ := setupForm(t)
	llenarFormulario(f, proximaFechaHabil())

	f.Close()

	_, err := f.Enviar(context.Background())
	assert.ErrorIs(t, err, ErrFormularioCerrado)

	err = f.SetFecha(context.Background(), proximaFechaHabil())
	assert.ErrorIs(t, err, ErrFormularioCerrado)
}

func TestSetFechaRespuestaViejaDescartada(t *testing.T) {
	f, backend := setupForm(t)
	fecha := proximaFechaHabil()
	backend.ocupar(fecha, "10:00")

	// Dos selecciones seguidas: gana la última.
	require.NoError(t, f.SetFecha(context.Background(), fecha))
	otra := time.Now().AddDate(0, 0, 8)
	for schedule.IsClosedDay(otra) {
		otra = otra.AddDate(0, 0, 1)
	}
	require.NoError(t, f.SetFecha(context.Background(), otra.Format(schedule.FechaLayout)))

	assert.False(t, f.HoraOcupada("10:00"))
}
