package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlotsEnumeration(t *testing.T) {
	slots := Slots()

	assert.Len(t, slots, SlotCount)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "22:00", slots[len(slots)-1])
	assert.Contains(t, slots, "09:30")
	assert.Contains(t, slots, "14:30")
	assert.Contains(t, slots, "21:30")
	assert.NotContains(t, slots, "22:30")
	assert.NotContains(t, slots, "08:30")
}

func TestIsValidSlot(t *testing.T) {
	tests := []struct {
		hora  string
		valid bool
	}{
		{"09:00", true},
		{"14:30", true},
		{"22:00", true},
		{"22:30", false},
		{"08:30", false},
		{"10:15", false},
		{"9:00", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, IsValidSlot(tt.hora), "hora %q", tt.hora)
	}
}

func TestIsClosedDay(t *testing.T) {
	miercoles := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Wednesday, miercoles.Weekday())

	assert.True(t, IsClosedDay(miercoles))
	assert.False(t, IsClosedDay(miercoles.AddDate(0, 0, 1)))
	assert.False(t, IsClosedDay(miercoles.AddDate(0, 0, -1)))
}

func TestParseFecha(t *testing.T) {
	fecha, err := ParseFecha("2026-09-03")
	assert.NoError(t, err)
	assert.Equal(t, 2026, fecha.Year())
	assert.Equal(t, time.September, fecha.Month())
	assert.Equal(t, 3, fecha.Day())

	_, err = ParseFecha("03/09/2026")
	assert.Error(t, err)
	_, err = ParseFecha("no-es-fecha")
	assert.Error(t, err)
}

func TestIsPast(t *testing.T) {
	now := time.Date(2026, 9, 3, 15, 30, 0, 0, time.Local)

	ayer := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	hoy := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	manana := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)

	assert.True(t, IsPast(ayer, now))
	// Hoy cuenta como reservable aunque ya sea de tarde.
	assert.False(t, IsPast(hoy, now))
	assert.False(t, IsPast(manana, now))
}

func TestServicios(t *testing.T) {
	assert.Equal(t, []string{"Corte", "Afeitado", "Corte y Afeitado"}, Servicios())

	assert.True(t, IsValidServicio("Corte"))
	assert.True(t, IsValidServicio("Corte y Afeitado"))
	assert.False(t, IsValidServicio("Tintura"))
	assert.False(t, IsValidServicio(""))
	assert.False(t, IsValidServicio("corte"))
}
