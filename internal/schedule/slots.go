package schedule

import (
	"fmt"
	"time"
)

// La barbería atiende turnos de media hora entre las 09:00 y las 22:00.
const (
	OpeningHour = 9
	ClosingHour = 22

	// SlotCount is the number of bookable half-hour slots per day.
	SlotCount = 27

	// ClosedWeekday: el local permanece cerrado los miércoles.
	ClosedWeekday = time.Wednesday

	FechaLayout = "2006-01-02"
)

// Slots returns the canonical enumeration of bookable times for a day:
// 09:00, 09:30, ..., 21:30, 22:00.
func Slots() []string {
	times := make([]string, 0, SlotCount)
	for hour := OpeningHour; hour < ClosingHour; hour++ {
		times = append(times, fmt.Sprintf("%02d:00", hour), fmt.Sprintf("%02d:30", hour))
	}
	return append(times, fmt.Sprintf("%02d:00", ClosingHour))
}

// IsValidSlot reports whether hora is one of the canonical slots.
func IsValidSlot(hora string) bool {
	for _, s := range Slots() {
		if s == hora {
			return true
		}
	}
	return false
}

// IsClosedDay reports whether the shop is closed on the given date.
func IsClosedDay(fecha time.Time) bool {
	return fecha.Weekday() == ClosedWeekday
}

// ParseFecha parses a "YYYY-MM-DD" date string.
func ParseFecha(fecha string) (time.Time, error) {
	t, err := time.Parse(FechaLayout, fecha)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida '%s': %w", fecha, err)
	}
	return t, nil
}

// IsPast reports whether fecha falls on a calendar day before now.
// Today's date is not past: the comparison is day-level, not instant-level.
func IsPast(fecha, now time.Time) bool {
	y1, m1, d1 := fecha.Date()
	y2, m2, d2 := now.Date()
	return time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC).
		Before(time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC))
}
