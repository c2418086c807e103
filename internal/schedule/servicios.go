package schedule

// Servicios offered by the shop. The wire value is the display name.
const (
	ServicioCorte         = "Corte"
	ServicioAfeitado      = "Afeitado"
	ServicioCorteAfeitado = "Corte y Afeitado"
)

func Servicios() []string {
	return []string{ServicioCorte, ServicioAfeitado, ServicioCorteAfeitado}
}

func IsValidServicio(servicio string) bool {
	switch servicio {
	case ServicioCorte, ServicioAfeitado, ServicioCorteAfeitado:
		return true
	}
	return false
}
