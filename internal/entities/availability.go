package entities

// Disponibilidad is the answer to "¿está reservado este turno?" for an
// exact (fecha, hora) pair.
type Disponibilidad struct {
	Fecha     string `json:"fecha"`
	Hora      string `json:"hora"`
	Reservado bool   `json:"reservado"`
}

// HorasOcupadas lists the booked times for one date. Clients render it
// against the canonical slot enumeration to mark which options are disabled.
type HorasOcupadas struct {
	Fecha string   `json:"fecha"`
	Horas []string `json:"horasOcupadas"`
}
