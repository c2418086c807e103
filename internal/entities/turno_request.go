package entities

// TurnoRequest carries the raw booking fields exactly as the client sent
// them. No defaulting: validation decides what is acceptable.
type TurnoRequest struct {
	Nombre   string `json:"nombre"`
	Telefono string `json:"telefono"`
	Fecha    string `json:"fecha"`
	Hora     string `json:"hora"`
	Servicio string `json:"servicio"`
}
