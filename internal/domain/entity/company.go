package entity

import "time"

// Company representa una empresa cliente o prospecto de la cartera. Lleva la
// identidad fiscal chilena (RUT y giro) que consumen el listado y la vista
// impresa de documentos.
type Company struct {
	ID        int64
	Name      string
	RUT       string // RUT chileno, con dígito verificador (ej: "76.123.456-7")
	Giro      string // actividad económica declarada ante el SII
	Address   string
	City      string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
