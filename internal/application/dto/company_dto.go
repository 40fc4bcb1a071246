package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa (cliente o prospecto).
type CreateCompanyRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	RUT     string `json:"rut"`
	Giro    string `json:"giro"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
}

// UpdateCompanyRequest entrada para actualizar una empresa (campos opcionales).
type UpdateCompanyRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	RUT     *string `json:"rut"`
	Giro    *string `json:"giro"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" validate:"omitempty,email"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	RUT       string    `json:"rut"`
	Giro      string    `json:"giro"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
