package usecase

import (
	"context"
	"time"

	"github.com/jpvergara/gestion-api/internal/application/dto"
	"github.com/jpvergara/gestion-api/internal/domain"
	"github.com/jpvergara/gestion-api/internal/domain/entity"
	"github.com/jpvergara/gestion-api/internal/domain/repository"
	"github.com/jpvergara/gestion-api/pkg/rut"
)

// CompanyUseCase CRUD de empresas (clientes y prospectos de la cartera).
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create valida y persiste una empresa. El RUT, si viene, debe tener dígito
// verificador correcto; se almacena normalizado con puntos y guión.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	normalizedRUT := in.RUT
	if in.RUT != "" {
		if err := rut.Validate(in.RUT); err != nil {
			return nil, domain.ErrInvalidInput
		}
		normalizedRUT = rut.Format(in.RUT)
	}
	now := time.Now()
	company := &entity.Company{
		Name:      in.Name,
		RUT:       normalizedRUT,
		Giro:      in.Giro,
		Address:   in.Address,
		City:      in.City,
		Phone:     in.Phone,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// GetByID obtiene una empresa o ErrNotFound.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id int64) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

// List devuelve empresas paginadas.
func (uc *CompanyUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.CompanyResponse, error) {
	page.DefaultPage()
	companies, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, toCompanyResponse(c))
	}
	return out, nil
}

// Update aplica los campos presentes y persiste.
func (uc *CompanyUseCase) Update(ctx context.Context, id int64, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		company.Name = *in.Name
	}
	if in.RUT != nil {
		if *in.RUT != "" {
			if err := rut.Validate(*in.RUT); err != nil {
				return nil, domain.ErrInvalidInput
			}
			company.RUT = rut.Format(*in.RUT)
		} else {
			company.RUT = ""
		}
	}
	if in.Giro != nil {
		company.Giro = *in.Giro
	}
	if in.Address != nil {
		company.Address = *in.Address
	}
	if in.City != nil {
		company.City = *in.City
	}
	if in.Phone != nil {
		company.Phone = *in.Phone
	}
	if in.Email != nil {
		company.Email = *in.Email
	}
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		RUT:       c.RUT,
		Giro:      c.Giro,
		Address:   c.Address,
		City:      c.City,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
