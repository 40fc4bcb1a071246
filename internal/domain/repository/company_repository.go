package repository

import (
	"context"

	"github.com/jpvergara/gestion-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para empresas.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id int64) (*entity.Company, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
}
