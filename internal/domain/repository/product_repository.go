package repository

import (
	"context"

	"github.com/jpvergara/gestion-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para productos.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
}
