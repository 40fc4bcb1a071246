package repository

import (
	"context"

	"github.com/jpvergara/gestion-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
