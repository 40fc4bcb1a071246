package postgres

import (
	"context"
	"fmt"

	"github.com/jpvergara/gestion-api/internal/domain"
	"github.com/jpvergara/gestion-api/internal/domain/entity"
	"github.com/jpvergara/gestion-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementa ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	const query = `
		INSERT INTO products (code, name, description, price, unit)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		nullIfEmpty(product.Code),
		product.Name,
		nullIfEmpty(product.Description),
		product.Price,
		nullIfEmpty(product.Unit),
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("producto con código %s: %w", product.Code, domain.ErrDuplicate)
		}
		return fmt.Errorf("crear producto: %w", err)
	}
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	const query = `
		SELECT id, COALESCE(code, ''), name, COALESCE(description, ''), price,
		       COALESCE(unit, ''), created_at, updated_at
		FROM products
		WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Code, &p.Name, &p.Description, &p.Price,
		&p.Unit, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener producto %d: %w", id, err)
	}
	return &p, nil
}

func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	const query = `
		SELECT id, COALESCE(code, ''), name, COALESCE(description, ''), price,
		       COALESCE(unit, ''), created_at, updated_at
		FROM products
		ORDER BY name
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	defer rows.Close()

	products := make([]*entity.Product, 0)
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.Code, &p.Name, &p.Description, &p.Price,
			&p.Unit, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("escanear producto: %w", err)
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}

func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	const query = `
		UPDATE products
		SET code = $1, name = $2, description = $3, price = $4, unit = $5,
		    updated_at = NOW()
		WHERE id = $6`
	tag, err := r.q.Exec(ctx, query,
		nullIfEmpty(product.Code),
		product.Name,
		nullIfEmpty(product.Description),
		product.Price,
		nullIfEmpty(product.Unit),
		product.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("producto con código %s: %w", product.Code, domain.ErrDuplicate)
		}
		return fmt.Errorf("actualizar producto %d: %w", product.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
