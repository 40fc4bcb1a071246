package postgres

import (
	"context"
	"fmt"

	"github.com/jpvergara/gestion-api/internal/domain"
	"github.com/jpvergara/gestion-api/internal/domain/entity"
	"github.com/jpvergara/gestion-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementa CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	const query = `
		INSERT INTO companies (name, rut, giro, address, city, phone, email)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		company.Name,
		nullIfEmpty(company.RUT),
		nullIfEmpty(company.Giro),
		nullIfEmpty(company.Address),
		nullIfEmpty(company.City),
		nullIfEmpty(company.Phone),
		nullIfEmpty(company.Email),
	).Scan(&company.ID, &company.CreatedAt, &company.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("empresa con RUT %s: %w", company.RUT, domain.ErrDuplicate)
		}
		return fmt.Errorf("crear empresa: %w", err)
	}
	return nil
}

func (r *CompanyRepo) GetByID(ctx context.Context, id int64) (*entity.Company, error) {
	const query = `
		SELECT id, name, COALESCE(rut, ''), COALESCE(giro, ''), COALESCE(address, ''),
		       COALESCE(city, ''), COALESCE(phone, ''), COALESCE(email, ''),
		       created_at, updated_at
		FROM companies
		WHERE id = $1`
	var c entity.Company
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.RUT, &c.Giro, &c.Address,
		&c.City, &c.Phone, &c.Email, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener empresa %d: %w", id, err)
	}
	return &c, nil
}

func (r *CompanyRepo) List(ctx context.Context, limit, offset int) ([]*entity.Company, error) {
	const query = `
		SELECT id, name, COALESCE(rut, ''), COALESCE(giro, ''), COALESCE(address, ''),
		       COALESCE(city, ''), COALESCE(phone, ''), COALESCE(email, ''),
		       created_at, updated_at
		FROM companies
		ORDER BY name
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar empresas: %w", err)
	}
	defer rows.Close()

	companies := make([]*entity.Company, 0)
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(
			&c.ID, &c.Name, &c.RUT, &c.Giro, &c.Address,
			&c.City, &c.Phone, &c.Email, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("escanear empresa: %w", err)
		}
		companies = append(companies, &c)
	}
	return companies, rows.Err()
}

func (r *CompanyRepo) Update(ctx context.Context, company *entity.Company) error {
	const query = `
		UPDATE companies
		SET name = $1, rut = $2, giro = $3, address = $4, city = $5,
		    phone = $6, email = $7, updated_at = NOW()
		WHERE id = $8`
	tag, err := r.q.Exec(ctx, query,
		company.Name,
		nullIfEmpty(company.RUT),
		nullIfEmpty(company.Giro),
		nullIfEmpty(company.Address),
		nullIfEmpty(company.City),
		nullIfEmpty(company.Phone),
		nullIfEmpty(company.Email),
		company.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("empresa con RUT %s: %w", company.RUT, domain.ErrDuplicate)
		}
		return fmt.Errorf("actualizar empresa %d: %w", company.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
