package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fixlocal/fixlocal-api/internal/domain/entity"
	"github.com/fixlocal/fixlocal-api/internal/domain/repository"
)

type ServiceRepository struct {
	pool *pgxpool.Pool
}

func NewServiceRepository(pool *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{pool: pool}
}

func (r *ServiceRepository) Create(ctx context.Context, s *entity.Service) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO services (provider_id, name, category, price, description, location)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, s.ProviderID, s.Name, s.Category, s.Price, s.Description, s.Location)

	return row.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *ServiceRepository) GetByID(ctx context.Context, id string) (*entity.Service, error) {
	s := &entity.Service{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, provider_id, name, category, price, description, location, created_at, updated_at
		FROM services
		WHERE id = $1
	`, id)
	if err := row.Scan(&s.ID, &s.ProviderID, &s.Name, &s.Category, &s.Price,
		&s.Description, &s.Location, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *ServiceRepository) List(ctx context.Context) ([]entity.ServiceListing, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.provider_id, s.name, s.category, s.price, s.description, s.location,
		       s.created_at, s.updated_at, a.name
		FROM services s
		JOIN accounts a ON a.id = s.provider_id
		ORDER BY s.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.ServiceListing, 0)
	for rows.Next() {
		var l entity.ServiceListing
		if err := rows.Scan(&l.ID, &l.ProviderID, &l.Name, &l.Category, &l.Price,
			&l.Description, &l.Location, &l.CreatedAt, &l.UpdatedAt, &l.ProviderName); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *ServiceRepository) Update(ctx context.Context, s *entity.Service) error {
	s.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE services
		SET name = $1, category = $2, price = $3, description = $4, location = $5, updated_at = $6
		WHERE id = $7
	`, s.Name, s.Category, s.Price, s.Description, s.Location, s.UpdatedAt, s.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ServiceRepository = (*ServiceRepository)(nil)
