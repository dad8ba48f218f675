package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fixlocal/fixlocal-api/internal/domain/entity"
	"github.com/fixlocal/fixlocal-api/internal/domain/repository"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) Create(ctx context.Context, b *entity.Booking) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO bookings (user_id, provider_id, service_id, date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, version, created_at, updated_at
	`, b.UserID, b.ProviderID, b.ServiceID, b.Date, b.Status)

	return row.Scan(&b.ID, &b.Version, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	b := &entity.Booking{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, provider_id, service_id, date, status, version, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`, id)
	if err := row.Scan(&b.ID, &b.UserID, &b.ProviderID, &b.ServiceID, &b.Date,
		&b.Status, &b.Version, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

const bookingDetailQuery = `
	SELECT b.id, b.user_id, b.provider_id, b.service_id, b.date, b.status, b.version,
	       b.created_at, b.updated_at,
	       u.name, u.email, p.name, p.email,
	       s.name, s.category, s.price, s.location
	FROM bookings b
	JOIN accounts u ON u.id = b.user_id
	JOIN accounts p ON p.id = b.provider_id
	JOIN services s ON s.id = b.service_id
`

func (r *BookingRepository) ListByProvider(ctx context.Context, providerID string) ([]entity.BookingDetail, error) {
	return r.listDetails(ctx, bookingDetailQuery+` WHERE b.provider_id = $1 ORDER BY b.created_at DESC`, providerID)
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]entity.BookingDetail, error) {
	return r.listDetails(ctx, bookingDetailQuery+` WHERE b.user_id = $1 ORDER BY b.created_at DESC`, userID)
}

func (r *BookingRepository) listDetails(ctx context.Context, query string, arg any) ([]entity.BookingDetail, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.BookingDetail, 0)
	for rows.Next() {
		var d entity.BookingDetail
		if err := rows.Scan(&d.ID, &d.UserID, &d.ProviderID, &d.ServiceID, &d.Date, &d.Status,
			&d.Version, &d.CreatedAt, &d.UpdatedAt,
			&d.UserName, &d.UserEmail, &d.ProviderName, &d.ProviderEmail,
			&d.ServiceName, &d.ServiceCategory, &d.ServicePrice, &d.ServiceLocation); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// UpdateStatus writes the new status only when the stored version still
// matches, bumping the version on success. Concurrent updates to the same
// booking lose the race cleanly instead of last-write-wins.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status entity.BookingStatus, version int64) (*entity.Booking, error) {
	b := &entity.Booking{}
	row := r.pool.QueryRow(ctx, `
		UPDATE bookings
		SET status = $2, version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $3
		RETURNING id, user_id, provider_id, service_id, date, status, version, created_at, updated_at
	`, id, status, version)
	err := row.Scan(&b.ID, &b.UserID, &b.ProviderID, &b.ServiceID, &b.Date,
		&b.Status, &b.Version, &b.CreatedAt, &b.UpdatedAt)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	// Distinguish a vanished booking from a lost version race.
	var exists bool
	if scanErr := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM bookings WHERE id = $1)`, id).Scan(&exists); scanErr != nil {
		return nil, scanErr
	}
	if exists {
		return nil, repository.ErrStale
	}
	return nil, repository.ErrNotFound
}

var _ repository.BookingRepository = (*BookingRepository)(nil)
