package repository

import (
	"context"

	"github.com/fixlocal/fixlocal-api/internal/domain/entity"
)

// BookingRepository defines storage operations over bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *entity.Booking) error
	GetByID(ctx context.Context, id string) (*entity.Booking, error)
	ListByProvider(ctx context.Context, providerID string) ([]entity.BookingDetail, error)
	ListByUser(ctx context.Context, userID string) ([]entity.BookingDetail, error)
	// UpdateStatus performs a compare-and-swap on (id, version). It returns
	// ErrStale when the stored version no longer matches and ErrNotFound
	// when the booking does not exist.
	UpdateStatus(ctx context.Context, id string, status entity.BookingStatus, version int64) (*entity.Booking, error)
}
