package repository

import (
	"context"
	"errors"

	"github.com/fixlocal/fixlocal-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("duplicate")
	// ErrStale is returned when a compare-and-swap write loses the race.
	ErrStale = errors.New("stale version")
)

// AccountRepository defines storage operations over Account records.
type AccountRepository interface {
	Create(ctx context.Context, a *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	ListProviders(ctx context.Context) ([]entity.Account, error)
	Update(ctx context.Context, a *entity.Account) error
}
