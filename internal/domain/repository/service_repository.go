package repository

import (
	"context"

	"github.com/fixlocal/fixlocal-api/internal/domain/entity"
)

// ServiceRepository defines storage operations over the service catalog.
type ServiceRepository interface {
	Create(ctx context.Context, s *entity.Service) error
	GetByID(ctx context.Context, id string) (*entity.Service, error)
	List(ctx context.Context) ([]entity.ServiceListing, error)
	Update(ctx context.Context, s *entity.Service) error
	Delete(ctx context.Context, id string) error
}
