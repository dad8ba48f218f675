package application

import (
	"context"

	"github.com/fixlocal/fixlocal-api/internal/domain/entity"
	"github.com/fixlocal/fixlocal-api/internal/domain/repository"
	"github.com/fixlocal/fixlocal-api/pkg/helpers"
)

type fakeAccountRepo struct {
	createFn        func(ctx context.Context, a *entity.Account) error
	getByIDFn       func(ctx context.Context, id string) (*entity.Account, error)
	getByEmailFn    func(ctx context.Context, email string) (*entity.Account, error)
	listProvidersFn func(ctx context.Context) ([]entity.Account, error)
	updateFn        func(ctx context.Context, a *entity.Account) error
}

func (f *fakeAccountRepo) Create(ctx context.Context, a *entity.Account) error {
	if f.createFn != nil {
		return f.createFn(ctx, a)
	}
	a.ID = "generated-id"
	return nil
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAccountRepo) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAccountRepo) ListProviders(ctx context.Context) ([]entity.Account, error) {
	if f.listProvidersFn != nil {
		return f.listProvidersFn(ctx)
	}
	return nil, nil
}

func (f *fakeAccountRepo) Update(ctx context.Context, a *entity.Account) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, a)
	}
	return nil
}

type fakeServiceRepo struct {
	createFn  func(ctx context.Context, s *entity.Service) error
	getByIDFn func(ctx context.Context, id string) (*entity.Service, error)
	listFn    func(ctx context.Context) ([]entity.ServiceListing, error)
	updateFn  func(ctx context.Context, s *entity.Service) error
	deleteFn  func(ctx context.Context, id string) error
}

func (f *fakeServiceRepo) Create(ctx context.Context, s *entity.Service) error {
	if f.createFn != nil {
		return f.createFn(ctx, s)
	}
	s.ID = "service-id"
	return nil
}

func (f *fakeServiceRepo) GetByID(ctx context.Context, id string) (*entity.Service, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (f *fakeServiceRepo) List(ctx context.Context) ([]entity.ServiceListing, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return nil, nil
}

func (f *fakeServiceRepo) Update(ctx context.Context, s *entity.Service) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, s)
	}
	return nil
}

func (f *fakeServiceRepo) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeBookingRepo struct {
	createFn         func(ctx context.Context, b *entity.Booking) error
	getByIDFn        func(ctx context.Context, id string) (*entity.Booking, error)
	listByProviderFn func(ctx context.Context, providerID string) ([]entity.BookingDetail, error)
	listByUserFn     func(ctx context.Context, userID string) ([]entity.BookingDetail, error)
	updateStatusFn   func(ctx context.Context, id string, status entity.BookingStatus, version int64) (*entity.Booking, error)
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *entity.Booking) error {
	if f.createFn != nil {
		return f.createFn(ctx, b)
	}
	b.ID = "booking-id"
	b.Version = 1
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (f *fakeBookingRepo) ListByProvider(ctx context.Context, providerID string) ([]entity.BookingDetail, error) {
	if f.listByProviderFn != nil {
		return f.listByProviderFn(ctx, providerID)
	}
	return nil, nil
}

func (f *fakeBookingRepo) ListByUser(ctx context.Context, userID string) ([]entity.BookingDetail, error) {
	if f.listByUserFn != nil {
		return f.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id string, status entity.BookingStatus, version int64) (*entity.Booking, error) {
	if f.updateStatusFn != nil {
		return f.updateStatusFn(ctx, id, status, version)
	}
	return nil, repository.ErrNotFound
}

type fakeGoogleVerifier struct {
	verifyFn func(ctx context.Context, raw string) (*helpers.GoogleIdentity, error)
}

func (f *fakeGoogleVerifier) Verify(ctx context.Context, raw string) (*helpers.GoogleIdentity, error) {
	return f.verifyFn(ctx, raw)
}
