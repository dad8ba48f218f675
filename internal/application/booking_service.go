package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fixlocal/fixlocal-api/internal/domain/entity"
	repo "github.com/fixlocal/fixlocal-api/internal/domain/repository"
	"github.com/fixlocal/fixlocal-api/pkg/helpers"
	"github.com/fixlocal/fixlocal-api/pkg/mailer"
)

// BookingService governs the booking lifecycle: creation by users, status
// transitions by the owning provider, and dashboard listings. Lifecycle
// events are published to the notification queue when a publisher is
// configured.
type BookingService struct {
	Bookings repo.BookingRepository
	Services repo.ServiceRepository
	Accounts repo.AccountRepository
	Notifier *helpers.RabbitPublisher
	Logger   *logrus.Logger
}

func NewBookingService(bookings repo.BookingRepository, services repo.ServiceRepository, accounts repo.AccountRepository, notifier *helpers.RabbitPublisher, logger *logrus.Logger) *BookingService {
	return &BookingService{Bookings: bookings, Services: services, Accounts: accounts, Notifier: notifier, Logger: logger}
}

// Create books a service for the acting user. The booking's provider
// reference is derived from the service record, never trusted from the
// client, and the guard compares it against the caller.
func (s *BookingService) Create(ctx context.Context, actor *entity.Account, serviceID string, date time.Time) (*entity.Booking, error) {
	if actor.Role != entity.RoleUser {
		return nil, ErrUserRole
	}
	svc, err := s.Services.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	if svc.ProviderID == actor.ID {
		return nil, ErrSelfBooking
	}
	b := &entity.Booking{
		UserID:     actor.ID,
		ProviderID: svc.ProviderID,
		ServiceID:  svc.ID,
		Date:       date,
		Status:     entity.BookingPending,
	}
	if err := s.Bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	s.notifyProvider(ctx, b, svc, actor)
	return b, nil
}

// ListForProvider returns the provider's bookings with user and service
// summaries populated. Non-providers fail with ErrProviderRole.
func (s *BookingService) ListForProvider(ctx context.Context, actor *entity.Account) ([]entity.BookingDetail, error) {
	if !actor.IsProvider() {
		return nil, ErrProviderRole
	}
	return s.Bookings.ListByProvider(ctx, actor.ID)
}

// ListForUser returns the caller's own bookings with provider and service
// summaries populated.
func (s *BookingService) ListForUser(ctx context.Context, actor *entity.Account) ([]entity.BookingDetail, error) {
	return s.Bookings.ListByUser(ctx, actor.ID)
}

// UpdateStatus transitions a booking to one of confirmed, completed or
// rejected. Only the account referenced as the booking's provider may
// transition it; any other target value fails with ErrInvalidStatus and
// the status stays unchanged. The write is a compare-and-swap on the
// booking's version, so concurrent updates surface as ErrBookingConflict
// instead of silently overwriting each other.
func (s *BookingService) UpdateStatus(ctx context.Context, actor *entity.Account, bookingID, target string) (*entity.Booking, error) {
	status, ok := entity.ParseTargetStatus(target)
	if !ok {
		return nil, ErrInvalidStatus
	}
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.ProviderID != actor.ID {
		return nil, ErrNotOwner
	}
	updated, err := s.Bookings.UpdateStatus(ctx, b.ID, status, b.Version)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrStale):
			return nil, ErrBookingConflict
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	s.notifyUser(ctx, updated)
	return updated, nil
}

// notifyProvider enqueues a "new booking" email for the service's owner.
// Notification failures are logged, never surfaced to the caller.
func (s *BookingService) notifyProvider(ctx context.Context, b *entity.Booking, svc *entity.Service, user *entity.Account) {
	if s.Notifier == nil {
		return
	}
	provider, err := s.Accounts.GetByID(ctx, b.ProviderID)
	if err != nil || provider == nil {
		return
	}
	job := mailer.NotificationJob{
		To:   provider.Email,
		Kind: mailer.KindBookingCreated,
		Data: map[string]string{
			"ProviderName": provider.Name,
			"UserName":     user.Name,
			"ServiceName":  svc.Name,
			"Date":         b.Date.Format(time.RFC1123),
		},
	}
	if err := s.Notifier.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("booking_id", b.ID).Warn("failed to publish booking notification")
	}
}

func (s *BookingService) notifyUser(ctx context.Context, b *entity.Booking) {
	if s.Notifier == nil {
		return
	}
	user, err := s.Accounts.GetByID(ctx, b.UserID)
	if err != nil || user == nil {
		return
	}
	serviceName := ""
	if svc, err := s.Services.GetByID(ctx, b.ServiceID); err == nil && svc != nil {
		serviceName = svc.Name
	}
	job := mailer.NotificationJob{
		To:   user.Email,
		Kind: mailer.KindBookingStatus,
		Data: map[string]string{
			"UserName":    user.Name,
			"ServiceName": serviceName,
			"Status":      string(b.Status),
		},
	}
	if err := s.Notifier.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("booking_id", b.ID).Warn("failed to publish status notification")
	}
}
