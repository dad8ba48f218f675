package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fixlocal/fixlocal-api/internal/application"
	"github.com/fixlocal/fixlocal-api/internal/domain/entity"
	"github.com/fixlocal/fixlocal-api/internal/interface/middleware"
	"github.com/fixlocal/fixlocal-api/pkg/response"
	"github.com/fixlocal/fixlocal-api/pkg/validation"
)

type BookingHandler struct {
	Svc    *application.BookingService
	Logger *logrus.Logger
}

func NewBookingHandler(svc *application.BookingService, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

type createBookingRequest struct {
	ServiceID string    `json:"service_id" binding:"required,uuid"`
	Date      time.Time `json:"date" binding:"required"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type bookingResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ProviderID string    `json:"provider_id"`
	ServiceID  string    `json:"service_id"`
	Date       time.Time `json:"date"`
	Status     string    `json:"status"`
	Version    int64     `json:"version"`
	CreatedAt  time.Time `json:"created_at"`
}

type bookingDetailResponse struct {
	bookingResponse
	User     accountSummary `json:"user"`
	Provider accountSummary `json:"provider"`
	Service  serviceSummary `json:"service"`
}

type accountSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type serviceSummary struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Location string  `json:"location"`
}

func toBooking(b *entity.Booking) bookingResponse {
	return bookingResponse{
		ID:         b.ID,
		UserID:     b.UserID,
		ProviderID: b.ProviderID,
		ServiceID:  b.ServiceID,
		Date:       b.Date,
		Status:     string(b.Status),
		Version:    b.Version,
		CreatedAt:  b.CreatedAt,
	}
}

func toBookingDetail(d *entity.BookingDetail) bookingDetailResponse {
	return bookingDetailResponse{
		bookingResponse: toBooking(&d.Booking),
		User:            accountSummary{Name: d.UserName, Email: d.UserEmail},
		Provider:        accountSummary{Name: d.ProviderName, Email: d.ProviderEmail},
		Service: serviceSummary{
			Name:     d.ServiceName,
			Category: d.ServiceCategory,
			Price:    d.ServicePrice,
			Location: d.ServiceLocation,
		},
	}
}

// Create handles POST /bookings (role user only; provider derived from the
// service record).
func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	b, err := h.Svc.Create(c.Request.Context(), middleware.CurrentAccount(c), req.ServiceID, req.Date)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserRole):
			response.Fail(c, http.StatusBadRequest, "only users can book services", nil)
		case errors.Is(err, application.ErrSelfBooking):
			response.Fail(c, http.StatusBadRequest, "you cannot book your own service", nil)
		case errors.Is(err, application.ErrServiceNotFound):
			response.Fail(c, http.StatusNotFound, "service not found", nil)
		default:
			h.Logger.WithError(err).Error("booking create failed")
			response.Fail(c, http.StatusInternalServerError, "server error", nil)
		}
		return
	}
	response.Success(c, http.StatusCreated, toBooking(b), "booking created")
}

// ListForProvider handles GET /bookings/provider.
func (h *BookingHandler) ListForProvider(c *gin.Context) {
	details, err := h.Svc.ListForProvider(c.Request.Context(), middleware.CurrentAccount(c))
	if err != nil {
		if errors.Is(err, application.ErrProviderRole) {
			response.Fail(c, http.StatusForbidden, "only providers can access bookings", nil)
			return
		}
		h.Logger.WithError(err).Error("provider bookings failed")
		response.Fail(c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success(c, http.StatusOK, detailResponses(details), "bookings")
}

// ListForUser handles GET /bookings/user.
func (h *BookingHandler) ListForUser(c *gin.Context) {
	details, err := h.Svc.ListForUser(c.Request.Context(), middleware.CurrentAccount(c))
	if err != nil {
		h.Logger.WithError(err).Error("user bookings failed")
		response.Fail(c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success(c, http.StatusOK, detailResponses(details), "bookings")
}

// UpdateStatus handles PUT /bookings/:id/status (owning provider only).
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	b, err := h.Svc.UpdateStatus(c.Request.Context(), middleware.CurrentAccount(c), c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidStatus):
			response.Fail(c, http.StatusBadRequest, "invalid status update", nil)
		case errors.Is(err, application.ErrNotOwner):
			response.Fail(c, http.StatusForbidden, "you can only update your own bookings", nil)
		case errors.Is(err, application.ErrBookingNotFound):
			response.Fail(c, http.StatusNotFound, "booking not found", nil)
		case errors.Is(err, application.ErrBookingConflict):
			response.Fail(c, http.StatusConflict, "booking was updated concurrently, retry", nil)
		default:
			h.Logger.WithError(err).Error("booking status update failed")
			response.Fail(c, http.StatusInternalServerError, "server error", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, toBooking(b), fmt.Sprintf("booking status updated to %s", b.Status))
}

func detailResponses(details []entity.BookingDetail) []bookingDetailResponse {
	out := make([]bookingDetailResponse, 0, len(details))
	for i := range details {
		out = append(out, toBookingDetail(&details[i]))
	}
	return out
}
