package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fixlocal/fixlocal-api/internal/container"
	repo "github.com/fixlocal/fixlocal-api/internal/domain/repository"
	handlers "github.com/fixlocal/fixlocal-api/internal/interface/http"
	"github.com/fixlocal/fixlocal-api/internal/interface/middleware"
)

// BookingModule wires the booking lifecycle routes; every route requires
// authentication.
type BookingModule struct {
	Handler  *handlers.BookingHandler
	Accounts repo.AccountRepository
}

func NewBookingModule(h *handlers.BookingHandler, accounts repo.AccountRepository) *BookingModule {
	return &BookingModule{Handler: h, Accounts: accounts}
}

func (m *BookingModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Accounts, container.GetJWT()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByAccount(), nil))
	{
		auth.POST("/bookings", m.Handler.Create)
		auth.GET("/bookings/provider", m.Handler.ListForProvider)
		auth.GET("/bookings/user", m.Handler.ListForUser)
		auth.PUT("/bookings/:id/status", m.Handler.UpdateStatus)
	}
}
