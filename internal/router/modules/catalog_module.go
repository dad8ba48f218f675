package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fixlocal/fixlocal-api/internal/container"
	repo "github.com/fixlocal/fixlocal-api/internal/domain/repository"
	handlers "github.com/fixlocal/fixlocal-api/internal/interface/http"
	"github.com/fixlocal/fixlocal-api/internal/interface/middleware"
)

// CatalogModule wires the service catalog routes.
// Public: GET /api/services, GET /api/services/search
// Protected: POST /api/services, PUT/DELETE /api/services/:id
type CatalogModule struct {
	Handler  *handlers.CatalogHandler
	Accounts repo.AccountRepository
}

func NewCatalogModule(h *handlers.CatalogHandler, accounts repo.AccountRepository) *CatalogModule {
	return &CatalogModule{Handler: h, Accounts: accounts}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	listLimiter := middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/services", listLimiter, m.Handler.List)
	rg.GET("/services/search", listLimiter, m.Handler.Search)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Accounts, container.GetJWT()))
	auth.Use(middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByAccount(), nil))
	{
		auth.POST("/services", m.Handler.Create)
		auth.PUT("/services/:id", m.Handler.Update)
		auth.DELETE("/services/:id", m.Handler.Delete)
	}
}
