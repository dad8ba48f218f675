package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fixlocal/fixlocal-api/internal/container"
	repo "github.com/fixlocal/fixlocal-api/internal/domain/repository"
	handlers "github.com/fixlocal/fixlocal-api/internal/interface/http"
	"github.com/fixlocal/fixlocal-api/internal/interface/middleware"
)

// AuthModule wires registration, login, federated login and profile
// routes.
// Public: POST /api/auth/register, /api/auth/login, /api/auth/google-login
// Protected: GET /api/auth/profile, GET /api/auth/provider-profile/:id,
// POST /api/auth/profile/avatar, GET /api/providers
type AuthModule struct {
	Handler  *handlers.AuthHandler
	Accounts repo.AccountRepository
}

func NewAuthModule(h *handlers.AuthHandler, accounts repo.AccountRepository) *AuthModule {
	return &AuthModule{Handler: h, Accounts: accounts}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	// Credential-guessing endpoints get tight per-IP limits.
	registerLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/google-login", loginLimiter, m.Handler.GoogleLogin)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Accounts, container.GetJWT()))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByAccount(), nil))
	{
		auth.GET("/auth/profile", m.Handler.GetProfile)
		auth.GET("/auth/provider-profile/:id", m.Handler.GetProviderProfile)
		auth.POST("/auth/profile/avatar", m.Handler.UploadAvatar)
		auth.GET("/providers", m.Handler.ListProviders)
	}
}
