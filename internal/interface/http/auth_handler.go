package handlers

import (
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

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name            string   `json:"name" binding:"required"`
	Email           string   `json:"email" binding:"required,email"`
	Password        string   `json:"password" binding:"required,pwd"`
	Role            string   `json:"role" binding:"omitempty,oneof=user provider"`
	BusinessName    string   `json:"business_name"`
	ServicesOffered []string `json:"services_offered"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type googleLoginRequest struct {
	Token string `json:"token" binding:"required"`
}

// sessionResponse is the payload of every endpoint that issues a token.
type sessionResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Role            string   `json:"role"`
	BusinessName    string   `json:"business_name,omitempty"`
	ServicesOffered []string `json:"services_offered,omitempty"`
	Token           string   `json:"token"`
}

type profileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// providerResponse is the public provider record: no email enumeration
// beyond what the dashboards need, never a password hash.
type providerResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	BusinessName    string   `json:"business_name,omitempty"`
	ServicesOffered []string `json:"services_offered,omitempty"`
	AvatarURL       string   `json:"avatar_url,omitempty"`
}

func toSession(a *entity.Account, token string) sessionResponse {
	return sessionResponse{
		ID:              a.ID,
		Name:            a.Name,
		Email:           a.Email,
		Role:            string(a.Role),
		BusinessName:    a.BusinessName,
		ServicesOffered: a.ServicesOffered,
		Token:           token,
	}
}

func toProvider(a *entity.Account) providerResponse {
	return providerResponse{
		ID:              a.ID,
		Name:            a.Name,
		Email:           a.Email,
		BusinessName:    a.BusinessName,
		ServicesOffered: a.ServicesOffered,
		AvatarURL:       a.AvatarURL,
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	role, _ := entity.ParseRole(req.Role)
	a, token, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		Role:            role,
		BusinessName:    req.BusinessName,
		ServicesOffered: req.ServicesOffered,
	})
	if err != nil {
		if err == application.ErrEmailTaken {
			response.Fail(c, http.StatusConflict, "email already registered", nil)
			return
		}
		h.Logger.WithError(err).Error("register failed")
		response.Fail(c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success(c, http.StatusCreated, toSession(a, token), "registered")
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if err == application.ErrInvalidCredentials {
			response.Fail(c, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		h.Logger.WithError(err).Error("login failed")
		response.Fail(c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success(c, http.StatusOK, toSession(a, token), "login successful")
}

// GoogleLogin handles POST /auth/google-login. A verified but previously
// unseen email creates the account on the fly.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req googleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, token, err := h.Svc.GoogleLogin(c.Request.Context(), req.Token)
	if err != nil {
		if err == application.ErrFederatedAuth {
			response.Fail(c, http.StatusUnauthorized, "google authentication failed", nil)
			return
		}
		h.Logger.WithError(err).Error("google login failed")
		response.Fail(c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success(c, http.StatusOK, toSession(a, token), "login successful")
}

// GetProfile handles GET /auth/profile.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	acct := middleware.CurrentAccount(c)
	if acct == nil {
		response.Fail(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	response.Success(c, http.StatusOK, profileResponse{
		ID:        acct.ID,
		Name:      acct.Name,
		Email:     acct.Email,
		Role:      string(acct.Role),
		AvatarURL: acct.AvatarURL,
		CreatedAt: acct.CreatedAt,
	}, "profile")
}

// GetProviderProfile handles GET /auth/provider-profile/:id.
func (h *AuthHandler) GetProviderProfile(c *gin.Context) {
	a, err := h.Svc.GetProviderProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusNotFound, "provider not found", nil)
		return
	}
	response.Success(c, http.StatusOK, toProvider(a), "provider profile")
}

// ListProviders handles GET /providers. An empty marketplace is reported
// as 404, matching what the dashboard expects.
func (h *AuthHandler) ListProviders(c *gin.Context) {
	providers, err := h.Svc.ListProviders(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list providers failed")
		response.Fail(c, http.StatusInternalServerError, "server error", nil)
		return
	}
	if len(providers) == 0 {
		response.Fail(c, http.StatusNotFound, "no providers found", nil)
		return
	}
	out := make([]providerResponse, 0, len(providers))
	for i := range providers {
		out = append(out, toProvider(&providers[i]))
	}
	response.Success(c, http.StatusOK, out, "providers")
}

// UploadAvatar handles POST /auth/profile/avatar (multipart field
// "avatar").
func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	acct := middleware.CurrentAccount(c)
	if acct == nil {
		response.Fail(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "avatar file is required", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "could not read avatar file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), acct.ID, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		h.Logger.WithError(err).Error("avatar upload failed")
		response.Fail(c, http.StatusInternalServerError, "avatar upload failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatar_url": url}, "avatar updated")
}
