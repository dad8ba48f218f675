package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fixlocal/fixlocal-api/internal/application"
	"github.com/fixlocal/fixlocal-api/internal/domain/entity"
	"github.com/fixlocal/fixlocal-api/internal/interface/middleware"
	"github.com/fixlocal/fixlocal-api/pkg/response"
	"github.com/fixlocal/fixlocal-api/pkg/validation"
)

type CatalogHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewCatalogHandler(svc *application.CatalogService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{Svc: svc, Logger: logger}
}

type createServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Description string  `json:"description" binding:"required"`
	Location    string  `json:"location" binding:"required"`
}

type updateServiceRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price" binding:"omitempty,gt=0"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
}

type serviceResponse struct {
	ID           string    `json:"id"`
	ProviderID   string    `json:"provider_id"`
	ProviderName string    `json:"provider_name,omitempty"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Price        float64   `json:"price"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	CreatedAt    time.Time `json:"created_at"`
}

func toService(s *entity.Service) serviceResponse {
	return serviceResponse{
		ID:          s.ID,
		ProviderID:  s.ProviderID,
		Name:        s.Name,
		Category:    s.Category,
		Price:       s.Price,
		Description: s.Description,
		Location:    s.Location,
		CreatedAt:   s.CreatedAt,
	}
}

func (h *CatalogHandler) failFor(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, application.ErrProviderRole):
		response.Fail(c, http.StatusForbidden, "only providers can manage services", nil)
	case errors.Is(err, application.ErrNotOwner):
		response.Fail(c, http.StatusForbidden, "you can only manage your own services", nil)
	case errors.Is(err, application.ErrServiceNotFound):
		response.Fail(c, http.StatusNotFound, "service not found", nil)
	default:
		h.Logger.WithError(err).Error(action + " failed")
		response.Fail(c, http.StatusInternalServerError, "server error", nil)
	}
}

// Create handles POST /services (providers only).
func (h *CatalogHandler) Create(c *gin.Context) {
	var req createServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	svc, err := h.Svc.Create(c.Request.Context(), middleware.CurrentAccount(c), application.ServiceInput{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Description: req.Description,
		Location:    req.Location,
	})
	if err != nil {
		h.failFor(c, err, "service create")
		return
	}
	response.Success(c, http.StatusCreated, toService(svc), "service created")
}

// List handles GET /services (public).
func (h *CatalogHandler) List(c *gin.Context) {
	listings, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("service list failed")
		response.Fail(c, http.StatusInternalServerError, "server error", nil)
		return
	}
	out := make([]serviceResponse, 0, len(listings))
	for i := range listings {
		r := toService(&listings[i].Service)
		r.ProviderName = listings[i].ProviderName
		out = append(out, r)
	}
	response.Success(c, http.StatusOK, out, "services")
}

// Search handles GET /services/search?q=&size= (public).
func (h *CatalogHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Fail(c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("service search failed")
		response.Fail(c, http.StatusInternalServerError, "search unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results")
}

// Update handles PUT /services/:id (owning provider only).
func (h *CatalogHandler) Update(c *gin.Context) {
	var req updateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	svc, err := h.Svc.Update(c.Request.Context(), middleware.CurrentAccount(c), c.Param("id"), application.ServiceInput{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Description: req.Description,
		Location:    req.Location,
	})
	if err != nil {
		h.failFor(c, err, "service update")
		return
	}
	response.Success(c, http.StatusOK, toService(svc), "service updated")
}

// Delete handles DELETE /services/:id (owning provider only).
func (h *CatalogHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.CurrentAccount(c), c.Param("id")); err != nil {
		h.failFor(c, err, "service delete")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, "service deleted")
}
