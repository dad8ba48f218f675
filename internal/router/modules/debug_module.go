package modules

import (
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fixlocal/fixlocal-api/internal/container"
	"github.com/fixlocal/fixlocal-api/internal/interface/middleware"
)

// DebugModule exposes a health probe and expvar metrics.
type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
