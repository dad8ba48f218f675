package router

import (
	"github.com/fixlocal/fixlocal-api/internal/application"
	"github.com/fixlocal/fixlocal-api/internal/container"
	pginfra "github.com/fixlocal/fixlocal-api/internal/infrastructure/postgres"
	handlers "github.com/fixlocal/fixlocal-api/internal/interface/http"
	"github.com/fixlocal/fixlocal-api/internal/router/modules"
)

// InitModules wires repositories, application services and handlers from
// the container singletons and registers every feature module. Called once
// during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	accounts := pginfra.NewAccountRepository(pool)
	services := pginfra.NewServiceRepository(pool)
	bookings := pginfra.NewBookingRepository(pool)

	authSvc := application.NewAuthService(
		accounts,
		container.GetJWT(),
		container.GetGoogle(),
		container.GetGCS(),
		cfg.GCSBucket,
		logger,
	)
	catalogSvc := application.NewCatalogService(
		services,
		container.GetRedis(),
		container.GetES(),
		cfg.ESServicesIndex,
		logger,
	)
	bookingSvc := application.NewBookingService(
		bookings,
		services,
		accounts,
		container.GetRabbitPub(),
		logger,
	)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), accounts))
	r.Add(modules.NewCatalogModule(handlers.NewCatalogHandler(catalogSvc, logger), accounts))
	r.Add(modules.NewBookingModule(handlers.NewBookingHandler(bookingSvc, logger), accounts))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
