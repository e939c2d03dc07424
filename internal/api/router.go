package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/kuriftu/essence/internal/api/handlers"
	"github.com/kuriftu/essence/internal/api/middleware"
	"github.com/kuriftu/essence/internal/catalog"
	"github.com/kuriftu/essence/internal/checkin"
	"github.com/kuriftu/essence/internal/config"
	"github.com/kuriftu/essence/internal/events"
	"github.com/kuriftu/essence/internal/ledger"
	"github.com/kuriftu/essence/internal/loyalty"
	"github.com/kuriftu/essence/internal/store"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies holds all service references needed by the API layer.
type Dependencies struct {
	DB         *store.DB
	Calculator *loyalty.Calculator
	Catalog    *catalog.Catalog
	Ledger     *ledger.Service
	CheckIns   *checkin.Manager
	Events     *events.Hub
	Allowlist  *middleware.IPAllowlist
	Limiter    *middleware.RateLimiter
	Config     *config.Config
}

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(deps *Dependencies) chi.Router {
	r := chi.NewRouter()

	// Global middleware (applied to ALL routes).
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogging)
	r.Use(middleware.CORS)

	slog.Info("router initialized",
		"middleware", []string{"requestID", "realIP", "recoverer", "requestLogging", "cors"},
	)

	// Exempt routes: no rate limit, no timeout.
	r.Get("/api/health", handlers.HealthHandler(deps.DB, deps.Calculator, deps.CheckIns))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/api/events", handlers.EventsHandler(deps.Events, deps.Ledger))

	r.Route("/api", func(r chi.Router) {
		r.Use(deps.Limiter.Middleware)
		r.Use(chimw.Timeout(config.APITimeout))

		r.Get("/tiers", handlers.ListTiersHandler(deps.Calculator))
		r.Get("/progress", handlers.ProgressHandler(deps.Calculator))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/resorts", handlers.CatalogHandler(deps.Catalog.Resorts))
			r.Get("/resorts/{resortID}", handlers.ResortHandler(deps.Catalog))
			r.Get("/experiences", handlers.ExperiencesHandler())
			r.Get("/actions", handlers.CatalogHandler(deps.Catalog.Actions))
			r.Get("/rewards", handlers.CatalogHandler(deps.Catalog.Rewards))
			r.Get("/events", handlers.CatalogHandler(deps.Catalog.Events))
			r.Get("/itineraries", handlers.CatalogHandler(deps.Catalog.Itineraries))
		})

		r.Route("/members/{memberID}", func(r chi.Router) {
			r.Get("/", handlers.GetMemberHandler(deps.Ledger))
			r.Get("/ledger", handlers.LedgerHandler(deps.Ledger))
			r.Get("/passport", handlers.PassportHandler(deps.Ledger))
			r.Post("/earn", handlers.EarnHandler(deps.Ledger))
			r.Post("/redeem", handlers.RedeemHandler(deps.Ledger))
			r.Post("/checkins", handlers.CreateCheckInHandler(deps.CheckIns))
		})

		r.Route("/checkins/{id}", func(r chi.Router) {
			r.Get("/", handlers.GetCheckInHandler(deps.CheckIns))
			r.Post("/scan", handlers.ScanCheckInHandler(deps.CheckIns))
			r.Delete("/", handlers.CancelCheckInHandler(deps.CheckIns))
		})

		// Admin, IP-restricted.
		r.Route("/admin", func(r chi.Router) {
			r.Use(deps.Allowlist.Middleware)

			r.Put("/tiers", handlers.UpdateTiersHandler(deps.Config, deps.Calculator))
			r.Post("/members/{memberID}/adjust", handlers.AdjustMemberHandler(deps.Ledger))
		})
	})

	return r
}
