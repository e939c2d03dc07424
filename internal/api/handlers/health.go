package handlers

import (
	"log/slog"
	"net/http"

	"github.com/kuriftu/essence/internal/checkin"
	"github.com/kuriftu/essence/internal/httputil"
	"github.com/kuriftu/essence/internal/loyalty"
	"github.com/kuriftu/essence/internal/store"
)

// HealthHandler returns a handler for GET /api/health.
// No IP check, no rate limit.
func HealthHandler(db *store.DB, calc *loyalty.Calculator, checkins *checkin.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		dbStatus := "ok"
		if err := db.Ping(); err != nil {
			slog.Error("health check database ping failed", "error", err)
			status = http.StatusServiceUnavailable
			dbStatus = "unavailable"
		}

		httputil.JSON(w, status, map[string]any{
			"status":          http.StatusText(status),
			"database":        dbStatus,
			"tiers":           len(calc.Tiers()),
			"active_checkins": checkins.ActiveCount(),
		})
	}
}
