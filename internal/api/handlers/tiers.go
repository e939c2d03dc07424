package handlers

import (
	"net/http"
	"strconv"

	"github.com/kuriftu/essence/internal/config"
	"github.com/kuriftu/essence/internal/httputil"
	"github.com/kuriftu/essence/internal/loyalty"
)

// ListTiersHandler returns a handler for GET /api/tiers.
func ListTiersHandler(calc *loyalty.Calculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, calc.Tiers())
	}
}

// ProgressHandler returns a handler for GET /api/progress?points=N.
// It evaluates an arbitrary total without touching any account.
func ProgressHandler(calc *loyalty.Calculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("points")
		if raw == "" {
			httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidRequest, "points query parameter is required")
			return
		}

		total, err := strconv.Atoi(raw)
		if err != nil {
			httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidRequest, "points must be an integer")
			return
		}

		p, err := calc.Progress(total)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httputil.JSON(w, http.StatusOK, p)
	}
}
