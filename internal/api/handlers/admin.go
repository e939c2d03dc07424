package handlers

import (
	"log/slog"
	"net/http"

	"github.com/kuriftu/essence/internal/config"
	"github.com/kuriftu/essence/internal/httputil"
	"github.com/kuriftu/essence/internal/ledger"
	"github.com/kuriftu/essence/internal/loyalty"
)

type updateTiersRequest struct {
	Tiers []loyalty.Tier `json:"tiers" validate:"required,min=2,dive"`
}

type adjustRequest struct {
	Delta int    `json:"delta" validate:"required,min=-1000000,max=1000000"`
	Note  string `json:"note" validate:"required,max=200"`
}

// UpdateTiersHandler returns a handler for PUT /api/admin/tiers.
// The new table is persisted to the tiers file and hot-reloaded.
func UpdateTiersHandler(cfg *config.Config, calc *loyalty.Calculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateTiersRequest
		if err := httputil.Decode(r, &req); err != nil {
			httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidRequest, err.Error())
			return
		}

		if err := loyalty.ValidateTiers(req.Tiers); err != nil {
			httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidTiers, err.Error())
			return
		}

		if err := loyalty.SaveTiers(cfg.TiersFile, req.Tiers); err != nil {
			slog.Error("write tiers file failed", "error", err)
			httputil.Error(w, http.StatusInternalServerError, config.ErrorInvalidConfig, "Failed to write tiers file")
			return
		}

		if err := calc.Reload(req.Tiers); err != nil {
			writeError(w, r, err)
			return
		}

		slog.Info("tiers updated via API", "tierCount", len(req.Tiers))
		httputil.JSON(w, http.StatusOK, calc.Tiers())
	}
}

// AdjustMemberHandler returns a handler for POST /api/admin/members/{memberID}/adjust.
func AdjustMemberHandler(svc *ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adjustRequest
		if err := httputil.Decode(r, &req); err != nil {
			httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidRequest, err.Error())
			return
		}

		outcome, err := svc.Adjust(urlParam(r, "memberID"), req.Delta, req.Note)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httputil.JSON(w, http.StatusOK, outcome)
	}
}
