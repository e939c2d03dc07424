package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/kuriftu/essence/internal/config"
	"github.com/kuriftu/essence/internal/httputil"
	"github.com/kuriftu/essence/internal/loyalty"
)

// errorMapping pairs a sentinel with the HTTP status and API code it maps to.
type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{loyalty.ErrInsufficientBalance, http.StatusConflict, config.ErrorInsufficientBalance},
	{config.ErrInvalidMemberID, http.StatusBadRequest, config.ErrorInvalidRequest},
	{config.ErrMemberNotFound, http.StatusNotFound, config.ErrorMemberNotFound},
	{config.ErrUnknownAction, http.StatusNotFound, config.ErrorUnknownAction},
	{config.ErrUnknownReward, http.StatusNotFound, config.ErrorUnknownReward},
	{config.ErrUnknownResort, http.StatusNotFound, config.ErrorUnknownResort},
	{config.ErrUnknownExperience, http.StatusBadRequest, config.ErrorUnknownExperience},
	{config.ErrRewardUnavailable, http.StatusConflict, config.ErrorRewardUnavailable},
	{config.ErrActionAlreadyComplete, http.StatusConflict, config.ErrorActionCompleted},
	{config.ErrCheckInNotFound, http.StatusNotFound, config.ErrorCheckInNotFound},
	{config.ErrCheckInNotActive, http.StatusConflict, config.ErrorCheckInNotActive},
	{config.ErrCheckInClosed, http.StatusConflict, config.ErrorCheckInClosed},
	{config.ErrTooManyCheckIns, http.StatusTooManyRequests, config.ErrorTooManyCheckIns},
	{loyalty.ErrInvalidTierTable, http.StatusBadRequest, config.ErrorInvalidTiers},
	{loyalty.ErrEmptyTierTable, http.StatusBadRequest, config.ErrorInvalidTiers},
	{loyalty.ErrNegativeTotal, http.StatusBadRequest, config.ErrorInvalidRequest},
	{loyalty.ErrPointsOverflow, http.StatusBadRequest, config.ErrorInvalidRequest},
}

// writeError maps domain errors onto the API error envelope. Anything
// unrecognised is logged and reported as a database failure.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			httputil.Error(w, m.status, m.code, err.Error())
			return
		}
	}

	slog.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	httputil.Error(w, http.StatusInternalServerError, config.ErrorDatabase, "Internal error")
}
