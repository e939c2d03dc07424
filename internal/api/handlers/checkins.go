package handlers

import (
	"net/http"

	"github.com/kuriftu/essence/internal/catalog"
	"github.com/kuriftu/essence/internal/checkin"
	"github.com/kuriftu/essence/internal/config"
	"github.com/kuriftu/essence/internal/httputil"
)

type createCheckInRequest struct {
	ResortID   string                 `json:"resort_id" validate:"required,max=64"`
	Experience catalog.ExperienceKind `json:"experience" validate:"required"`
}

// CreateCheckInHandler returns a handler for POST /api/members/{memberID}/checkins.
func CreateCheckInHandler(m *checkin.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCheckInRequest
		if err := httputil.Decode(r, &req); err != nil {
			httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidRequest, err.Error())
			return
		}

		c, err := m.Create(urlParam(r, "memberID"), req.ResortID, req.Experience)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httputil.JSON(w, http.StatusCreated, c)
	}
}

// GetCheckInHandler returns a handler for GET /api/checkins/{id}.
func GetCheckInHandler(m *checkin.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := m.Get(urlParam(r, "id"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		httputil.JSON(w, http.StatusOK, c)
	}
}

// ScanCheckInHandler returns a handler for POST /api/checkins/{id}/scan.
func ScanCheckInHandler(m *checkin.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := urlParam(r, "id")
		if err := m.Scan(id); err != nil {
			writeError(w, r, err)
			return
		}
		httputil.JSON(w, http.StatusAccepted, map[string]string{
			"id":     id,
			"status": "scanned",
		})
	}
}

// CancelCheckInHandler returns a handler for DELETE /api/checkins/{id}.
func CancelCheckInHandler(m *checkin.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := urlParam(r, "id")
		if err := m.Cancel(id); err != nil {
			writeError(w, r, err)
			return
		}
		httputil.JSON(w, http.StatusOK, map[string]string{
			"id":     id,
			"status": "cancelled",
		})
	}
}
