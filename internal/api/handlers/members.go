package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/kuriftu/essence/internal/config"
	"github.com/kuriftu/essence/internal/httputil"
	"github.com/kuriftu/essence/internal/ledger"
	"github.com/kuriftu/essence/internal/models"
)

type earnRequest struct {
	ActionID string `json:"action_id" validate:"required,max=64"`
}

type redeemRequest struct {
	RewardID string `json:"reward_id" validate:"required,max=64"`
}

// GetMemberHandler returns a handler for GET /api/members/{memberID}.
func GetMemberHandler(svc *ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sum, err := svc.Account(urlParam(r, "memberID"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		httputil.JSON(w, http.StatusOK, sum)
	}
}

// LedgerHandler returns a handler for GET /api/members/{memberID}/ledger.
func LedgerHandler(svc *ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page, pageSize := parsePagination(q.Get("page"), q.Get("page_size"))

		entries, total, err := svc.Ledger(urlParam(r, "memberID"), models.Pagination{Page: page, PageSize: pageSize})
		if err != nil {
			writeError(w, r, err)
			return
		}
		httputil.JSONList(w, entries, page, pageSize, total)
	}
}

// PassportHandler returns a handler for GET /api/members/{memberID}/passport.
func PassportHandler(svc *ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stamps, err := svc.Passport(urlParam(r, "memberID"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		httputil.JSON(w, http.StatusOK, stamps)
	}
}

// EarnHandler returns a handler for POST /api/members/{memberID}/earn.
func EarnHandler(svc *ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req earnRequest
		if err := httputil.Decode(r, &req); err != nil {
			httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidRequest, err.Error())
			return
		}

		outcome, err := svc.Earn(urlParam(r, "memberID"), req.ActionID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httputil.JSON(w, http.StatusOK, outcome)
	}
}

// RedeemHandler returns a handler for POST /api/members/{memberID}/redeem.
func RedeemHandler(svc *ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req redeemRequest
		if err := httputil.Decode(r, &req); err != nil {
			httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidRequest, err.Error())
			return
		}

		outcome, err := svc.Redeem(urlParam(r, "memberID"), req.RewardID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httputil.JSON(w, http.StatusOK, outcome)
	}
}

func urlParam(r *http.Request, key string) string {
	return strings.TrimSpace(chi.URLParam(r, key))
}

// parsePagination extracts page and page_size from query params with defaults.
func parsePagination(pageStr, pageSizeStr string) (int, int) {
	page := 1
	if v, err := strconv.Atoi(pageStr); err == nil && v > 0 {
		page = v
	}

	pageSize := config.DefaultPageSize
	if v, err := strconv.Atoi(pageSizeStr); err == nil && v > 0 {
		pageSize = min(v, config.MaxPageSize)
	}

	return page, pageSize
}
