package handlers

import (
	"net/http"

	"github.com/kuriftu/essence/internal/catalog"
	"github.com/kuriftu/essence/internal/httputil"
)

// CatalogHandler returns a handler that serves one static catalog listing.
func CatalogHandler[T any](list func() []T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, list())
	}
}

// ResortHandler returns a handler for GET /api/catalog/resorts/{resortID}.
func ResortHandler(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resort, err := cat.Resort(urlParam(r, "resortID"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		httputil.JSON(w, http.StatusOK, resort)
	}
}

// ExperiencesHandler returns a handler for GET /api/catalog/experiences.
func ExperiencesHandler() http.HandlerFunc {
	return CatalogHandler(allExperienceDisplays)
}
