package controllers

import (
	"net/http"

	"codefolio/internal/models"
	"codefolio/internal/providers"
	"codefolio/internal/services"

	"github.com/go-chi/chi/v5"
)

type ContestController struct {
	logger  providers.Logger
	service services.ContestServiceInterface
}

func NewContestController(logger providers.Logger, service services.ContestServiceInterface) *ContestController {
	return &ContestController{
		logger:  logger,
		service: service,
	}
}

// ListContests always answers 200 for a known class; sources that fail
// simply contribute nothing.
func (cc *ContestController) ListContests(w http.ResponseWriter, r *http.Request) {
	class, err := models.ParseClassFilter(chi.URLParam(r, "class"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	records := cc.service.ListContests(r.Context(), class)
	respondJSON(w, http.StatusOK, records)
}

// ClearCache drops the contest listings. With scope=all every cached result
// goes, profile stats included.
func (cc *ContestController) ClearCache(w http.ResponseWriter, r *http.Request) {
	scope := r.URL.Query().Get("scope")
	switch scope {
	case "", "contests":
		cc.service.ClearCache()
	case "all":
		cc.service.ResetCache()
	default:
		respondError(w, http.StatusBadRequest, "unknown cache scope "+scope)
		return
	}
	cc.logger.Infof(providers.TypePost, "cache cleared (scope %q) by %s", scope, r.RemoteAddr)
	w.WriteHeader(http.StatusNoContent)
}
