package controllers

import (
	"errors"
	"net/http"

	"codefolio/internal/models"
	"codefolio/internal/providers"
	"codefolio/internal/services"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
)

type ProfileController struct {
	logger  providers.Logger
	service services.ProfileServiceInterface
}

type createProfileRequest struct {
	UserID    string                     `json:"userId"`
	Email     string                     `json:"email"`
	Name      string                     `json:"name"`
	Usernames map[models.Platform]string `json:"usernames"`
}

type profileResponse struct {
	Profile  *models.Profile            `json:"profile"`
	Failures map[models.Platform]string `json:"failures,omitempty"`
}

func NewProfileController(logger providers.Logger, service services.ProfileServiceInterface) *ProfileController {
	return &ProfileController{
		logger:  logger,
		service: service,
	}
}

func newProfileResponse(res *services.RefreshResult) profileResponse {
	resp := profileResponse{Profile: res.Profile}
	if len(res.Failures) > 0 {
		resp.Failures = make(map[models.Platform]string, len(res.Failures))
		for platform, err := range res.Failures {
			resp.Failures[platform] = err.Error()
		}
	}
	return resp
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "Bad Request")
		return false
	}
	return true
}

// GetProfile refreshes every linked platform. An unknown user is created on
// the fly when both email and name are passed as query parameters.
func (pc *ProfileController) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	res, err := pc.service.RefreshProfile(r.Context(), userID)
	if errors.Is(err, services.ErrProfileNotFound) {
		q := r.URL.Query()
		email, name := q.Get("email"), q.Get("name")
		if email != "" && name != "" {
			res, err = pc.service.CreateProfile(r.Context(), userID, services.ProfileInput{Email: email, Name: name})
			if err == nil {
				respondJSON(w, http.StatusCreated, newProfileResponse(res))
				return
			}
		}
	}
	if err != nil {
		respondServiceError(w, pc.logger, providers.TypeGet, err)
		return
	}
	respondJSON(w, http.StatusOK, newProfileResponse(res))
}

func (pc *ProfileController) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := pc.service.CreateProfile(r.Context(), req.UserID, services.ProfileInput{
		Email:     req.Email,
		Name:      req.Name,
		Usernames: req.Usernames,
	})
	if err != nil {
		respondServiceError(w, pc.logger, providers.TypePost, err)
		return
	}
	respondJSON(w, http.StatusCreated, newProfileResponse(res))
}

func (pc *ProfileController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var input services.ProfileInput
	if !decodeBody(w, r, &input) {
		return
	}
	res, err := pc.service.UpdateProfile(r.Context(), chi.URLParam(r, "userId"), input)
	if err != nil {
		respondServiceError(w, pc.logger, providers.TypePost, err)
		return
	}
	respondJSON(w, http.StatusOK, newProfileResponse(res))
}

func (pc *ProfileController) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := pc.service.DeleteProfile(r.Context(), chi.URLParam(r, "userId")); err != nil {
		respondServiceError(w, pc.logger, providers.TypePost, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (pc *ProfileController) LinkPlatform(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		respondError(w, http.StatusBadRequest, "username is required")
		return
	}
	res, err := pc.service.LinkPlatform(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "platform"), username)
	if err != nil {
		respondServiceError(w, pc.logger, providers.TypePost, err)
		return
	}
	respondJSON(w, http.StatusOK, newProfileResponse(res))
}

func (pc *ProfileController) GetPlatformStats(w http.ResponseWriter, r *http.Request) {
	stats, err := pc.service.GetPlatformStats(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "platform"))
	if err != nil {
		respondServiceError(w, pc.logger, providers.TypeGet, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
