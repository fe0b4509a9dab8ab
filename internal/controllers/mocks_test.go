package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"codefolio/internal/models"
	"codefolio/internal/services"

	"github.com/go-chi/chi/v5"
)

// --- local mocks (scoped to controller tests) ---

type mockContestService struct {
	records []models.ContestRecord
	classes []models.ClassFilter
	cleared int
	reset   int
	health  services.AggregationHealth
}

func (m *mockContestService) ListContests(_ context.Context, class models.ClassFilter) []models.ContestRecord {
	m.classes = append(m.classes, class)
	return m.records
}

func (m *mockContestService) ClearCache() { m.cleared++ }

func (m *mockContestService) ResetCache() { m.reset++ }

func (m *mockContestService) Health() services.AggregationHealth { return m.health }

type linkCall struct {
	userID, platform, username string
}

type mockProfileService struct {
	result     *services.RefreshResult
	stats      *services.PlatformStats
	err        error
	refreshErr error

	created []services.ProfileInput
	updated []services.ProfileInput
	linked  []linkCall
	deleted []string
}

func (m *mockProfileService) CreateProfile(_ context.Context, userID string, input services.ProfileInput) (*services.RefreshResult, error) {
	m.created = append(m.created, input)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockProfileService) GetProfile(_ context.Context, _ string) (*models.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.result.Profile, nil
}

func (m *mockProfileService) RefreshProfile(_ context.Context, _ string) (*services.RefreshResult, error) {
	if m.refreshErr != nil {
		return nil, m.refreshErr
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockProfileService) UpdateProfile(_ context.Context, _ string, input services.ProfileInput) (*services.RefreshResult, error) {
	m.updated = append(m.updated, input)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockProfileService) LinkPlatform(_ context.Context, userID string, platform string, username string) (*services.RefreshResult, error) {
	m.linked = append(m.linked, linkCall{userID, platform, username})
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockProfileService) GetPlatformStats(_ context.Context, _ string, _ string) (*services.PlatformStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.stats, nil
}

func (m *mockProfileService) DeleteProfile(_ context.Context, userID string) error {
	m.deleted = append(m.deleted, userID)
	return m.err
}

func newTestRouter(cc *ContestController, pc *ProfileController) http.Handler {
	r := chi.NewRouter()
	if cc != nil {
		r.Get("/contests/{class}", cc.ListContests)
		r.Post("/contests/cache/clear", cc.ClearCache)
	}
	if pc != nil {
		r.Post("/profiles", pc.CreateProfile)
		r.Get("/profiles/{userId}", pc.GetProfile)
		r.Put("/profiles/{userId}", pc.UpdateProfile)
		r.Delete("/profiles/{userId}", pc.DeleteProfile)
		r.Put("/profiles/{userId}/{platform}", pc.LinkPlatform)
		r.Get("/profiles/{userId}/{platform}/stats", pc.GetPlatformStats)
	}
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
