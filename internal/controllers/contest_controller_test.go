package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"codefolio/internal/models"
	"codefolio/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListContests_ReturnsRecords(t *testing.T) {
	svc := &mockContestService{records: []models.ContestRecord{
		{ID: 5, Key: "codeforces:5", Name: "Round 5", Platform: "codeforces", StartTime: 1000, Duration: 7200000, Status: models.StatusActive},
	}}
	h := newTestRouter(NewContestController(&testutil.MockLogger{}, svc), nil)

	rr := do(t, h, http.MethodGet, "/contests/ACTIVE", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, []models.ClassFilter{models.ClassActive}, svc.classes)

	var got []models.ContestRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "codeforces:5", got[0].Key)
	assert.Equal(t, models.StatusActive, got[0].Status)
}

func TestListContests_EmptyIsArray(t *testing.T) {
	svc := &mockContestService{records: []models.ContestRecord{}}
	h := newTestRouter(NewContestController(&testutil.MockLogger{}, svc), nil)

	rr := do(t, h, http.MethodGet, "/contests/all", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestListContests_UnknownClass(t *testing.T) {
	svc := &mockContestService{}
	h := newTestRouter(NewContestController(&testutil.MockLogger{}, svc), nil)

	rr := do(t, h, http.MethodGet, "/contests/past", "")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "unknown contest class")
	assert.Empty(t, svc.classes)
}

func TestClearCache(t *testing.T) {
	svc := &mockContestService{}
	logger := &testutil.MockLogger{}
	h := newTestRouter(NewContestController(logger, svc), nil)

	rr := do(t, h, http.MethodPost, "/contests/cache/clear", "")

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, 1, svc.cleared)
	assert.Zero(t, svc.reset)
	assert.Equal(t, 1, logger.Count("info"))
}

func TestClearCache_ScopeAll(t *testing.T) {
	svc := &mockContestService{}
	h := newTestRouter(NewContestController(&testutil.MockLogger{}, svc), nil)

	rr := do(t, h, http.MethodPost, "/contests/cache/clear?scope=all", "")

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, 1, svc.reset)
	assert.Zero(t, svc.cleared)
}

func TestClearCache_UnknownScope(t *testing.T) {
	svc := &mockContestService{}
	h := newTestRouter(NewContestController(&testutil.MockLogger{}, svc), nil)

	rr := do(t, h, http.MethodPost, "/contests/cache/clear?scope=everything", "")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Zero(t, svc.reset)
	assert.Zero(t, svc.cleared)
}
