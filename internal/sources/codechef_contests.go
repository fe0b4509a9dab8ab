package sources

import (
	"context"
	"strings"

	"codefolio/internal/models"
	"codefolio/internal/normalize"
	"codefolio/internal/providers"
	"codefolio/internal/structures"

	json "github.com/goccy/go-json"
)

const (
	PlatformCodeChef   = "CodeChef"
	codeChefDefaultURL = "https://www.codechef.com"
)

type codeChefContestList struct {
	Status  string            `json:"status"`
	Present []json.RawMessage `json:"present_contests"`
	Future  []json.RawMessage `json:"future_contests"`
}

type codeChefContest struct {
	Code     string `json:"contest_code"`
	Name     string `json:"contest_name"`
	StartISO string `json:"contest_start_date_iso"`
	Duration any    `json:"contest_duration"`
}

// CodeChefSource reads the present/future contest arrays; membership in an
// array decides the status.
type CodeChefSource struct {
	deps    *Deps
	baseURL string
}

func NewCodeChefSource(conf *structures.Config, deps *Deps) *CodeChefSource {
	return &CodeChefSource{
		deps:    deps,
		baseURL: baseURL(conf.Sources.Endpoints.CodeChef, codeChefDefaultURL),
	}
}

func (s *CodeChefSource) Platform() string { return PlatformCodeChef }

func (s *CodeChefSource) FetchContests(ctx context.Context, class models.ClassFilter) ([]models.ContestRecord, error) {
	body, err := s.deps.get(ctx, PlatformCodeChef, s.baseURL+"/api/list/contests/all", map[string]string{
		"Accept": "application/json",
	})
	if err != nil {
		return nil, err
	}

	var list codeChefContestList
	if err := decode(PlatformCodeChef, body, &list); err != nil {
		return nil, err
	}

	records := make([]models.ContestRecord, 0, len(list.Present)+len(list.Future))
	if normalize.Matches(models.StatusActive, class) {
		records = s.appendRecords(records, list.Present, models.StatusActive)
	}
	if normalize.Matches(models.StatusUpcoming, class) {
		records = s.appendRecords(records, list.Future, models.StatusUpcoming)
	}
	return records, nil
}

func (s *CodeChefSource) appendRecords(records []models.ContestRecord, items []json.RawMessage, status models.ContestStatus) []models.ContestRecord {
	log := s.deps.Logger
	for _, c := range decodeEach[codeChefContest](log, PlatformCodeChef, items) {
		name := strings.TrimSpace(c.Name)
		if name == "" || normalize.IsAbsent(c.StartISO) {
			log.Warnf(providers.TypeSource, "%s: dropping contest %q without name or start", PlatformCodeChef, c.Code)
			continue
		}
		start, err := normalize.ToMillis(c.StartISO, normalize.UnitISO8601, s.deps.Clock.Now())
		if err != nil {
			log.Warnf(providers.TypeSource, "%s: dropping contest %q: %v", PlatformCodeChef, c.Code, err)
			continue
		}
		duration, err := normalize.DurationMillis(c.Duration, normalize.UnitMinutes, 0)
		if err != nil {
			log.Warnf(providers.TypeSource, "%s: contest %q duration: %v", PlatformCodeChef, c.Code, err)
		}

		records = append(records, models.ContestRecord{
			ID:        normalize.AbsHash(c.Code),
			Key:       models.ContestKey(PlatformCodeChef, c.Code),
			Name:      name,
			Platform:  PlatformCodeChef,
			StartTime: start,
			Duration:  duration,
			URL:       "https://www.codechef.com/" + c.Code,
			Status:    status,
		})
	}
	return records
}
