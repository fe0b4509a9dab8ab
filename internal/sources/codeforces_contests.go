package sources

import (
	"context"
	"strconv"
	"strings"

	"codefolio/internal/models"
	"codefolio/internal/normalize"
	"codefolio/internal/providers"
	"codefolio/internal/structures"

	json "github.com/goccy/go-json"
)

const (
	PlatformCodeforces   = "Codeforces"
	codeforcesDefaultURL = "https://codeforces.com"
)

type codeforcesEnvelope struct {
	Status  string          `json:"status"`
	Comment string          `json:"comment"`
	Result  json.RawMessage `json:"result"`
}

type codeforcesContest struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Phase            string `json:"phase"`
	StartTimeSeconds *int64 `json:"startTimeSeconds"`
	DurationSeconds  int64  `json:"durationSeconds"`
}

// CodeforcesSource classifies by the contest phase enum.
type CodeforcesSource struct {
	deps    *Deps
	baseURL string
}

func NewCodeforcesSource(conf *structures.Config, deps *Deps) *CodeforcesSource {
	return &CodeforcesSource{
		deps:    deps,
		baseURL: baseURL(conf.Sources.Endpoints.Codeforces, codeforcesDefaultURL),
	}
}

func (s *CodeforcesSource) Platform() string { return PlatformCodeforces }

func (s *CodeforcesSource) FetchContests(ctx context.Context, class models.ClassFilter) ([]models.ContestRecord, error) {
	body, err := s.deps.get(ctx, PlatformCodeforces, s.baseURL+"/api/contest.list", nil)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := decodeCodeforces(PlatformCodeforces, body, &items); err != nil {
		return nil, err
	}

	log := s.deps.Logger
	records := make([]models.ContestRecord, 0, len(items))
	for _, c := range decodeEach[codeforcesContest](log, PlatformCodeforces, items) {
		name := strings.TrimSpace(c.Name)
		if name == "" || c.StartTimeSeconds == nil {
			log.Warnf(providers.TypeSource, "%s: dropping contest %d without name or start", PlatformCodeforces, c.ID)
			continue
		}

		status := normalize.ClassifyByPhase(c.Phase)
		if !normalize.Matches(status, class) {
			continue
		}

		start, _ := normalize.ToMillis(*c.StartTimeSeconds, normalize.UnitSeconds, s.deps.Clock.Now())
		duration, _ := normalize.DurationMillis(c.DurationSeconds, normalize.UnitSeconds, 0)
		id := strconv.FormatInt(c.ID, 10)

		records = append(records, models.ContestRecord{
			ID:        c.ID,
			Key:       models.ContestKey(PlatformCodeforces, id),
			Name:      name,
			Platform:  PlatformCodeforces,
			StartTime: start,
			Duration:  duration,
			URL:       "https://codeforces.com/contests/" + id,
			Status:    status,
		})
	}
	return records, nil
}

// decodeCodeforces unwraps the {status, comment, result} envelope every
// Codeforces API method uses.
func decodeCodeforces(platform string, body []byte, result any) error {
	var env codeforcesEnvelope
	if err := decode(platform, body, &env); err != nil {
		return err
	}
	if env.Status != "OK" {
		return newError(platform, KindUnavailable, nil, "api status %q: %s", env.Status, env.Comment)
	}
	if err := json.Unmarshal(env.Result, result); err != nil {
		return newError(platform, KindMalformed, err, "unexpected result")
	}
	return nil
}
