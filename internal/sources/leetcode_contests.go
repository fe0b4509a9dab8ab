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
	PlatformLeetCode   = "LeetCode"
	leetCodeDefaultURL = "https://leetcode.com"

	leetCodeContestsQuery = `{ allContests { title startTime duration titleSlug } }`
)

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type leetCodeContestsResponse struct {
	Data struct {
		AllContests []json.RawMessage `json:"allContests"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type leetCodeContest struct {
	Title     string `json:"title"`
	StartTime *int64 `json:"startTime"`
	Duration  int64  `json:"duration"`
	TitleSlug string `json:"titleSlug"`
}

// LeetCodeSource classifies by comparing the clock with the contest window.
type LeetCodeSource struct {
	deps    *Deps
	baseURL string
}

func NewLeetCodeSource(conf *structures.Config, deps *Deps) *LeetCodeSource {
	return &LeetCodeSource{
		deps:    deps,
		baseURL: baseURL(conf.Sources.Endpoints.LeetCode, leetCodeDefaultURL),
	}
}

func (s *LeetCodeSource) Platform() string { return PlatformLeetCode }

func (s *LeetCodeSource) FetchContests(ctx context.Context, class models.ClassFilter) ([]models.ContestRecord, error) {
	payload, _ := json.Marshal(graphQLRequest{Query: leetCodeContestsQuery})
	body, err := s.deps.post(ctx, PlatformLeetCode, s.baseURL+"/graphql", leetCodeHeaders(s.baseURL), payload)
	if err != nil {
		return nil, err
	}

	var resp leetCodeContestsResponse
	if err := decode(PlatformLeetCode, body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, newError(PlatformLeetCode, KindMalformed, nil, "graphql: %s", joinGraphQLErrors(resp.Errors))
	}

	log := s.deps.Logger
	now := s.deps.Clock.Now()
	records := make([]models.ContestRecord, 0, len(resp.Data.AllContests))
	for _, c := range decodeEach[leetCodeContest](log, PlatformLeetCode, resp.Data.AllContests) {
		title := strings.TrimSpace(c.Title)
		if title == "" || c.StartTime == nil {
			log.Warnf(providers.TypeSource, "%s: dropping contest %q without title or start", PlatformLeetCode, c.TitleSlug)
			continue
		}

		start, _ := normalize.ToMillis(*c.StartTime, normalize.UnitSeconds, now)
		duration, _ := normalize.DurationMillis(c.Duration, normalize.UnitSeconds, 0)
		status := normalize.ClassifyByWindow(start, duration, now.UnixMilli())
		if !normalize.Matches(status, class) {
			continue
		}

		records = append(records, models.ContestRecord{
			// signed on purpose, ids from this source were never made absolute
			ID:        int64(normalize.StringHash(c.TitleSlug)),
			Key:       models.ContestKey(PlatformLeetCode, c.TitleSlug),
			Name:      title,
			Platform:  PlatformLeetCode,
			StartTime: start,
			Duration:  duration,
			URL:       "https://leetcode.com/contest/" + c.TitleSlug,
			Status:    status,
		})
	}
	return records, nil
}

func leetCodeHeaders(base string) map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
		"Referer":      base,
		"Origin":       base,
	}
}

func joinGraphQLErrors(errs []graphQLError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}
