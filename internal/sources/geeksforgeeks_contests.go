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
	PlatformGeeksforGeeks   = "GeeksforGeeks"
	geeksforGeeksDefaultURL = "https://practiceapi.geeksforgeeks.org"
	geeksforGeeksSiteURL    = "https://practice.geeksforgeeks.org"
)

type geeksforGeeksEvents struct {
	Results []json.RawMessage `json:"results"`
}

type geeksforGeeksEvent struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	RegisterURL string `json:"register_url"`
	Status      string `json:"status"`
	StartTime   any    `json:"start_time"`
	EndTime     any    `json:"end_time"`
}

// GeeksforGeeksSource keeps only events whose free-text status reads as live.
// Timestamps are optional epoch seconds.
type GeeksforGeeksSource struct {
	deps    *Deps
	baseURL string
}

func NewGeeksforGeeksSource(conf *structures.Config, deps *Deps) *GeeksforGeeksSource {
	return &GeeksforGeeksSource{
		deps:    deps,
		baseURL: baseURL(conf.Sources.Endpoints.GeeksforGeeks, geeksforGeeksDefaultURL),
	}
}

func (s *GeeksforGeeksSource) Platform() string { return PlatformGeeksforGeeks }

func (s *GeeksforGeeksSource) FetchContests(ctx context.Context, class models.ClassFilter) ([]models.ContestRecord, error) {
	body, err := s.deps.get(ctx, PlatformGeeksforGeeks, s.baseURL+"/api/v1/events?type=contest", map[string]string{
		"Accept": "application/json",
	})
	if err != nil {
		return nil, err
	}

	var events geeksforGeeksEvents
	if err := decode(PlatformGeeksforGeeks, body, &events); err != nil {
		return nil, err
	}

	log := s.deps.Logger
	now := s.deps.Clock.Now()
	records := make([]models.ContestRecord, 0, len(events.Results))
	for _, e := range decodeEach[geeksforGeeksEvent](log, PlatformGeeksforGeeks, events.Results) {
		status, live := normalize.ClassifyByText(e.Status)
		if !live || !normalize.Matches(status, class) {
			continue
		}
		name := strings.TrimSpace(e.Name)
		if name == "" {
			log.Warnf(providers.TypeSource, "%s: dropping event without name", PlatformGeeksforGeeks)
			continue
		}

		start, duration := s.window(name, e, now.UnixMilli())

		records = append(records, models.ContestRecord{
			ID:          normalize.AbsHash(name),
			Key:         models.ContestKey(PlatformGeeksforGeeks, name),
			Name:        name,
			Platform:    PlatformGeeksforGeeks,
			StartTime:   start,
			Duration:    duration,
			URL:         absoluteURL(geeksforGeeksSiteURL, e.RegisterURL),
			Description: e.Description,
			Status:      status,
		})
	}
	return records, nil
}

// window defaults to [now, now+7d] for absent or unreadable timestamps.
func (s *GeeksforGeeksSource) window(name string, e geeksforGeeksEvent, nowMillis int64) (int64, int64) {
	log := s.deps.Logger
	start, err := normalize.ToMillis(e.StartTime, normalize.UnitSeconds, s.deps.Clock.Now())
	if err != nil {
		log.Warnf(providers.TypeSource, "%s: event %q start: %v", PlatformGeeksforGeeks, name, err)
		start = nowMillis
	}
	if normalize.IsAbsent(e.EndTime) {
		return start, normalize.Week
	}
	end, err := normalize.ToMillis(e.EndTime, normalize.UnitSeconds, s.deps.Clock.Now())
	if err != nil {
		log.Warnf(providers.TypeSource, "%s: event %q end: %v", PlatformGeeksforGeeks, name, err)
		return start, normalize.Week
	}
	return start, max(end-start, 0)
}

func absoluteURL(base, link string) string {
	link = strings.TrimSpace(link)
	if link == "" || strings.HasPrefix(link, "http") {
		return link
	}
	return base + link
}
