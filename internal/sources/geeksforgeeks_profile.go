package sources

import (
	"context"
	"net/url"

	"codefolio/internal/models"
	"codefolio/internal/structures"

	json "github.com/goccy/go-json"
)

const geeksforGeeksProfileDefaultURL = "https://geeks-for-geeks-api.vercel.app"

type geeksforGeeksSolved struct {
	Count     int `json:"count"`
	Questions []struct {
		Question string `json:"question"`
	} `json:"questions"`
}

type geeksforGeeksProfile struct {
	Error json.RawMessage `json:"error"`
	Info  struct {
		TotalProblemsSolved any `json:"totalProblemsSolved"`
		CodingScore         any `json:"codingScore"`
		InstituteRank       any `json:"instituteRank"`
		MaxStreak           any `json:"maxStreak"`
	} `json:"info"`
	SolvedStats map[string]geeksforGeeksSolved `json:"solvedStats"`
}

var geeksforGeeksDifficulties = []string{"easy", "medium", "hard", "basic"}

type GeeksforGeeksProfileSource struct {
	deps    *Deps
	baseURL string
}

func NewGeeksforGeeksProfileSource(conf *structures.Config, deps *Deps) *GeeksforGeeksProfileSource {
	return &GeeksforGeeksProfileSource{
		deps:    deps,
		baseURL: baseURL(conf.Sources.Endpoints.GeeksforGeeksProfile, geeksforGeeksProfileDefaultURL),
	}
}

func (s *GeeksforGeeksProfileSource) Platform() models.Platform { return models.PlatformGeeksforGeeks }

func (s *GeeksforGeeksProfileSource) FetchProfile(ctx context.Context, username string) (*models.ProfileStats, error) {
	platform := string(models.PlatformGeeksforGeeks)
	username, err := requireUsername(platform, username)
	if err != nil {
		return nil, err
	}

	body, err := s.deps.get(ctx, platform, s.baseURL+"/"+url.PathEscape(username), map[string]string{
		"Accept": "application/json",
	})
	if err != nil {
		return nil, err
	}

	var p geeksforGeeksProfile
	if err := decode(platform, body, &p); err != nil {
		return nil, err
	}
	if len(p.Error) > 0 && string(p.Error) != "null" {
		return nil, newError(platform, KindNotFound, nil, "no user %q", username)
	}

	stats := models.NewProfileStats()
	stats.TotalSolved = lenientInt(p.Info.TotalProblemsSolved)
	stats.Rating = lenientInt(p.Info.CodingScore)
	stats.ContestRanking = lenientInt(p.Info.InstituteRank)
	stats.TotalActiveDays = lenientInt(p.Info.MaxStreak)

	for _, difficulty := range geeksforGeeksDifficulties {
		solved := p.SolvedStats[difficulty]
		stats.SolvedByDifficulty[difficulty] = solved.Count
		// the API has no tags, problems are counted by name
		for _, q := range solved.Questions {
			stats.SolvedByTopic[q.Question]++
		}
	}

	if stats.Rating > 0 {
		stats.Awards = append(stats.Awards, models.Award{Name: "Coding Score", Value: stats.Rating})
	}

	return stats, nil
}
