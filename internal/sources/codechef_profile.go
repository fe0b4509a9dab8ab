package sources

import (
	"context"
	"net/url"

	"codefolio/internal/models"
	"codefolio/internal/structures"
)

const codeChefProfileDefaultURL = "https://codechef-api.vercel.app"

type codeChefProfile struct {
	Success       bool `json:"success"`
	CurrentRating any  `json:"currentRating"`
	RatingData    []struct {
		Rank any `json:"rank"`
	} `json:"ratingData"`
	HeatMap []struct {
		Date  string `json:"date"`
		Value int    `json:"value"`
	} `json:"heatMap"`
}

type CodeChefProfileSource struct {
	deps    *Deps
	baseURL string
}

func NewCodeChefProfileSource(conf *structures.Config, deps *Deps) *CodeChefProfileSource {
	return &CodeChefProfileSource{
		deps:    deps,
		baseURL: baseURL(conf.Sources.Endpoints.CodeChefProfile, codeChefProfileDefaultURL),
	}
}

func (s *CodeChefProfileSource) Platform() models.Platform { return models.PlatformCodeChef }

func (s *CodeChefProfileSource) FetchProfile(ctx context.Context, username string) (*models.ProfileStats, error) {
	platform := string(models.PlatformCodeChef)
	username, err := requireUsername(platform, username)
	if err != nil {
		return nil, err
	}

	body, err := s.deps.get(ctx, platform, s.baseURL+"/handle/"+url.PathEscape(username), nil)
	if err != nil {
		return nil, err
	}

	var p codeChefProfile
	if err := decode(platform, body, &p); err != nil {
		return nil, err
	}
	if !p.Success {
		return nil, newError(platform, KindNotFound, nil, "no user %q", username)
	}

	stats := models.NewProfileStats()
	stats.Rating = lenientInt(p.CurrentRating)
	stats.TotalContests = len(p.RatingData)
	if len(p.RatingData) > 0 {
		stats.ContestRanking = lenientInt(p.RatingData[0].Rank)
	}

	// the heat map counts submissions, used as the solved total
	for _, day := range p.HeatMap {
		if day.Value <= 0 {
			continue
		}
		stats.SubmissionCalendar[day.Date] = day.Value
		stats.TotalActiveDays++
		stats.TotalSolved += day.Value
	}

	return stats, nil
}
