package sources

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"codefolio/internal/models"
	"codefolio/internal/structures"
)

type codeforcesUser struct {
	Rating    *int `json:"rating"`
	MaxRating *int `json:"maxRating"`
}

type codeforcesSubmission struct {
	Verdict             string `json:"verdict"`
	CreationTimeSeconds int64  `json:"creationTimeSeconds"`
	Problem             struct {
		Rating int      `json:"rating"`
		Tags   []string `json:"tags"`
	} `json:"problem"`
}

// CodeforcesProfileSource combines user.info, user.status and user.rating.
type CodeforcesProfileSource struct {
	deps    *Deps
	baseURL string
}

func NewCodeforcesProfileSource(conf *structures.Config, deps *Deps) *CodeforcesProfileSource {
	return &CodeforcesProfileSource{
		deps:    deps,
		baseURL: baseURL(conf.Sources.Endpoints.Codeforces, codeforcesDefaultURL),
	}
}

func (s *CodeforcesProfileSource) Platform() models.Platform { return models.PlatformCodeforces }

func (s *CodeforcesProfileSource) FetchProfile(ctx context.Context, handle string) (*models.ProfileStats, error) {
	platform := string(models.PlatformCodeforces)
	handle, err := requireUsername(platform, handle)
	if err != nil {
		return nil, err
	}
	escaped := url.QueryEscape(handle)

	var users []codeforcesUser
	if err := s.userInfo(ctx, escaped, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, newError(platform, KindNotFound, nil, "no user %q", handle)
	}
	user := users[0]

	var submissions []codeforcesSubmission
	if err := s.method(ctx, "user.status?handle="+escaped, &submissions); err != nil {
		return nil, err
	}
	var ratingChanges []struct{}
	if err := s.method(ctx, "user.rating?handle="+escaped, &ratingChanges); err != nil {
		return nil, err
	}

	stats := models.NewProfileStats()
	if user.MaxRating != nil {
		stats.Rating = *user.MaxRating
	}
	if user.Rating != nil {
		stats.ContestRanking = *user.Rating
	}

	for _, sub := range submissions {
		if sub.Verdict != "OK" {
			continue
		}
		stats.TotalSolved++
		stats.SolvedByDifficulty[strconv.Itoa(sub.Problem.Rating)]++
		for _, tag := range sub.Problem.Tags {
			stats.SolvedByTopic[tag]++
		}
		stats.SubmissionCalendar[dateFromSeconds(sub.CreationTimeSeconds)]++
	}
	stats.TotalActiveDays = len(stats.SubmissionCalendar)
	stats.TotalContests = len(ratingChanges)

	if user.Rating != nil {
		stats.Awards = append(stats.Awards, models.Award{Name: "Current Rating", Value: *user.Rating})
	}
	if user.MaxRating != nil {
		stats.Awards = append(stats.Awards, models.Award{Name: "Max Rating", Value: *user.MaxRating})
	}

	return stats, nil
}

// userInfo treats the API's FAILED answer (sent with status 400) as an
// unknown handle.
func (s *CodeforcesProfileSource) userInfo(ctx context.Context, escaped string, users *[]codeforcesUser) error {
	platform := string(models.PlatformCodeforces)
	target := s.baseURL + "/api/user.info?handles=" + escaped

	resp, err := s.deps.getResponse(ctx, platform, target, nil)
	if err != nil {
		return err
	}
	if resp.Status == http.StatusBadRequest {
		var env codeforcesEnvelope
		if decode(platform, resp.Body, &env) == nil && env.Status == "FAILED" {
			return newError(platform, KindNotFound, nil, "%s", env.Comment)
		}
	}
	body, err := checkStatus(platform, target, resp)
	if err != nil {
		return err
	}
	return decodeCodeforces(platform, body, users)
}

func (s *CodeforcesProfileSource) method(ctx context.Context, path string, result any) error {
	platform := string(models.PlatformCodeforces)
	body, err := s.deps.get(ctx, platform, s.baseURL+"/api/"+path, nil)
	if err != nil {
		return err
	}
	return decodeCodeforces(platform, body, result)
}
