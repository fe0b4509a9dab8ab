package sources

import (
	"context"
	"strings"

	"codefolio/internal/models"
	"codefolio/internal/providers"
	"codefolio/internal/structures"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

const leetCodeProfileQuery = `query userProfile($username: String!) {
  matchedUser(username: $username) {
    submitStats { acSubmissionNum { difficulty count } }
    profile { ranking }
    tagProblemCounts { advanced { tagName problemsSolved } }
    userCalendar { totalActiveDays submissionCalendar }
    badges { name icon }
  }
  userContestRanking(username: $username) { rating globalRanking attendedContestsCount }
}`

type leetCodeProfileResponse struct {
	Data struct {
		MatchedUser *struct {
			SubmitStats struct {
				AcSubmissionNum []struct {
					Difficulty string `json:"difficulty"`
					Count      int    `json:"count"`
				} `json:"acSubmissionNum"`
			} `json:"submitStats"`
			Profile struct {
				Ranking int `json:"ranking"`
			} `json:"profile"`
			TagProblemCounts *struct {
				Advanced []struct {
					TagName        string `json:"tagName"`
					ProblemsSolved int    `json:"problemsSolved"`
				} `json:"advanced"`
			} `json:"tagProblemCounts"`
			UserCalendar *struct {
				TotalActiveDays    int    `json:"totalActiveDays"`
				SubmissionCalendar string `json:"submissionCalendar"`
			} `json:"userCalendar"`
			Badges []struct {
				Name string `json:"name"`
				Icon string `json:"icon"`
			} `json:"badges"`
		} `json:"matchedUser"`
		UserContestRanking *struct {
			Rating                float64 `json:"rating"`
			GlobalRanking         int     `json:"globalRanking"`
			AttendedContestsCount int     `json:"attendedContestsCount"`
		} `json:"userContestRanking"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type LeetCodeProfileSource struct {
	deps    *Deps
	baseURL string
}

func NewLeetCodeProfileSource(conf *structures.Config, deps *Deps) *LeetCodeProfileSource {
	return &LeetCodeProfileSource{
		deps:    deps,
		baseURL: baseURL(conf.Sources.Endpoints.LeetCode, leetCodeDefaultURL),
	}
}

func (s *LeetCodeProfileSource) Platform() models.Platform { return models.PlatformLeetCode }

func (s *LeetCodeProfileSource) FetchProfile(ctx context.Context, username string) (*models.ProfileStats, error) {
	platform := string(models.PlatformLeetCode)
	username, err := requireUsername(platform, username)
	if err != nil {
		return nil, err
	}

	payload, _ := json.Marshal(graphQLRequest{
		Query:     leetCodeProfileQuery,
		Variables: map[string]any{"username": username},
	})
	body, err := s.deps.post(ctx, platform, s.baseURL+"/graphql", leetCodeHeaders(s.baseURL), payload)
	if err != nil {
		return nil, err
	}

	var resp leetCodeProfileResponse
	if err := decode(platform, body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, newError(platform, KindNotFound, nil, "graphql: %s", joinGraphQLErrors(resp.Errors))
	}
	user := resp.Data.MatchedUser
	if user == nil {
		return nil, newError(platform, KindNotFound, nil, "no user %q", username)
	}

	stats := models.NewProfileStats()
	for _, ac := range user.SubmitStats.AcSubmissionNum {
		difficulty := strings.ToLower(ac.Difficulty)
		if difficulty == "all" {
			stats.TotalSolved = ac.Count
			continue
		}
		stats.SolvedByDifficulty[difficulty] = ac.Count
	}

	if user.TagProblemCounts != nil {
		for _, tag := range user.TagProblemCounts.Advanced {
			if tag.ProblemsSolved > 0 {
				stats.SolvedByTopic[tag.TagName] = tag.ProblemsSolved
			}
		}
	}

	if ranking := resp.Data.UserContestRanking; ranking != nil {
		stats.Rating = int(ranking.Rating)
		stats.ContestRanking = ranking.GlobalRanking
		stats.TotalContests = ranking.AttendedContestsCount
	} else {
		stats.ContestRanking = user.Profile.Ranking
	}

	if cal := user.UserCalendar; cal != nil {
		stats.TotalActiveDays = cal.TotalActiveDays
		s.fillCalendar(stats, cal.SubmissionCalendar, username)
	}

	for _, b := range user.Badges {
		stats.Awards = append(stats.Awards, models.Award{Name: b.Name, Icon: b.Icon})
	}

	return stats, nil
}

// fillCalendar converts the {"<epoch seconds>": count} string into dates.
func (s *LeetCodeProfileSource) fillCalendar(stats *models.ProfileStats, raw, username string) {
	if strings.TrimSpace(raw) == "" {
		return
	}
	var byEpoch map[string]int
	if err := json.Unmarshal([]byte(raw), &byEpoch); err != nil {
		s.deps.Logger.Warnf(providers.TypeSource, "leetcode: calendar of %s: %v", username, err)
		return
	}
	for epoch, count := range byEpoch {
		sec, err := cast.ToInt64E(epoch)
		if err != nil || count <= 0 {
			continue
		}
		stats.SubmissionCalendar[dateFromSeconds(sec)] += count
	}
}
