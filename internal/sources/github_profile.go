package sources

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"codefolio/internal/models"
	"codefolio/internal/providers"
	"codefolio/internal/structures"

	json "github.com/goccy/go-json"
)

const (
	gitHubDefaultURL = "https://api.github.com"
	gitHubReposPage  = 100

	gitHubContributionsQuery = `query contributions($login: String!) {
  user(login: $login) {
    contributionsCollection {
      totalCommitContributions
      totalIssueContributions
      totalPullRequestContributions
      contributionCalendar {
        totalContributions
        weeks { contributionDays { contributionCount date } }
      }
    }
  }
}`
)

// Extras keys for GitHub counters.
const (
	ExtraPublicRepos   = "publicRepos"
	ExtraFollowers     = "followers"
	ExtraFollowing     = "following"
	ExtraStars         = "totalStars"
	ExtraCommits       = "commits"
	ExtraPullRequests  = "pullRequests"
	ExtraIssues        = "issues"
	ExtraContributions = "totalContributions"
	ExtraCurrentStreak = "currentStreak"
	ExtraMaxStreak     = "maxStreak"
)

type gitHubUser struct {
	PublicRepos int `json:"public_repos"`
	Followers   int `json:"followers"`
	Following   int `json:"following"`
}

type gitHubRepo struct {
	StargazersCount int `json:"stargazers_count"`
}

type gitHubContributions struct {
	Data struct {
		User *struct {
			ContributionsCollection struct {
				TotalCommitContributions      int `json:"totalCommitContributions"`
				TotalIssueContributions       int `json:"totalIssueContributions"`
				TotalPullRequestContributions int `json:"totalPullRequestContributions"`
				ContributionCalendar          struct {
					Weeks []struct {
						ContributionDays []struct {
							ContributionCount int    `json:"contributionCount"`
							Date              string `json:"date"`
						} `json:"contributionDays"`
					} `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// GitHubProfileSource reads the REST user and repo endpoints. Contribution
// data needs GraphQL, which GitHub only serves to authenticated clients, so
// it is skipped without a token.
type GitHubProfileSource struct {
	deps    *Deps
	baseURL string
	token   string
}

func NewGitHubProfileSource(conf *structures.Config, deps *Deps) *GitHubProfileSource {
	return &GitHubProfileSource{
		deps:    deps,
		baseURL: baseURL(conf.Sources.Endpoints.GitHub, gitHubDefaultURL),
		token:   conf.Sources.GithubToken,
	}
}

func (s *GitHubProfileSource) Platform() models.Platform { return models.PlatformGitHub }

func (s *GitHubProfileSource) headers() map[string]string {
	h := map[string]string{
		"Accept":               "application/vnd.github+json",
		"X-GitHub-Api-Version": "2022-11-28",
	}
	if s.token != "" {
		h["Authorization"] = "Bearer " + s.token
	}
	return h
}

func (s *GitHubProfileSource) FetchProfile(ctx context.Context, username string) (*models.ProfileStats, error) {
	platform := string(models.PlatformGitHub)
	username, err := requireUsername(platform, username)
	if err != nil {
		return nil, err
	}
	escaped := url.PathEscape(username)

	body, err := s.deps.get(ctx, platform, s.baseURL+"/users/"+escaped, s.headers())
	if err != nil {
		return nil, err
	}
	var user gitHubUser
	if err := decode(platform, body, &user); err != nil {
		return nil, err
	}

	stats := models.NewProfileStats()
	stats.Extras[ExtraPublicRepos] = user.PublicRepos
	stats.Extras[ExtraFollowers] = user.Followers
	stats.Extras[ExtraFollowing] = user.Following
	stats.Extras[ExtraStars] = s.stars(ctx, escaped)

	if s.token != "" {
		s.contributions(ctx, username, stats)
	}

	return stats, nil
}

// stars sums stargazers over the first page of repos. Failures only cost
// the star count.
func (s *GitHubProfileSource) stars(ctx context.Context, escaped string) int {
	platform := string(models.PlatformGitHub)
	target := s.baseURL + "/users/" + escaped + "/repos?per_page=" + strconv.Itoa(gitHubReposPage)
	body, err := s.deps.get(ctx, platform, target, s.headers())
	if err != nil {
		s.deps.Logger.Warnf(providers.TypeSource, "github: repos of %s: %v", escaped, err)
		return 0
	}
	var repos []gitHubRepo
	if err := json.Unmarshal(body, &repos); err != nil {
		s.deps.Logger.Warnf(providers.TypeSource, "github: repos of %s: %v", escaped, err)
		return 0
	}
	total := 0
	for _, r := range repos {
		total += r.StargazersCount
	}
	return total
}

// contributions fills calendar and streak data. Failures leave those
// counters at zero, the REST data is still returned.
func (s *GitHubProfileSource) contributions(ctx context.Context, login string, stats *models.ProfileStats) {
	platform := string(models.PlatformGitHub)
	log := s.deps.Logger

	payload, _ := json.Marshal(graphQLRequest{
		Query:     gitHubContributionsQuery,
		Variables: map[string]any{"login": login},
	})
	headers := s.headers()
	headers["Content-Type"] = "application/json"

	body, err := s.deps.post(ctx, platform, s.baseURL+"/graphql", headers, payload)
	if err != nil {
		log.Warnf(providers.TypeSource, "github: contributions of %s: %v", login, err)
		return
	}
	var resp gitHubContributions
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Warnf(providers.TypeSource, "github: contributions of %s: %v", login, err)
		return
	}
	if len(resp.Errors) > 0 || resp.Data.User == nil {
		log.Warnf(providers.TypeSource, "github: contributions of %s: %s", login, joinGraphQLErrors(resp.Errors))
		return
	}

	cc := resp.Data.User.ContributionsCollection
	stats.Extras[ExtraCommits] = cc.TotalCommitContributions
	stats.Extras[ExtraPullRequests] = cc.TotalPullRequestContributions
	stats.Extras[ExtraIssues] = cc.TotalIssueContributions
	stats.Extras[ExtraContributions] = cc.TotalCommitContributions + cc.TotalPullRequestContributions + cc.TotalIssueContributions

	today := s.deps.Clock.Now().UTC().Format(calendarDateLayout)
	yesterday := s.deps.Clock.Now().UTC().Add(-24 * time.Hour).Format(calendarDateLayout)

	run, longest, current := 0, 0, 0
	for _, week := range cc.ContributionCalendar.Weeks {
		for _, day := range week.ContributionDays {
			if day.ContributionCount <= 0 {
				run = 0
				continue
			}
			stats.SubmissionCalendar[day.Date] += day.ContributionCount
			run++
			longest = max(longest, run)
			if day.Date == today || day.Date == yesterday {
				current = run
			}
		}
	}

	stats.TotalActiveDays = len(stats.SubmissionCalendar)
	stats.Extras[ExtraCurrentStreak] = current
	stats.Extras[ExtraMaxStreak] = longest
}
