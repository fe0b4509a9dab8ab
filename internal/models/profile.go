package models

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Platform string

const (
	PlatformLeetCode      Platform = "leetcode"
	PlatformCodeforces    Platform = "codeforces"
	PlatformCodeChef      Platform = "codechef"
	PlatformAtCoder       Platform = "atcoder"
	PlatformGeeksforGeeks Platform = "geeksforgeeks"
	PlatformGitHub        Platform = "github"
)

// Platforms lists every profile platform in refresh order.
var Platforms = []Platform{
	PlatformLeetCode,
	PlatformCodeforces,
	PlatformCodeChef,
	PlatformAtCoder,
	PlatformGeeksforGeeks,
	PlatformGitHub,
}

func ParsePlatform(s string) (Platform, bool) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Platforms, p) {
		return p, true
	}
	return "", false
}

type Award struct {
	Name  string `json:"name"`
	Icon  string `json:"icon,omitempty"`
	Value int    `json:"value,omitempty"`
}

// ProfileStats is one platform's counters. Maps and slices are never nil in
// values produced by NewProfileStats, Reset or Clone.
type ProfileStats struct {
	TotalSolved        int            `json:"totalQuestions"`
	TotalActiveDays    int            `json:"totalActiveDays"`
	TotalContests      int            `json:"totalContests"`
	Rating             int            `json:"rating"`
	ContestRanking     int            `json:"contestRanking"`
	SolvedByDifficulty map[string]int `json:"difficultyWiseSolved"`
	SolvedByTopic      map[string]int `json:"topicWiseSolved"`
	SubmissionCalendar map[string]int `json:"submissionCalendar"`
	Awards             []Award        `json:"awards"`
	Extras             map[string]int `json:"extras"`
}

func NewProfileStats() *ProfileStats {
	s := &ProfileStats{}
	s.Reset()
	return s
}

func (s *ProfileStats) Reset() {
	*s = ProfileStats{
		SolvedByDifficulty: map[string]int{},
		SolvedByTopic:      map[string]int{},
		SubmissionCalendar: map[string]int{},
		Awards:             []Award{},
		Extras:             map[string]int{},
	}
}

// Normalize replaces nil collections with empty ones, e.g. after decoding.
func (s *ProfileStats) Normalize() {
	if s.SolvedByDifficulty == nil {
		s.SolvedByDifficulty = map[string]int{}
	}
	if s.SolvedByTopic == nil {
		s.SolvedByTopic = map[string]int{}
	}
	if s.SubmissionCalendar == nil {
		s.SubmissionCalendar = map[string]int{}
	}
	if s.Awards == nil {
		s.Awards = []Award{}
	}
	if s.Extras == nil {
		s.Extras = map[string]int{}
	}
}

func (s *ProfileStats) Clone() *ProfileStats {
	if s == nil {
		return NewProfileStats()
	}
	c := *s
	c.SolvedByDifficulty = maps.Clone(s.SolvedByDifficulty)
	c.SolvedByTopic = maps.Clone(s.SolvedByTopic)
	c.SubmissionCalendar = maps.Clone(s.SubmissionCalendar)
	c.Awards = slices.Clone(s.Awards)
	c.Extras = maps.Clone(s.Extras)
	c.Normalize()
	return &c
}

type Profile struct {
	ID          uuid.UUID                  `json:"id"`
	UserID      string                     `json:"userId"`
	Email       string                     `json:"email"`
	Name        string                     `json:"name"`
	Usernames   map[Platform]string        `json:"usernames"`
	Stats       map[Platform]*ProfileStats `json:"stats"`
	LastUpdated time.Time                  `json:"lastUpdated"`
}

func NewProfile(userID, email, name string, now time.Time) *Profile {
	p := &Profile{
		ID:          uuid.New(),
		UserID:      userID,
		Email:       email,
		Name:        name,
		LastUpdated: now,
	}
	p.Normalize()
	return p
}

// Normalize guarantees one stats entry per platform and non-nil maps.
func (p *Profile) Normalize() {
	if p.Usernames == nil {
		p.Usernames = make(map[Platform]string, len(Platforms))
	}
	if p.Stats == nil {
		p.Stats = make(map[Platform]*ProfileStats, len(Platforms))
	}
	for _, platform := range Platforms {
		st, ok := p.Stats[platform]
		if !ok || st == nil {
			p.Stats[platform] = NewProfileStats()
			continue
		}
		st.Normalize()
	}
}

func (p *Profile) Username(platform Platform) string {
	return p.Usernames[platform]
}

// SetUsername links a platform. A changed username resets that platform's
// stats; it reports whether anything changed.
func (p *Profile) SetUsername(platform Platform, username string) bool {
	username = strings.TrimSpace(username)
	if p.Usernames[platform] == username {
		return false
	}
	if username == "" {
		delete(p.Usernames, platform)
	} else {
		p.Usernames[platform] = username
	}
	p.Stats[platform] = NewProfileStats()
	return true
}

// LinkedPlatforms returns platforms with a username, in refresh order.
func (p *Profile) LinkedPlatforms() []Platform {
	linked := make([]Platform, 0, len(p.Usernames))
	for _, platform := range Platforms {
		if p.Usernames[platform] != "" {
			linked = append(linked, platform)
		}
	}
	return linked
}

func (p *Profile) Clone() *Profile {
	c := *p
	c.Usernames = maps.Clone(p.Usernames)
	c.Stats = make(map[Platform]*ProfileStats, len(p.Stats))
	for k, v := range p.Stats {
		c.Stats[k] = v.Clone()
	}
	c.Normalize()
	return &c
}
