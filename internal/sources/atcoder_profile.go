package sources

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"codefolio/internal/models"
	"codefolio/internal/structures"

	"github.com/PuerkitoBio/goquery"
)

const atCoderDefaultURL = "https://atcoder.jp"

// AtCoderProfileSource scrapes the user page and the submissions page.
type AtCoderProfileSource struct {
	deps    *Deps
	baseURL string
}

func NewAtCoderProfileSource(conf *structures.Config, deps *Deps) *AtCoderProfileSource {
	return &AtCoderProfileSource{
		deps:    deps,
		baseURL: baseURL(conf.Sources.Endpoints.AtCoder, atCoderDefaultURL),
	}
}

func (s *AtCoderProfileSource) Platform() models.Platform { return models.PlatformAtCoder }

func (s *AtCoderProfileSource) FetchProfile(ctx context.Context, username string) (*models.ProfileStats, error) {
	platform := string(models.PlatformAtCoder)
	username, err := requireUsername(platform, username)
	if err != nil {
		return nil, err
	}
	userURL := s.baseURL + "/users/" + url.PathEscape(username)

	doc, err := s.page(ctx, userURL)
	if err != nil {
		return nil, err
	}
	if doc.Find(".username").Length() == 0 {
		return nil, newError(platform, KindNotFound, nil, "no user %q", username)
	}

	stats := models.NewProfileStats()
	stats.Rating = digits(text(doc, ".user-rating"))
	stats.TotalContests = digits(text(doc, ".contest-participation-count"))
	stats.ContestRanking = digits(text(doc, ".user-rank"))

	submissions, err := s.page(ctx, userURL+"/submissions")
	if err != nil {
		return nil, err
	}
	stats.TotalSolved = digits(text(submissions, ".accepted-count"))

	return stats, nil
}

func (s *AtCoderProfileSource) page(ctx context.Context, target string) (*goquery.Document, error) {
	platform := string(models.PlatformAtCoder)
	body, err := s.deps.get(ctx, platform, target, map[string]string{"Accept": "text/html"})
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, newError(platform, KindMalformed, err, "unparseable page %s", target)
	}
	return doc, nil
}

func text(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().Text())
}
