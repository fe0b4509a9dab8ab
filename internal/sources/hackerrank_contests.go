package sources

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"codefolio/internal/models"
	"codefolio/internal/normalize"
	"codefolio/internal/providers"
	"codefolio/internal/structures"

	"github.com/PuerkitoBio/goquery"
)

const (
	PlatformHackerRank   = "HackerRank"
	hackerRankDefaultURL = "https://www.hackerrank.com"
	hackerRankSiteURL    = "https://www.hackerrank.com"

	hackerRankActiveContainer   = "active-contest-container"
	hackerRankUpcomingContainer = "upcoming-contests-container"

	hackerRankTitleSel = "div.contest-item__heading, h3.promoted-contest-v2__name, h4.hr-title-sm"
	hackerRankTimeSel  = "div.contest-item__time, div.hr-subtitle-sm, div.contest-item__time-ended"
	hackerRankLinkSel  = "a[href], button[data-attr1], [data-analytics=ContestPromoted], a.contest-item-btn"
	hackerRankDescSel  = "p.promoted-contest-v2__desc, div.contest-item__description"
)

// HackerRankSource scrapes the contests page. The page carries no usable
// timestamps: the container a card sits in decides its status, start is the
// fetch time and duration is estimated from the time caption. Keys carry the
// container, a title may be listed in both.
type HackerRankSource struct {
	deps    *Deps
	baseURL string
}

func NewHackerRankSource(conf *structures.Config, deps *Deps) *HackerRankSource {
	return &HackerRankSource{
		deps:    deps,
		baseURL: baseURL(conf.Sources.Endpoints.HackerRank, hackerRankDefaultURL),
	}
}

func (s *HackerRankSource) Platform() string { return PlatformHackerRank }

func (s *HackerRankSource) FetchContests(ctx context.Context, class models.ClassFilter) ([]models.ContestRecord, error) {
	body, err := s.deps.get(ctx, PlatformHackerRank, s.baseURL+"/contests", map[string]string{
		"Accept": "text/html",
	})
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, newError(PlatformHackerRank, KindMalformed, err, "unparseable page")
	}

	var records []models.ContestRecord
	if normalize.Matches(models.StatusActive, class) {
		records = append(records, s.scrape(doc, hackerRankActiveContainer, models.StatusActive)...)
	}
	if normalize.Matches(models.StatusUpcoming, class) {
		records = append(records, s.scrape(doc, hackerRankUpcomingContainer, models.StatusUpcoming)...)
	}
	if records == nil {
		records = []models.ContestRecord{}
	}
	return records, nil
}

func (s *HackerRankSource) scrape(doc *goquery.Document, container string, status models.ContestStatus) []models.ContestRecord {
	cards := fmt.Sprintf("div.%[1]s div.contests-list-view, div.%[1]s div.promoted-contest-v2__card, div.%[1]s div.c-bQZNxM", container)
	now := s.deps.Clock.NowMillis()

	var records []models.ContestRecord
	doc.Find(cards).Each(func(_ int, card *goquery.Selection) {
		title := strings.TrimSpace(card.Find(hackerRankTitleSel).First().Text())
		if title == "" {
			s.deps.Logger.Debugf(providers.TypeSource, "%s: skipping card without title in %s", PlatformHackerRank, container)
			return
		}

		duration := 30 * normalize.Day
		if t := card.Find(hackerRankTimeSel).First(); t.Length() > 0 {
			duration = estimateDuration(strings.TrimSpace(t.Text()))
		}

		records = append(records, models.ContestRecord{
			ID:          normalize.AbsHash(title),
			Key:         models.ContestKey(PlatformHackerRank, strings.ToLower(string(status))+":"+title),
			Name:        title,
			Platform:    PlatformHackerRank,
			StartTime:   now,
			Duration:    duration,
			URL:         cardLink(card),
			Description: strings.TrimSpace(card.Find(hackerRankDescSel).First().Text()),
			Status:      status,
		})
	})

	s.deps.Logger.Debugf(providers.TypeSource, "%s: %d contests in %s", PlatformHackerRank, len(records), container)
	return records
}

func cardLink(card *goquery.Selection) string {
	link := card.Find(hackerRankLinkSel).First()
	if link.Length() == 0 {
		return ""
	}
	href, ok := link.Attr("href")
	if !ok {
		href, _ = link.Attr("data-attr1")
	}
	return absoluteURL(hackerRankSiteURL, href)
}

// estimateDuration reads the human time caption of a card.
func estimateDuration(caption string) int64 {
	switch {
	case strings.Contains(caption, "Open Indefinitely") || caption == "Open":
		return 3650 * normalize.Day
	case strings.Contains(caption, "open till"):
		return 30 * normalize.Day
	default:
		return normalize.Week
	}
}
