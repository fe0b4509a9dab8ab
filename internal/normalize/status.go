package normalize

import (
	"strings"

	"codefolio/internal/models"
)

// Matches reports whether a contest with the given status belongs to class.
// ClassAll matches every status.
func Matches(status models.ContestStatus, class models.ClassFilter) bool {
	want, ok := class.Status()
	if !ok {
		return true
	}
	return status == want
}

// ClassifyByPhase maps an explicit phase enum.
func ClassifyByPhase(phase string) models.ContestStatus {
	switch phase {
	case "CODING":
		return models.StatusActive
	case "BEFORE":
		return models.StatusUpcoming
	}
	return models.StatusPast
}

// ClassifyByWindow compares now against [start, start+duration].
func ClassifyByWindow(start, duration, now int64) models.ContestStatus {
	switch {
	case start > now:
		return models.StatusUpcoming
	case now <= start+duration:
		return models.StatusActive
	}
	return models.StatusPast
}

// ClassifyByText applies the free-text heuristic: a status mentioning
// "active" or "ongoing" is live, anything else is unknown.
func ClassifyByText(status string) (models.ContestStatus, bool) {
	s := strings.ToLower(status)
	if strings.Contains(s, "active") || strings.Contains(s, "ongoing") {
		return models.StatusActive, true
	}
	return "", false
}
