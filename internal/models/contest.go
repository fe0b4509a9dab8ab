package models

import (
	"fmt"
	"strings"
)

type ContestStatus string

const (
	StatusActive   ContestStatus = "ACTIVE"
	StatusUpcoming ContestStatus = "UPCOMING"
	StatusPast     ContestStatus = "PAST"
)

// ClassFilter selects which contests a listing returns.
type ClassFilter string

const (
	ClassAll      ClassFilter = "all"
	ClassActive   ClassFilter = "active"
	ClassUpcoming ClassFilter = "upcoming"
)

var ClassFilters = []ClassFilter{ClassActive, ClassUpcoming, ClassAll}

func ParseClassFilter(s string) (ClassFilter, error) {
	switch ClassFilter(strings.ToLower(strings.TrimSpace(s))) {
	case ClassAll:
		return ClassAll, nil
	case ClassActive:
		return ClassActive, nil
	case ClassUpcoming:
		return ClassUpcoming, nil
	}
	return "", fmt.Errorf("unknown contest class %q", s)
}

// Status returns the contest status a non-ALL filter selects.
func (c ClassFilter) Status() (ContestStatus, bool) {
	switch c {
	case ClassActive:
		return StatusActive, true
	case ClassUpcoming:
		return StatusUpcoming, true
	}
	return "", false
}

// ContestRecord is one normalized contest. StartTime and Duration are
// milliseconds and never negative.
type ContestRecord struct {
	ID          int64         `json:"id"`
	Key         string        `json:"key"`
	Name        string        `json:"name"`
	Platform    string        `json:"platform"`
	StartTime   int64         `json:"startTime"`
	Duration    int64         `json:"duration"`
	URL         string        `json:"url"`
	Description string        `json:"description"`
	Status      ContestStatus `json:"status"`
}

func (c ContestRecord) EndTime() int64 {
	return c.StartTime + c.Duration
}

// IsDegraded reports placeholder data with no usable duration.
func (c ContestRecord) IsDegraded() bool {
	return c.Duration == 0
}

func ContestKey(platform, nativeID string) string {
	return strings.ToLower(platform) + ":" + nativeID
}
