package sources

import (
	"context"

	"codefolio/internal/models"
)

// ContestSource lists contests of one platform already filtered by class.
type ContestSource interface {
	Platform() string
	FetchContests(ctx context.Context, class models.ClassFilter) ([]models.ContestRecord, error)
}

// ProfileSource fetches one user's stats on one platform.
type ProfileSource interface {
	Platform() models.Platform
	FetchProfile(ctx context.Context, username string) (*models.ProfileStats, error)
}
