package store

import (
	"context"
	"testing"
	"time"

	"codefolio/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixtureTime = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func fixtureProfile(userID string) *models.Profile {
	p := models.NewProfile(userID, userID+"@example.com", "User "+userID, fixtureTime)
	p.SetUsername(models.PlatformCodeforces, "tourist")
	cf := p.Stats[models.PlatformCodeforces]
	cf.TotalSolved = 42
	cf.Rating = 3979
	cf.SolvedByTopic["math"] = 7
	cf.SubmissionCalendar["2024-03-09"] = 2
	cf.Awards = append(cf.Awards, models.Award{Name: "Max Rating", Value: 3979})
	return p
}

// runContract checks behaviour every ProfileStoreInterface implementation shares.
func runContract(t *testing.T, newStore func(t *testing.T) ProfileStoreInterface) {
	ctx := context.Background()

	t.Run("missing profile", func(t *testing.T) {
		s := newStore(t)
		_, err := s.FindByUserID(ctx, "ghost")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, s.Delete(ctx, "ghost"), ErrNotFound)
	})

	t.Run("save and find", func(t *testing.T) {
		s := newStore(t)
		in := fixtureProfile("u1")
		require.NoError(t, s.Save(ctx, in))

		got, err := s.FindByUserID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, in.ID, got.ID)
		assert.Equal(t, in.Email, got.Email)
		assert.Equal(t, "tourist", got.Username(models.PlatformCodeforces))
		assert.True(t, in.LastUpdated.Equal(got.LastUpdated))
		assert.Equal(t, in.Stats[models.PlatformCodeforces], got.Stats[models.PlatformCodeforces])
		assert.Len(t, got.Stats, len(models.Platforms))
	})

	t.Run("save overwrites", func(t *testing.T) {
		s := newStore(t)
		p := fixtureProfile("u1")
		require.NoError(t, s.Save(ctx, p))

		p.Name = "Renamed"
		require.NoError(t, s.Save(ctx, p))

		got, err := s.FindByUserID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Name)
		n, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("returned copies are detached", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Save(ctx, fixtureProfile("u1")))

		got, err := s.FindByUserID(ctx, "u1")
		require.NoError(t, err)
		got.Stats[models.PlatformCodeforces].TotalSolved = 0

		again, err := s.FindByUserID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, 42, again.Stats[models.PlatformCodeforces].TotalSolved)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Save(ctx, fixtureProfile("u1")))
		require.NoError(t, s.Save(ctx, fixtureProfile("u2")))

		require.NoError(t, s.Delete(ctx, "u1"))

		_, err := s.FindByUserID(ctx, "u1")
		assert.ErrorIs(t, err, ErrNotFound)
		n, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("rejects profile without user id", func(t *testing.T) {
		s := newStore(t)
		assert.Error(t, s.Save(ctx, &models.Profile{}))
		assert.Error(t, s.Save(ctx, nil))
	})
}
