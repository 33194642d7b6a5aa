package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/horizonit/backend/internal/models"
	"github.com/horizonit/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Without a configured database the repositories run in fallback mode:
// review reads serve the built-in defaults, everything else answers
// ErrStorageUnavailable.

func TestReviewRepository_FallbackMode(t *testing.T) {
	repo := repositories.NewReviewRepository(nil)
	ctx := context.Background()

	reviews, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.True(t, reviews[0].IsDefault)
	assert.True(t, reviews[0].Approved)

	err = repo.Insert(ctx, &models.Review{Name: "Jean", Rating: 5})
	assert.ErrorIs(t, err, models.ErrStorageUnavailable)

	assert.ErrorIs(t, repo.SetApproved(ctx, 1, true), models.ErrStorageUnavailable)
	assert.ErrorIs(t, repo.Delete(ctx, 1), models.ErrStorageUnavailable)

	_, err = repo.Stats(ctx)
	assert.ErrorIs(t, err, models.ErrStorageUnavailable)

	_, err = repo.CountRecentByIPHash(ctx, "abc", time.Now().Add(-time.Hour))
	assert.ErrorIs(t, err, models.ErrStorageUnavailable)
}

func TestLeadRepository_FallbackMode(t *testing.T) {
	repo := repositories.NewLeadRepository(nil)
	ctx := context.Background()

	_, err := repo.List(ctx, "")
	assert.ErrorIs(t, err, models.ErrStorageUnavailable)

	err = repo.Insert(ctx, &models.Lead{Name: "Marie", Email: "marie@example.com"})
	assert.ErrorIs(t, err, models.ErrStorageUnavailable)
}

func TestStatsRepository_FallbackMode(t *testing.T) {
	repo := repositories.NewStatsRepository(nil)
	ctx := context.Background()

	stats, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSiteStats.PCBuilt, stats.PCBuilt)

	count := 10
	err = repo.Upsert(ctx, &models.SiteStatsUpdate{PCBuilt: &count})
	assert.ErrorIs(t, err, models.ErrStorageUnavailable)
}
