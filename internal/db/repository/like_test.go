package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidtube/vidtube-api-go/internal/db/models"
	"github.com/vidtube/vidtube-api-go/internal/db/testutil"
)

func TestLikeRepository_Toggle(t *testing.T) {
	td := testutil.SetupTestDatabase(t)
	defer td.Cleanup(t)

	repo := NewLikeRepository(td.Pool)
	ctx := context.Background()

	t.Run("double toggle restores the original state", func(t *testing.T) {
		td.TruncateTables(t)
		owner := seedUser(t, td.Pool, "alice")
		fan := seedUser(t, td.Pool, "bob")
		target := models.VideoTarget(seedVideo(t, td.Pool, owner.ID, "intro").ID)

		liked, err := repo.Toggle(ctx, target, fan.ID)
		require.NoError(t, err)
		assert.True(t, liked)

		n, err := repo.Count(ctx, target)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		liked, err = repo.Toggle(ctx, target, fan.ID)
		require.NoError(t, err)
		assert.False(t, liked)

		n, err = repo.Count(ctx, target)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("likes on different kinds are independent", func(t *testing.T) {
		td.TruncateTables(t)
		fan := seedUser(t, td.Pool, "bob")
		id := uuid.New()

		_, err := repo.Toggle(ctx, models.VideoTarget(id), fan.ID)
		require.NoError(t, err)
		liked, err := repo.Toggle(ctx, models.TweetTarget(id), fan.ID)
		require.NoError(t, err)
		assert.True(t, liked)

		n, err := repo.Count(ctx, models.TweetTarget(id))
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}

func TestLikeRepository_TargetExists(t *testing.T) {
	td := testutil.SetupTestDatabase(t)
	defer td.Cleanup(t)

	repo := NewLikeRepository(td.Pool)
	ctx := context.Background()
	td.TruncateTables(t)

	owner := seedUser(t, td.Pool, "alice")
	video := seedVideo(t, td.Pool, owner.ID, "intro")
	comment := seedComment(t, td.Pool, video.ID, owner.ID, "hi")

	ok, err := repo.TargetExists(ctx, models.VideoTarget(video.ID))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.TargetExists(ctx, models.CommentTarget(comment.ID))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.TargetExists(ctx, models.TweetTarget(video.ID))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.TargetExists(ctx, models.LikeTarget{Kind: "playlist", ID: video.ID})
	assert.Error(t, err)
}

func TestLikeRepository_LikedVideos(t *testing.T) {
	td := testutil.SetupTestDatabase(t)
	defer td.Cleanup(t)

	repo := NewLikeRepository(td.Pool)
	videos := NewVideoRepository(td.Pool)
	ctx := context.Background()
	td.TruncateTables(t)

	owner := seedUser(t, td.Pool, "alice")
	fan := seedUser(t, td.Pool, "bob")
	vs := seedVideos(t, td.Pool, owner.ID, 3)

	for _, v := range vs[:2] {
		_, err := repo.Toggle(ctx, models.VideoTarget(v.ID), fan.ID)
		require.NoError(t, err)
	}
	_, err := videos.TogglePublished(ctx, vs[1].ID)
	require.NoError(t, err)

	liked, err := repo.LikedVideos(ctx, fan.ID)
	require.NoError(t, err)
	require.Len(t, liked, 1, "unpublished videos of other channels are hidden")
	assert.Equal(t, vs[0].ID, liked[0].Video.ID)
	assert.True(t, liked[0].Video.IsLiked)
	assert.NotEqual(t, uuid.Nil, liked[0].ID)
	assert.False(t, liked[0].LikedAt.IsZero())
}
