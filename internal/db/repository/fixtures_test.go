package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/vidtube/vidtube-api-go/internal/db/models"
)

func seedUser(t *testing.T, pool *pgxpool.Pool, username string) *models.User {
	t.Helper()
	user := models.NewUser(username, username+"@example.com", "User "+username, "https://cdn.example.com/"+username+".png")
	require.NoError(t, NewUserRepository(pool).Create(context.Background(), user))
	return user
}

func seedVideo(t *testing.T, pool *pgxpool.Pool, owner uuid.UUID, title string) *models.Video {
	t.Helper()
	video := models.NewVideo(owner, title, "about "+title,
		models.Asset{PublicID: "videos/" + title, URL: "https://cdn.example.com/videos/" + title + ".mp4"},
		models.Asset{PublicID: "thumbs/" + title, URL: "https://cdn.example.com/thumbs/" + title + ".jpg"},
		42.5,
	)
	require.NoError(t, NewVideoRepository(pool).Create(context.Background(), video))
	return video
}

func seedVideos(t *testing.T, pool *pgxpool.Pool, owner uuid.UUID, n int) []*models.Video {
	t.Helper()
	videos := make([]*models.Video, 0, n)
	for i := range n {
		videos = append(videos, seedVideo(t, pool, owner, fmt.Sprintf("video-%02d", i)))
	}
	return videos
}

func seedComment(t *testing.T, pool *pgxpool.Pool, videoID, owner uuid.UUID, content string) *models.Comment {
	t.Helper()
	comment := &models.Comment{VideoID: videoID, OwnerID: owner, Content: content}
	require.NoError(t, NewCommentRepository(pool).Create(context.Background(), comment))
	return comment
}
