package service

import (
	"context"
	"testing"
	"time"

	"github.com/noteduco342/storyline-backend/internal/apperr"
	"github.com/noteduco342/storyline-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngagementService(f *fixture) *EngagementService {
	s := NewEngagementService(f.likes, f.bookmarks, f.posts, f.users)
	s.now = f.tick
	return s
}

func TestToggleLike(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	author := f.user("bob", "bob", models.RoleAuthor)
	reader := f.user("alice", "alice", models.RoleReader)
	other := f.user("carol", "carol", models.RoleReader)
	f.post("p1", "bob", "Tech", true, 0)
	s := newEngagementService(f)

	liked, err := s.ToggleLike(ctx, reader, "p1")
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = s.ToggleLike(ctx, other, "p1")
	require.NoError(t, err)
	assert.True(t, liked)

	count, err := s.LikeCount(ctx, Actor{}, "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	liked, err = s.ToggleLike(ctx, reader, "p1")
	require.NoError(t, err)
	assert.False(t, liked)

	count, err = s.LikeCount(ctx, author, "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	isLiked, err := s.IsLiked(ctx, "alice", "p1")
	require.NoError(t, err)
	assert.False(t, isLiked)

	isLiked, err = s.IsLiked(ctx, "carol", "p1")
	require.NoError(t, err)
	assert.True(t, isLiked)
}

func TestEngagementTargets(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		actor   Actor
		postID  string
		wantErr error
	}{
		{"Unknown user", Actor{ID: "ghost", Role: models.RoleReader}, "pub", apperr.ErrNotFound},
		{"Unknown post", Actor{ID: "alice", Role: models.RoleReader}, "missing", apperr.ErrNotFound},
		{"Draft of another author", Actor{ID: "alice", Role: models.RoleReader}, "draft", apperr.ErrNotFound},
		{"Own draft", Actor{ID: "bob", Role: models.RoleAuthor}, "draft", nil},
		{"Admin on draft", Actor{ID: "root", Role: models.RoleAdmin}, "draft", nil},
		{"Published post", Actor{ID: "alice", Role: models.RoleReader}, "pub", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.user("alice", "alice", models.RoleReader)
			f.user("bob", "bob", models.RoleAuthor)
			f.user("root", "root", models.RoleAdmin)
			f.post("pub", "bob", "Tech", true, 0)
			f.post("draft", "bob", "Tech", false, time.Minute)
			s := newEngagementService(f)

			_, likeErr := s.ToggleLike(ctx, tt.actor, tt.postID)
			_, markErr := s.ToggleBookmark(ctx, tt.actor, tt.postID)
			if tt.wantErr == nil {
				assert.NoError(t, likeErr)
				assert.NoError(t, markErr)
				return
			}
			assert.ErrorIs(t, likeErr, tt.wantErr)
			assert.ErrorIs(t, markErr, tt.wantErr)
			assert.Empty(t, f.likes.likes)
			assert.Empty(t, f.bookmarks.marks)
		})
	}
}

func TestLikeCountHidesDrafts(t *testing.T) {
	f := newFixture()
	f.user("bob", "bob", models.RoleAuthor)
	f.post("draft", "bob", "", false, 0)
	s := newEngagementService(f)

	_, err := s.LikeCount(context.Background(), Actor{ID: "alice", Role: models.RoleReader}, "draft")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = s.BookmarkCount(context.Background(), Actor{}, "draft")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestBookmarks(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	reader := f.user("alice", "alice", models.RoleReader)
	f.user("bob", "bob", models.RoleAuthor)
	f.post("p1", "bob", "Tech", true, 0)
	f.post("p2", "bob", "Life", true, time.Hour)
	s := newEngagementService(f)

	for _, id := range []string{"p1", "p2"} {
		marked, err := s.ToggleBookmark(ctx, reader, id)
		require.NoError(t, err)
		assert.True(t, marked)
	}

	list, err := s.ListBookmarks(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "p2", list[0].ID, "latest bookmark first")
	assert.Equal(t, "p1", list[1].ID)

	count, err := s.BookmarkCount(ctx, reader, "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	marked, err := s.ToggleBookmark(ctx, reader, "p1")
	require.NoError(t, err)
	assert.False(t, marked)

	isMarked, err := s.IsBookmarked(ctx, "alice", "p1")
	require.NoError(t, err)
	assert.False(t, isMarked)

	list, err = s.ListBookmarks(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "p2", list[0].ID)

	_, err = s.ListBookmarks(ctx, "ghost")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
