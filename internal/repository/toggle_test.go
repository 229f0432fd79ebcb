package repository

import (
	"context"
	"testing"

	"github.com/noteduco342/storyline-backend/internal/models"
	"github.com/noteduco342/storyline-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// insertLikeFirst registers a create hook that writes the same like through
// the running transaction just before the toggle's own insert, the way a
// concurrent toggle would on a database that does not serialise writers.
func insertLikeFirst(t *testing.T, db *gorm.DB) *int {
	t.Helper()
	fired := 0
	err := db.Callback().Create().Before("gorm:create").Register("test:insert_like_first", func(tx *gorm.DB) {
		like, ok := tx.Statement.Dest.(*models.Like)
		if !ok || fired > 0 {
			return
		}
		fired++
		_ = tx.AddError(tx.Session(&gorm.Session{NewDB: true}).
			Exec("INSERT INTO likes (post_id, user_id, created_at) VALUES (?, ?, ?)", like.PostID, like.UserID, like.CreatedAt).
			Error)
	})
	require.NoError(t, err)
	return &fired
}

func TestToggleRemovesPairInsertedConcurrently(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.h.CreateTestUser("author", "", models.RoleAuthor)
	testutil.Seed(t, f.db, author, f.h.CreateTestUser("reader", "", models.RoleReader), f.h.CreateTestPost("p1", author, true, 0))
	fired := insertLikeFirst(t, f.db)

	liked, err := f.likes.Toggle(ctx, "p1", "reader", f.h.At(0))
	require.NoError(t, err)
	assert.Equal(t, 1, *fired)
	assert.False(t, liked, "the earlier insert wins and this toggle removes it")

	n, err := f.likes.CountByPost(ctx, "p1")
	require.NoError(t, err)
	assert.Zero(t, n)

	liked, err = f.likes.Toggle(ctx, "p1", "reader", f.h.At(0))
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestToggleOutcomes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.h.CreateTestUser("author", "", models.RoleAuthor)
	testutil.Seed(t, f.db, author, f.h.CreateTestUser("reader", "", models.RoleReader), f.h.CreateTestPost("p1", author, true, 0))

	for i, want := range []bool{true, false, true} {
		active, err := togglePair(ctx, f.db, likeKey("p1", "reader"), &models.Like{PostID: "p1", UserID: "reader", CreatedAt: f.h.At(0)})
		require.NoError(t, err)
		assert.Equalf(t, want, active, "call %d", i+1)

		present, err := pairExists(f.db, likeKey("p1", "reader"))
		require.NoError(t, err)
		assert.Equal(t, want, present)
	}
}
