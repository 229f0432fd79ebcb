package repository

import (
	"context"
	"time"

	"github.com/noteduco342/storyline-backend/internal/models"
	"gorm.io/gorm"
)

type BookmarkRepository struct {
	db *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) *BookmarkRepository {
	return &BookmarkRepository{db: db}
}

func bookmarkKey(userID, postID string) pair {
	return pair{
		model: &models.Bookmark{},
		where: "user_id = ? AND post_id = ?",
		args:  []interface{}{userID, postID},
	}
}

func (r *BookmarkRepository) Toggle(ctx context.Context, userID, postID string, at time.Time) (bool, error) {
	bookmarked, err := togglePair(ctx, r.db, bookmarkKey(userID, postID), &models.Bookmark{
		UserID:    userID,
		PostID:    postID,
		CreatedAt: at,
	})
	return bookmarked, translateError(err, "toggle bookmark")
}

func (r *BookmarkRepository) Exists(ctx context.Context, userID, postID string) (bool, error) {
	ok, err := pairExists(r.db.WithContext(ctx), bookmarkKey(userID, postID))
	return ok, translateError(err, "check bookmark")
}

func (r *BookmarkRepository) CountByPost(ctx context.Context, postID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Bookmark{}).Where("post_id = ?", postID).Count(&n).Error
	return n, translateError(err, "count bookmarks")
}

// ListByUser returns bookmarked published posts, most recently bookmarked first.
func (r *BookmarkRepository) ListByUser(ctx context.Context, userID string) ([]models.BookmarkEntry, error) {
	var rows []models.BookmarkEntry
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.*, b.created_at AS bookmarked_at
		FROM bookmarks b
		JOIN posts p ON p.id = b.post_id
		WHERE b.user_id = ? AND p.published = ?
		ORDER BY b.created_at DESC, p.id DESC
	`, userID, true).Scan(&rows).Error
	return rows, translateError(err, "list bookmarks")
}
