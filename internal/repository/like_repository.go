package repository

import (
	"context"
	"time"

	"github.com/noteduco342/storyline-backend/internal/models"
	"gorm.io/gorm"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

func likeKey(postID, userID string) pair {
	return pair{
		model: &models.Like{},
		where: "post_id = ? AND user_id = ?",
		args:  []interface{}{postID, userID},
	}
}

func (r *LikeRepository) Toggle(ctx context.Context, postID, userID string, at time.Time) (bool, error) {
	liked, err := togglePair(ctx, r.db, likeKey(postID, userID), &models.Like{
		PostID:    postID,
		UserID:    userID,
		CreatedAt: at,
	})
	return liked, translateError(err, "toggle like")
}

func (r *LikeRepository) Exists(ctx context.Context, postID, userID string) (bool, error) {
	ok, err := pairExists(r.db.WithContext(ctx), likeKey(postID, userID))
	return ok, translateError(err, "check like")
}

func (r *LikeRepository) CountByPost(ctx context.Context, postID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ?", postID).Count(&n).Error
	return n, translateError(err, "count likes")
}

// CountReceivedByAuthor counts likes across every post authored by authorID.
func (r *LikeRepository) CountReceivedByAuthor(ctx context.Context, authorID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("likes AS l").
		Joins("JOIN posts p ON p.id = l.post_id").
		Where("p.author_id = ?", authorID).
		Count(&n).Error
	return n, translateError(err, "count received likes")
}
