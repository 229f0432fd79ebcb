package repository

import (
	"context"
	"time"

	"github.com/noteduco342/storyline-backend/internal/models"
	"gorm.io/gorm"
)

type FollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

func followKey(followerID, followingID string) pair {
	return pair{
		model: &models.Follow{},
		where: "follower_id = ? AND following_id = ?",
		args:  []interface{}{followerID, followingID},
	}
}

func (r *FollowRepository) Toggle(ctx context.Context, followerID, followingID string, at time.Time) (bool, error) {
	following, err := togglePair(ctx, r.db, followKey(followerID, followingID), &models.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   at,
	})
	return following, translateError(err, "toggle follow")
}

func (r *FollowRepository) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	ok, err := pairExists(r.db.WithContext(ctx), followKey(followerID, followingID))
	return ok, translateError(err, "check follow")
}

// ListFollowing returns the users userID follows, newest edge first, each with
// their published story count.
func (r *FollowRepository) ListFollowing(ctx context.Context, userID string) ([]models.FollowEntry, error) {
	var rows []models.FollowEntry
	err := r.db.WithContext(ctx).Raw(`
		SELECT u.id, u.username, u.avatar, u.bio, u.role, f.created_at AS followed_at,
			(SELECT COUNT(*) FROM posts p WHERE p.author_id = u.id AND p.published = ?) AS story_count
		FROM follows f
		JOIN users u ON u.id = f.following_id
		WHERE f.follower_id = ?
		ORDER BY f.created_at DESC, u.id DESC
	`, true, userID).Scan(&rows).Error
	return rows, translateError(err, "list following")
}

func (r *FollowRepository) ListFollowers(ctx context.Context, userID string) ([]models.FollowEntry, error) {
	var rows []models.FollowEntry
	err := r.db.WithContext(ctx).Raw(`
		SELECT u.id, u.username, u.avatar, u.bio, u.role, f.created_at AS followed_at
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.following_id = ?
		ORDER BY f.created_at DESC, u.id DESC
	`, userID).Scan(&rows).Error
	return rows, translateError(err, "list followers")
}

func (r *FollowRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("following_id = ?", userID).Count(&n).Error
	return n, translateError(err, "count followers")
}

func (r *FollowRepository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&n).Error
	return n, translateError(err, "count following")
}
