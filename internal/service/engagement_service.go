package service

import (
	"context"
	"time"

	"github.com/noteduco342/storyline-backend/internal/models"
	"github.com/noteduco342/storyline-backend/internal/repository"
)

// EngagementService owns likes and bookmarks. Both are toggle sets keyed by
// (user, post); counts are always derived from the stored records.
type EngagementService struct {
	likes     repository.LikeRepositoryInterface
	bookmarks repository.BookmarkRepositoryInterface
	posts     repository.PostRepositoryInterface
	users     repository.UserRepositoryInterface
	now       func() time.Time
}

func NewEngagementService(
	likes repository.LikeRepositoryInterface,
	bookmarks repository.BookmarkRepositoryInterface,
	posts repository.PostRepositoryInterface,
	users repository.UserRepositoryInterface,
) *EngagementService {
	return &EngagementService{
		likes:     likes,
		bookmarks: bookmarks,
		posts:     posts,
		users:     users,
		now:       utcNow,
	}
}

func (s *EngagementService) ToggleLike(ctx context.Context, actor Actor, postID string) (bool, error) {
	if err := s.checkTarget(ctx, actor, postID); err != nil {
		return false, err
	}
	return s.likes.Toggle(ctx, postID, actor.ID, s.now())
}

func (s *EngagementService) IsLiked(ctx context.Context, userID, postID string) (bool, error) {
	return s.likes.Exists(ctx, postID, userID)
}

func (s *EngagementService) LikeCount(ctx context.Context, viewer Actor, postID string) (int64, error) {
	if _, err := requireVisiblePost(ctx, s.posts, postID, viewer); err != nil {
		return 0, err
	}
	return s.likes.CountByPost(ctx, postID)
}

func (s *EngagementService) ToggleBookmark(ctx context.Context, actor Actor, postID string) (bool, error) {
	if err := s.checkTarget(ctx, actor, postID); err != nil {
		return false, err
	}
	return s.bookmarks.Toggle(ctx, actor.ID, postID, s.now())
}

func (s *EngagementService) IsBookmarked(ctx context.Context, userID, postID string) (bool, error) {
	return s.bookmarks.Exists(ctx, userID, postID)
}

func (s *EngagementService) BookmarkCount(ctx context.Context, viewer Actor, postID string) (int64, error) {
	if _, err := requireVisiblePost(ctx, s.posts, postID, viewer); err != nil {
		return 0, err
	}
	return s.bookmarks.CountByPost(ctx, postID)
}

func (s *EngagementService) ListBookmarks(ctx context.Context, userID string) ([]models.BookmarkEntry, error) {
	if err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	rows, err := s.bookmarks.ListByUser(ctx, userID)
	return nonNil(rows), err
}

func (s *EngagementService) checkTarget(ctx context.Context, actor Actor, postID string) error {
	if err := requireUser(ctx, s.users, actor.ID); err != nil {
		return err
	}
	_, err := requireVisiblePost(ctx, s.posts, postID, actor)
	return err
}
