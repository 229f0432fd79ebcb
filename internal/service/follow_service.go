package service

import (
	"context"
	"time"

	"github.com/noteduco342/storyline-backend/internal/apperr"
	"github.com/noteduco342/storyline-backend/internal/models"
	"github.com/noteduco342/storyline-backend/internal/repository"
	pkgerrors "github.com/pkg/errors"
)

type FollowService struct {
	follows repository.FollowRepositoryInterface
	users   repository.UserRepositoryInterface
	now     func() time.Time
}

func NewFollowService(follows repository.FollowRepositoryInterface, users repository.UserRepositoryInterface) *FollowService {
	return &FollowService{follows: follows, users: users, now: utcNow}
}

// ToggleFollow adds the edge follower -> following when absent and removes it
// when present. It returns whether the edge exists afterwards.
func (s *FollowService) ToggleFollow(ctx context.Context, followerID, followingID string) (bool, error) {
	if followerID == followingID {
		return false, pkgerrors.Wrap(apperr.ErrInvalidOperation, "users cannot follow themselves")
	}
	if err := requireUser(ctx, s.users, followerID); err != nil {
		return false, err
	}
	if err := requireUser(ctx, s.users, followingID); err != nil {
		return false, err
	}
	return s.follows.Toggle(ctx, followerID, followingID, s.now())
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	if followerID == followingID {
		return false, nil
	}
	return s.follows.Exists(ctx, followerID, followingID)
}

func (s *FollowService) ListFollowing(ctx context.Context, userID string) ([]models.FollowEntry, error) {
	if err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	rows, err := s.follows.ListFollowing(ctx, userID)
	return nonNil(rows), err
}

func (s *FollowService) ListFollowers(ctx context.Context, userID string) ([]models.FollowEntry, error) {
	if err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	rows, err := s.follows.ListFollowers(ctx, userID)
	return nonNil(rows), err
}
