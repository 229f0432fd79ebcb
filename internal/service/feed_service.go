package service

import (
	"context"

	"github.com/noteduco342/storyline-backend/internal/models"
	"github.com/noteduco342/storyline-backend/internal/repository"
)

// FeedService builds a user's feed at read time from the follow graph.
type FeedService struct {
	posts repository.PostRepositoryInterface
	users repository.UserRepositoryInterface
}

func NewFeedService(posts repository.PostRepositoryInterface, users repository.UserRepositoryInterface) *FeedService {
	return &FeedService{posts: posts, users: users}
}

// Feed returns published posts of everyone userID follows, newest first.
// Following nobody yields an empty feed.
func (s *FeedService) Feed(ctx context.Context, userID string) ([]models.Post, error) {
	if err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	posts, err := s.posts.ListFeed(ctx, userID, 0)
	return nonNil(posts), err
}
