package service

import (
	"context"

	"github.com/noteduco342/storyline-backend/internal/models"
	"github.com/noteduco342/storyline-backend/internal/repository"
	"golang.org/x/sync/errgroup"
)

type StatsService struct {
	users   repository.UserRepositoryInterface
	follows repository.FollowRepositoryInterface
	posts   repository.PostRepositoryInterface
	likes   repository.LikeRepositoryInterface
}

func NewStatsService(
	users repository.UserRepositoryInterface,
	follows repository.FollowRepositoryInterface,
	posts repository.PostRepositoryInterface,
	likes repository.LikeRepositoryInterface,
) *StatsService {
	return &StatsService{users: users, follows: follows, posts: posts, likes: likes}
}

// Stats computes the four profile counters concurrently. They are independent
// reads, so small skew between them is possible.
func (s *StatsService) Stats(ctx context.Context, userID string) (*models.UserStats, error) {
	if err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}

	var stats models.UserStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.Followers, err = s.follows.CountFollowers(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		stats.Following, err = s.follows.CountFollowing(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		stats.Posts, err = s.posts.CountPublishedByAuthor(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalLikes, err = s.likes.CountReceivedByAuthor(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}
