package service

import (
	"context"
	"time"

	"github.com/noteduco342/storyline-backend/internal/models"
	"github.com/noteduco342/storyline-backend/internal/repository"
)

// DefaultHistoryLimit is the number of entries a history listing returns.
const DefaultHistoryLimit = 50

type HistoryService struct {
	history repository.HistoryRepositoryInterface
	posts   repository.PostRepositoryInterface
	users   repository.UserRepositoryInterface
	limit   int
	now     func() time.Time
}

func NewHistoryService(
	history repository.HistoryRepositoryInterface,
	posts repository.PostRepositoryInterface,
	users repository.UserRepositoryInterface,
	limit int,
) *HistoryService {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &HistoryService{history: history, posts: posts, users: users, limit: limit, now: utcNow}
}

// RecordVisit stamps the latest visit of a post. Repeat visits move the post
// to the front of the history instead of adding a second entry.
func (s *HistoryService) RecordVisit(ctx context.Context, actor Actor, postID string) error {
	if err := requireUser(ctx, s.users, actor.ID); err != nil {
		return err
	}
	if _, err := requireVisiblePost(ctx, s.posts, postID, actor); err != nil {
		return err
	}
	return s.history.Record(ctx, actor.ID, postID, s.now())
}

func (s *HistoryService) List(ctx context.Context, userID string) ([]models.HistoryEntry, error) {
	if err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	rows, err := s.history.ListByUser(ctx, userID, s.limit)
	return nonNil(rows), err
}

// Clear removes every history entry of the user and returns how many were removed.
func (s *HistoryService) Clear(ctx context.Context, userID string) (int64, error) {
	return s.history.Clear(ctx, userID)
}
