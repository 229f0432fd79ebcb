package service

import (
	"context"

	"github.com/noteduco342/storyline-backend/internal/models"
	"github.com/noteduco342/storyline-backend/internal/repository"
	"github.com/noteduco342/storyline-backend/internal/validation"
)

type DiscoveryService struct {
	posts repository.PostRepositoryInterface
	users repository.UserRepositoryInterface
	limit int
}

func NewDiscoveryService(posts repository.PostRepositoryInterface, users repository.UserRepositoryInterface, limit int) *DiscoveryService {
	return &DiscoveryService{posts: posts, users: users, limit: limit}
}

// Search returns published posts, newest first. An empty query matches every
// post; an empty or "All" category applies no category filter.
func (s *DiscoveryService) Search(ctx context.Context, query, category string) ([]models.Post, error) {
	posts, err := s.posts.Search(ctx, repository.PostQuery{
		Text:     validation.NormalizeQuery(query),
		Category: validation.NormalizeCategory(category),
		Limit:    s.limit,
	})
	return nonNil(posts), err
}

func (s *DiscoveryService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.posts.Categories(ctx)
	return nonNil(categories), err
}

// Authors lists users who can publish, most followed first.
func (s *DiscoveryService) Authors(ctx context.Context) ([]models.AuthorEntry, error) {
	authors, err := s.users.ListAuthors(ctx)
	return nonNil(authors), err
}
