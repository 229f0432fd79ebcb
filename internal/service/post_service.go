package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/noteduco342/storyline-backend/internal/apperr"
	"github.com/noteduco342/storyline-backend/internal/models"
	"github.com/noteduco342/storyline-backend/internal/repository"
	"github.com/noteduco342/storyline-backend/internal/validation"
	pkgerrors "github.com/pkg/errors"
)

const (
	maxTitleLength    = 200
	maxExcerptLength  = 1000
	maxCategoryLength = 64
	maxReadTimeLength = 32
)

// PostInput is the writable part of a post. Nil or empty fields are left
// unchanged on update.
type PostInput struct {
	Title      string `json:"title"`
	Excerpt    string `json:"excerpt"`
	Content    string `json:"content"`
	Category   string `json:"category"`
	CoverImage string `json:"cover_image"`
	ReadTime   string `json:"read_time"`
	Published  *bool  `json:"published"`
}

type PostService struct {
	postRepo repository.PostRepositoryInterface
	userRepo repository.UserRepositoryInterface
	now      func() time.Time
	newID    func() string
}

func NewPostService(postRepo repository.PostRepositoryInterface, userRepo repository.UserRepositoryInterface) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo, now: utcNow, newID: uuid.NewString}
}

func (s *PostService) Create(ctx context.Context, actor Actor, input PostInput) (*models.Post, error) {
	if !actor.Role.CanPublish() {
		return nil, pkgerrors.Wrap(apperr.ErrForbidden, "only authors can publish")
	}
	title := validation.TrimAndLimit(input.Title, maxTitleLength)
	if title == "" {
		return nil, pkgerrors.Wrap(apperr.ErrValidation, "title is required")
	}
	author, err := s.userRepo.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	post := &models.Post{
		ID:         s.newID(),
		AuthorID:   author.ID,
		AuthorName: author.Username,
		Title:      title,
		Excerpt:    validation.TrimAndLimit(input.Excerpt, maxExcerptLength),
		Content:    input.Content,
		Category:   validation.TrimAndLimit(input.Category, maxCategoryLength),
		CoverImage: strings.TrimSpace(input.CoverImage),
		ReadTime:   validation.TrimAndLimit(input.ReadTime, maxReadTimeLength),
		Published:  input.Published != nil && *input.Published,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Update applies input to a post owned by the actor, or any post for admins.
func (s *PostService) Update(ctx context.Context, actor Actor, id string, input PostInput) (*models.Post, error) {
	post, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		title := validation.TrimAndLimit(input.Title, maxTitleLength)
		if title == "" {
			return nil, pkgerrors.Wrap(apperr.ErrValidation, "title is required")
		}
		post.Title = title
	}
	if input.Excerpt != "" {
		post.Excerpt = validation.TrimAndLimit(input.Excerpt, maxExcerptLength)
	}
	if input.Content != "" {
		post.Content = input.Content
	}
	if input.Category != "" {
		post.Category = validation.TrimAndLimit(input.Category, maxCategoryLength)
	}
	if input.CoverImage != "" {
		post.CoverImage = strings.TrimSpace(input.CoverImage)
	}
	if input.ReadTime != "" {
		post.ReadTime = validation.TrimAndLimit(input.ReadTime, maxReadTimeLength)
	}
	if input.Published != nil {
		post.Published = *input.Published
	}
	post.UpdatedAt = s.now()

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post together with its likes, bookmarks, history and comments.
func (s *PostService) Delete(ctx context.Context, actor Actor, id string) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, id)
}

func (s *PostService) Get(ctx context.Context, viewer Actor, id string) (*models.Post, error) {
	return requireVisiblePost(ctx, s.postRepo, id, viewer)
}

func (s *PostService) ListPublished(ctx context.Context, limit int) ([]models.Post, error) {
	posts, err := s.postRepo.ListPublished(ctx, limit)
	return nonNil(posts), err
}

// ListByAuthor includes drafts only when the viewer owns them or is an admin.
func (s *PostService) ListByAuthor(ctx context.Context, viewer Actor, authorID string) ([]models.Post, error) {
	if err := requireUser(ctx, s.userRepo, authorID); err != nil {
		return nil, err
	}
	posts, err := s.postRepo.ListByAuthor(ctx, authorID, viewer.Owns(authorID))
	return nonNil(posts), err
}

func (s *PostService) owned(ctx context.Context, actor Actor, id string) (*models.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(post.AuthorID) {
		return nil, pkgerrors.Wrap(apperr.ErrForbidden, "post belongs to another author")
	}
	return post, nil
}
