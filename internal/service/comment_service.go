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

type CommentService struct {
	comments  repository.CommentRepositoryInterface
	posts     repository.PostRepositoryInterface
	users     repository.UserRepositoryInterface
	maxLength int
	now       func() time.Time
	newID     func() string
}

func NewCommentService(
	comments repository.CommentRepositoryInterface,
	posts repository.PostRepositoryInterface,
	users repository.UserRepositoryInterface,
	maxLength int,
) *CommentService {
	return &CommentService{
		comments:  comments,
		posts:     posts,
		users:     users,
		maxLength: maxLength,
		now:       utcNow,
		newID:     uuid.NewString,
	}
}

// Append adds a comment and returns it with the commenter's name and avatar.
func (s *CommentService) Append(ctx context.Context, actor Actor, postID, content string) (*models.CommentEntry, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, pkgerrors.Wrap(apperr.ErrValidation, "comment content is empty")
	}
	if s.maxLength > 0 && validation.Length(content) > s.maxLength {
		return nil, pkgerrors.Wrapf(apperr.ErrValidation, "comment exceeds %d characters", s.maxLength)
	}
	if err := requireUser(ctx, s.users, actor.ID); err != nil {
		return nil, err
	}
	if _, err := requireVisiblePost(ctx, s.posts, postID, actor); err != nil {
		return nil, err
	}

	return s.comments.Create(ctx, &models.Comment{
		ID:        s.newID(),
		PostID:    postID,
		UserID:    actor.ID,
		Content:   content,
		CreatedAt: s.now(),
	})
}

// List returns the comments of a post, newest first.
func (s *CommentService) List(ctx context.Context, viewer Actor, postID string) ([]models.CommentEntry, error) {
	if _, err := requireVisiblePost(ctx, s.posts, postID, viewer); err != nil {
		return nil, err
	}
	rows, err := s.comments.ListByPost(ctx, postID)
	return nonNil(rows), err
}
