package service

import (
	"context"
	"time"

	"github.com/noteduco342/storyline-backend/internal/apperr"
	"github.com/noteduco342/storyline-backend/internal/models"
	"github.com/noteduco342/storyline-backend/internal/repository"
	pkgerrors "github.com/pkg/errors"
)

// Actor is the verified caller of an operation. The zero value is anonymous.
type Actor struct {
	ID   string
	Role models.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// Owns reports whether the actor may manage content owned by ownerID.
func (a Actor) Owns(ownerID string) bool {
	return a.IsAdmin() || (a.ID != "" && a.ID == ownerID)
}

func utcNow() time.Time {
	return time.Now().UTC()
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func requireUser(ctx context.Context, users repository.UserRepositoryInterface, id string) error {
	ok, err := users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return pkgerrors.Wrapf(apperr.ErrNotFound, "user %s", id)
	}
	return nil
}

// requireVisiblePost loads a post the viewer may see. Drafts of other
// authors are reported as missing.
func requireVisiblePost(ctx context.Context, posts repository.PostRepositoryInterface, id string, viewer Actor) (*models.Post, error) {
	post, err := posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.VisibleTo(viewer.ID, viewer.Role) {
		return nil, pkgerrors.Wrapf(apperr.ErrNotFound, "post %s", id)
	}
	return post, nil
}
