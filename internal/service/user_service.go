package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/noteduco342/storyline-backend/internal/apperr"
	"github.com/noteduco342/storyline-backend/internal/models"
	"github.com/noteduco342/storyline-backend/internal/repository"
	"github.com/noteduco342/storyline-backend/internal/validation"
	pkgerrors "github.com/pkg/errors"
)

const (
	maxBioLength    = 500
	maxAvatarLength = 512
)

type UserService struct {
	userRepo repository.UserRepositoryInterface
	now      func() time.Time
}

func NewUserService(userRepo repository.UserRepositoryInterface) *UserService {
	return &UserService{userRepo: userRepo, now: utcNow}
}

// SyncInput carries the identity claims of a verified access token.
type SyncInput struct {
	ID       string
	Username string
	Email    string
	Role     string
}

type UpdateProfileInput struct {
	Username string  `json:"username"`
	Bio      *string `json:"bio"`
	Avatar   *string `json:"avatar"`
}

// Sync creates the caller's profile on first sight and refreshes username and
// email afterwards. The role claim is honoured only at creation; later role
// changes go through UpdateRole.
func (s *UserService) Sync(ctx context.Context, in SyncInput) (*models.User, error) {
	if !validation.ValidateID(in.ID) {
		return nil, pkgerrors.Wrap(apperr.ErrValidation, "invalid user id")
	}
	username := validation.NormalizeUsername(in.Username)
	if !validation.ValidateUsername(username) {
		return nil, pkgerrors.Wrap(apperr.ErrValidation, "invalid username")
	}
	email := validation.NormalizeEmail(in.Email)
	if email != "" && !validation.ValidateEmail(email) {
		return nil, pkgerrors.Wrap(apperr.ErrValidation, "invalid email")
	}

	user, err := s.userRepo.FindByID(ctx, in.ID)
	if errors.Is(err, apperr.ErrNotFound) {
		role, ok := models.ParseRole(in.Role)
		if !ok {
			role = models.RoleReader
		}
		now := s.now()
		user = &models.User{
			ID:        in.ID,
			Username:  username,
			Email:     email,
			Role:      role,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}
	if err != nil {
		return nil, err
	}

	if user.Username == username && user.Email == email {
		return user, nil
	}
	return s.save(ctx, user, username, func(u *models.User) { u.Email = email })
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	username := user.Username
	if input.Username != "" {
		username = validation.NormalizeUsername(input.Username)
		if !validation.ValidateUsername(username) {
			return nil, pkgerrors.Wrap(apperr.ErrValidation, "invalid username")
		}
	}
	return s.save(ctx, user, username, func(u *models.User) {
		if input.Bio != nil {
			u.Bio = validation.TrimAndLimit(*input.Bio, maxBioLength)
		}
		if input.Avatar != nil {
			u.Avatar = validation.TrimAndLimit(*input.Avatar, maxAvatarLength)
		}
	})
}

// save persists profile changes. A new username is carried over to the author
// name stored on the user's posts in the same write.
func (s *UserService) save(ctx context.Context, user *models.User, username string, apply func(*models.User)) (*models.User, error) {
	renamed := username != user.Username
	user.Username = username
	apply(user)
	user.UpdatedAt = s.now()

	if err := s.userRepo.UpdateProfile(ctx, user, renamed); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.FindByID(ctx, strings.TrimSpace(id))
}

// StoredRole returns the role on the user's profile. ok is false until the
// user's first sync.
func (s *UserService) StoredRole(ctx context.Context, id string) (role models.Role, ok bool, err error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return user.Role, true, nil
}

func (s *UserService) ListUsers(ctx context.Context, actor Actor) ([]models.User, error) {
	if !actor.IsAdmin() {
		return nil, pkgerrors.Wrap(apperr.ErrForbidden, "admin role required")
	}
	users, err := s.userRepo.List(ctx)
	return nonNil(users), err
}

// UpdateRole changes a user's role. Only admins may do so, and not on themselves.
func (s *UserService) UpdateRole(ctx context.Context, actor Actor, id string, role string) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, pkgerrors.Wrap(apperr.ErrForbidden, "admin role required")
	}
	parsed, ok := models.ParseRole(role)
	if !ok {
		return nil, pkgerrors.Wrapf(apperr.ErrValidation, "unknown role %q", role)
	}
	if actor.ID == id {
		return nil, pkgerrors.Wrap(apperr.ErrInvalidOperation, "admins cannot change their own role")
	}
	if err := s.userRepo.UpdateRole(ctx, id, parsed); err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(ctx, id)
}

// DeleteUser removes a user and everything that references them.
func (s *UserService) DeleteUser(ctx context.Context, actor Actor, id string) error {
	if !actor.IsAdmin() {
		return pkgerrors.Wrap(apperr.ErrForbidden, "admin role required")
	}
	if actor.ID == id {
		return pkgerrors.Wrap(apperr.ErrInvalidOperation, "admins cannot delete themselves")
	}
	return s.userRepo.Delete(ctx, id)
}
