package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/storyline-backend/internal/httpx"
	"github.com/noteduco342/storyline-backend/internal/middleware"
	"github.com/noteduco342/storyline-backend/internal/models"
	"github.com/noteduco342/storyline-backend/internal/service"
	"github.com/sirupsen/logrus"
)

type UserHandler struct {
	base
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService, log logrus.FieldLogger) *UserHandler {
	return &UserHandler{base: base{log: log}, userService: userService}
}

// Sync creates or refreshes the caller's profile from the token claims.
func (h *UserHandler) Sync(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return unauthorized(c)
	}

	username, _ := c.Locals("username").(string)
	email, _ := c.Locals("email").(string)
	user, err := h.userService.Sync(c.UserContext(), service.SyncInput{
		ID:       userID,
		Username: username,
		Email:    email,
		Role:     string(middleware.Role(c)),
	})
	if err != nil {
		return h.fail(c, "sync_user", err)
	}
	return httpx.OK(c, fiber.Map{"user": user.ToResponse()})
}

// GetCurrentUser gets the authenticated user's profile
func (h *UserHandler) GetCurrentUser(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return unauthorized(c)
	}

	user, err := h.userService.GetUser(c.UserContext(), userID)
	if err != nil {
		return h.fail(c, "get_current_user", err)
	}

	// ETag allows clients to re-check frequently without re-downloading.
	etag := fmt.Sprintf("W/\"u-%s-%d\"", user.ID, user.UpdatedAt.UTC().UnixNano())
	c.Set(fiber.HeaderETag, etag)
	c.Set(fiber.HeaderCacheControl, "private, max-age=0, must-revalidate")

	if inm := strings.TrimSpace(c.Get(fiber.HeaderIfNoneMatch)); inm != "" {
		// Support quoted, weak, and multi-value headers.
		inmNorm := strings.Trim(strings.TrimPrefix(inm, "W/"), "\"")
		etagNorm := strings.Trim(strings.TrimPrefix(etag, "W/"), "\"")
		if strings.Contains(inmNorm, etagNorm) {
			return c.SendStatus(fiber.StatusNotModified)
		}
	}

	return httpx.OK(c, fiber.Map{"user": user.ToResponse()})
}

// UpdateProfile updates user profile information
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return unauthorized(c)
	}

	var input service.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	user, err := h.userService.UpdateProfile(c.UserContext(), userID, input)
	if err != nil {
		return h.fail(c, "update_profile", err)
	}
	return httpx.OK(c, fiber.Map{"user": user.ToResponse()})
}

// GetUser returns a public profile. Email is only shown to the user themself.
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}

	user, err := h.userService.GetUser(c.UserContext(), id)
	if err != nil {
		return h.fail(c, "get_user", err)
	}
	if middleware.UserID(c) == user.ID {
		return httpx.OK(c, fiber.Map{"user": user.ToResponse()})
	}
	return httpx.OK(c, fiber.Map{"user": user.ToPublic()})
}

func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.ListUsers(c.UserContext(), actor(c))
	if err != nil {
		return h.fail(c, "list_users", err)
	}

	out := make([]models.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToResponse())
	}
	return httpx.OK(c, fiber.Map{"users": out})
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var req updateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	user, err := h.userService.UpdateRole(c.UserContext(), actor(c), id, req.Role)
	if err != nil {
		return h.fail(c, "update_role", err)
	}
	return httpx.OK(c, fiber.Map{"user": user.ToResponse()})
}

func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	if err := h.userService.DeleteUser(c.UserContext(), actor(c), id); err != nil {
		return h.fail(c, "delete_user", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
