package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/storyline-backend/internal/httpx"
	"github.com/noteduco342/storyline-backend/internal/metrics"
	"github.com/noteduco342/storyline-backend/internal/service"
	"github.com/sirupsen/logrus"
)

type FollowHandler struct {
	base
	followService *service.FollowService
}

func NewFollowHandler(followService *service.FollowService, log logrus.FieldLogger) *FollowHandler {
	return &FollowHandler{base: base{log: log}, followService: followService}
}

type followingResponse struct {
	Following bool `json:"following"`
}

// ToggleFollow follows or unfollows the user in the path.
func (h *FollowHandler) ToggleFollow(c *fiber.Ctx) error {
	a, ok := caller(c)
	if !ok {
		return unauthorized(c)
	}
	target, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}

	following, err := h.followService.ToggleFollow(c.UserContext(), a.ID, target)
	if err != nil {
		return h.fail(c, "toggle_follow", err)
	}
	metrics.RecordToggle(metrics.KindFollow, following)
	return httpx.OK(c, followingResponse{Following: following})
}

func (h *FollowHandler) IsFollowing(c *fiber.Ctx) error {
	a, ok := caller(c)
	if !ok {
		return unauthorized(c)
	}
	target, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}

	following, err := h.followService.IsFollowing(c.UserContext(), a.ID, target)
	if err != nil {
		return h.fail(c, "is_following", err)
	}
	return httpx.OK(c, followingResponse{Following: following})
}

func (h *FollowHandler) ListFollowing(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}

	users, err := h.followService.ListFollowing(c.UserContext(), id)
	if err != nil {
		return h.fail(c, "list_following", err)
	}
	return httpx.OK(c, fiber.Map{"users": users})
}

func (h *FollowHandler) ListFollowers(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}

	users, err := h.followService.ListFollowers(c.UserContext(), id)
	if err != nil {
		return h.fail(c, "list_followers", err)
	}
	return httpx.OK(c, fiber.Map{"users": users})
}
