package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/storyline-backend/internal/httpx"
	"github.com/noteduco342/storyline-backend/internal/metrics"
	"github.com/noteduco342/storyline-backend/internal/service"
	"github.com/sirupsen/logrus"
)

type EngagementHandler struct {
	base
	engagement *service.EngagementService
}

func NewEngagementHandler(engagement *service.EngagementService, log logrus.FieldLogger) *EngagementHandler {
	return &EngagementHandler{base: base{log: log}, engagement: engagement}
}

type toggleFunc func(ctx context.Context, a service.Actor, postID string) (bool, error)

type checkFunc func(ctx context.Context, userID, postID string) (bool, error)

type countFunc func(ctx context.Context, viewer service.Actor, postID string) (int64, error)

func (h *EngagementHandler) toggle(c *fiber.Ctx, op, kind string, fn toggleFunc) error {
	a, ok := caller(c)
	if !ok {
		return unauthorized(c)
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}

	active, err := fn(c.UserContext(), a, postID)
	if err != nil {
		return h.fail(c, op, err)
	}
	metrics.RecordToggle(kind, active)
	return httpx.OK(c, activeResponse{Active: active})
}

func (h *EngagementHandler) check(c *fiber.Ctx, op string, fn checkFunc) error {
	a, ok := caller(c)
	if !ok {
		return unauthorized(c)
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}

	active, err := fn(c.UserContext(), a.ID, postID)
	if err != nil {
		return h.fail(c, op, err)
	}
	return httpx.OK(c, activeResponse{Active: active})
}

func (h *EngagementHandler) count(c *fiber.Ctx, op string, fn countFunc) error {
	postID, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}

	n, err := fn(c.UserContext(), actor(c), postID)
	if err != nil {
		return h.fail(c, op, err)
	}
	return httpx.OK(c, countResponse{Count: n})
}

func (h *EngagementHandler) ToggleLike(c *fiber.Ctx) error {
	return h.toggle(c, "toggle_like", metrics.KindLike, h.engagement.ToggleLike)
}

func (h *EngagementHandler) IsLiked(c *fiber.Ctx) error {
	return h.check(c, "is_liked", h.engagement.IsLiked)
}

func (h *EngagementHandler) LikeCount(c *fiber.Ctx) error {
	return h.count(c, "like_count", h.engagement.LikeCount)
}

func (h *EngagementHandler) ToggleBookmark(c *fiber.Ctx) error {
	return h.toggle(c, "toggle_bookmark", metrics.KindBookmark, h.engagement.ToggleBookmark)
}

func (h *EngagementHandler) IsBookmarked(c *fiber.Ctx) error {
	return h.check(c, "is_bookmarked", h.engagement.IsBookmarked)
}

func (h *EngagementHandler) BookmarkCount(c *fiber.Ctx) error {
	return h.count(c, "bookmark_count", h.engagement.BookmarkCount)
}

// ListBookmarks returns the caller's bookmarked posts, latest bookmark first.
func (h *EngagementHandler) ListBookmarks(c *fiber.Ctx) error {
	a, ok := caller(c)
	if !ok {
		return unauthorized(c)
	}

	posts, err := h.engagement.ListBookmarks(c.UserContext(), a.ID)
	if err != nil {
		return h.fail(c, "list_bookmarks", err)
	}
	return httpx.OK(c, fiber.Map{"posts": posts})
}
