package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/storyline-backend/internal/httpx"
	"github.com/noteduco342/storyline-backend/internal/service"
	"github.com/noteduco342/storyline-backend/internal/validation"
	"github.com/sirupsen/logrus"
)

type HistoryHandler struct {
	base
	history *service.HistoryService
}

func NewHistoryHandler(history *service.HistoryService, log logrus.FieldLogger) *HistoryHandler {
	return &HistoryHandler{base: base{log: log}, history: history}
}

type recordVisitRequest struct {
	PostID string `json:"post_id"`
}

func (h *HistoryHandler) RecordVisit(c *fiber.Ctx) error {
	a, ok := caller(c)
	if !ok {
		return unauthorized(c)
	}
	var req recordVisitRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}
	if !validation.ValidateID(req.PostID) {
		return httpx.BadRequest(c, "invalid_post_id", "Invalid post_id")
	}

	if err := h.history.RecordVisit(c.UserContext(), a, req.PostID); err != nil {
		return h.fail(c, "record_visit", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *HistoryHandler) ListHistory(c *fiber.Ctx) error {
	a, ok := caller(c)
	if !ok {
		return unauthorized(c)
	}

	entries, err := h.history.List(c.UserContext(), a.ID)
	if err != nil {
		return h.fail(c, "list_history", err)
	}
	return httpx.OK(c, fiber.Map{"posts": entries})
}

func (h *HistoryHandler) ClearHistory(c *fiber.Ctx) error {
	a, ok := caller(c)
	if !ok {
		return unauthorized(c)
	}

	removed, err := h.history.Clear(c.UserContext(), a.ID)
	if err != nil {
		return h.fail(c, "clear_history", err)
	}
	return httpx.OK(c, fiber.Map{"removed": removed})
}
