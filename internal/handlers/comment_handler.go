package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/storyline-backend/internal/httpx"
	"github.com/noteduco342/storyline-backend/internal/service"
	"github.com/sirupsen/logrus"
)

type CommentHandler struct {
	base
	comments *service.CommentService
}

func NewCommentHandler(comments *service.CommentService, log logrus.FieldLogger) *CommentHandler {
	return &CommentHandler{base: base{log: log}, comments: comments}
}

type addCommentRequest struct {
	Content string `json:"content"`
}

func (h *CommentHandler) AddComment(c *fiber.Ctx) error {
	a, ok := caller(c)
	if !ok {
		return unauthorized(c)
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var req addCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	comment, err := h.comments.Append(c.UserContext(), a, postID, req.Content)
	if err != nil {
		return h.fail(c, "add_comment", err)
	}
	return httpx.Respond(c, fiber.StatusCreated, fiber.Map{"comment": comment})
}

func (h *CommentHandler) ListComments(c *fiber.Ctx) error {
	postID, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}

	comments, err := h.comments.List(c.UserContext(), actor(c), postID)
	if err != nil {
		return h.fail(c, "list_comments", err)
	}
	return httpx.OK(c, fiber.Map{"comments": comments})
}
