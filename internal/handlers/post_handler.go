package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/storyline-backend/internal/httpx"
	"github.com/noteduco342/storyline-backend/internal/service"
	"github.com/sirupsen/logrus"
)

const (
	defaultPostLimit = 20
	maxPostLimit     = 100
)

type PostHandler struct {
	base
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService, log logrus.FieldLogger) *PostHandler {
	return &PostHandler{base: base{log: log}, postService: postService}
}

// ListPublished returns the newest published posts.
func (h *PostHandler) ListPublished(c *fiber.Ctx) error {
	limit := defaultPostLimit
	if l := c.QueryInt("limit", defaultPostLimit); l > 0 && l <= maxPostLimit {
		limit = l
	}

	posts, err := h.postService.ListPublished(c.UserContext(), limit)
	if err != nil {
		return h.fail(c, "list_posts", err)
	}
	return httpx.OK(c, fiber.Map{"posts": posts})
}

func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}

	post, err := h.postService.Get(c.UserContext(), actor(c), id)
	if err != nil {
		return h.fail(c, "get_post", err)
	}
	return httpx.OK(c, fiber.Map{"post": post})
}

func (h *PostHandler) ListByAuthor(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}

	posts, err := h.postService.ListByAuthor(c.UserContext(), actor(c), id)
	if err != nil {
		return h.fail(c, "list_author_posts", err)
	}
	return httpx.OK(c, fiber.Map{"posts": posts})
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	a, ok := caller(c)
	if !ok {
		return unauthorized(c)
	}
	var input service.PostInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	post, err := h.postService.Create(c.UserContext(), a, input)
	if err != nil {
		return h.fail(c, "create_post", err)
	}
	return httpx.Respond(c, fiber.StatusCreated, fiber.Map{"post": post})
}

func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	a, ok := caller(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var input service.PostInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	post, err := h.postService.Update(c.UserContext(), a, id, input)
	if err != nil {
		return h.fail(c, "update_post", err)
	}
	return httpx.OK(c, fiber.Map{"post": post})
}

func (h *PostHandler) DeletePost(c *fiber.Ctx) error {
	a, ok := caller(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}

	if err := h.postService.Delete(c.UserContext(), a, id); err != nil {
		return h.fail(c, "delete_post", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
