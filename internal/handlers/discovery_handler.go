package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/storyline-backend/internal/httpx"
	"github.com/noteduco342/storyline-backend/internal/service"
	"github.com/sirupsen/logrus"
)

// DiscoveryHandler serves the read-side aggregates: search, categories,
// authors, feeds and profile stats.
type DiscoveryHandler struct {
	base
	discovery *service.DiscoveryService
	feed      *service.FeedService
	stats     *service.StatsService
}

func NewDiscoveryHandler(
	discovery *service.DiscoveryService,
	feed *service.FeedService,
	stats *service.StatsService,
	log logrus.FieldLogger,
) *DiscoveryHandler {
	return &DiscoveryHandler{base: base{log: log}, discovery: discovery, feed: feed, stats: stats}
}

func (h *DiscoveryHandler) Search(c *fiber.Ctx) error {
	posts, err := h.discovery.Search(c.UserContext(), c.Query("q"), c.Query("category"))
	if err != nil {
		return h.fail(c, "search", err)
	}
	return httpx.OK(c, fiber.Map{"posts": posts})
}

func (h *DiscoveryHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.discovery.Categories(c.UserContext())
	if err != nil {
		return h.fail(c, "list_categories", err)
	}
	return httpx.OK(c, fiber.Map{"categories": categories})
}

func (h *DiscoveryHandler) Authors(c *fiber.Ctx) error {
	authors, err := h.discovery.Authors(c.UserContext())
	if err != nil {
		return h.fail(c, "list_authors", err)
	}
	return httpx.OK(c, fiber.Map{"authors": authors})
}

// Feed returns published posts from everyone the caller follows.
func (h *DiscoveryHandler) Feed(c *fiber.Ctx) error {
	a, ok := caller(c)
	if !ok {
		return unauthorized(c)
	}

	posts, err := h.feed.Feed(c.UserContext(), a.ID)
	if err != nil {
		return h.fail(c, "feed", err)
	}
	return httpx.OK(c, fiber.Map{"posts": posts})
}

func (h *DiscoveryHandler) Stats(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}

	stats, err := h.stats.Stats(c.UserContext(), id)
	if err != nil {
		return h.fail(c, "stats", err)
	}
	return httpx.OK(c, stats)
}
