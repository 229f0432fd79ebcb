package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/storyline-backend/internal/httpx"
	"github.com/noteduco342/storyline-backend/internal/logging"
	"github.com/noteduco342/storyline-backend/internal/middleware"
	"github.com/noteduco342/storyline-backend/internal/service"
	"github.com/noteduco342/storyline-backend/internal/validation"
	"github.com/sirupsen/logrus"
)

// base carries what every handler needs to report failures.
type base struct {
	log logrus.FieldLogger
}

// fail writes err to the client. Server-side failures are logged with the
// operation name; client errors are not.
func (b base) fail(c *fiber.Ctx, op string, err error) error {
	if httpx.Status(err) >= fiber.StatusInternalServerError {
		logging.ForRequest(b.log, c).WithError(err).WithField("op", op).Error("request failed")
	}
	return httpx.FromError(c, err)
}

func actor(c *fiber.Ctx) service.Actor {
	return service.Actor{ID: middleware.UserID(c), Role: middleware.Role(c)}
}

// caller returns the authenticated actor. ok is false for anonymous requests.
func caller(c *fiber.Ctx) (service.Actor, bool) {
	a := actor(c)
	return a, a.ID != ""
}

func unauthorized(c *fiber.Ctx) error {
	return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
}

// pathID reads an id route parameter. ok is false when it is malformed.
func pathID(c *fiber.Ctx, name string) (string, bool) {
	id := c.Params(name)
	return id, validation.ValidateID(id)
}

func invalidID(c *fiber.Ctx, name string) error {
	return httpx.BadRequest(c, "invalid_"+name, "Invalid "+name)
}

type activeResponse struct {
	Active bool `json:"active"`
}

type countResponse struct {
	Count int64 `json:"count"`
}
