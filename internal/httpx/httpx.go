package httpx

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/storyline-backend/internal/apperr"
	"github.com/vmihailenco/msgpack/v5"
)

// MIMEMsgpack is the content type served to clients that ask for it.
const MIMEMsgpack = "application/msgpack"

type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

func RequestID(c *fiber.Ctx) string {
	if v := c.Locals("requestid"); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Respond writes v with the given status as msgpack when the client accepts
// it, and as JSON otherwise. Field names follow the json tags either way.
func Respond(c *fiber.Ctx, status int, v interface{}) error {
	if c.Accepts(fiber.MIMEApplicationJSON, MIMEMsgpack) != MIMEMsgpack {
		return c.Status(status).JSON(v)
	}
	body, err := encodeMsgpack(v)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, MIMEMsgpack)
	return c.Status(status).Send(body)
}

func OK(c *fiber.Ctx, v interface{}) error {
	return Respond(c, fiber.StatusOK, v)
}

func encodeMsgpack(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	enc.UseCompactInts(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func Error(c *fiber.Ctx, status int, code string, message string) error {
	if message == "" {
		message = "Request failed"
	}
	return Respond(c, status, ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: RequestID(c),
	})
}

func BadRequest(c *fiber.Ctx, code string, message string) error {
	return Error(c, fiber.StatusBadRequest, code, message)
}

func Unauthorized(c *fiber.Ctx, code string, message string) error {
	return Error(c, fiber.StatusUnauthorized, code, message)
}

func Forbidden(c *fiber.Ctx, code string, message string) error {
	return Error(c, fiber.StatusForbidden, code, message)
}

func Internal(c *fiber.Ctx, code string) error {
	return Error(c, fiber.StatusInternalServerError, code, "Internal server error")
}

// Status maps an engine error onto an HTTP status code.
func Status(err error) int {
	switch apperr.Code(err) {
	case "not_found":
		return fiber.StatusNotFound
	case "invalid_operation":
		return fiber.StatusBadRequest
	case "validation_failed":
		return fiber.StatusUnprocessableEntity
	case "forbidden":
		return fiber.StatusForbidden
	case "conflict":
		return fiber.StatusConflict
	case "storage_unavailable":
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// FromError writes the error body for err. Client errors carry the wrapped
// message; anything unexpected is reported without detail.
func FromError(c *fiber.Ctx, err error) error {
	status := Status(err)
	body := ErrorResponse{
		Error:     err.Error(),
		Code:      apperr.Code(err),
		RequestID: RequestID(c),
		Retryable: apperr.Retryable(err),
	}
	switch status {
	case fiber.StatusInternalServerError:
		body.Error = "Internal server error"
	case fiber.StatusServiceUnavailable:
		body.Error = "Storage temporarily unavailable"
	}
	return Respond(c, status, body)
}
