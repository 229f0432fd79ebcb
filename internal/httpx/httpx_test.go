package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/storyline-backend/internal/apperr"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{pkgerrors.Wrap(apperr.ErrNotFound, "post p1"), fiber.StatusNotFound},
		{pkgerrors.Wrap(apperr.ErrInvalidOperation, "self follow"), fiber.StatusBadRequest},
		{pkgerrors.Wrap(apperr.ErrValidation, "empty"), fiber.StatusUnprocessableEntity},
		{apperr.ErrForbidden, fiber.StatusForbidden},
		{apperr.ErrConflict, fiber.StatusConflict},
		{pkgerrors.Wrap(apperr.ErrStorageUnavailable, "list"), fiber.StatusServiceUnavailable},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func newApp(err error) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("requestid", "req-1")
		return c.Next()
	})
	app.Get("/err", func(c *fiber.Ctx) error { return FromError(c, err) })
	app.Get("/ok", func(c *fiber.Ctx) error {
		return OK(c, map[string]interface{}{"liked": true, "count": 3})
	})
	return app
}

func TestFromErrorBody(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		status    int
		message   string
		code      string
		retryable bool
	}{
		{"Client error keeps message", pkgerrors.Wrap(apperr.ErrInvalidOperation, "users cannot follow themselves"),
			400, "users cannot follow themselves: invalid operation", "invalid_operation", false},
		{"Unavailable is retryable", pkgerrors.Wrap(apperr.ErrStorageUnavailable, "dial tcp"),
			503, "Storage temporarily unavailable", "storage_unavailable", true},
		{"Unexpected hides detail", errors.New("pq: secret detail"),
			500, "Internal server error", "internal_error", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := newApp(tt.err).Test(httptest.NewRequest("GET", "/err", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.message, body.Error)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, "req-1", body.RequestID)
			assert.Equal(t, tt.retryable, body.Retryable)
		})
	}
}

func TestRespondNegotiatesMsgpack(t *testing.T) {
	app := newApp(nil)

	req := httptest.NewRequest("GET", "/ok", nil)
	req.Header.Set("Accept", MIMEMsgpack)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, MIMEMsgpack, resp.Header.Get("Content-Type"))

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var got map[string]interface{}
	require.NoError(t, msgpack.Unmarshal(raw, &got))
	assert.Equal(t, true, got["liked"])
	assert.EqualValues(t, 3, got["count"])

	resp, err = app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.Contains(t, resp.Header.Get("Content-Type"), fiber.MIMEApplicationJSON)
}
