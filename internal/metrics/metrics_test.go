package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordToggle(t *testing.T) {
	on := testutil.ToFloat64(togglesTotal.WithLabelValues(KindLike, "on"))
	off := testutil.ToFloat64(togglesTotal.WithLabelValues(KindLike, "off"))

	RecordToggle(KindLike, true)
	RecordToggle(KindLike, true)
	RecordToggle(KindLike, false)

	assert.Equal(t, on+2, testutil.ToFloat64(togglesTotal.WithLabelValues(KindLike, "on")))
	assert.Equal(t, off+1, testutil.ToFloat64(togglesTotal.WithLabelValues(KindLike, "off")))
}

func TestMiddlewareLabelsRoutePattern(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/api/posts/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Get("/metrics", Handler())

	counter := httpRequestsTotal.WithLabelValues("GET", "/api/posts/:id", "204")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"a", "b"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/posts/"+id, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}
	assert.Equal(t, before+2, testutil.ToFloat64(counter))

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "storyline_http_requests_total")
}
