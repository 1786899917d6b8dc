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

func TestRecordersIncrementCounters(t *testing.T) {
	before := testutil.ToFloat64(contactsRecorded.WithLabelValues("pdf", "guest"))
	RecordContact("pdf", "guest")
	assert.Equal(t, before+1, testutil.ToFloat64(contactsRecorded.WithLabelValues("pdf", "guest")))

	RecordAIFallback("")
	assert.GreaterOrEqual(t, testutil.ToFloat64(aiFallbacks.WithLabelValues("unknown")), 1.0)
}

func TestHandlerExposesRegistry(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/metrics", Handler())
	app.Get("/api/representatives/:id", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/representatives/fed_X000001", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	RecordMirrorFailure("https://mirror.example")

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "civic_bridge_legislators_mirror_failures_total")
	assert.Contains(t, string(body), `path="/api/representatives/:id"`)
}
