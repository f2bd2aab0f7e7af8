package observability

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRecompute(t *testing.T) {
	ok := testutil.ToFloat64(recomputeTotal.WithLabelValues("ok"))
	failed := testutil.ToFloat64(recomputeTotal.WithLabelValues("error"))

	RecordRecompute(10, 5*time.Millisecond, nil)
	RecordRecompute(0, 0, errors.New("boom"))

	assert.Equal(t, ok+1, testutil.ToFloat64(recomputeTotal.WithLabelValues("ok")))
	assert.Equal(t, failed+1, testutil.ToFloat64(recomputeTotal.WithLabelValues("error")))
	assert.Equal(t, 10.0, testutil.ToFloat64(leaderboardEntries))
}

func TestRecordEventPublished(t *testing.T) {
	before := testutil.ToFloat64(eventsPublished.WithLabelValues("t", "error"))
	RecordEventPublished("t", errors.New("down"))
	assert.Equal(t, before+1, testutil.ToFloat64(eventsPublished.WithLabelValues("t", "error")))
}

func TestMiddlewareRecordsStatusFromErrorHandler(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/teams/:id", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "missing")
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/teams/:id", "404"))

	resp, err := app.Test(httptest.NewRequest("GET", "/teams/3", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/teams/:id", "404")))
}
