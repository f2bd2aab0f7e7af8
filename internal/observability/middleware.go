package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Middleware records request count and latency per matched route. Handler
// errors are passed to the app's ErrorHandler first so the recorded status
// is the one the client receives.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		ObserveHTTPRequest(c.Method(), route, c.Response().StatusCode(), time.Since(start))
		return nil
	}
}
