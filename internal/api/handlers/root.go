package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// Kinds lists the resource names served under /api, in display order
var Kinds = []string{"users", "teams", "activities", "leaderboard", "workouts"}

// Root handles GET /api/ and maps every kind to its collection URL
func Root(c *fiber.Ctx) error {
	base := c.BaseURL() + "/api/"
	links := make(map[string]string, len(Kinds))
	for _, kind := range Kinds {
		links[kind] = base + kind + "/"
	}
	return c.JSON(links)
}
