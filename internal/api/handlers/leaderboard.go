package handlers

import (
	"strconv"

	apperrors "octofit-tracker/internal/errors"
	"octofit-tracker/internal/service"
	"octofit-tracker/internal/worker"

	"github.com/gofiber/fiber/v2"
)

// RecomputeSubmitter queues leaderboard recomputes
type RecomputeSubmitter interface {
	Submit(task worker.RecomputeTask) error
}

// LeaderboardHandler serves the leaderboard endpoints that go beyond CRUD
type LeaderboardHandler struct {
	service *service.LeaderboardService
	pool    RecomputeSubmitter
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(service *service.LeaderboardService, pool RecomputeSubmitter) *LeaderboardHandler {
	return &LeaderboardHandler{
		service: service,
		pool:    pool,
	}
}

// Recompute handles POST /api/leaderboard/recompute/
// @Summary Queue a leaderboard recompute
// @Success 202 {object} map[string]interface{}
// @Failure 401 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /api/leaderboard/recompute/ [post]
func (h *LeaderboardHandler) Recompute(c *fiber.Ctx) error {
	err := h.pool.Submit(worker.RecomputeTask{Reason: "api"})
	switch err {
	case nil:
	case apperrors.ErrQueueFull, apperrors.ErrPoolClosed:
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	default:
		return err
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "Leaderboard recompute queued",
	})
}

// Top handles GET /api/leaderboard/top/?limit=N from the published snapshot
// @Summary Top of the leaderboard
// @Param limit query int false "Number of entries" default(10)
// @Success 200 {array} models.LeaderboardEntry
// @Router /api/leaderboard/top/ [get]
func (h *LeaderboardHandler) Top(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		return apperrors.NewValidationError("limit", "must be an integer")
	}

	entries, err := h.service.Top(c.UserContext(), limit)
	if err != nil {
		return err
	}
	return c.JSON(entries)
}

// HealthCheck handles GET /api/health
// @Summary Health check
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/health [get]
func (h *LeaderboardHandler) HealthCheck(c *fiber.Ctx) error {
	status, err := h.service.HealthCheck(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":       "unhealthy",
			"dependencies": status,
			"error":        err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status":       "healthy",
		"dependencies": status,
	})
}
