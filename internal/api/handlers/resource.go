package handlers

import (
	"context"
	"strconv"

	apperrors "octofit-tracker/internal/errors"
	"octofit-tracker/internal/models"
	"octofit-tracker/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// SearchParam is the query parameter used for free-text search on list endpoints
const SearchParam = "search"

// reservedParams are accepted on every list endpoint and never treated as filters
var reservedParams = map[string]bool{
	"format": true,
}

// WriteHook runs after a successful write. op is "create", "update" or "delete".
type WriteHook[T any] func(ctx context.Context, op string, record T)

// ResourceHandler serves list/get/create/replace/patch/delete for one kind
type ResourceHandler[T models.Record[T]] struct {
	collection repository.Collection[T]
	validator  *validator.Validate
	afterWrite WriteHook[T]
}

// NewResourceHandler creates a handler over collection. afterWrite may be nil.
func NewResourceHandler[T models.Record[T]](
	collection repository.Collection[T],
	v *validator.Validate,
	afterWrite WriteHook[T],
) *ResourceHandler[T] {
	return &ResourceHandler[T]{
		collection: collection,
		validator:  v,
		afterWrite: afterWrite,
	}
}

// List handles GET /api/<kind>/. Any query parameter other than "search" or
// a reserved one such as "format" is an equality filter.
func (h *ResourceHandler[T]) List(c *fiber.Ctx) error {
	opts := repository.ListOptions{Filters: make(map[string]string)}
	for key, value := range c.Queries() {
		switch {
		case key == SearchParam:
			opts.Search = value
		case reservedParams[key]:
		default:
			opts.Filters[key] = value
		}
	}

	records, err := h.collection.List(c.UserContext(), opts)
	if err != nil {
		return err
	}
	return c.JSON(records)
}

// Get handles GET /api/<kind>/:id/
func (h *ResourceHandler[T]) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	record, err := h.collection.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(record)
}

// Create handles POST /api/<kind>/. The id is part of the body.
func (h *ResourceHandler[T]) Create(c *fiber.Ctx) error {
	var record T
	if err := c.BodyParser(&record); err != nil {
		return bodyError(err)
	}
	if err := requireFields(c.Body(), record); err != nil {
		return err
	}
	if err := validateRecord(h.validator, record); err != nil {
		return err
	}

	if err := h.collection.Create(c.UserContext(), record); err != nil {
		return err
	}
	h.notify(c, "create", record)
	return c.Status(fiber.StatusCreated).JSON(record)
}

// Replace handles PUT /api/<kind>/:id/ with a full record
func (h *ResourceHandler[T]) Replace(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var record T
	if err := c.BodyParser(&record); err != nil {
		return bodyError(err)
	}
	// the id comes from the path
	if err := requireFields(c.Body(), record, "id"); err != nil {
		return err
	}
	return h.update(c, id, record)
}

// Patch handles PATCH /api/<kind>/:id/. Fields present in the body are
// merged over the stored record and the result replaces it.
func (h *ResourceHandler[T]) Patch(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	record, err := h.collection.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := c.BodyParser(&record); err != nil {
		return bodyError(err)
	}
	return h.update(c, id, record)
}

func (h *ResourceHandler[T]) update(c *fiber.Ctx, id int64, record T) error {
	if bodyID := record.PrimaryKey(); bodyID != 0 && bodyID != id {
		return apperrors.NewValidationError("id", "does not match the id in the path")
	}
	record = record.WithPrimaryKey(id)

	if err := validateRecord(h.validator, record); err != nil {
		return err
	}
	if err := h.collection.Update(c.UserContext(), id, record); err != nil {
		return err
	}
	h.notify(c, "update", record)
	return c.JSON(record)
}

// Delete handles DELETE /api/<kind>/:id/
func (h *ResourceHandler[T]) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	record, err := h.collection.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := h.collection.Delete(c.UserContext(), id); err != nil {
		return err
	}
	h.notify(c, "delete", record)
	return c.SendStatus(fiber.StatusNoContent)
}

// Register mounts the resource on router. write guards the mutating routes.
func (h *ResourceHandler[T]) Register(router fiber.Router, write fiber.Handler) {
	router.Get("/", h.List)
	router.Post("/", write, h.Create)
	router.Get("/:id", h.Get)
	router.Put("/:id", write, h.Replace)
	router.Patch("/:id", write, h.Patch)
	router.Delete("/:id", write, h.Delete)
}

func (h *ResourceHandler[T]) notify(c *fiber.Ctx, op string, record T) {
	if h.afterWrite != nil {
		h.afterWrite(c.UserContext(), op, record)
	}
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("id", "must be a positive integer")
	}
	return id, nil
}
