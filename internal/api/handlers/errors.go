package handlers

import (
	"encoding/json"
	"errors"

	apperrors "octofit-tracker/internal/errors"
	"octofit-tracker/internal/logger"
	"octofit-tracker/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler maps domain errors to HTTP responses. It is installed as the
// fiber app's ErrorHandler so handlers only return errors.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var (
		validationErr *apperrors.ValidationError
		fiberErr      *fiber.Error
	)

	switch {
	case apperrors.IsAuthentication(err):
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{
			Error:   "Authentication required",
			Message: err.Error(),
		})

	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:   "Validation failed",
			Message: validationErr.Message,
			Field:   validationErr.Field,
		})

	case apperrors.IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
			Error:   "Not found",
			Message: err.Error(),
		})

	case apperrors.IsAlreadyExists(err):
		return c.Status(fiber.StatusConflict).JSON(models.ErrorResponse{
			Error:   "Duplicate key",
			Message: err.Error(),
		})

	case errors.As(err, &fiberErr):
		return c.Status(fiberErr.Code).JSON(models.ErrorResponse{
			Error:   "Request failed",
			Message: fiberErr.Message,
		})
	}

	logger.Component("api").WithError(err).WithFields(map[string]interface{}{
		"method": c.Method(),
		"path":   c.Path(),
	}).Error("Unhandled error")

	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
		Error:   "Internal server error",
		Message: err.Error(),
	})
}

// bodyError turns a body decoding failure into a ValidationError naming the
// offending field when the decoder reports one
func bodyError(err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return err
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperrors.NewValidationError(typeErr.Field, "must be a "+typeErr.Type.String())
	}
	return apperrors.NewValidationError("", "invalid request body: "+err.Error())
}
