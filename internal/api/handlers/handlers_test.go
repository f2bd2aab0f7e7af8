package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "octofit-tracker/internal/errors"
	"octofit-tracker/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRecordNamesJSONField(t *testing.T) {
	v := NewValidator()

	err := validateRecord(v, models.Activity{ID: 1, UserID: 1, Type: models.ActivityRunning, Duration: 10, Distance: -1, Date: time.Now()})
	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "distance", ve.Field)

	err = validateRecord(v, models.Workout{ID: 1, Name: "W", Type: "cycling", Difficulty: models.DifficultyBeginner, Duration: 10})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "type", ve.Field)
	assert.Contains(t, ve.Message, "cycling")

	err = validateRecord(v, models.Team{ID: 1, Name: "T", Description: "D"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "created_at", ve.Field)

	err = validateRecord(v, models.Workout{ID: 1, Name: "W", Type: models.WorkoutYoga, Difficulty: models.DifficultyBeginner, Duration: 10, Description: "D"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "exercises", ve.Field)

	assert.NoError(t, validateRecord(v, models.Team{ID: 1, Name: "T", Description: "D", CreatedAt: time.Now()}))
}

func TestRequireFields(t *testing.T) {
	var ve *apperrors.ValidationError

	err := requireFields([]byte(`{"id":1,"user_id":1,"type":"running","duration":30,"date":"2025-01-01T00:00:00Z","notes":"n","calories":0}`), models.Activity{})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "distance", ve.Field)

	err = requireFields([]byte(`{"id":1,"user_id":1,"type":"running","duration":30,"date":"2025-01-01T00:00:00Z","notes":"n","distance":0,"calories":null}`), models.Activity{})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "calories", ve.Field)

	full := `{"user_id":1,"type":"running","duration":30,"date":"2025-01-01T00:00:00Z","notes":"n","distance":0,"calories":0}`
	assert.NoError(t, requireFields([]byte(full), models.Activity{}, "id"))

	err = requireFields([]byte(full), models.Activity{})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "id", ve.Field)

	err = requireFields([]byte(`[1]`), models.Team{})
	require.ErrorAs(t, err, &ve)
}

func TestErrorHandlerMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		field  string
	}{
		{apperrors.NewNotFoundError("team", 1), fiber.StatusNotFound, ""},
		{apperrors.NewAlreadyExistsError("user", "with this email"), fiber.StatusConflict, ""},
		{apperrors.NewValidationError("email", "bad"), fiber.StatusBadRequest, "email"},
		{apperrors.NewAuthenticationError("no token"), fiber.StatusUnauthorized, ""},
		{fiber.NewError(fiber.StatusServiceUnavailable, "busy"), fiber.StatusServiceUnavailable, ""},
		{errors.New("boom"), fiber.StatusInternalServerError, ""},
	}

	for _, tc := range cases {
		app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
		err := tc.err
		app.Get("/", func(c *fiber.Ctx) error { return err })

		resp, testErr := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, testErr)
		assert.Equal(t, tc.status, resp.StatusCode, tc.err.Error())

		body, _ := io.ReadAll(resp.Body)
		var out models.ErrorResponse
		require.NoError(t, json.Unmarshal(body, &out))
		assert.Equal(t, tc.field, out.Field)
	}
}

func TestBodyErrorNamesField(t *testing.T) {
	var team models.Team
	err := bodyError(json.Unmarshal([]byte(`{"name": 5}`), &team))

	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)

	err = bodyError(json.NewDecoder(strings.NewReader("{")).Decode(&team))
	require.ErrorAs(t, err, &ve)
	assert.Empty(t, ve.Field)
}
