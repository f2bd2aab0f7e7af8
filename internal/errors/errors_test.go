package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundErrorMessage(t *testing.T) {
	assert.Equal(t, "team 3 not found", NewNotFoundError("team", 3).Error())
	assert.Equal(t, "user not found", ErrUserNotFound.Error())
}

func TestNotFoundErrorIs(t *testing.T) {
	err := fmt.Errorf("lookup: %w", NewNotFoundError("team", 3))

	assert.True(t, errors.Is(err, ErrTeamNotFound))
	assert.False(t, errors.Is(err, ErrUserNotFound))
	assert.True(t, errors.Is(err, &NotFoundError{}))
	assert.True(t, IsNotFound(err))
	assert.False(t, IsAlreadyExists(err))
}

func TestAlreadyExistsError(t *testing.T) {
	err := fmt.Errorf("insert: %w", NewUniqueFieldError("user", "email"))

	assert.Equal(t, "insert: user already exists with this email", err.Error())
	assert.True(t, IsAlreadyExists(err))
	assert.True(t, errors.Is(err, ErrUserEmailExists))
	assert.True(t, errors.Is(err, &AlreadyExistsError{Entity: "user"}))
	assert.False(t, IsNotFound(err))
}

func TestAlreadyExistsIdClashIsNotEmailClash(t *testing.T) {
	err := fmt.Errorf("insert: %w", NewAlreadyExistsError("user", "with id 1"))

	assert.True(t, IsAlreadyExists(err))
	assert.False(t, errors.Is(err, ErrUserEmailExists))
	assert.False(t, errors.Is(NewUniqueFieldError("team", "email"), ErrUserEmailExists))
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("email", "must be a valid email address")

	assert.Equal(t, "validation error: email - must be a valid email address", err.Error())
	assert.True(t, IsValidation(err))

	var ve *ValidationError
	if assert.True(t, errors.As(err, &ve)) {
		assert.Equal(t, "email", ve.Field)
	}
	assert.Equal(t, "validation error: bad", (&ValidationError{Message: "bad"}).Error())
}

func TestAuthenticationError(t *testing.T) {
	err := fmt.Errorf("wrap: %w", NewAuthenticationError("missing bearer token"))
	assert.True(t, IsAuthentication(err))
	assert.False(t, IsValidation(err))
}
