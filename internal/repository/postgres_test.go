package repository

import (
	"errors"
	"fmt"
	"testing"

	apperrors "octofit-tracker/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateNamesViolatedConstraint(t *testing.T) {
	users := newGormCollection(nil, UserSchema())

	emailErr := users.translate(fmt.Errorf("insert: %w", &pgconn.PgError{
		Code:           uniqueViolation,
		ConstraintName: userEmailIndex,
		Detail:         "Key (email)=(a@example.com) already exists.",
	}))
	assert.True(t, apperrors.IsAlreadyExists(emailErr))
	assert.ErrorIs(t, emailErr, apperrors.ErrUserEmailExists)

	idErr := users.translate(&pgconn.PgError{Code: uniqueViolation, ConstraintName: "users_pkey"})
	assert.True(t, apperrors.IsAlreadyExists(idErr))
	assert.NotErrorIs(t, idErr, apperrors.ErrUserEmailExists)

	assert.True(t, apperrors.IsAlreadyExists(users.translate(gorm.ErrDuplicatedKey)))

	other := &pgconn.PgError{Code: "23503"}
	assert.Same(t, error(other), users.translate(other))

	boom := errors.New("boom")
	assert.Equal(t, boom, users.translate(boom))
	assert.NoError(t, users.translate(nil))
}
