package errors

import (
	"errors"
	"fmt"
)

// NotFoundError is returned when a record id is absent from its collection
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is matches any NotFoundError for the same entity. An empty target entity matches all.
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return t.Entity == "" || e.Entity == t.Entity
}

// AlreadyExistsError is the duplicate-key error: an id or a unique field collides
// with a record that is already stored
type AlreadyExistsError struct {
	Entity  string
	Field   string // unique column that collided; empty for id clashes
	Context string // e.g. "with id 3" or "with this email"
}

func (e *AlreadyExistsError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s already exists %s", e.Entity, e.Context)
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is matches an AlreadyExistsError for the same entity. A target that names
// a Field only matches collisions on that field.
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	if t.Entity != "" && e.Entity != t.Entity {
		return false
	}
	return t.Field == "" || e.Field == t.Field
}

// ValidationError represents a record that fails its declared field constraints
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// AuthenticationError represents a missing or rejected caller identity
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// Entity Not Found Errors
var (
	ErrTeamNotFound        = &NotFoundError{Entity: "team"}
	ErrUserNotFound        = &NotFoundError{Entity: "user"}
	ErrActivityNotFound    = &NotFoundError{Entity: "activity"}
	ErrLeaderboardNotFound = &NotFoundError{Entity: "leaderboard entry"}
	ErrWorkoutNotFound     = &NotFoundError{Entity: "workout"}
)

// Already Exists Errors
var (
	ErrUserEmailExists = &AlreadyExistsError{Entity: "user", Field: "email", Context: "with this email"}
)

// Runtime Errors
var (
	ErrQueueFull          = errors.New("recompute queue full")
	ErrPoolClosed         = errors.New("worker pool is shut down")
	ErrNoUsers            = errors.New("no users available")
	ErrSimulatorRunning   = errors.New("simulation already running")
	ErrUnknownStoreDriver = errors.New("unknown store driver")
)

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsAlreadyExists checks if an error is an AlreadyExistsError
func IsAlreadyExists(err error) bool {
	var existsErr *AlreadyExistsError
	return errors.As(err, &existsErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// NewNotFoundError creates a new NotFoundError for an entity and id
func NewNotFoundError(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// NewAlreadyExistsError creates a new AlreadyExistsError for a custom entity
func NewAlreadyExistsError(entity, context string) error {
	return &AlreadyExistsError{Entity: entity, Context: context}
}

// NewUniqueFieldError creates an AlreadyExistsError for a unique column
func NewUniqueFieldError(entity, field string) error {
	return &AlreadyExistsError{Entity: entity, Field: field, Context: "with this " + field}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(message string) error {
	return &AuthenticationError{Message: message}
}
