package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	apperrors "octofit-tracker/internal/errors"

	"github.com/go-playground/validator/v10"
)

type enumValue interface {
	IsValid() bool
}

// NewValidator returns a validator that reports JSON field names and
// understands the "enum" tag for types with an IsValid method
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	// RegisterValidation only fails on an empty tag or a built-in name
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(enumValue)
		return ok && e.IsValid()
	})

	return v
}

// validateRecord reports the first failing field as a ValidationError
func validateRecord(v *validator.Validate, record any) error {
	err := v.Struct(record)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.NewValidationError("", err.Error())
	}

	fe := fieldErrs[0]
	return apperrors.NewValidationError(fe.Field(), describe(fe))
}

// requireFields checks that a full-record body carries every field that has
// validation rules, non-null. Zero is a legal distance or calorie count, so
// presence is read from the raw JSON. skip names fields the route supplies.
func requireFields(body []byte, record any, skip ...string) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		return bodyError(err)
	}

	t := reflect.TypeOf(record)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Tag.Get("validate") == "" {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" || slices.Contains(skip, name) {
			continue
		}

		raw, ok := keys[name]
		if !ok {
			return apperrors.NewValidationError(name, "this field is required")
		}
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return apperrors.NewValidationError(name, "this field may not be null")
		}
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "enum":
		return fmt.Sprintf("%q is not a valid choice", fmt.Sprint(fe.Value()))
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	}
	return fmt.Sprintf("failed %q validation", fe.Tag())
}
