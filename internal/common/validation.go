package common

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// FieldMessager is implemented by request types that override the default
// message for a field. Keys are json field names.
type FieldMessager interface {
	FieldMessages() map[string]string
}

// NewValidator returns a validator that reports json field names and knows
// the "guid" tag (a well-formed, non-nil UUID).
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("guid", func(fl validator.FieldLevel) bool {
		id, err := uuid.Parse(fl.Field().String())
		return err == nil && id != uuid.Nil
	})
	return v
}

// ValidateStruct validates s and converts failures into an InvalidInput
// *Error whose details are keyed by field path.
func ValidateStruct(v *validator.Validate, op string, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return E(KindInvalidInput, op, "invalid request", err)
	}

	var overrides map[string]string
	if fm, ok := s.(FieldMessager); ok {
		overrides = fm.FieldMessages()
	}

	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fieldPath(fe)
		if msg, ok := overrides[fe.Field()]; ok && !strings.Contains(field, ".") && !strings.Contains(field, "[") {
			details[field] = msg
			continue
		}
		details[field] = describe(fe)
	}
	return Invalid(op, details)
}

// fieldPath strips the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "uuid", "guid":
		return fmt.Sprintf("%s must be a valid UUID", fe.Field())
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}
