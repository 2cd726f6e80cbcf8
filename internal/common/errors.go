package common

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure so callers can branch on it without parsing messages.
type Kind string

const (
	KindNotFound           Kind = "NOT_FOUND"
	KindEmptyInput         Kind = "EMPTY_INPUT"
	KindOversize           Kind = "OVERSIZE"
	KindUnsupportedType    Kind = "UNSUPPORTED_TYPE"
	KindPersistenceFailure Kind = "PERSISTENCE_FAILURE"
	KindIOFailure          Kind = "IO_FAILURE"
	KindInvalidInput       Kind = "INVALID_INPUT"
	KindConflict           Kind = "CONFLICT"
	KindInternal           Kind = "INTERNAL"
)

// Error is the error type returned by services and stores.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	// Details carries per-field messages for InvalidInput errors.
	Details map[string]string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	} else if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Op == "" {
		return msg
	}
	return e.Op + ": " + msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E builds an *Error. err may be nil.
func E(kind Kind, op, message string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

// NotFound reports a missing entity, e.g. NotFound("image.Remove", "image", id).
func NotFound(op, entity string, id any) *Error {
	return E(KindNotFound, op, fmt.Sprintf("%s with id %v was not found", entity, id), nil)
}

// Invalid reports a request that failed field validation.
func Invalid(op string, details map[string]string) *Error {
	return &Error{Kind: KindInvalidInput, Op: op, Message: "Validation failed", Details: details}
}

// DetailsOf returns the field details of the first *Error in err's chain.
func DetailsOf(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return nil
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the human readable message of err without the op prefix.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Message != "" {
			return e.Message
		}
		if e.Err != nil {
			return e.Err.Error()
		}
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps a kind to the status code handlers respond with.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindEmptyInput, KindInvalidInput:
		return http.StatusBadRequest
	case KindOversize:
		return http.StatusRequestEntityTooLarge
	case KindUnsupportedType:
		return http.StatusUnsupportedMediaType
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
