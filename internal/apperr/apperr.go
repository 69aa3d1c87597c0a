// Package apperr defines the error kinds surfaced at the request boundary.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUpstream
	KindAuth
	KindRateLimit
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrUpstream   = errors.New("upstream error")
	ErrAuth       = errors.New("auth error")
	ErrRateLimit  = errors.New("rate limit error")
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUpstream:
		return "upstream"
	case KindAuth:
		return "auth"
	case KindRateLimit:
		return "rate_limit"
	default:
		return "internal"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindNotFound:
		return ErrNotFound
	case KindUpstream:
		return ErrUpstream
	case KindAuth:
		return ErrAuth
	case KindRateLimit:
		return ErrRateLimit
	default:
		return nil
	}
}

// Error carries a user-facing Message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

func New(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}

func Validation(msg string) *Error { return New(KindValidation, msg, nil) }

func NotFound(msg string) *Error { return New(KindNotFound, msg, nil) }

func Upstream(msg string, cause error) *Error { return New(KindUpstream, msg, cause) }

func Auth(msg string, cause error) *Error { return New(KindAuth, msg, cause) }

func RateLimit(msg string, cause error) *Error { return New(KindRateLimit, msg, cause) }

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var v ValidationErrors
	if errors.As(err, &v) {
		return KindValidation
	}
	return KindInternal
}

// HTTPStatus maps an error to the status code written by handlers.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the text safe to show a user. Unclassified errors are
// replaced by fallback.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	var v ValidationErrors
	if errors.As(err, &v) {
		return v.Error()
	}
	return fallback
}

type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects several field problems into one error.
type ValidationErrors struct {
	Items []FieldError
}

func (e ValidationErrors) Error() string {
	if len(e.Items) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		parts = append(parts, item.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationErrors) Add(field, msg string) {
	e.Items = append(e.Items, FieldError{Field: field, Message: msg})
}

func (e ValidationErrors) HasAny() bool {
	return len(e.Items) > 0
}

func (e ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}
