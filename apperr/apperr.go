// Package apperr defines the error kinds surfaced to API callers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindForbidden
	KindUnauthenticated
	KindInactive
	KindRateLimited
)

var kindNames = map[Kind]string{
	KindInternal:        "internal",
	KindValidation:      "validation",
	KindNotFound:        "not_found",
	KindConflict:        "conflict",
	KindForbidden:       "permission_denied",
	KindUnauthenticated: "unauthenticated",
	KindInactive:        "inactive_account",
	KindRateLimited:     "rate_limited",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindInternal]
}

// Store-level sentinels. Repositories wrap these; handlers never see driver errors.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Error is an error with a kind and a message safe to show to the caller.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

func Wrap(kind Kind, detail string, err error) *Error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}

func Validation(detail string) *Error { return New(KindValidation, detail) }
func NotFound(detail string) *Error   { return New(KindNotFound, detail) }
func Conflict(detail string) *Error   { return New(KindConflict, detail) }
func Forbidden(detail string) *Error  { return New(KindForbidden, detail) }
func Unauthenticated(detail string) *Error {
	return New(KindUnauthenticated, detail)
}
func Inactive(detail string) *Error { return New(KindInactive, detail) }

// KindOf classifies err. Bare store sentinels map to NotFound/Conflict,
// anything unknown is Internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrDuplicate):
		return KindConflict
	}
	return KindInternal
}

// DetailOf returns the caller-facing message for err.
func DetailOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Detail
	}
	switch KindOf(err) {
	case KindNotFound:
		return "Resource not found"
	case KindConflict:
		return "Resource already exists"
	}
	return "Internal server error"
}

func Status(kind Kind) int {
	switch kind {
	case KindValidation, KindInactive:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindRateLimited:
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}
