package services

import (
	"errors"
	"fmt"
)

// Kind classifies a service error; handlers map it to an HTTP status.
type Kind int

const (
	KindBadRequest Kind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindInternal
)

// Error is what every service operation returns on failure. Message is
// safe to show to clients; Err carries the underlying cause, if any.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind and Message so callers can compare against the
// exported values below.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

var (
	ErrMissingEmail     = badRequest("Missing email")
	ErrMissingPassword  = badRequest("Missing password")
	ErrDuplicateEmail   = badRequest("Already exist")
	ErrUnauthorized     = &Error{Kind: KindUnauthorized, Message: "Unauthorized"}
	ErrForbidden        = &Error{Kind: KindForbidden, Message: "Forbidden"}
	ErrNotFound         = &Error{Kind: KindNotFound, Message: "Not found"}
	ErrMissingName      = badRequest("Missing name")
	ErrMissingType      = badRequest("Missing type")
	ErrMissingData      = badRequest("Missing data")
	ErrInvalidData      = badRequest("Invalid data")
	ErrParentNotFound   = badRequest("Parent not found")
	ErrParentNotFolder  = badRequest("Parent is not a folder")
	ErrFolderNoContent  = badRequest("A folder doesn't have content")
	ErrInvalidSize      = badRequest("Invalid size")
	ErrMissingJobFileID = badRequest("Missing fileId")
	ErrMissingJobUserID = badRequest("Missing userId")
	ErrJobFileNotFound  = &Error{Kind: KindNotFound, Message: "File not found"}
)

func badRequest(msg string) *Error {
	return &Error{Kind: KindBadRequest, Message: msg}
}

func internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal Server Error", Err: err}
}

// KindOf returns the Kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the client-facing message for err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal Server Error"
}
