// Package errors defines the failure taxonomy shared by services and
// handlers. Every error carries an HTTP status code and a message safe
// to return to the caller; anything that is not one of these values is
// treated as an internal fault.
package errors

import "fmt"

// DefaultCode is used for errors that were not created by this
// package.
const DefaultCode = 500

type Error interface {
	error

	Code() int
	Message() string
}

type appError struct {
	code int
	msg  string
}

func (e *appError) Error() string   { return e.msg }
func (e *appError) Code() int       { return e.code }
func (e *appError) Message() string { return e.msg }

func newf(code int, format string, args ...interface{}) error {
	return &appError{code: code, msg: fmt.Sprintf(format, args...)}
}

// BadRequest marks invalid input: unknown enum values, malformed IDs,
// non-member assignees.
func BadRequest(format string, args ...interface{}) error {
	return newf(400, format, args...)
}

// Unauthorized marks a missing or unverifiable identity.
func Unauthorized(format string, args ...interface{}) error {
	return newf(401, format, args...)
}

// Forbidden marks an authenticated caller lacking permission.
func Forbidden(format string, args ...interface{}) error {
	return newf(403, format, args...)
}

// NotFound marks an absent resource.
func NotFound(format string, args ...interface{}) error {
	return newf(404, format, args...)
}

// Conflict marks a uniqueness or state violation: duplicate name,
// duplicate interaction, already a member, last leader.
func Conflict(format string, args ...interface{}) error {
	return newf(409, format, args...)
}

// Full marks a team at capacity. It shares the conflict status code
// but keeps its own constructor so call sites read as the rule they
// enforce.
func Full(format string, args ...interface{}) error {
	return newf(409, format, args...)
}

// Internal wraps an unexpected failure. The message is still exposed,
// so callers should keep it generic.
func Internal(format string, args ...interface{}) error {
	return newf(500, format, args...)
}

// Code reports the HTTP status for err, DefaultCode if err was not
// built by this package.
func Code(err error) int {
	if e, ok := err.(Error); ok {
		return e.Code()
	}
	return DefaultCode
}

// Message reports the caller-safe message for err.
func Message(err error) string {
	if e, ok := err.(Error); ok {
		return e.Message()
	}
	return "internal server error"
}

func is(err error, code int) bool {
	e, ok := err.(Error)
	return ok && e.Code() == code
}

func IsBadRequest(err error) bool   { return is(err, 400) }
func IsUnauthorized(err error) bool { return is(err, 401) }
func IsForbidden(err error) bool    { return is(err, 403) }
func IsNotFound(err error) bool     { return is(err, 404) }
func IsConflict(err error) bool     { return is(err, 409) }
