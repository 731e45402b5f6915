package service

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by services. Callers should use [errors.Is] to
// match against these values.
var (
	// ErrInvalidDataProvided is returned when a request payload is
	// structurally unusable (e.g. not decodable). Field-level violations
	// use [ValidationError] instead.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrWrongPassword is returned when login credentials do not match.
	ErrWrongPassword = errors.New("wrong password")

	// ErrTokenIsExpired is returned when a JWT token is past its expiry.
	ErrTokenIsExpired = errors.New("token is expired")

	// ErrTokenIsExpiredOrInvalid is returned when a JWT token fails
	// validation for any other reason.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrAccessDenied is returned when the privacy/ownership check fails:
	// the principal may not view, copy, or modify the prompt.
	ErrAccessDenied = errors.New("access denied")

	// ErrMonetizationNotUnlocked is returned when a creator without the
	// admin-granted monetization flag submits a paid prompt. Deliberately
	// distinct from [ErrAccessDenied] so clients can point the user at the
	// unlock flow.
	ErrMonetizationNotUnlocked = errors.New("monetization is not unlocked for this account")

	// ErrSelfFollow is returned when a user attempts to follow themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")
)

// ValidationError carries every collected field violation of one request,
// so a client can fix all issues in a single round trip instead of
// resubmitting once per violation.
type ValidationError struct {
	Violations []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// CreationLimitError is returned when a non-admin user exceeds the rolling
// prompt-creation cap. It carries the payload the 429 response exposes.
type CreationLimitError struct {
	Limit   int
	Period  string
	Current int
}

// Error implements the error interface.
func (e *CreationLimitError) Error() string {
	return fmt.Sprintf("prompt creation limit reached: %d in the last %s", e.Current, e.Period)
}
