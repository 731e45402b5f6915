// Package utils provides general-purpose helper utilities used across
// different parts of the application: context keys, HMAC hashing, JSON
// response writing, and JWT token generation and validation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key used to store the authenticated user identifier
// in the context. Set by the auth middleware, read by handlers via
// [GetUserIDFromContext].
var UserIDCtxKey = contextKey("userID")

// IsAdminCtxKey is the key used to store the authenticated user's admin
// flag in the context.
var IsAdminCtxKey = contextKey("isAdmin")

// GetUserIDFromContext retrieves the user identifier from the context.
//
// Returns the user ID of type int64 and an ok flag:
//   - ok == true  — value is found and has the correct int64 type
//   - ok == false — value is missing or has an unexpected type
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// IsAdminFromContext reports whether the authenticated principal carries
// the admin flag. Absent value means not an admin.
func IsAdminFromContext(ctx context.Context) bool {
	isAdmin, ok := ctx.Value(IsAdminCtxKey).(bool)
	return ok && isAdmin
}
