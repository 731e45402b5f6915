// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sachin Kathar

package models

import "time"

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Login is the unique user login identifier.
	Login string `json:"login"`

	// Name is the display name of the user. Non-sensitive, may be shown in UI.
	Name string `json:"name"`

	// Password carries the plaintext password on register/login requests
	// only. It is never persisted and never serialized back to clients.
	Password string `json:"password,omitempty"`

	// PasswordHash is the HMAC-SHA256 hash stored in the database.
	// Never exposed via JSON.
	PasswordHash string `json:"-"`

	// IsAdmin grants access to the moderation and admin endpoints and
	// exempts the account from the prompt-creation cap.
	IsAdmin bool `json:"is_admin"`

	// MonetizationUnlocked is set by an administrator and gates the
	// creation of paid prompts.
	MonetizationUnlocked bool `json:"monetization_unlocked"`

	// CopiesReceived is the aggregate number of times any of the user's
	// prompts has been copied.
	CopiesReceived int64 `json:"copies_received"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
