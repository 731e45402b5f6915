// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sachin Kathar

// Package store implements the PostgreSQL persistence layer. Its contract
// for the protected prompt-text field: encrypted on every write via
// [PreparePromptText], excluded from every projection except the single
// copy-path query, and decrypted only behind that path.
package store

import (
	"context"
	"time"

	"github.com/SACHINKATHAR2005/viralprompts/models"
)

// PromptRepository is the data-access contract for prompts.
type PromptRepository interface {
	// Create persists a new prompt, encrypting the protected field.
	Create(ctx context.Context, prompt models.Prompt) (models.Prompt, error)

	// GetByID retrieves one prompt without its protected field.
	GetByID(ctx context.Context, id string) (models.Prompt, error)

	// GetText fetches and decrypts the protected field. Copy path only.
	GetText(ctx context.Context, id string) (string, error)

	// List retrieves prompts visible to viewerID matching the filter.
	List(ctx context.Context, filter models.PromptFilter, viewerID int64, includeInactive bool) ([]models.Prompt, error)

	// Update applies a partial update, re-encrypting the protected field
	// when it is part of the update and not already a ciphertext envelope.
	Update(ctx context.Context, id string, update models.PromptUpdate) (models.Prompt, error)

	// Delete removes a prompt and its engagement records transactionally.
	Delete(ctx context.Context, id string) error

	// IncrementViews bumps the view counter in place.
	IncrementViews(ctx context.Context, id string) error

	// IncrementCopies bumps the copy counter in place.
	IncrementCopies(ctx context.Context, id string) error

	// CountCreatedSince counts the creator's prompts newer than since.
	CountCreatedSince(ctx context.Context, creatorID int64, since time.Time) (int, error)

	// SetActive toggles the moderation flag.
	SetActive(ctx context.Context, id string, active bool) error
}

// UserRepository is the data-access contract for accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
	GetUserByID(ctx context.Context, userID int64) (models.User, error)
	SetMonetizationUnlocked(ctx context.Context, userID int64, unlocked bool) error
	IncrementCopiesReceived(ctx context.Context, userID int64) error
}

// SocialRepository is the data-access contract for follow edges and likes.
type SocialRepository interface {
	Follow(ctx context.Context, followerID, creatorID int64) error
	Unfollow(ctx context.Context, followerID, creatorID int64) error
	IsFollowing(ctx context.Context, followerID, creatorID int64) (bool, error)
	Like(ctx context.Context, userID int64, promptID string) error
	Unlike(ctx context.Context, userID int64, promptID string) error
}
