// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sachin Kathar

// Package service implements the business logic of the platform: account
// lifecycle, the prompt access-control decision points, the view-vs-copy
// disclosure split, social actions and moderation.
package service

import (
	"context"

	"github.com/SACHINKATHAR2005/viralprompts/models"
)

// AuthService handles user registration, credential verification
// and JWT token lifecycle.
type AuthService interface {
	// RegisterUser creates a new user account with a hashed password.
	RegisterUser(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates an existing user by login and password.
	Login(ctx context.Context, user models.User) (models.User, error)

	// CreateToken issues a signed JWT for the given user.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseToken validates and parses a raw JWT string.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// PromptService handles the prompt lifecycle and enforces the privacy,
// monetization and creation-cap rules.
//
// Every read path returns prompts without the protected text field;
// only Copy discloses it, after its own access check.
type PromptService interface {
	// Create validates and persists a new prompt for creatorID.
	Create(ctx context.Context, creatorID int64, input models.PromptInput) (models.Prompt, error)

	// Get returns one prompt's card, incrementing its view counter when
	// the viewer is not the creator.
	Get(ctx context.Context, id string, viewerID int64, isAdmin bool) (models.Prompt, error)

	// List returns the prompts visible to viewerID matching the filter.
	List(ctx context.Context, filter models.PromptFilter, viewerID int64, isAdmin bool) ([]models.Prompt, error)

	// Copy discloses the decrypted prompt text to an authorized user and
	// records the copy against the prompt and its creator.
	Copy(ctx context.Context, id string, userID int64, isAdmin bool) (models.Prompt, error)

	// Update applies a partial update on behalf of userID.
	Update(ctx context.Context, id string, userID int64, isAdmin bool, update models.PromptUpdate) (models.Prompt, error)

	// Delete removes a prompt and all its engagement records.
	Delete(ctx context.Context, id string, userID int64, isAdmin bool) error
}

// SocialService handles likes and follow edges.
type SocialService interface {
	Like(ctx context.Context, userID int64, promptID string) error
	Unlike(ctx context.Context, userID int64, promptID string) error
	Follow(ctx context.Context, followerID, creatorID int64) error
	Unfollow(ctx context.Context, followerID, creatorID int64) error
}

// AdminService exposes the moderation operations behind the admin routes.
type AdminService interface {
	// SetMonetization grants or revokes the paid-prompt privilege.
	SetMonetization(ctx context.Context, userID int64, unlocked bool) error

	// SetPromptActive toggles a prompt's moderation flag.
	SetPromptActive(ctx context.Context, promptID string, active bool) error

	// ResetRateLimit clears the current fixed-window counter for one
	// principal under the named action.
	ResetRateLimit(ctx context.Context, action, principal string) error
}
