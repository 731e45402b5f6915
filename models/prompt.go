// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sachin Kathar

package models

import "time"

// Privacy controls who may view a prompt and request its text.
type Privacy string

const (
	// PrivacyPublic makes the prompt visible to everyone.
	PrivacyPublic Privacy = "public"

	// PrivacyPrivate restricts the prompt to its creator.
	PrivacyPrivate Privacy = "private"

	// PrivacyFollowers restricts the prompt to accounts following
	// the creator.
	PrivacyFollowers Privacy = "followers"
)

// Valid reports whether p is one of the known privacy levels.
func (p Privacy) Valid() bool {
	switch p {
	case PrivacyPublic, PrivacyPrivate, PrivacyFollowers:
		return true
	}
	return false
}

// Prompt is the protected artifact of the platform: a short text published
// by a creator, rated and copied by other users.
//
// PromptText is stored at rest only as a ciphertext envelope
// (see internal/crypto) and is excluded from every list and detail
// projection at the SQL level. It is populated exclusively by the copy
// operation, which decrypts it after an access-control check.
type Prompt struct {
	// ID is the opaque prompt identifier (UUID string).
	ID string `json:"id"`

	// CreatorID references the user who published the prompt.
	CreatorID int64 `json:"creator_id"`

	// Title is the public display title.
	Title string `json:"title"`

	// Description is the public summary shown in listings.
	Description string `json:"description"`

	// Category is the single classification bucket (e.g. "coding").
	Category string `json:"category"`

	// Tags are free-form labels. Persisted as a JSONB column.
	Tags []string `json:"tags"`

	// ProofLinks are URLs of result screenshots hosted externally.
	// Persisted as a JSONB column.
	ProofLinks []string `json:"proof_links,omitempty"`

	// PromptText is the protected field. Empty in every response except
	// the copy operation, where it carries the decrypted plaintext.
	PromptText string `json:"prompt_text,omitempty"`

	// Privacy is the visibility level: public, private or followers.
	Privacy Privacy `json:"privacy"`

	// IsPaid marks a monetized prompt. Creating one requires the
	// creator's account to have monetization unlocked by an admin.
	IsPaid bool `json:"is_paid"`

	// Price is the asking price for a paid prompt. Zero when IsPaid is false.
	Price float64 `json:"price"`

	// IsActive is the moderation flag. Inactive prompts are hidden from
	// listings and detail reads for everyone but the creator and admins.
	IsActive bool `json:"is_active"`

	// Engagement counters. Updated by atomic in-place increments, never
	// by full-row writes, so concurrent view/copy traffic cannot clobber
	// each other.
	Views    int64 `json:"views"`
	Copies   int64 `json:"copies"`
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`

	// RatingSum and RatingCount form the rating aggregate;
	// RatingAvg is derived on read.
	RatingSum   int64   `json:"-"`
	RatingCount int64   `json:"rating_count"`
	RatingAvg   float64 `json:"rating_avg"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Prompt model.
func (p Prompt) TableName() string {
	return "prompts"
}

// IsOwnedBy reports whether userID is the prompt's creator.
func (p Prompt) IsOwnedBy(userID int64) bool {
	return p.CreatorID == userID
}

// PromptInput is the payload accepted by the create endpoint.
type PromptInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	ProofLinks  []string `json:"proof_links"`
	PromptText  string   `json:"prompt_text"`
	Privacy     Privacy  `json:"privacy"`
	IsPaid      bool     `json:"is_paid"`
	Price       float64  `json:"price"`
}

// PromptUpdate is the partial-update payload accepted by the edit endpoint.
// Nil pointers mean "leave unchanged"; the persistence layer builds the
// UPDATE statement only from the fields that are present.
type PromptUpdate struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Tags        *[]string `json:"tags"`
	ProofLinks  *[]string `json:"proof_links"`
	PromptText  *string   `json:"prompt_text"`
	Privacy     *Privacy  `json:"privacy"`
	IsPaid      *bool     `json:"is_paid"`
	Price       *float64  `json:"price"`
}

// Empty reports whether the update carries no fields at all.
func (u PromptUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Category == nil &&
		u.Tags == nil && u.ProofLinks == nil && u.PromptText == nil &&
		u.Privacy == nil && u.IsPaid == nil && u.Price == nil
}

// Sort orders accepted by the listing endpoint.
const (
	SortRecent  = "recent"
	SortPopular = "popular"
)

// PromptFilter narrows and pages prompt listings.
type PromptFilter struct {
	// Category filters by exact category match when non-empty.
	Category string

	// Tag filters prompts whose tag list contains the value.
	Tag string

	// CreatorID filters by creator when non-zero.
	CreatorID int64

	// Search matches a case-insensitive substring of title or description.
	Search string

	// Sort is one of SortRecent (default) or SortPopular.
	Sort string

	Limit  int
	Offset int
}
