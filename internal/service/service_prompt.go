// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sachin Kathar

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SACHINKATHAR2005/viralprompts/internal/cache"
	"github.com/SACHINKATHAR2005/viralprompts/internal/config"
	"github.com/SACHINKATHAR2005/viralprompts/internal/logger"
	"github.com/SACHINKATHAR2005/viralprompts/internal/store"
	"github.com/SACHINKATHAR2005/viralprompts/internal/validators"
	"github.com/SACHINKATHAR2005/viralprompts/models"
)

// promptService is the concrete implementation of PromptService.
//
// It owns the access-control decision points (view, copy, modify), the
// monetization gate, and the rolling creation cap. The protected text
// field never crosses this layer except on the copy path.
type promptService struct {
	prompts   store.PromptRepository
	users     store.UserRepository
	social    store.SocialRepository
	cache     *cache.Cache
	validator validators.Validator

	// creationCap and creationLookback form the business-rule limit:
	// at most creationCap prompts per rolling lookback window for
	// non-admin users, counted from persisted rows so the rule
	// self-heals from counter-store outages.
	creationCap      int
	creationLookback time.Duration

	logger *logger.Logger

	// now and newID are injection points for tests.
	now   func() time.Time
	newID func() string
}

// NewPromptService constructs a PromptService backed by the given storages
// and response cache.
func NewPromptService(storages *store.Storages, limits config.Limits, responseCache *cache.Cache, log *logger.Logger) PromptService {
	return &promptService{
		prompts:          storages.Prompts,
		users:            storages.Users,
		social:           storages.Social,
		cache:            responseCache,
		validator:        validators.NewPromptValidator(),
		creationCap:      limits.PromptCreationCap,
		creationLookback: limits.PromptCreationLookback,
		logger:           log,
		now:              time.Now,
		newID:            uuid.NewString,
	}
}

// Create validates and persists a new prompt on behalf of creatorID.
//
// The order of checks is fixed: field validation, then the monetization
// gate for paid prompts, then the rolling creation cap. Returns:
//   - *ValidationError with the full list of broken rules.
//   - ErrMonetizationNotUnlocked when a non-privileged account submits a
//     paid prompt.
//   - *CreationLimitError when the rolling cap is exhausted.
func (s *promptService) Create(ctx context.Context, creatorID int64, input models.PromptInput) (models.Prompt, error) {
	log := logger.FromContext(ctx)

	if input.Privacy == "" {
		input.Privacy = models.PrivacyPublic
	}
	if err := s.validator.Validate(ctx, input); err != nil {
		var violations *validators.Violations
		if errors.As(err, &violations) {
			return models.Prompt{}, &ValidationError{Violations: violations.Rules}
		}
		return models.Prompt{}, fmt.Errorf("prompt validation failed: %w", err)
	}

	creator, err := s.users.GetUserByID(ctx, creatorID)
	if err != nil {
		log.Err(err).Int64("creatorID", creatorID).Msg("creator lookup failed")
		return models.Prompt{}, fmt.Errorf("creator lookup failed: %w", err)
	}

	if input.IsPaid && !creator.MonetizationUnlocked {
		log.Warn().Int64("creatorID", creatorID).Msg("paid prompt rejected: monetization not unlocked")
		return models.Prompt{}, ErrMonetizationNotUnlocked
	}

	if !creator.IsAdmin {
		since := s.now().Add(-s.creationLookback)
		count, err := s.prompts.CountCreatedSince(ctx, creatorID, since)
		if err != nil {
			log.Err(err).Int64("creatorID", creatorID).Msg("creation count failed")
			return models.Prompt{}, fmt.Errorf("creation count failed: %w", err)
		}
		if count >= s.creationCap {
			return models.Prompt{}, &CreationLimitError{
				Limit:   s.creationCap,
				Period:  formatPeriod(s.creationLookback),
				Current: count,
			}
		}
	}

	prompt := models.Prompt{
		ID:          s.newID(),
		CreatorID:   creatorID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Tags:        input.Tags,
		ProofLinks:  input.ProofLinks,
		PromptText:  input.PromptText,
		Privacy:     input.Privacy,
		IsPaid:      input.IsPaid,
		Price:       input.Price,
		IsActive:    true,
	}

	created, err := s.prompts.Create(ctx, prompt)
	if err != nil {
		log.Err(err).Str("promptID", prompt.ID).Msg("prompt creation ended with error")
		return models.Prompt{}, fmt.Errorf("prompt creation ended with error: %w", err)
	}

	s.cache.Invalidate(ctx, nil, []string{cache.PatternPromptLists})

	return created, nil
}

// Get returns one prompt's card: metadata without the protected text.
//
// Inactive prompts are reported as not found to everyone but the creator
// and admins, so moderation does not leak existence. Views by anyone other
// than the creator bump the view counter best-effort.
func (s *promptService) Get(ctx context.Context, id string, viewerID int64, isAdmin bool) (models.Prompt, error) {
	log := logger.FromContext(ctx)

	prompt, err := s.prompts.GetByID(ctx, id)
	if err != nil {
		return models.Prompt{}, fmt.Errorf("prompt lookup failed: %w", err)
	}
	if !prompt.IsActive && !CanModify(prompt, viewerID, isAdmin) {
		return models.Prompt{}, store.ErrPromptNotFound
	}

	isFollower, err := s.resolveFollower(ctx, prompt, viewerID, isAdmin)
	if err != nil {
		return models.Prompt{}, err
	}
	if !CanView(prompt, viewerID, isAdmin, isFollower) {
		return models.Prompt{}, ErrAccessDenied
	}

	if !prompt.IsOwnedBy(viewerID) {
		if err := s.prompts.IncrementViews(ctx, id); err != nil {
			log.Err(err).Str("promptID", id).Msg("view increment failed")
		} else {
			prompt.Views++
		}
	}

	return prompt, nil
}

// List returns the prompts visible to viewerID matching the filter.
// Admins additionally see inactive prompts.
func (s *promptService) List(ctx context.Context, filter models.PromptFilter, viewerID int64, isAdmin bool) ([]models.Prompt, error) {
	prompts, err := s.prompts.List(ctx, filter, viewerID, isAdmin)
	if err != nil {
		return nil, fmt.Errorf("prompt listing failed: %w", err)
	}

	return prompts, nil
}

// Copy discloses the decrypted prompt text to an authorized user.
//
// This is the single operation that returns the protected field. Every
// successful copy bumps the prompt's copy counter and the creator's
// received-copies aggregate, the creator's own copies included; only the
// view counter carries an owner carve-out.
func (s *promptService) Copy(ctx context.Context, id string, userID int64, isAdmin bool) (models.Prompt, error) {
	log := logger.FromContext(ctx)

	prompt, err := s.prompts.GetByID(ctx, id)
	if err != nil {
		return models.Prompt{}, fmt.Errorf("prompt lookup failed: %w", err)
	}
	if !prompt.IsActive && !CanModify(prompt, userID, isAdmin) {
		return models.Prompt{}, store.ErrPromptNotFound
	}

	isFollower, err := s.resolveFollower(ctx, prompt, userID, isAdmin)
	if err != nil {
		return models.Prompt{}, err
	}
	if !CanCopy(prompt, userID, isAdmin, isFollower, s.verifyPayment(ctx, prompt, userID)) {
		return models.Prompt{}, ErrAccessDenied
	}

	text, err := s.prompts.GetText(ctx, id)
	if err != nil {
		log.Err(err).Str("promptID", id).Msg("prompt text retrieval failed")
		return models.Prompt{}, fmt.Errorf("prompt text retrieval failed: %w", err)
	}

	if err := s.prompts.IncrementCopies(ctx, id); err != nil {
		log.Err(err).Str("promptID", id).Msg("copy increment failed")
	} else {
		prompt.Copies++
	}
	if err := s.users.IncrementCopiesReceived(ctx, prompt.CreatorID); err != nil {
		log.Err(err).Int64("creatorID", prompt.CreatorID).Msg("received-copies increment failed")
	}
	s.cache.Invalidate(ctx, []string{cache.KeyPrompt(id), cache.KeyUser(prompt.CreatorID)}, []string{cache.PatternPromptLists})

	prompt.PromptText = text

	return prompt, nil
}

// Update applies a partial update on behalf of userID. Only the creator
// and admins may modify a prompt; switching a free prompt to paid re-runs
// the monetization gate against the creator's account.
func (s *promptService) Update(ctx context.Context, id string, userID int64, isAdmin bool, update models.PromptUpdate) (models.Prompt, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, update); err != nil {
		var violations *validators.Violations
		if errors.As(err, &violations) {
			return models.Prompt{}, &ValidationError{Violations: violations.Rules}
		}
		return models.Prompt{}, fmt.Errorf("prompt update validation failed: %w", err)
	}

	prompt, err := s.prompts.GetByID(ctx, id)
	if err != nil {
		return models.Prompt{}, fmt.Errorf("prompt lookup failed: %w", err)
	}
	if !CanModify(prompt, userID, isAdmin) {
		return models.Prompt{}, ErrAccessDenied
	}

	if update.IsPaid != nil && *update.IsPaid && !prompt.IsPaid {
		creator, err := s.users.GetUserByID(ctx, prompt.CreatorID)
		if err != nil {
			log.Err(err).Int64("creatorID", prompt.CreatorID).Msg("creator lookup failed")
			return models.Prompt{}, fmt.Errorf("creator lookup failed: %w", err)
		}
		if !creator.MonetizationUnlocked {
			return models.Prompt{}, ErrMonetizationNotUnlocked
		}
	}

	updated, err := s.prompts.Update(ctx, id, update)
	if err != nil {
		log.Err(err).Str("promptID", id).Msg("prompt update ended with error")
		return models.Prompt{}, fmt.Errorf("prompt update ended with error: %w", err)
	}

	s.cache.Invalidate(ctx, []string{cache.KeyPrompt(id)}, []string{cache.PatternPromptLists})

	return updated, nil
}

// Delete removes a prompt and all its engagement records. Only the
// creator and admins may delete.
func (s *promptService) Delete(ctx context.Context, id string, userID int64, isAdmin bool) error {
	log := logger.FromContext(ctx)

	prompt, err := s.prompts.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("prompt lookup failed: %w", err)
	}
	if !CanModify(prompt, userID, isAdmin) {
		return ErrAccessDenied
	}

	if err := s.prompts.Delete(ctx, id); err != nil {
		log.Err(err).Str("promptID", id).Msg("prompt deletion ended with error")
		return fmt.Errorf("prompt deletion ended with error: %w", err)
	}

	s.cache.Invalidate(ctx, []string{cache.KeyPrompt(id)}, []string{cache.PatternPromptLists})

	return nil
}

// resolveFollower answers the follower question for followers-only
// prompts. It is skipped entirely when the answer cannot change the
// access decision.
func (s *promptService) resolveFollower(ctx context.Context, prompt models.Prompt, viewerID int64, isAdmin bool) (bool, error) {
	if prompt.Privacy != models.PrivacyFollowers || isAdmin || prompt.IsOwnedBy(viewerID) || viewerID == 0 {
		return false, nil
	}

	isFollower, err := s.social.IsFollowing(ctx, viewerID, prompt.CreatorID)
	if err != nil {
		return false, fmt.Errorf("follower check failed: %w", err)
	}

	return isFollower, nil
}

// verifyPayment is the placeholder for the payment-provider integration.
// Until a provider is wired in there is no purchase record to check, so
// paid prompts are disclosed to any user allowed to view them; every such
// disclosure is logged for later reconciliation.
func (s *promptService) verifyPayment(ctx context.Context, prompt models.Prompt, userID int64) bool {
	if !prompt.IsPaid || prompt.IsOwnedBy(userID) {
		return true
	}

	logger.FromContext(ctx).Warn().
		Str("promptID", prompt.ID).
		Int64("userID", userID).
		Msg("payment verification not implemented, granting copy of paid prompt")

	return true
}

// formatPeriod renders a lookback duration for the creation-cap payload,
// e.g. "12 hours".
func formatPeriod(d time.Duration) string {
	if hours := int(d.Hours()); hours >= 1 && d == time.Duration(hours)*time.Hour {
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}

	minutes := int(d.Minutes())
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}
