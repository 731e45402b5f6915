package service

import (
	"context"
	"fmt"

	"github.com/SACHINKATHAR2005/viralprompts/internal/cache"
	"github.com/SACHINKATHAR2005/viralprompts/internal/logger"
	"github.com/SACHINKATHAR2005/viralprompts/internal/store"
	"github.com/SACHINKATHAR2005/viralprompts/models"
)

// socialService is the concrete implementation of SocialService.
// Likes require the same visibility as viewing the prompt; follow edges
// only require the target account to exist.
type socialService struct {
	prompts store.PromptRepository
	users   store.UserRepository
	social  store.SocialRepository
	cache   *cache.Cache
	logger  *logger.Logger
}

// NewSocialService constructs a SocialService backed by the given storages.
func NewSocialService(storages *store.Storages, responseCache *cache.Cache, log *logger.Logger) SocialService {
	return &socialService{
		prompts: storages.Prompts,
		users:   storages.Users,
		social:  storages.Social,
		cache:   responseCache,
		logger:  log,
	}
}

// Like records userID's like on a prompt they are allowed to view.
// Returns store.ErrAlreadyLiked on a repeat like.
func (s *socialService) Like(ctx context.Context, userID int64, promptID string) error {
	log := logger.FromContext(ctx)

	prompt, err := s.prompts.GetByID(ctx, promptID)
	if err != nil {
		return fmt.Errorf("prompt lookup failed: %w", err)
	}
	if !prompt.IsActive && !CanModify(prompt, userID, false) {
		return store.ErrPromptNotFound
	}

	isFollower := false
	if prompt.Privacy == models.PrivacyFollowers && !prompt.IsOwnedBy(userID) {
		isFollower, err = s.social.IsFollowing(ctx, userID, prompt.CreatorID)
		if err != nil {
			return fmt.Errorf("follower check failed: %w", err)
		}
	}
	if !CanView(prompt, userID, false, isFollower) {
		return ErrAccessDenied
	}

	if err := s.social.Like(ctx, userID, promptID); err != nil {
		log.Err(err).Int64("userID", userID).Str("promptID", promptID).Msg("like ended with error")
		return fmt.Errorf("like ended with error: %w", err)
	}

	s.cache.Invalidate(ctx, []string{cache.KeyPrompt(promptID)}, []string{cache.PatternPromptLists})

	return nil
}

// Unlike removes userID's like from a prompt. Removing a like that was
// never recorded is a no-op.
func (s *socialService) Unlike(ctx context.Context, userID int64, promptID string) error {
	log := logger.FromContext(ctx)

	if err := s.social.Unlike(ctx, userID, promptID); err != nil {
		log.Err(err).Int64("userID", userID).Str("promptID", promptID).Msg("unlike ended with error")
		return fmt.Errorf("unlike ended with error: %w", err)
	}

	s.cache.Invalidate(ctx, []string{cache.KeyPrompt(promptID)}, []string{cache.PatternPromptLists})

	return nil
}

// Follow records a follow edge from followerID to creatorID.
// Returns ErrSelfFollow for self-follows, store.ErrNoUserWasFound when
// the target account does not exist, and store.ErrAlreadyFollowing on a
// repeat follow.
func (s *socialService) Follow(ctx context.Context, followerID, creatorID int64) error {
	log := logger.FromContext(ctx)

	if followerID == creatorID {
		return ErrSelfFollow
	}
	if _, err := s.users.GetUserByID(ctx, creatorID); err != nil {
		return fmt.Errorf("creator lookup failed: %w", err)
	}

	if err := s.social.Follow(ctx, followerID, creatorID); err != nil {
		log.Err(err).Int64("followerID", followerID).Int64("creatorID", creatorID).Msg("follow ended with error")
		return fmt.Errorf("follow ended with error: %w", err)
	}

	// Follow edges change what followers-only listings show the follower.
	s.cache.Invalidate(ctx, nil, []string{cache.PatternPromptLists})

	return nil
}

// Unfollow removes a follow edge. Removing an absent edge is a no-op.
func (s *socialService) Unfollow(ctx context.Context, followerID, creatorID int64) error {
	log := logger.FromContext(ctx)

	if err := s.social.Unfollow(ctx, followerID, creatorID); err != nil {
		log.Err(err).Int64("followerID", followerID).Int64("creatorID", creatorID).Msg("unfollow ended with error")
		return fmt.Errorf("unfollow ended with error: %w", err)
	}

	s.cache.Invalidate(ctx, nil, []string{cache.PatternPromptLists})

	return nil
}
