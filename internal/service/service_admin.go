package service

import (
	"context"
	"fmt"

	"github.com/SACHINKATHAR2005/viralprompts/internal/cache"
	"github.com/SACHINKATHAR2005/viralprompts/internal/config"
	"github.com/SACHINKATHAR2005/viralprompts/internal/logger"
	"github.com/SACHINKATHAR2005/viralprompts/internal/ratelimit"
	"github.com/SACHINKATHAR2005/viralprompts/internal/store"
)

// adminService is the concrete implementation of AdminService.
// Authorization (the admin claim) is enforced at the router level;
// these operations assume an already-authorized caller.
type adminService struct {
	prompts store.PromptRepository
	users   store.UserRepository
	limiter *ratelimit.Limiter
	limits  config.Limits
	cache   *cache.Cache
	logger  *logger.Logger
}

// NewAdminService constructs an AdminService backed by the given storages
// and the shared rate limiter.
func NewAdminService(storages *store.Storages, limiter *ratelimit.Limiter, limits config.Limits, responseCache *cache.Cache, log *logger.Logger) AdminService {
	return &adminService{
		prompts: storages.Prompts,
		users:   storages.Users,
		limiter: limiter,
		limits:  limits,
		cache:   responseCache,
		logger:  log,
	}
}

// SetMonetization grants or revokes the paid-prompt privilege for a user.
// Returns store.ErrNoUserWasFound when the account does not exist.
func (a *adminService) SetMonetization(ctx context.Context, userID int64, unlocked bool) error {
	log := logger.FromContext(ctx)

	if err := a.users.SetMonetizationUnlocked(ctx, userID, unlocked); err != nil {
		log.Err(err).Int64("userID", userID).Bool("unlocked", unlocked).Msg("monetization update ended with error")
		return fmt.Errorf("monetization update ended with error: %w", err)
	}
	log.Info().Int64("userID", userID).Bool("unlocked", unlocked).Msg("monetization flag updated")

	a.cache.Invalidate(ctx, []string{cache.KeyUser(userID)}, nil)

	return nil
}

// SetPromptActive toggles a prompt's moderation flag. Deactivated prompts
// disappear from listings and detail reads for everyone but the creator
// and admins.
func (a *adminService) SetPromptActive(ctx context.Context, promptID string, active bool) error {
	log := logger.FromContext(ctx)

	if err := a.prompts.SetActive(ctx, promptID, active); err != nil {
		log.Err(err).Str("promptID", promptID).Bool("active", active).Msg("moderation update ended with error")
		return fmt.Errorf("moderation update ended with error: %w", err)
	}
	log.Info().Str("promptID", promptID).Bool("active", active).Msg("moderation flag updated")

	a.cache.Invalidate(ctx, []string{cache.KeyPrompt(promptID)}, []string{cache.PatternPromptLists})

	return nil
}

// ResetRateLimit clears the current fixed-window counter for one principal
// under the named action, immediately restoring their full budget.
// Returns ErrInvalidDataProvided for unknown action names.
func (a *adminService) ResetRateLimit(ctx context.Context, action, principal string) error {
	log := logger.FromContext(ctx)

	limit, ok := a.limitFor(action)
	if !ok {
		log.Error().Str("action", action).Msg("unknown rate-limit action")
		return fmt.Errorf("%w: unknown rate-limit action %q", ErrInvalidDataProvided, action)
	}

	if err := a.limiter.Reset(ctx, action, principal, limit.Window); err != nil {
		log.Err(err).Str("action", action).Str("principal", principal).Msg("rate-limit reset ended with error")
		return fmt.Errorf("rate-limit reset ended with error: %w", err)
	}
	log.Info().Str("action", action).Str("principal", principal).Msg("rate limit reset")

	return nil
}

// limitFor maps an action name to its configured budget.
func (a *adminService) limitFor(action string) (config.LimitConfig, bool) {
	switch action {
	case ratelimit.ActionGlobal:
		return a.limits.GlobalIP, true
	case ratelimit.ActionAuth:
		return a.limits.Auth, true
	case ratelimit.ActionSocial:
		return a.limits.Social, true
	case ratelimit.ActionUpload:
		return a.limits.Upload, true
	case ratelimit.ActionSearch:
		return a.limits.Search, true
	case ratelimit.ActionComment:
		return a.limits.Comment, true
	case ratelimit.ActionPoolCreate:
		return a.limits.PoolCreate, true
	default:
		return config.LimitConfig{}, false
	}
}
