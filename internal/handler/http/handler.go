package http

import (
	"github.com/SACHINKATHAR2005/viralprompts/internal/cache"
	"github.com/SACHINKATHAR2005/viralprompts/internal/config"
	"github.com/SACHINKATHAR2005/viralprompts/internal/logger"
	"github.com/SACHINKATHAR2005/viralprompts/internal/ratelimit"
	"github.com/SACHINKATHAR2005/viralprompts/internal/service"
)

type Handler struct {
	services *service.Services

	// limiter backs the per-action rate-limit middleware; limits holds
	// the named budgets it enforces.
	limiter *ratelimit.Limiter
	limits  config.Limits

	// respCache is the read-through cache for idempotent GET responses.
	respCache *cache.Cache

	// allowedOrigins is the operator-configured CORS allow-list.
	allowedOrigins []string

	logger *logger.Logger
}

func NewHandler(services *service.Services, limiter *ratelimit.Limiter, respCache *cache.Cache, limits config.Limits, allowedOrigins []string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return &Handler{
		services:       services,
		limiter:        limiter,
		limits:         limits,
		respCache:      respCache,
		allowedOrigins: allowedOrigins,
		logger:         logger,
	}
}
