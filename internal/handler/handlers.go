package handler

import (
	"github.com/SACHINKATHAR2005/viralprompts/internal/cache"
	"github.com/SACHINKATHAR2005/viralprompts/internal/config"
	"github.com/SACHINKATHAR2005/viralprompts/internal/handler/http"
	"github.com/SACHINKATHAR2005/viralprompts/internal/logger"
	"github.com/SACHINKATHAR2005/viralprompts/internal/ratelimit"
	"github.com/SACHINKATHAR2005/viralprompts/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, limiter *ratelimit.Limiter, respCache *cache.Cache, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, limiter, respCache, cfg.Limits, cfg.Server.AllowedOrigins, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
