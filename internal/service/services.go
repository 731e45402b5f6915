package service

import (
	"github.com/SACHINKATHAR2005/viralprompts/internal/cache"
	"github.com/SACHINKATHAR2005/viralprompts/internal/config"
	"github.com/SACHINKATHAR2005/viralprompts/internal/logger"
	"github.com/SACHINKATHAR2005/viralprompts/internal/ratelimit"
	"github.com/SACHINKATHAR2005/viralprompts/internal/store"
)

// Services bundles every business-logic service behind one constructor.
type Services struct {
	AuthService   AuthService
	PromptService PromptService
	SocialService SocialService
	AdminService  AdminService
}

// NewServices wires all services to the shared storages, rate limiter and
// response cache.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, limiter *ratelimit.Limiter, responseCache *cache.Cache, logger *logger.Logger) *Services {
	return &Services{
		AuthService:   NewAuthService(storages.Users, cfg.App, logger),
		PromptService: NewPromptService(storages, cfg.Limits, responseCache, logger),
		SocialService: NewSocialService(storages, responseCache, logger),
		AdminService:  NewAdminService(storages, limiter, cfg.Limits, responseCache, logger),
	}
}
