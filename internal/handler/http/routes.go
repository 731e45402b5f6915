package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/SACHINKATHAR2005/viralprompts/internal/ratelimit"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", traceIDHeader},
		ExposedHeaders: []string{"Authorization", traceIDHeader, cacheStatusHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:         300,
	}))
	// Outermost per-IP throttle across all routes; the named per-action
	// limits below carve finer budgets out of it.
	router.Use(httprate.LimitByIP(h.limits.GlobalIP.Max, h.limits.GlobalIP.Window))

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Use(h.rateLimit(ratelimit.ActionAuth, h.limits.Auth))
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
	})

	// public reads: a bearer token is honoured when present so privacy
	// filtering and cache namespacing see the viewer
	router.Group(func(r chi.Router) {
		r.Use(h.authOptional)
		r.With(h.cached).Get("/api/prompts", h.listPrompts)
		r.With(h.rateLimit(ratelimit.ActionSearch, h.limits.Search), h.cached).Get("/api/prompts/search", h.searchPrompts)
		r.With(h.cached).Get("/api/prompts/{id}", h.getPrompt)
	})

	// authenticated routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/api/prompts", h.createPrompt)
		r.Post("/api/prompts/{id}/copy", h.copyPrompt)
		r.Patch("/api/prompts/{id}", h.updatePrompt)
		r.Delete("/api/prompts/{id}", h.deletePrompt)

		r.Group(func(social chi.Router) {
			social.Use(h.rateLimit(ratelimit.ActionSocial, h.limits.Social))
			social.Post("/api/prompts/{id}/like", h.likePrompt)
			social.Delete("/api/prompts/{id}/like", h.unlikePrompt)
			social.Post("/api/users/{id}/follow", h.followUser)
			social.Delete("/api/users/{id}/follow", h.unfollowUser)
		})
	})

	// moderation routes
	router.Route("/api/admin", func(r chi.Router) {
		r.Use(h.auth, h.adminOnly)
		r.Put("/users/{id}/monetization", h.setMonetization)
		r.Put("/prompts/{id}/active", h.setPromptActive)
		r.Delete("/ratelimits/{action}/{principal}", h.resetRateLimit)
	})

	router.Get("/api/version", h.getServerVersion)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
