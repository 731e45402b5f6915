// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, tracing, logging, rate limiting and
// response caching concerns are all handled at this layer before requests
// are forwarded to the service layer.
package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/SACHINKATHAR2005/viralprompts/internal/logger"
	"github.com/SACHINKATHAR2005/viralprompts/internal/service"
	"github.com/SACHINKATHAR2005/viralprompts/internal/utils"
	"github.com/SACHINKATHAR2005/viralprompts/models"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// validates it via [service.AuthService.ParseToken], and — on success — stores
// the authenticated user's ID and admin flag in the request context before
// delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized in the following cases:
//   - The "Authorization" header is absent ([ErrEmptyAuthorizationHeader]).
//   - The header value cannot be parsed as a bearer token
//     ([ErrInvalidAuthorizationHeader] or [ErrEmptyToken]).
//   - The token has expired ([service.ErrTokenIsExpired]).
//   - The token is otherwise invalid or cannot be parsed.
//
// All rejection events are logged using the context-scoped logger obtained
// via [logger.FromRequest].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteJSON(w, models.Fail(ErrEmptyAuthorizationHeader.Error()), http.StatusUnauthorized)
			return
		}

		ctx, err := h.authenticate(r, authHeader)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTokenIsExpired):
				log.Err(err).Msg("token expired")
				utils.WriteJSON(w, models.Fail(service.ErrTokenIsExpired.Error()), http.StatusUnauthorized)
				return
			default:
				log.Err(err).Msg("error occurred during parsing token")
				utils.WriteJSON(w, models.Fail(http.StatusText(http.StatusUnauthorized)), http.StatusUnauthorized)
				return
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authOptional honours a bearer token when one is supplied but lets
// anonymous requests through. Listing and detail reads use it so privacy
// filtering can recognise a logged-in viewer without requiring login.
//
// A token that is present but invalid is still rejected: silently treating
// a bad token as anonymous would let an expired session browse as public
// unnoticed.
func (h *Handler) authOptional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx, err := h.authenticate(r, authHeader)
		if err != nil {
			logger.FromRequest(r).Err(err).Msg("invalid token on optional-auth route")
			utils.WriteJSON(w, models.Fail(http.StatusText(http.StatusUnauthorized)), http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminOnly rejects authenticated non-admin principals with 403. It must
// run after [Handler.auth].
func (h *Handler) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !utils.IsAdminFromContext(r.Context()) {
			logger.FromRequest(r).Warn().Msg("admin route rejected for non-admin principal")
			utils.WriteJSON(w, models.Fail(service.ErrAccessDenied.Error()), http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// authenticate parses and validates the bearer token and returns the
// request context enriched with the principal's ID and admin flag.
func (h *Handler) authenticate(r *http.Request, authHeader string) (context.Context, error) {
	tokenString, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return nil, err
	}

	ctx := r.Context()
	token, err := h.services.AuthService.ParseToken(ctx, tokenString)
	if err != nil {
		return nil, err
	}

	// Store the authenticated identity in the context so that downstream
	// handlers can retrieve it without re-parsing the token.
	ctx = context.WithValue(ctx, utils.UserIDCtxKey, token.UserID)
	ctx = context.WithValue(ctx, utils.IsAdminCtxKey, token.Admin)

	return ctx, nil
}
