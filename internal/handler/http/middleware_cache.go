package http

import (
	"encoding/json"
	"net/http"

	"github.com/SACHINKATHAR2005/viralprompts/internal/cache"
	"github.com/SACHINKATHAR2005/viralprompts/internal/logger"
	"github.com/SACHINKATHAR2005/viralprompts/internal/utils"
)

const cacheStatusHeader = "X-Cache"

// cachedResponse is the stored form of one cacheable GET response.
// Body is base64-encoded by encoding/json.
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// cached is the read-through response cache middleware for idempotent GET
// routes.
//
// The cache key encodes the path, the sorted query string and the
// authenticated principal, so two users with different visibility never
// share an entry. Hits are replayed with an X-Cache: HIT header; misses
// run the handler and store the response when it completed with 200.
// Any cache-store error degrades to a miss.
func (h *Handler) cached(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)
		principal, _ := utils.GetUserIDFromContext(r.Context())
		key := cache.KeyRequest(r.URL.Path, r.URL.Query(), principal)

		if payload, hit := h.respCache.Get(r.Context(), key); hit {
			var stored cachedResponse
			if err := json.Unmarshal(payload, &stored); err == nil {
				w.Header().Set("Content-Type", stored.ContentType)
				w.Header().Set(cacheStatusHeader, "HIT")
				w.WriteHeader(stored.Status)
				w.Write(stored.Body)
				return
			}
			// Undecodable entry: treat as miss and let the rewrite below
			// replace it.
			log.Warn().Str("key", key).Msg("dropping undecodable cache entry")
		}

		w.Header().Set(cacheStatusHeader, "MISS")
		lw := &responseWriter{ResponseWriter: w, captureBody: true}
		next.ServeHTTP(lw, r)

		if lw.status != http.StatusOK {
			return
		}

		payload, err := json.Marshal(cachedResponse{
			Status:      lw.status,
			ContentType: lw.Header().Get("Content-Type"),
			Body:        lw.body,
		})
		if err != nil {
			log.Err(err).Str("key", key).Msg("response marshalling for cache failed")
			return
		}
		h.respCache.Set(r.Context(), key, payload)
	})
}
