package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/SACHINKATHAR2005/viralprompts/internal/logger"
	"github.com/SACHINKATHAR2005/viralprompts/internal/utils"
	"github.com/SACHINKATHAR2005/viralprompts/models"
)

func (h *Handler) likePrompt(w http.ResponseWriter, r *http.Request) {
	h.socialPromptAction(w, r, h.services.SocialService.Like)
}

func (h *Handler) unlikePrompt(w http.ResponseWriter, r *http.Request) {
	h.socialPromptAction(w, r, h.services.SocialService.Unlike)
}

func (h *Handler) followUser(w http.ResponseWriter, r *http.Request) {
	h.socialUserAction(w, r, h.services.SocialService.Follow)
}

func (h *Handler) unfollowUser(w http.ResponseWriter, r *http.Request) {
	h.socialUserAction(w, r, h.services.SocialService.Unfollow)
}

// socialPromptAction runs one like/unlike action against the prompt named
// in the URL.
func (h *Handler) socialPromptAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, userID int64, promptID string) error) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.socialPromptAction").Msg("no user ID was given")
		utils.WriteJSON(w, models.Fail("no user ID was given"), http.StatusUnauthorized)
		return
	}

	if err := action(ctx, userID, chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeData(w, nil, http.StatusOK)
}

// socialUserAction runs one follow/unfollow action against the user named
// in the URL.
func (h *Handler) socialUserAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, followerID, creatorID int64) error) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	followerID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.socialUserAction").Msg("no user ID was given")
		utils.WriteJSON(w, models.Fail("no user ID was given"), http.StatusUnauthorized)
		return
	}

	creatorID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Err(err).Msg("invalid user ID in path")
		utils.WriteJSON(w, models.Fail("invalid user ID in path"), http.StatusBadRequest)
		return
	}

	if err := action(ctx, followerID, creatorID); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeData(w, nil, http.StatusOK)
}
