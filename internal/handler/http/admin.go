package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/SACHINKATHAR2005/viralprompts/internal/logger"
	"github.com/SACHINKATHAR2005/viralprompts/internal/utils"
	"github.com/SACHINKATHAR2005/viralprompts/models"
)

// monetizationRequest is the body of the monetization toggle endpoint.
type monetizationRequest struct {
	Unlocked bool `json:"unlocked"`
}

// moderationRequest is the body of the prompt moderation endpoint.
type moderationRequest struct {
	Active bool `json:"active"`
}

func (h *Handler) setMonetization(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Err(err).Msg("invalid user ID in path")
		utils.WriteJSON(w, models.Fail("invalid user ID in path"), http.StatusBadRequest)
		return
	}

	var req monetizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.Fail("Invalid JSON was passed"), http.StatusBadRequest)
		return
	}

	if err := h.services.AdminService.SetMonetization(ctx, userID, req.Unlocked); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeData(w, nil, http.StatusOK)
}

func (h *Handler) setPromptActive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req moderationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.Fail("Invalid JSON was passed"), http.StatusBadRequest)
		return
	}

	if err := h.services.AdminService.SetPromptActive(ctx, chi.URLParam(r, "id"), req.Active); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeData(w, nil, http.StatusOK)
}

func (h *Handler) resetRateLimit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	action := chi.URLParam(r, "action")
	principal := chi.URLParam(r, "principal")

	if err := h.services.AdminService.ResetRateLimit(ctx, action, principal); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeData(w, nil, http.StatusOK)
}
