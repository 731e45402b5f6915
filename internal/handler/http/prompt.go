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

func (h *Handler) createPrompt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.createPrompt").Msg("no user ID was given")
		utils.WriteJSON(w, models.Fail("no user ID was given"), http.StatusUnauthorized)
		return
	}

	var input models.PromptInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.Fail("Invalid JSON was passed"), http.StatusBadRequest)
		return
	}

	created, err := h.services.PromptService.Create(ctx, userID, input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	// The protected field never travels back on the write path.
	created.PromptText = ""

	writeData(w, created, http.StatusCreated)
}

func (h *Handler) getPrompt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	viewerID, _ := utils.GetUserIDFromContext(ctx)
	prompt, err := h.services.PromptService.Get(ctx, chi.URLParam(r, "id"), viewerID, utils.IsAdminFromContext(ctx))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeData(w, prompt, http.StatusOK)
}

func (h *Handler) listPrompts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := parseFilter(r)
	viewerID, _ := utils.GetUserIDFromContext(ctx)
	prompts, err := h.services.PromptService.List(ctx, filter, viewerID, utils.IsAdminFromContext(ctx))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeData(w, models.PromptList{
		Prompts: prompts,
		Meta:    models.ListMeta{Count: len(prompts), Limit: filter.Limit, Offset: filter.Offset},
	}, http.StatusOK)
}

func (h *Handler) searchPrompts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	query := r.URL.Query().Get("q")
	if query == "" {
		log.Error().Str("func", "*Handler.searchPrompts").Msg("empty search query")
		utils.WriteJSON(w, models.Fail("query parameter `q` is required"), http.StatusBadRequest)
		return
	}

	filter := parseFilter(r)
	filter.Search = query

	viewerID, _ := utils.GetUserIDFromContext(ctx)
	prompts, err := h.services.PromptService.List(ctx, filter, viewerID, utils.IsAdminFromContext(ctx))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeData(w, models.PromptList{
		Prompts: prompts,
		Meta:    models.ListMeta{Count: len(prompts), Limit: filter.Limit, Offset: filter.Offset},
	}, http.StatusOK)
}

// copyPrompt is the single endpoint that discloses decrypted prompt text.
func (h *Handler) copyPrompt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.copyPrompt").Msg("no user ID was given")
		utils.WriteJSON(w, models.Fail("no user ID was given"), http.StatusUnauthorized)
		return
	}

	prompt, err := h.services.PromptService.Copy(ctx, chi.URLParam(r, "id"), userID, utils.IsAdminFromContext(ctx))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeData(w, prompt, http.StatusOK)
}

func (h *Handler) updatePrompt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.updatePrompt").Msg("no user ID was given")
		utils.WriteJSON(w, models.Fail("no user ID was given"), http.StatusUnauthorized)
		return
	}

	var update models.PromptUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.Fail("Invalid JSON was passed"), http.StatusBadRequest)
		return
	}

	updated, err := h.services.PromptService.Update(ctx, chi.URLParam(r, "id"), userID, utils.IsAdminFromContext(ctx), update)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	updated.PromptText = ""

	writeData(w, updated, http.StatusOK)
}

func (h *Handler) deletePrompt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.deletePrompt").Msg("no user ID was given")
		utils.WriteJSON(w, models.Fail("no user ID was given"), http.StatusUnauthorized)
		return
	}

	if err := h.services.PromptService.Delete(ctx, chi.URLParam(r, "id"), userID, utils.IsAdminFromContext(ctx)); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeData(w, nil, http.StatusOK)
}

// parseFilter builds a PromptFilter from the listing query parameters.
// Unparsable numbers fall back to zero values; the storage layer applies
// the default and maximum page sizes.
func parseFilter(r *http.Request) models.PromptFilter {
	query := r.URL.Query()

	filter := models.PromptFilter{
		Category: query.Get("category"),
		Tag:      query.Get("tag"),
		Search:   query.Get("search"),
		Sort:     query.Get("sort"),
	}
	if creatorID, err := strconv.ParseInt(query.Get("creator_id"), 10, 64); err == nil {
		filter.CreatorID = creatorID
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(query.Get("offset")); err == nil {
		filter.Offset = offset
	}

	return filter
}
