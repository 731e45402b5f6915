package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/SACHINKATHAR2005/viralprompts/internal/logger"
	"github.com/SACHINKATHAR2005/viralprompts/internal/service"
	"github.com/SACHINKATHAR2005/viralprompts/internal/store"
	"github.com/SACHINKATHAR2005/viralprompts/internal/utils"
	"github.com/SACHINKATHAR2005/viralprompts/models"
)

// authPayload is the data section of a successful register/login response.
type authPayload struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.Fail("Invalid JSON was passed"), http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, user)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, registeredUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		utils.WriteJSON(w, models.Fail(http.StatusText(http.StatusInternalServerError)), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	writeData(w, authPayload{User: registeredUser, Token: token.SignedString}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.Fail("Invalid JSON was passed"), http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, user)
	if err != nil {
		// Missing account and wrong password answer identically so login
		// probing cannot enumerate registered logins.
		if errors.Is(err, store.ErrNoUserWasFound) || errors.Is(err, service.ErrWrongPassword) {
			log.Err(err).Msg("no user was found/wrong password")
			utils.WriteJSON(w, models.Fail("invalid login/password"), http.StatusUnauthorized)
			return
		}
		h.writeError(w, r, err)
		return
	}

	log.Debug().Int64("id", foundUser.UserID).Str("login", foundUser.Login).Msg("user successfully logged in")

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		utils.WriteJSON(w, models.Fail(http.StatusText(http.StatusInternalServerError)), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	writeData(w, authPayload{User: foundUser, Token: token.SignedString}, http.StatusOK)
}
