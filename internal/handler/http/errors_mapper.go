package http

import (
	"errors"
	"net/http"

	"github.com/SACHINKATHAR2005/viralprompts/internal/crypto"
	"github.com/SACHINKATHAR2005/viralprompts/internal/service"
	"github.com/SACHINKATHAR2005/viralprompts/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpired:          http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrAccessDenied:            http.StatusForbidden,
	service.ErrMonetizationNotUnlocked: http.StatusForbidden,
	service.ErrSelfFollow:              http.StatusBadRequest,

	store.ErrLoginAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrPromptNotFound:     http.StatusNotFound,
	store.ErrAlreadyLiked:       http.StatusConflict,
	store.ErrAlreadyFollowing:   http.StatusConflict,
	store.ErrNothingToUpdate:    http.StatusBadRequest,

	// Cipher failures surface as a generic 500: never expose cipher
	// internals to the client.
	crypto.ErrMalformedEnvelope: http.StatusInternalServerError,
	crypto.ErrDecryptionFailed:  http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
