package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/SACHINKATHAR2005/viralprompts/internal/logger"
	"github.com/SACHINKATHAR2005/viralprompts/internal/service"
	"github.com/SACHINKATHAR2005/viralprompts/internal/utils"
	"github.com/SACHINKATHAR2005/viralprompts/models"
)

// writeData writes a successful envelope with the given payload.
func writeData(w http.ResponseWriter, data any, statusCode int) {
	utils.WriteJSON(w, models.OK(data), statusCode)
}

// writeError translates a service or storage error into the uniform
// failure envelope.
//
// Validation failures carry the full violations list; creation-cap
// failures carry the limit/period/current payload. Everything mapped to
// 500 is replaced with a generic message so cipher and SQL internals
// never reach the client.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	var validation *service.ValidationError
	if errors.As(err, &validation) {
		utils.WriteJSON(w, models.FailValidation("validation failed", validation.Violations), http.StatusBadRequest)
		return
	}

	var creationCap *service.CreationLimitError
	if errors.As(err, &creationCap) {
		utils.WriteJSON(w, models.CreationCapResponse{
			Success: false,
			Message: fmt.Sprintf("you can create at most %d prompts every %s", creationCap.Limit, creationCap.Period),
			Limit:   creationCap.Limit,
			Period:  creationCap.Period,
			Current: creationCap.Current,
		}, http.StatusTooManyRequests)
		return
	}

	status := statusFromError(err)
	message := http.StatusText(status)
	if status == http.StatusInternalServerError {
		log.Err(err).Msg("request failed")
	} else if sentinel := matchedSentinel(err); sentinel != nil {
		message = sentinel.Error()
	}

	utils.WriteJSON(w, models.Fail(message), status)
}

// matchedSentinel returns the taxonomy sentinel err wraps, if any.
func matchedSentinel(err error) error {
	for target := range errorStatusMap {
		if errors.Is(err, target) {
			return target
		}
	}
	return nil
}
