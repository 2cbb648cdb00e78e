package utils

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/jpalomino/subastas/internal/apperrors"
)

type Response struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func RespondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("failed to encode response", zap.Error(err))
	}
}

func RespondWithError(w http.ResponseWriter, status int, message string) {
	RespondWithJSON(w, status, Response{Message: message})
}

// RespondWithAppError translates the error taxonomy into HTTP statuses:
// validation 422, conflict 409, not found 404, authorization 403,
// transient 503, anything else 500.
func RespondWithAppError(w http.ResponseWriter, err error) {
	kind, known := apperrors.KindOf(err)
	if !known {
		zap.L().Error("unclassified error", zap.Error(err))
		RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	status := http.StatusInternalServerError
	switch kind {
	case apperrors.KindValidation:
		status = http.StatusUnprocessableEntity
	case apperrors.KindConflict:
		status = http.StatusConflict
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	case apperrors.KindAuthorization:
		status = http.StatusForbidden
	case apperrors.KindTransient:
		status = http.StatusServiceUnavailable
	}

	RespondWithJSON(w, status, Response{
		Code:    apperrors.CodeOf(err),
		Message: err.Error(),
	})
}
