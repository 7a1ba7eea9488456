package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/alexdoe/folio/pkg/errors"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps the typed error taxonomy onto HTTP statuses. Every
// failure is reported and control returns to the caller; nothing here is
// fatal.
func respondError(w http.ResponseWriter, logger *zap.Logger, err error) {
	fe, ok := errors.AsFolioError(err)
	if !ok {
		logger.Error("Unclassified handler error", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, errorResponse{
			Error: "internal error",
			Code:  "INTERNAL_ERROR",
		})
		return
	}

	status := statusForCode(fe.Code)
	if status >= 500 {
		logger.Error("Handler error", zap.String("code", fe.Code), zap.Error(err))
	} else {
		logger.Warn("Request rejected", zap.String("code", fe.Code), zap.Error(err))
	}

	respondJSON(w, status, errorResponse{
		Error: fe.Message,
		Code:  fe.Code,
	})
}

func statusForCode(code string) int {
	switch code {
	case errors.CodeValidation, errors.CodeParse:
		return http.StatusBadRequest
	case errors.CodeAuth:
		return http.StatusUnauthorized
	case errors.CodeSync:
		return http.StatusConflict
	case errors.CodeAPI:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
