package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// respondWithError maps domain errors onto HTTP statuses: NotFound -> 404,
// Conflict -> 409, everything else -> 500.
func respondWithError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case domain.IsNotFound(err):
		respondWithJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case domain.IsConflict(err):
		respondWithJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		logger.Error("request failed", "error", err)
		respondWithJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func respondBadRequest(w http.ResponseWriter, msg string) {
	respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}
