package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/usecase"
)

// OwnerHandler handles HTTP requests for owner records.
type OwnerHandler struct {
	service *usecase.OwnerService
	logger  *slog.Logger
}

// NewOwnerHandler creates a new OwnerHandler.
func NewOwnerHandler(service *usecase.OwnerService, logger *slog.Logger) *OwnerHandler {
	return &OwnerHandler{service: service, logger: logger}
}

// Create handles POST /owners.
func (h *OwnerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req usecase.CreateOwnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.Name == "" || req.Phone == "" || req.Email == "" {
		respondBadRequest(w, "name, phone and email are required")
		return
	}

	owner, err := h.service.Create(r.Context(), req)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, owner)
}

// List handles GET /owners.
func (h *OwnerHandler) List(w http.ResponseWriter, r *http.Request) {
	owners, err := h.service.List(r.Context())
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, owners)
}

// Delete handles DELETE /owners/{ownerID}. The delete cascades to the
// owner's houses and their payments, but is refused while any house is
// occupied.
func (h *OwnerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(chi.URLParam(r, "ownerID"))
	if err != nil {
		respondBadRequest(w, "invalid owner id")
		return
	}

	if err := h.service.Delete(r.Context(), ownerID); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
