package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/usecase"
)

// HouseHandler handles HTTP requests for house records and occupancy.
type HouseHandler struct {
	service *usecase.HouseService
	logger  *slog.Logger
}

// NewHouseHandler creates a new HouseHandler.
func NewHouseHandler(service *usecase.HouseService, logger *slog.Logger) *HouseHandler {
	return &HouseHandler{service: service, logger: logger}
}

// Create handles POST /houses.
func (h *HouseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req usecase.CreateHouseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.Location == "" {
		respondBadRequest(w, "location is required")
		return
	}
	if req.RentAmount <= 0 {
		respondBadRequest(w, "rent_amount must be positive")
		return
	}
	if req.OwnerID == uuid.Nil {
		respondBadRequest(w, "owner_id is required")
		return
	}

	house, err := h.service.Create(r.Context(), req)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, house)
}

// List handles GET /houses.
func (h *HouseHandler) List(w http.ResponseWriter, r *http.Request) {
	houses, err := h.service.List(r.Context())
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, houses)
}

// ListVacant handles GET /houses/vacant.
func (h *HouseHandler) ListVacant(w http.ResponseWriter, r *http.Request) {
	houses, err := h.service.ListVacant(r.Context())
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, houses)
}

// Get handles GET /houses/{houseID}.
func (h *HouseHandler) Get(w http.ResponseWriter, r *http.Request) {
	houseID, err := uuid.Parse(chi.URLParam(r, "houseID"))
	if err != nil {
		respondBadRequest(w, "invalid house id")
		return
	}

	house, err := h.service.Get(r.Context(), houseID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, house)
}

// AssignTenant handles PUT /houses/{houseID}/assign/{tenantID}.
func (h *HouseHandler) AssignTenant(w http.ResponseWriter, r *http.Request) {
	houseID, err := uuid.Parse(chi.URLParam(r, "houseID"))
	if err != nil {
		respondBadRequest(w, "invalid house id")
		return
	}
	tenantID, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		respondBadRequest(w, "invalid tenant id")
		return
	}

	house, err := h.service.AssignTenant(r.Context(), houseID, tenantID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, house)
}

// MarkVacant handles PUT /houses/{houseID}/vacant.
func (h *HouseHandler) MarkVacant(w http.ResponseWriter, r *http.Request) {
	houseID, err := uuid.Parse(chi.URLParam(r, "houseID"))
	if err != nil {
		respondBadRequest(w, "invalid house id")
		return
	}

	house, err := h.service.MarkVacant(r.Context(), houseID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, house)
}
