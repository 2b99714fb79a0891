package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/usecase"
)

// TenantHandler handles HTTP requests for tenant records.
type TenantHandler struct {
	service *usecase.TenantService
	logger  *slog.Logger
}

// NewTenantHandler creates a new TenantHandler.
func NewTenantHandler(service *usecase.TenantService, logger *slog.Logger) *TenantHandler {
	return &TenantHandler{service: service, logger: logger}
}

// Create handles POST /tenants.
func (h *TenantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req usecase.CreateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.FullName == "" || req.Phone == "" || req.NationalID == "" {
		respondBadRequest(w, "full_name, phone and national_id are required")
		return
	}
	if req.StartDate.IsZero() {
		respondBadRequest(w, "start_date is required")
		return
	}

	tenant, err := h.service.Create(r.Context(), req)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, tenant)
}

// List handles GET /tenants.
func (h *TenantHandler) List(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.service.List(r.Context())
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, tenants)
}

// Get handles GET /tenants/{tenantID}.
func (h *TenantHandler) Get(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		respondBadRequest(w, "invalid tenant id")
		return
	}

	tenant, err := h.service.Get(r.Context(), tenantID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, tenant)
}

// Update handles PUT /tenants/{tenantID}.
func (h *TenantHandler) Update(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		respondBadRequest(w, "invalid tenant id")
		return
	}

	var req usecase.UpdateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	tenant, err := h.service.Update(r.Context(), tenantID, req)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, tenant)
}

// Leave handles PUT /tenants/{tenantID}/leave.
func (h *TenantHandler) Leave(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		respondBadRequest(w, "invalid tenant id")
		return
	}

	tenant, err := h.service.Leave(r.Context(), tenantID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, tenant)
}
