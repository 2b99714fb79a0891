package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/domain"
	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/usecase"
)

// PaymentHandler handles HTTP requests for the rent ledger and its
// aggregations.
type PaymentHandler struct {
	service *usecase.PaymentService
	logger  *slog.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(service *usecase.PaymentService, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{service: service, logger: logger}
}

func validMonth(month int) bool {
	return month >= 1 && month <= 12
}

func validStatus(status domain.PaymentStatus) bool {
	return status == "" || status == domain.PaymentUnpaid || status == domain.PaymentPaid
}

// Create handles POST /payments.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req usecase.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.TenantID == uuid.Nil {
		respondBadRequest(w, "tenant_id is required")
		return
	}
	if !validMonth(req.Month) {
		respondBadRequest(w, "month must be between 1 and 12")
		return
	}
	if req.Year == 0 {
		respondBadRequest(w, "year is required")
		return
	}
	if !validStatus(req.Status) {
		respondBadRequest(w, "status must be UNPAID or PAID")
		return
	}

	payment, err := h.service.Create(r.Context(), req)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, payment)
}

// List handles GET /payments.
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.List(r.Context())
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, payments)
}

// Get handles GET /payments/{paymentID}.
func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	paymentID, err := uuid.Parse(chi.URLParam(r, "paymentID"))
	if err != nil {
		respondBadRequest(w, "invalid payment id")
		return
	}

	payment, err := h.service.Get(r.Context(), paymentID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, payment)
}

// Update handles PUT /payments/{paymentID}.
func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	paymentID, err := uuid.Parse(chi.URLParam(r, "paymentID"))
	if err != nil {
		respondBadRequest(w, "invalid payment id")
		return
	}

	var req usecase.UpdatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.TenantID == uuid.Nil {
		respondBadRequest(w, "tenant_id is required")
		return
	}
	if !validMonth(req.Month) {
		respondBadRequest(w, "month must be between 1 and 12")
		return
	}
	if !validStatus(req.Status) {
		respondBadRequest(w, "status must be UNPAID or PAID")
		return
	}

	payment, err := h.service.Update(r.Context(), paymentID, req)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, payment)
}

// Delete handles DELETE /payments/{paymentID}.
func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	paymentID, err := uuid.Parse(chi.URLParam(r, "paymentID"))
	if err != nil {
		respondBadRequest(w, "invalid payment id")
		return
	}

	if err := h.service.Delete(r.Context(), paymentID); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GenerateMonthlyRent handles POST /payments/generate/{tenantID}?month=&year=.
func (h *PaymentHandler) GenerateMonthlyRent(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		respondBadRequest(w, "invalid tenant id")
		return
	}

	month, year, ok := parsePeriod(w, r)
	if !ok {
		return
	}

	payment, err := h.service.GenerateMonthlyRent(r.Context(), tenantID, month, year)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, payment)
}

// MarkPaid handles PUT /payments/{paymentID}/pay.
func (h *PaymentHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	paymentID, err := uuid.Parse(chi.URLParam(r, "paymentID"))
	if err != nil {
		respondBadRequest(w, "invalid payment id")
		return
	}

	payment, err := h.service.MarkPaid(r.Context(), paymentID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, payment)
}

// ListByTenant handles GET /payments/tenant/{tenantID}.
func (h *PaymentHandler) ListByTenant(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		respondBadRequest(w, "invalid tenant id")
		return
	}

	payments, err := h.service.ListByTenant(r.Context(), tenantID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, payments)
}

// TenantDebt handles GET /payments/debt/{tenantID}.
func (h *PaymentHandler) TenantDebt(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		respondBadRequest(w, "invalid tenant id")
		return
	}

	debt, err := h.service.TenantDebt(r.Context(), tenantID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, debt)
}

// TotalDebt handles GET /payments/debt/total.
func (h *PaymentHandler) TotalDebt(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.TotalDebt(r.Context())
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]float64{"total_debt": total})
}

// MonthlySummary handles GET /payments/monthly-summary?month=&year=.
func (h *PaymentHandler) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	month, year, ok := parsePeriod(w, r)
	if !ok {
		return
	}

	summary, err := h.service.MonthlySummary(r.Context(), month, year)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}

// parsePeriod reads and validates the month/year query parameters, writing a
// 400 response itself when they are missing or malformed.
func parsePeriod(w http.ResponseWriter, r *http.Request) (month, year int, ok bool) {
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || !validMonth(month) {
		respondBadRequest(w, "month must be between 1 and 12")
		return 0, 0, false
	}
	year, err = strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year <= 0 {
		respondBadRequest(w, "year is required")
		return 0, 0, false
	}
	return month, year, true
}
