package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/domain/mocks"
	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/pkg/config"
	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/usecase"
)

func newTestRouter() http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{RateLimitRPS: 1000, RateLimitBurst: 1000}

	owners := &mocks.MockOwnerRepository{}
	houses := &mocks.MockHouseRepository{}
	tenants := &mocks.MockTenantRepository{}
	payments := &mocks.MockPaymentRepository{}
	occupancy := &mocks.MockOccupancyRepository{Houses: houses, Tenants: tenants}

	ownerService := usecase.NewOwnerService(owners, houses, logger)
	houseService := usecase.NewHouseService(houses, owners, tenants, occupancy, nil, logger)
	tenantService := usecase.NewTenantService(tenants, houses, occupancy, nil, logger)
	paymentService := usecase.NewPaymentService(payments, tenants, houses, nil, nil, logger)

	return NewRouter(cfg, logger, ownerService, houseService, tenantService, paymentService)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
}

// TestRentFlowOverHTTP drives the whole lifecycle through the router: owner,
// house, tenant, assignment, billing, settlement, and the debt endpoints.
func TestRentFlowOverHTTP(t *testing.T) {
	router := newTestRouter()

	rr := doJSON(t, router, http.MethodPost, "/owners", map[string]any{
		"name": "Alice", "phone": "0700000000", "email": "alice@example.com",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create owner: got %d, body %s", rr.Code, rr.Body.String())
	}
	var owner struct {
		ID string `json:"id"`
	}
	decodeBody(t, rr, &owner)

	rr = doJSON(t, router, http.MethodPost, "/houses", map[string]any{
		"location": "Kigali", "rent_amount": 500.0, "owner_id": owner.ID,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create house: got %d, body %s", rr.Code, rr.Body.String())
	}
	var house struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decodeBody(t, rr, &house)
	if house.Status != "VACANT" {
		t.Fatalf("new house must be VACANT, got %s", house.Status)
	}

	rr = doJSON(t, router, http.MethodPost, "/tenants", map[string]any{
		"full_name": "Bob", "phone": "0711111111", "email": "bob@example.com",
		"national_id": "NID-1", "start_date": "2024-01-01T00:00:00Z",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create tenant: got %d, body %s", rr.Code, rr.Body.String())
	}
	var tenant struct {
		ID string `json:"id"`
	}
	decodeBody(t, rr, &tenant)

	rr = doJSON(t, router, http.MethodPut, fmt.Sprintf("/houses/%s/assign/%s", house.ID, tenant.ID), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("assign tenant: got %d, body %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, router, http.MethodPost, fmt.Sprintf("/payments/generate/%s?month=3&year=2024", tenant.ID), nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("generate rent: got %d, body %s", rr.Code, rr.Body.String())
	}
	var payment struct {
		ID     string  `json:"id"`
		Amount float64 `json:"amount"`
		Status string  `json:"status"`
	}
	decodeBody(t, rr, &payment)
	if payment.Amount != 500 || payment.Status != "UNPAID" {
		t.Fatalf("expected UNPAID 500, got %+v", payment)
	}

	rr = doJSON(t, router, http.MethodGet, "/payments/debt/"+tenant.ID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("tenant debt: got %d", rr.Code)
	}
	var debt struct {
		TotalDebt float64 `json:"total_debt"`
	}
	decodeBody(t, rr, &debt)
	if debt.TotalDebt != 500 {
		t.Fatalf("expected debt 500, got %v", debt.TotalDebt)
	}

	rr = doJSON(t, router, http.MethodPut, "/payments/"+payment.ID+"/pay", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("mark paid: got %d, body %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, router, http.MethodGet, "/payments/debt/total", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("total debt: got %d", rr.Code)
	}
	decodeBody(t, rr, &debt)
	if debt.TotalDebt != 0 {
		t.Fatalf("expected zero debt after settlement, got %v", debt.TotalDebt)
	}

	rr = doJSON(t, router, http.MethodGet, "/payments/monthly-summary?month=3&year=2024", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("monthly summary: got %d", rr.Code)
	}
	var summary struct {
		TotalExpected float64 `json:"total_expected"`
		TotalPaid     float64 `json:"total_paid"`
		TotalUnpaid   float64 `json:"total_unpaid"`
	}
	decodeBody(t, rr, &summary)
	if summary.TotalExpected != 500 || summary.TotalPaid != 500 || summary.TotalUnpaid != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRouterErrorMapping(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name           string
		method         string
		path           string
		body           any
		expectedStatus int
	}{
		{
			name:           "Unknown Owner Is 404",
			method:         http.MethodDelete,
			path:           "/owners/6f1d2f5e-0000-4000-8000-000000000000",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Malformed ID Is 400",
			method:         http.MethodGet,
			path:           "/houses/not-a-uuid",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "House For Unknown Owner Is 404",
			method: http.MethodPost,
			path:   "/houses",
			body: map[string]any{
				"location": "Kigali", "rent_amount": 500.0,
				"owner_id": "6f1d2f5e-0000-4000-8000-000000000000",
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "Non-Positive Rent Is 400",
			method: http.MethodPost,
			path:   "/houses",
			body: map[string]any{
				"location": "Kigali", "rent_amount": 0.0,
				"owner_id": "6f1d2f5e-0000-4000-8000-000000000000",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Out Of Range Month Is 400",
			method:         http.MethodPost,
			path:           "/payments/generate/6f1d2f5e-0000-4000-8000-000000000000?month=13&year=2024",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Unknown Payment Is 404",
			method:         http.MethodPut,
			path:           "/payments/6f1d2f5e-0000-4000-8000-000000000000/pay",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Health Is 200",
			method:         http.MethodGet,
			path:           "/health",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doJSON(t, router, tt.method, tt.path, tt.body)
			if rr.Code != tt.expectedStatus {
				t.Errorf("got status %d, want %d (body %s)", rr.Code, tt.expectedStatus, rr.Body.String())
			}
		})
	}
}

func TestRouterConflictMapping(t *testing.T) {
	router := newTestRouter()

	rr := doJSON(t, router, http.MethodPost, "/owners", map[string]any{
		"name": "Alice", "phone": "0700000000", "email": "alice@example.com",
	})
	var owner struct {
		ID string `json:"id"`
	}
	decodeBody(t, rr, &owner)

	rr = doJSON(t, router, http.MethodPost, "/houses", map[string]any{
		"location": "Kigali", "rent_amount": 500.0, "owner_id": owner.ID,
	})
	var house struct {
		ID string `json:"id"`
	}
	decodeBody(t, rr, &house)

	rr = doJSON(t, router, http.MethodPost, "/tenants", map[string]any{
		"full_name": "Bob", "phone": "0711111111", "email": "bob@example.com",
		"national_id": "NID-1", "start_date": "2024-01-01T00:00:00Z",
	})
	var tenant struct {
		ID string `json:"id"`
	}
	decodeBody(t, rr, &tenant)

	// A second registration with the same national id is refused.
	rr = doJSON(t, router, http.MethodPost, "/tenants", map[string]any{
		"full_name": "Eve", "phone": "0722222222", "email": "eve@example.com",
		"national_id": "NID-1", "start_date": "2024-01-01T00:00:00Z",
	})
	if rr.Code != http.StatusConflict {
		t.Fatalf("duplicate national id: got %d, want 409", rr.Code)
	}

	if rr = doJSON(t, router, http.MethodPut, fmt.Sprintf("/houses/%s/assign/%s", house.ID, tenant.ID), nil); rr.Code != http.StatusOK {
		t.Fatalf("assign tenant: got %d", rr.Code)
	}

	// Billing is refused only for tenants without a house; here the conflict
	// comes from assigning into an occupied house.
	rr = doJSON(t, router, http.MethodPost, "/tenants", map[string]any{
		"full_name": "Carol", "phone": "0733333333", "email": "carol@example.com",
		"national_id": "NID-2", "start_date": "2024-01-01T00:00:00Z",
	})
	var second struct {
		ID string `json:"id"`
	}
	decodeBody(t, rr, &second)

	rr = doJSON(t, router, http.MethodPut, fmt.Sprintf("/houses/%s/assign/%s", house.ID, second.ID), nil)
	if rr.Code != http.StatusConflict {
		t.Fatalf("assign into occupied house: got %d, want 409", rr.Code)
	}

	// Deleting an owner with an occupied house is refused as well.
	rr = doJSON(t, router, http.MethodDelete, "/owners/"+owner.ID, nil)
	if rr.Code != http.StatusConflict {
		t.Fatalf("delete owner with occupied house: got %d, want 409", rr.Code)
	}
}
