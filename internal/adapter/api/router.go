package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/adapter/api/handler"
	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/adapter/api/middleware"
	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/pkg/config"
	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/usecase"
)

// NewRouter creates and configures the main HTTP router for the rent
// management service.
func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	ownerService *usecase.OwnerService,
	houseService *usecase.HouseService,
	tenantService *usecase.TenantService,
	paymentService *usecase.PaymentService,
) http.Handler {
	ownerHandler := handler.NewOwnerHandler(ownerService, logger)
	houseHandler := handler.NewHouseHandler(houseService, logger)
	tenantHandler := handler.NewTenantHandler(tenantService, logger)
	paymentHandler := handler.NewPaymentHandler(paymentService, logger)

	r := chi.NewRouter()
	r.Use(middleware.Logging(logger))
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	r.Route("/owners", func(r chi.Router) {
		r.Post("/", ownerHandler.Create)
		r.Get("/", ownerHandler.List)
		r.Delete("/{ownerID}", ownerHandler.Delete)
	})

	r.Route("/houses", func(r chi.Router) {
		r.Post("/", houseHandler.Create)
		r.Get("/", houseHandler.List)
		r.Get("/vacant", houseHandler.ListVacant)
		r.Get("/{houseID}", houseHandler.Get)
		r.Put("/{houseID}/assign/{tenantID}", houseHandler.AssignTenant)
		r.Put("/{houseID}/vacant", houseHandler.MarkVacant)
	})

	r.Route("/tenants", func(r chi.Router) {
		r.Post("/", tenantHandler.Create)
		r.Get("/", tenantHandler.List)
		r.Get("/{tenantID}", tenantHandler.Get)
		r.Put("/{tenantID}", tenantHandler.Update)
		r.Put("/{tenantID}/leave", tenantHandler.Leave)
	})

	r.Route("/payments", func(r chi.Router) {
		r.Post("/", paymentHandler.Create)
		r.Get("/", paymentHandler.List)
		r.Post("/generate/{tenantID}", paymentHandler.GenerateMonthlyRent)
		r.Get("/monthly-summary", paymentHandler.MonthlySummary)
		r.Get("/debt/total", paymentHandler.TotalDebt)
		r.Get("/debt/{tenantID}", paymentHandler.TenantDebt)
		r.Get("/tenant/{tenantID}", paymentHandler.ListByTenant)
		r.Get("/{paymentID}", paymentHandler.Get)
		r.Put("/{paymentID}", paymentHandler.Update)
		r.Delete("/{paymentID}", paymentHandler.Delete)
		r.Put("/{paymentID}/pay", paymentHandler.MarkPaid)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
