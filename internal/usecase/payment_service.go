package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/adapter/metrics"
	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/domain"
)

// CreatePaymentRequest carries the caller-supplied fields for a direct
// payment record. Status defaults to UNPAID when omitted; the house is always
// taken from the tenant's current assignment, never from the caller.
type CreatePaymentRequest struct {
	TenantID    uuid.UUID            `json:"tenant_id"`
	Month       int                  `json:"month"`
	Year        int                  `json:"year"`
	Amount      float64              `json:"amount"`
	Status      domain.PaymentStatus `json:"status,omitempty"`
	PaymentDate *time.Time           `json:"payment_date,omitempty"`
}

// UpdatePaymentRequest overwrites every mutable field of a payment. The
// tenant id is re-resolved, so a payment can be re-pointed at a different
// tenant; the house follows that tenant's current assignment.
type UpdatePaymentRequest struct {
	TenantID    uuid.UUID            `json:"tenant_id"`
	Month       int                  `json:"month"`
	Year        int                  `json:"year"`
	Amount      float64              `json:"amount"`
	Status      domain.PaymentStatus `json:"status"`
	PaymentDate *time.Time           `json:"payment_date,omitempty"`
}

// PaymentView is the payment entity enriched with display fields.
type PaymentView struct {
	domain.Payment
	TenantName    string `json:"tenant_name"`
	HouseLocation string `json:"house_location"`
}

// PaymentService handles the rent ledger (payment creation, settlement,
// mutation) and the aggregations derived from the payment set.
type PaymentService struct {
	paymentRepo domain.PaymentRepository
	tenantRepo  domain.TenantRepository
	houseRepo   domain.HouseRepository
	cache       domain.SummaryCache
	metrics     *metrics.RentMetrics
	logger      *slog.Logger
}

// NewPaymentService creates a new PaymentService. cache may be nil, in which
// case every aggregation reads straight from the repositories.
func NewPaymentService(
	paymentRepo domain.PaymentRepository,
	tenantRepo domain.TenantRepository,
	houseRepo domain.HouseRepository,
	cache domain.SummaryCache,
	m *metrics.RentMetrics,
	logger *slog.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		tenantRepo:  tenantRepo,
		houseRepo:   houseRepo,
		cache:       cache,
		metrics:     m,
		logger:      logger,
	}
}

// GenerateMonthlyRent creates an UNPAID payment for the given period with the
// amount copied from the tenant's current house rent. Repeated calls for the
// same (tenant, month, year) create independent records; deduplication is
// deliberately not performed here.
func (s *PaymentService) GenerateMonthlyRent(ctx context.Context, tenantID uuid.UUID, month, year int) (*PaymentView, error) {
	tenant, house, err := s.resolveTenancy(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	payment := &domain.Payment{
		ID:        uuid.New(),
		Month:     month,
		Year:      year,
		Amount:    house.RentAmount,
		Status:    domain.PaymentUnpaid,
		TenantID:  tenant.ID,
		HouseID:   house.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.paymentRepo.Store(ctx, payment); err != nil {
		s.logger.Error("failed to store generated payment", "error", err, "tenant_id", tenant.ID)
		return nil, err
	}
	s.afterWrite(ctx)

	if s.metrics != nil {
		s.metrics.PaymentsCreated.WithLabelValues("generated").Inc()
	}

	return &PaymentView{Payment: *payment, TenantName: tenant.FullName, HouseLocation: house.Location}, nil
}

// Create stores a payment with a caller-supplied amount and optional initial
// status and date.
func (s *PaymentService) Create(ctx context.Context, req CreatePaymentRequest) (*PaymentView, error) {
	tenant, house, err := s.resolveTenancy(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = domain.PaymentUnpaid
	}

	now := time.Now().UTC()
	payment := &domain.Payment{
		ID:          uuid.New(),
		Month:       req.Month,
		Year:        req.Year,
		Amount:      req.Amount,
		Status:      status,
		PaymentDate: req.PaymentDate,
		TenantID:    tenant.ID,
		HouseID:     house.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.paymentRepo.Store(ctx, payment); err != nil {
		s.logger.Error("failed to store payment", "error", err, "tenant_id", tenant.ID)
		return nil, err
	}
	s.afterWrite(ctx)

	if s.metrics != nil {
		s.metrics.PaymentsCreated.WithLabelValues("manual").Inc()
	}

	return &PaymentView{Payment: *payment, TenantName: tenant.FullName, HouseLocation: house.Location}, nil
}

// MarkPaid settles a payment: status PAID, payment date today. Re-marking an
// already-paid payment refreshes the date.
func (s *PaymentService) MarkPaid(ctx context.Context, paymentID uuid.UUID) (*PaymentView, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	payment.Status = domain.PaymentPaid
	payment.PaymentDate = &now
	payment.UpdatedAt = now

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		s.logger.Error("failed to settle payment", "error", err, "payment_id", payment.ID)
		return nil, err
	}
	s.afterWrite(ctx)

	if s.metrics != nil {
		s.metrics.SettlementsTotal.Inc()
	}
	s.logger.Info("payment settled", "payment_id", payment.ID, "amount", payment.Amount)

	return s.toView(ctx, payment)
}

// Update overwrites a payment's fields. The tenant is re-resolved from the
// request and the house reference follows that tenant's current house, which
// may differ from the payment's original binding.
func (s *PaymentService) Update(ctx context.Context, paymentID uuid.UUID, req UpdatePaymentRequest) (*PaymentView, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	tenant, house, err := s.resolveTenancy(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	payment.Month = req.Month
	payment.Year = req.Year
	payment.Amount = req.Amount
	payment.Status = req.Status
	payment.PaymentDate = req.PaymentDate
	payment.TenantID = tenant.ID
	payment.HouseID = house.ID
	payment.UpdatedAt = time.Now().UTC()

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		s.logger.Error("failed to update payment", "error", err, "payment_id", payment.ID)
		return nil, err
	}
	s.afterWrite(ctx)

	return &PaymentView{Payment: *payment, TenantName: tenant.FullName, HouseLocation: house.Location}, nil
}

// Delete removes a payment unconditionally, paid or not.
func (s *PaymentService) Delete(ctx context.Context, paymentID uuid.UUID) error {
	if _, err := s.paymentRepo.FindByID(ctx, paymentID); err != nil {
		return err
	}
	if err := s.paymentRepo.Delete(ctx, paymentID); err != nil {
		s.logger.Error("failed to delete payment", "error", err, "payment_id", paymentID)
		return err
	}
	s.afterWrite(ctx)
	return nil
}

// Get returns a single payment by id.
func (s *PaymentService) Get(ctx context.Context, paymentID uuid.UUID) (*PaymentView, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	return s.toView(ctx, payment)
}

// List returns all payments.
func (s *PaymentService) List(ctx context.Context) ([]*PaymentView, error) {
	payments, err := s.paymentRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, payments)
}

// ListByTenant returns all payments bound to the tenant, in scan order.
func (s *PaymentService) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*PaymentView, error) {
	if _, err := s.tenantRepo.FindByID(ctx, tenantID); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindByTenantID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, payments)
}

// TenantDebt sums the tenant's UNPAID payment amounts.
func (s *PaymentService) TenantDebt(ctx context.Context, tenantID uuid.UUID) (*domain.DebtSummary, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	unpaid, err := s.paymentRepo.FindByTenantIDAndStatus(ctx, tenantID, domain.PaymentUnpaid)
	if err != nil {
		return nil, err
	}

	total := 0.0
	for _, p := range unpaid {
		total += p.Amount
	}

	return &domain.DebtSummary{TenantID: tenant.ID, TenantName: tenant.FullName, TotalDebt: total}, nil
}

// TotalDebt sums every UNPAID payment across all tenants.
func (s *PaymentService) TotalDebt(ctx context.Context) (float64, error) {
	if s.cache != nil {
		total, ok, err := s.cache.GetTotalDebt(ctx)
		if err != nil {
			s.logger.Warn("summary cache read failed", "error", err)
		} else if ok {
			if s.metrics != nil {
				s.metrics.SummaryCacheHits.Inc()
			}
			return total, nil
		} else if s.metrics != nil {
			s.metrics.SummaryCacheMiss.Inc()
		}
	}

	unpaid, err := s.paymentRepo.FindByStatus(ctx, domain.PaymentUnpaid)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for _, p := range unpaid {
		total += p.Amount
	}

	if s.metrics != nil {
		s.metrics.OutstandingDebt.Set(total)
	}
	if s.cache != nil {
		if err := s.cache.SetTotalDebt(ctx, total); err != nil {
			s.logger.Warn("summary cache write failed", "error", err)
		}
	}

	return total, nil
}

// MonthlySummary aggregates expected, paid, and unpaid rent for one period.
// Expected always equals paid plus unpaid because no third status exists.
func (s *PaymentService) MonthlySummary(ctx context.Context, month, year int) (*domain.MonthlySummary, error) {
	if s.cache != nil {
		summary, ok, err := s.cache.GetMonthlySummary(ctx, month, year)
		if err != nil {
			s.logger.Warn("summary cache read failed", "error", err)
		} else if ok {
			if s.metrics != nil {
				s.metrics.SummaryCacheHits.Inc()
			}
			return summary, nil
		} else if s.metrics != nil {
			s.metrics.SummaryCacheMiss.Inc()
		}
	}

	payments, err := s.paymentRepo.FindByMonthAndYear(ctx, month, year)
	if err != nil {
		return nil, err
	}

	summary := &domain.MonthlySummary{Month: month, Year: year}
	for _, p := range payments {
		summary.TotalExpected += p.Amount
		switch p.Status {
		case domain.PaymentPaid:
			summary.TotalPaid += p.Amount
		case domain.PaymentUnpaid:
			summary.TotalUnpaid += p.Amount
		}
	}

	if s.cache != nil {
		if err := s.cache.SetMonthlySummary(ctx, summary); err != nil {
			s.logger.Warn("summary cache write failed", "error", err)
		}
	}

	return summary, nil
}

// resolveTenancy loads the tenant and the house it currently occupies. Every
// ledger write goes through this gate: a payment can only ever be bound to a
// tenant's live house assignment.
func (s *PaymentService) resolveTenancy(ctx context.Context, tenantID uuid.UUID) (*domain.Tenant, *domain.House, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, nil, err
	}
	if tenant.HouseID == nil {
		return nil, nil, domain.NewConflict("tenant is not assigned to any house")
	}
	house, err := s.houseRepo.FindByID(ctx, *tenant.HouseID)
	if err != nil {
		return nil, nil, err
	}
	return tenant, house, nil
}

// afterWrite drops cached aggregates after any change to the payment set.
// Cache failures are logged and otherwise ignored; the next read recomputes
// from the repositories.
func (s *PaymentService) afterWrite(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("summary cache invalidation failed", "error", err)
	}
}

func (s *PaymentService) toView(ctx context.Context, payment *domain.Payment) (*PaymentView, error) {
	view := &PaymentView{Payment: *payment}

	tenant, err := s.tenantRepo.FindByID(ctx, payment.TenantID)
	if err != nil {
		return nil, err
	}
	view.TenantName = tenant.FullName

	house, err := s.houseRepo.FindByID(ctx, payment.HouseID)
	if err != nil {
		return nil, err
	}
	view.HouseLocation = house.Location

	return view, nil
}

func (s *PaymentService) toViews(ctx context.Context, payments []*domain.Payment) ([]*PaymentView, error) {
	tenants, err := s.tenantRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	tenantNames := make(map[uuid.UUID]string, len(tenants))
	for _, t := range tenants {
		tenantNames[t.ID] = t.FullName
	}

	houses, err := s.houseRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	locations := make(map[uuid.UUID]string, len(houses))
	for _, h := range houses {
		locations[h.ID] = h.Location
	}

	views := make([]*PaymentView, 0, len(payments))
	for _, p := range payments {
		views = append(views, &PaymentView{
			Payment:       *p,
			TenantName:    tenantNames[p.TenantID],
			HouseLocation: locations[p.HouseID],
		})
	}
	return views, nil
}
