package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PaymentStatus describes the settlement state of a payment.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "UNPAID"
	PaymentPaid   PaymentStatus = "PAID"
)

// Payment records one month of rent owed by a tenant for a house.
// PaymentDate is set when the payment is settled.
type Payment struct {
	ID          uuid.UUID     `json:"id"`
	Month       int           `json:"month"`
	Year        int           `json:"year"`
	Amount      float64       `json:"amount"`
	Status      PaymentStatus `json:"status"`
	PaymentDate *time.Time    `json:"payment_date,omitempty"`
	TenantID    uuid.UUID     `json:"tenant_id"`
	HouseID     uuid.UUID     `json:"house_id"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// PaymentRepository defines the interface for payment persistence.
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindAll(ctx context.Context) ([]*Payment, error)
	FindByTenantID(ctx context.Context, tenantID uuid.UUID) ([]*Payment, error)
	FindByStatus(ctx context.Context, status PaymentStatus) ([]*Payment, error)
	FindByTenantIDAndStatus(ctx context.Context, tenantID uuid.UUID, status PaymentStatus) ([]*Payment, error)
	FindByMonthAndYear(ctx context.Context, month, year int) ([]*Payment, error)
	Store(ctx context.Context, p *Payment) error
	Update(ctx context.Context, p *Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SummaryCache caches derived payment aggregates. Implementations must treat
// the cache as advisory: a miss or failure falls through to the repositories.
// Invalidate is called after every payment write so cached totals never
// outlive the records they summarize.
type SummaryCache interface {
	GetTotalDebt(ctx context.Context) (float64, bool, error)
	SetTotalDebt(ctx context.Context, total float64) error
	GetMonthlySummary(ctx context.Context, month, year int) (*MonthlySummary, bool, error)
	SetMonthlySummary(ctx context.Context, s *MonthlySummary) error
	Invalidate(ctx context.Context) error
}

// MonthlySummary aggregates expected, paid, and unpaid rent for one period.
type MonthlySummary struct {
	Month         int     `json:"month"`
	Year          int     `json:"year"`
	TotalExpected float64 `json:"total_expected"`
	TotalPaid     float64 `json:"total_paid"`
	TotalUnpaid   float64 `json:"total_unpaid"`
}

// DebtSummary reports the outstanding unpaid total for one tenant.
type DebtSummary struct {
	TenantID   uuid.UUID `json:"tenant_id"`
	TenantName string    `json:"tenant_name"`
	TotalDebt  float64   `json:"total_debt"`
}
