package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/domain"
	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/domain/mocks"
)

type paymentFixture struct {
	*houseFixture
	payments *mocks.MockPaymentRepository
	cache    *mocks.MockSummaryCache
	service  *PaymentService
}

func newPaymentFixture() *paymentFixture {
	hf := newHouseFixture()
	payments := &mocks.MockPaymentRepository{}
	cache := &mocks.MockSummaryCache{}
	return &paymentFixture{
		houseFixture: hf,
		payments:     payments,
		cache:        cache,
		service:      NewPaymentService(payments, hf.tenants, hf.houses, cache, nil, testLogger()),
	}
}

// seedTenancy creates an owner, a house with the given rent, and a tenant
// bound to it.
func (f *paymentFixture) seedTenancy(t *testing.T, rent float64, nationalID string) (*domain.House, *domain.Tenant) {
	t.Helper()
	owner := f.seedOwner(t, "Alice")
	house := f.seedHouse(t, owner.ID, rent)
	tenant := f.seedTenant(t, "Bob "+nationalID, nationalID)
	if _, err := f.houseFixture.service.AssignTenant(context.Background(), house.ID, tenant.ID); err != nil {
		t.Fatalf("seed tenancy: %v", err)
	}
	return house, tenant
}

func TestPaymentService_GenerateMonthlyRent(t *testing.T) {
	ctx := context.Background()

	t.Run("Copies Rent From Current House", func(t *testing.T) {
		f := newPaymentFixture()
		_, tenant := f.seedTenancy(t, 500, "NID-1")

		view, err := f.service.GenerateMonthlyRent(ctx, tenant.ID, 3, 2024)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if view.Amount != 500 {
			t.Errorf("expected amount 500, got %v", view.Amount)
		}
		if view.Status != domain.PaymentUnpaid {
			t.Errorf("expected UNPAID, got %s", view.Status)
		}
		if view.PaymentDate != nil {
			t.Error("expected no payment date on a fresh payment")
		}
		if view.Month != 3 || view.Year != 2024 {
			t.Errorf("unexpected period: %d/%d", view.Month, view.Year)
		}
	})

	t.Run("Tenant Not Found", func(t *testing.T) {
		f := newPaymentFixture()

		_, err := f.service.GenerateMonthlyRent(ctx, uuid.New(), 3, 2024)
		if !domain.IsNotFound(err) {
			t.Fatalf("expected NotFound, got %v", err)
		}
	})

	t.Run("Unhoused Tenant", func(t *testing.T) {
		f := newPaymentFixture()
		tenant := f.seedTenant(t, "Bob", "NID-1")

		_, err := f.service.GenerateMonthlyRent(ctx, tenant.ID, 3, 2024)
		if !domain.IsConflict(err) {
			t.Fatalf("expected Conflict, got %v", err)
		}
	})

	// Generation is deliberately not idempotent: the same period can be
	// billed twice and both records persist.
	t.Run("No Deduplication Per Period", func(t *testing.T) {
		f := newPaymentFixture()
		_, tenant := f.seedTenancy(t, 500, "NID-1")

		first, err := f.service.GenerateMonthlyRent(ctx, tenant.ID, 3, 2024)
		if err != nil {
			t.Fatalf("first generation failed: %v", err)
		}
		second, err := f.service.GenerateMonthlyRent(ctx, tenant.ID, 3, 2024)
		if err != nil {
			t.Fatalf("second generation failed: %v", err)
		}
		if first.ID == second.ID {
			t.Error("expected two independent payment records")
		}

		stored, _ := f.payments.FindByTenantID(ctx, tenant.ID)
		if len(stored) != 2 {
			t.Fatalf("expected 2 payments, got %d", len(stored))
		}
		for _, p := range stored {
			if p.Status != domain.PaymentUnpaid {
				t.Error("expected both records UNPAID")
			}
		}
	})
}

func TestPaymentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults To Unpaid", func(t *testing.T) {
		f := newPaymentFixture()
		_, tenant := f.seedTenancy(t, 500, "NID-1")

		view, err := f.service.Create(ctx, CreatePaymentRequest{
			TenantID: tenant.ID,
			Month:    4,
			Year:     2024,
			Amount:   450,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if view.Status != domain.PaymentUnpaid {
			t.Errorf("expected UNPAID default, got %s", view.Status)
		}
		if view.Amount != 450 {
			t.Errorf("expected caller-supplied amount 450, got %v", view.Amount)
		}
	})

	t.Run("Honours Initial Status", func(t *testing.T) {
		f := newPaymentFixture()
		_, tenant := f.seedTenancy(t, 500, "NID-1")
		paid := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)

		view, err := f.service.Create(ctx, CreatePaymentRequest{
			TenantID:    tenant.ID,
			Month:       4,
			Year:        2024,
			Amount:      500,
			Status:      domain.PaymentPaid,
			PaymentDate: &paid,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if view.Status != domain.PaymentPaid {
			t.Errorf("expected PAID, got %s", view.Status)
		}
	})

	t.Run("Unhoused Tenant", func(t *testing.T) {
		f := newPaymentFixture()
		tenant := f.seedTenant(t, "Bob", "NID-1")

		_, err := f.service.Create(ctx, CreatePaymentRequest{TenantID: tenant.ID, Month: 4, Year: 2024, Amount: 450})
		if !domain.IsConflict(err) {
			t.Fatalf("expected Conflict, got %v", err)
		}
	})
}

func TestPaymentService_MarkPaid(t *testing.T) {
	ctx := context.Background()

	t.Run("Settles With Current Date", func(t *testing.T) {
		f := newPaymentFixture()
		_, tenant := f.seedTenancy(t, 500, "NID-1")
		payment, err := f.service.GenerateMonthlyRent(ctx, tenant.ID, 3, 2024)
		if err != nil {
			t.Fatalf("generation failed: %v", err)
		}

		view, err := f.service.MarkPaid(ctx, payment.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if view.Status != domain.PaymentPaid {
			t.Errorf("expected PAID, got %s", view.Status)
		}
		if view.PaymentDate == nil {
			t.Fatal("expected payment date to be set")
		}
		if time.Since(*view.PaymentDate) > time.Minute {
			t.Error("expected payment date to be now")
		}
	})

	t.Run("Re-Marking Refreshes Date", func(t *testing.T) {
		f := newPaymentFixture()
		_, tenant := f.seedTenancy(t, 500, "NID-1")
		payment, _ := f.service.GenerateMonthlyRent(ctx, tenant.ID, 3, 2024)

		first, err := f.service.MarkPaid(ctx, payment.ID)
		if err != nil {
			t.Fatalf("first settle failed: %v", err)
		}
		second, err := f.service.MarkPaid(ctx, payment.ID)
		if err != nil {
			t.Fatalf("second settle failed: %v", err)
		}
		if second.Status != domain.PaymentPaid {
			t.Error("expected payment to remain PAID")
		}
		if second.PaymentDate.Before(*first.PaymentDate) {
			t.Error("expected refreshed payment date")
		}
	})

	t.Run("Payment Not Found", func(t *testing.T) {
		f := newPaymentFixture()

		_, err := f.service.MarkPaid(ctx, uuid.New())
		if !domain.IsNotFound(err) {
			t.Fatalf("expected NotFound, got %v", err)
		}
	})
}

func TestPaymentService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Repoints To Another Tenant's House", func(t *testing.T) {
		f := newPaymentFixture()
		_, first := f.seedTenancy(t, 500, "NID-1")
		otherHouse, second := f.seedTenancy(t, 700, "NID-2")

		payment, err := f.service.GenerateMonthlyRent(ctx, first.ID, 3, 2024)
		if err != nil {
			t.Fatalf("generation failed: %v", err)
		}

		view, err := f.service.Update(ctx, payment.ID, UpdatePaymentRequest{
			TenantID: second.ID,
			Month:    5,
			Year:     2024,
			Amount:   700,
			Status:   domain.PaymentUnpaid,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if view.TenantID != second.ID {
			t.Error("expected payment repointed to second tenant")
		}
		if view.HouseID != otherHouse.ID {
			t.Error("expected house to follow the re-resolved tenant")
		}
		if view.Month != 5 || view.Amount != 700 {
			t.Error("expected overwritten fields")
		}
	})

	t.Run("Target Tenant Unhoused", func(t *testing.T) {
		f := newPaymentFixture()
		_, tenant := f.seedTenancy(t, 500, "NID-1")
		unhoused := f.seedTenant(t, "Carol", "NID-9")
		payment, _ := f.service.GenerateMonthlyRent(ctx, tenant.ID, 3, 2024)

		_, err := f.service.Update(ctx, payment.ID, UpdatePaymentRequest{
			TenantID: unhoused.ID,
			Month:    3,
			Year:     2024,
			Amount:   500,
			Status:   domain.PaymentUnpaid,
		})
		if !domain.IsConflict(err) {
			t.Fatalf("expected Conflict, got %v", err)
		}
	})

	t.Run("Payment Not Found", func(t *testing.T) {
		f := newPaymentFixture()
		_, tenant := f.seedTenancy(t, 500, "NID-1")

		_, err := f.service.Update(ctx, uuid.New(), UpdatePaymentRequest{
			TenantID: tenant.ID, Month: 3, Year: 2024, Amount: 500, Status: domain.PaymentUnpaid,
		})
		if !domain.IsNotFound(err) {
			t.Fatalf("expected NotFound, got %v", err)
		}
	})
}

func TestPaymentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Deletes Paid Payments Too", func(t *testing.T) {
		f := newPaymentFixture()
		_, tenant := f.seedTenancy(t, 500, "NID-1")
		payment, _ := f.service.GenerateMonthlyRent(ctx, tenant.ID, 3, 2024)
		if _, err := f.service.MarkPaid(ctx, payment.ID); err != nil {
			t.Fatalf("settle failed: %v", err)
		}

		if err := f.service.Delete(ctx, payment.ID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if _, err := f.service.Get(ctx, payment.ID); !domain.IsNotFound(err) {
			t.Error("expected payment to be gone")
		}
	})

	t.Run("Payment Not Found", func(t *testing.T) {
		f := newPaymentFixture()

		if err := f.service.Delete(ctx, uuid.New()); !domain.IsNotFound(err) {
			t.Fatal("expected NotFound")
		}
	})
}

func TestPaymentService_TenantDebt(t *testing.T) {
	ctx := context.Background()

	t.Run("Sums Unpaid Only", func(t *testing.T) {
		f := newPaymentFixture()
		_, tenant := f.seedTenancy(t, 500, "NID-1")

		first, _ := f.service.GenerateMonthlyRent(ctx, tenant.ID, 1, 2024)
		if _, err := f.service.GenerateMonthlyRent(ctx, tenant.ID, 2, 2024); err != nil {
			t.Fatalf("generation failed: %v", err)
		}
		if _, err := f.service.MarkPaid(ctx, first.ID); err != nil {
			t.Fatalf("settle failed: %v", err)
		}

		debt, err := f.service.TenantDebt(ctx, tenant.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if debt.TotalDebt != 500 {
			t.Errorf("expected debt 500, got %v", debt.TotalDebt)
		}
		if debt.TenantID != tenant.ID || debt.TenantName == "" {
			t.Error("expected tenant identity in summary")
		}
	})

	t.Run("Zero Without Payments", func(t *testing.T) {
		f := newPaymentFixture()
		tenant := f.seedTenant(t, "Bob", "NID-1")

		debt, err := f.service.TenantDebt(ctx, tenant.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if debt.TotalDebt != 0 {
			t.Errorf("expected 0.0 debt, got %v", debt.TotalDebt)
		}
	})

	t.Run("Tenant Not Found", func(t *testing.T) {
		f := newPaymentFixture()

		_, err := f.service.TenantDebt(ctx, uuid.New())
		if !domain.IsNotFound(err) {
			t.Fatalf("expected NotFound, got %v", err)
		}
	})
}

func TestPaymentService_TotalDebt(t *testing.T) {
	ctx := context.Background()

	f := newPaymentFixture()
	_, first := f.seedTenancy(t, 500, "NID-1")
	_, second := f.seedTenancy(t, 700, "NID-2")

	if _, err := f.service.GenerateMonthlyRent(ctx, first.ID, 1, 2024); err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	paid, _ := f.service.GenerateMonthlyRent(ctx, second.ID, 1, 2024)
	if _, err := f.service.MarkPaid(ctx, paid.ID); err != nil {
		t.Fatalf("settle failed: %v", err)
	}

	total, err := f.service.TotalDebt(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if total != 500 {
		t.Errorf("expected total debt 500, got %v", total)
	}

	// Second read must come from the cache and agree.
	cached, err := f.service.TotalDebt(ctx)
	if err != nil {
		t.Fatalf("cached read failed: %v", err)
	}
	if cached != total {
		t.Errorf("cache disagrees with computed total: %v vs %v", cached, total)
	}
}

func TestPaymentService_MonthlySummary(t *testing.T) {
	ctx := context.Background()

	t.Run("Expected Equals Paid Plus Unpaid", func(t *testing.T) {
		f := newPaymentFixture()
		_, first := f.seedTenancy(t, 500, "NID-1")
		_, second := f.seedTenancy(t, 700, "NID-2")

		if _, err := f.service.GenerateMonthlyRent(ctx, first.ID, 3, 2024); err != nil {
			t.Fatalf("generation failed: %v", err)
		}
		paid, _ := f.service.GenerateMonthlyRent(ctx, second.ID, 3, 2024)
		if _, err := f.service.MarkPaid(ctx, paid.ID); err != nil {
			t.Fatalf("settle failed: %v", err)
		}
		// A record in another period must not be counted.
		if _, err := f.service.GenerateMonthlyRent(ctx, first.ID, 4, 2024); err != nil {
			t.Fatalf("generation failed: %v", err)
		}

		summary, err := f.service.MonthlySummary(ctx, 3, 2024)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if summary.TotalExpected != 1200 {
			t.Errorf("expected 1200 expected, got %v", summary.TotalExpected)
		}
		if summary.TotalPaid != 700 {
			t.Errorf("expected 700 paid, got %v", summary.TotalPaid)
		}
		if summary.TotalUnpaid != 500 {
			t.Errorf("expected 500 unpaid, got %v", summary.TotalUnpaid)
		}
		if summary.TotalExpected != summary.TotalPaid+summary.TotalUnpaid {
			t.Error("expected == paid + unpaid must hold")
		}
	})

	t.Run("Empty Period", func(t *testing.T) {
		f := newPaymentFixture()

		summary, err := f.service.MonthlySummary(ctx, 6, 2030)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if summary.TotalExpected != 0 || summary.TotalPaid != 0 || summary.TotalUnpaid != 0 {
			t.Error("expected all-zero summary for empty period")
		}
	})
}

func TestPaymentService_CacheInvalidation(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture()
	_, tenant := f.seedTenancy(t, 500, "NID-1")

	if _, err := f.service.TotalDebt(ctx); err != nil {
		t.Fatalf("total debt failed: %v", err)
	}
	if f.cache.TotalDebt == nil {
		t.Fatal("expected total debt to be cached")
	}

	// Every ledger write must drop the cached aggregates.
	payment, err := f.service.GenerateMonthlyRent(ctx, tenant.ID, 3, 2024)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	if f.cache.TotalDebt != nil {
		t.Error("expected cache invalidated after generation")
	}
	if f.cache.InvalidateCalls == 0 {
		t.Error("expected Invalidate to be called")
	}

	total, err := f.service.TotalDebt(ctx)
	if err != nil {
		t.Fatalf("total debt failed: %v", err)
	}
	if total != 500 {
		t.Errorf("expected recomputed debt 500, got %v", total)
	}

	calls := f.cache.InvalidateCalls
	if _, err := f.service.MarkPaid(ctx, payment.ID); err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	if f.cache.InvalidateCalls != calls+1 {
		t.Error("expected settlement to invalidate the cache")
	}
}

func TestPaymentService_ListByTenant(t *testing.T) {
	ctx := context.Background()

	t.Run("Scopes To Tenant", func(t *testing.T) {
		f := newPaymentFixture()
		_, first := f.seedTenancy(t, 500, "NID-1")
		_, second := f.seedTenancy(t, 700, "NID-2")

		if _, err := f.service.GenerateMonthlyRent(ctx, first.ID, 1, 2024); err != nil {
			t.Fatalf("generation failed: %v", err)
		}
		if _, err := f.service.GenerateMonthlyRent(ctx, second.ID, 1, 2024); err != nil {
			t.Fatalf("generation failed: %v", err)
		}

		views, err := f.service.ListByTenant(ctx, first.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(views) != 1 {
			t.Fatalf("expected 1 payment, got %d", len(views))
		}
		if views[0].TenantID != first.ID {
			t.Error("wrong tenant's payment returned")
		}
	})

	t.Run("Tenant Not Found", func(t *testing.T) {
		f := newPaymentFixture()

		_, err := f.service.ListByTenant(ctx, uuid.New())
		if !domain.IsNotFound(err) {
			t.Fatalf("expected NotFound, got %v", err)
		}
	})
}

// TestRentLifecycle walks the full flow: create owner, house, tenant, assign,
// bill, settle, and confirm the debt clears.
func TestRentLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture()

	owner := f.seedOwner(t, "O1")
	house := f.seedHouse(t, owner.ID, 500)
	tenant := f.seedTenant(t, "T1", "NID-1")

	stored, _ := f.houses.FindByID(ctx, house.ID)
	if stored.Status != domain.HouseVacant {
		t.Fatal("new house must start VACANT")
	}

	assigned, err := f.houseFixture.service.AssignTenant(ctx, house.ID, tenant.ID)
	if err != nil {
		t.Fatalf("assignment failed: %v", err)
	}
	if assigned.Status != domain.HouseOccupied {
		t.Fatal("house must be OCCUPIED after assignment")
	}

	payment, err := f.service.GenerateMonthlyRent(ctx, tenant.ID, 3, 2024)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	if payment.Amount != 500 || payment.Status != domain.PaymentUnpaid {
		t.Fatal("expected UNPAID payment of 500")
	}

	debt, err := f.service.TenantDebt(ctx, tenant.ID)
	if err != nil {
		t.Fatalf("debt failed: %v", err)
	}
	if debt.TotalDebt != 500 {
		t.Fatalf("expected debt 500, got %v", debt.TotalDebt)
	}

	settled, err := f.service.MarkPaid(ctx, payment.ID)
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	if settled.Status != domain.PaymentPaid || settled.PaymentDate == nil {
		t.Fatal("expected settled payment with date")
	}

	debt, err = f.service.TenantDebt(ctx, tenant.ID)
	if err != nil {
		t.Fatalf("debt failed: %v", err)
	}
	if debt.TotalDebt != 0 {
		t.Fatalf("expected debt 0.0 after settlement, got %v", debt.TotalDebt)
	}
}
