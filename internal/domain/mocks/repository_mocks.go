package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/domain"
)

// MockOwnerRepository is an in-memory implementation of domain.OwnerRepository
// for testing.
type MockOwnerRepository struct {
	mu       sync.Mutex
	Owners   []*domain.Owner
	StoreErr error
	FindErr  error
}

func (m *MockOwnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Owner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	for _, o := range m.Owners {
		if o.ID == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, domain.NewNotFound("owner", id.String())
}

func (m *MockOwnerRepository) FindAll(ctx context.Context) ([]*domain.Owner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	out := make([]*domain.Owner, len(m.Owners))
	copy(out, m.Owners)
	return out, nil
}

func (m *MockOwnerRepository) Store(ctx context.Context, o *domain.Owner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StoreErr != nil {
		return m.StoreErr
	}
	cp := *o
	m.Owners = append(m.Owners, &cp)
	return nil
}

func (m *MockOwnerRepository) DeleteWithHouses(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, o := range m.Owners {
		if o.ID == id {
			m.Owners = append(m.Owners[:i], m.Owners[i+1:]...)
			return nil
		}
	}
	return domain.NewNotFound("owner", id.String())
}

// MockHouseRepository is an in-memory implementation of domain.HouseRepository
// for testing.
type MockHouseRepository struct {
	mu       sync.Mutex
	Houses   []*domain.House
	StoreErr error
	FindErr  error
}

func (m *MockHouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.House, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	for _, h := range m.Houses {
		if h.ID == id {
			cp := *h
			return &cp, nil
		}
	}
	return nil, domain.NewNotFound("house", id.String())
}

func (m *MockHouseRepository) FindAll(ctx context.Context) ([]*domain.House, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	out := make([]*domain.House, len(m.Houses))
	copy(out, m.Houses)
	return out, nil
}

func (m *MockHouseRepository) FindByStatus(ctx context.Context, status domain.HouseStatus) ([]*domain.House, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.House
	for _, h := range m.Houses {
		if h.Status == status {
			cp := *h
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockHouseRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*domain.House, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.House
	for _, h := range m.Houses {
		if h.OwnerID == ownerID {
			cp := *h
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockHouseRepository) Store(ctx context.Context, h *domain.House) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StoreErr != nil {
		return m.StoreErr
	}
	cp := *h
	m.Houses = append(m.Houses, &cp)
	return nil
}

func (m *MockHouseRepository) Update(ctx context.Context, h *domain.House) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.Houses {
		if existing.ID == h.ID {
			cp := *h
			m.Houses[i] = &cp
			return nil
		}
	}
	return domain.NewNotFound("house", h.ID.String())
}

// MockTenantRepository is an in-memory implementation of
// domain.TenantRepository for testing.
type MockTenantRepository struct {
	mu       sync.Mutex
	Tenants  []*domain.Tenant
	StoreErr error
	FindErr  error
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	for _, t := range m.Tenants {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, domain.NewNotFound("tenant", id.String())
}

func (m *MockTenantRepository) FindAll(ctx context.Context) ([]*domain.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	out := make([]*domain.Tenant, len(m.Tenants))
	copy(out, m.Tenants)
	return out, nil
}

func (m *MockTenantRepository) FindByNationalID(ctx context.Context, nationalID string) (*domain.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.Tenants {
		if t.NationalID == nationalID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, domain.NewNotFound("tenant", nationalID)
}

func (m *MockTenantRepository) Store(ctx context.Context, t *domain.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StoreErr != nil {
		return m.StoreErr
	}
	cp := *t
	m.Tenants = append(m.Tenants, &cp)
	return nil
}

func (m *MockTenantRepository) Update(ctx context.Context, t *domain.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.Tenants {
		if existing.ID == t.ID {
			cp := *t
			m.Tenants[i] = &cp
			return nil
		}
	}
	return domain.NewNotFound("tenant", t.ID.String())
}

// MockPaymentRepository is an in-memory implementation of
// domain.PaymentRepository for testing. Payments are kept in insertion order
// to mirror storage scan order.
type MockPaymentRepository struct {
	mu       sync.Mutex
	Payments []*domain.Payment
	StoreErr error
	FindErr  error
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	for _, p := range m.Payments {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.NewNotFound("payment", id.String())
}

func (m *MockPaymentRepository) FindAll(ctx context.Context) ([]*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	out := make([]*domain.Payment, len(m.Payments))
	copy(out, m.Payments)
	return out, nil
}

func (m *MockPaymentRepository) FindByTenantID(ctx context.Context, tenantID uuid.UUID) ([]*domain.Payment, error) {
	return m.filter(func(p *domain.Payment) bool { return p.TenantID == tenantID })
}

func (m *MockPaymentRepository) FindByStatus(ctx context.Context, status domain.PaymentStatus) ([]*domain.Payment, error) {
	return m.filter(func(p *domain.Payment) bool { return p.Status == status })
}

func (m *MockPaymentRepository) FindByTenantIDAndStatus(ctx context.Context, tenantID uuid.UUID, status domain.PaymentStatus) ([]*domain.Payment, error) {
	return m.filter(func(p *domain.Payment) bool { return p.TenantID == tenantID && p.Status == status })
}

func (m *MockPaymentRepository) FindByMonthAndYear(ctx context.Context, month, year int) ([]*domain.Payment, error) {
	return m.filter(func(p *domain.Payment) bool { return p.Month == month && p.Year == year })
}

func (m *MockPaymentRepository) filter(keep func(*domain.Payment) bool) ([]*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	var out []*domain.Payment
	for _, p := range m.Payments {
		if keep(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockPaymentRepository) Store(ctx context.Context, p *domain.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StoreErr != nil {
		return m.StoreErr
	}
	cp := *p
	m.Payments = append(m.Payments, &cp)
	return nil
}

func (m *MockPaymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.Payments {
		if existing.ID == p.ID {
			cp := *p
			m.Payments[i] = &cp
			return nil
		}
	}
	return domain.NewNotFound("payment", p.ID.String())
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.Payments {
		if p.ID == id {
			m.Payments = append(m.Payments[:i], m.Payments[i+1:]...)
			return nil
		}
	}
	return domain.NewNotFound("payment", id.String())
}

// MockOccupancyRepository applies both sides of a binding to the backing
// house and tenant mocks, mimicking the atomic transaction of the real
// implementation. BindErr/ReleaseErr simulate transaction failure, in which
// case neither side is written.
type MockOccupancyRepository struct {
	Houses     *MockHouseRepository
	Tenants    *MockTenantRepository
	BindErr    error
	ReleaseErr error
	BindCalls  int
}

func (m *MockOccupancyRepository) Bind(ctx context.Context, h *domain.House, t *domain.Tenant) error {
	if m.BindErr != nil {
		return m.BindErr
	}
	m.BindCalls++
	if err := m.Houses.Update(ctx, h); err != nil {
		return err
	}
	return m.Tenants.Update(ctx, t)
}

func (m *MockOccupancyRepository) Release(ctx context.Context, h *domain.House, t *domain.Tenant) error {
	if m.ReleaseErr != nil {
		return m.ReleaseErr
	}
	if err := m.Houses.Update(ctx, h); err != nil {
		return err
	}
	return m.Tenants.Update(ctx, t)
}

// MockSummaryCache records cache traffic for testing the invalidation rule.
type MockSummaryCache struct {
	mu              sync.Mutex
	TotalDebt       *float64
	Summaries       map[string]*domain.MonthlySummary
	InvalidateCalls int
	Err             error
}

func summaryKey(month, year int) string {
	return fmt.Sprintf("%d:%d", month, year)
}

func (m *MockSummaryCache) GetTotalDebt(ctx context.Context) (float64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, false, m.Err
	}
	if m.TotalDebt == nil {
		return 0, false, nil
	}
	return *m.TotalDebt, true, nil
}

func (m *MockSummaryCache) SetTotalDebt(ctx context.Context, total float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.TotalDebt = &total
	return nil
}

func (m *MockSummaryCache) GetMonthlySummary(ctx context.Context, month, year int) (*domain.MonthlySummary, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, false, m.Err
	}
	s, ok := m.Summaries[summaryKey(month, year)]
	return s, ok, nil
}

func (m *MockSummaryCache) SetMonthlySummary(ctx context.Context, s *domain.MonthlySummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if m.Summaries == nil {
		m.Summaries = make(map[string]*domain.MonthlySummary)
	}
	m.Summaries[summaryKey(s.Month, s.Year)] = s
	return nil
}

func (m *MockSummaryCache) Invalidate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InvalidateCalls++
	if m.Err != nil {
		return m.Err
	}
	m.TotalDebt = nil
	m.Summaries = nil
	return nil
}
