package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/adapter/metrics"
	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/domain"
)

// CreateTenantRequest carries the caller-supplied fields for a new tenant.
type CreateTenantRequest struct {
	FullName   string     `json:"full_name"`
	Phone      string     `json:"phone"`
	Email      string     `json:"email"`
	NationalID string     `json:"national_id"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
}

// UpdateTenantRequest carries the mutable contact fields of a tenant. The
// house binding is never updated through this path; only the occupancy
// operations touch it.
type UpdateTenantRequest struct {
	FullName  string     `json:"full_name"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// TenantView is the tenant entity enriched with the location of the house
// the tenant currently occupies, if any.
type TenantView struct {
	domain.Tenant
	HouseLocation string `json:"house_location,omitempty"`
}

// TenantService handles tenant record keeping and the tenant-driven side of
// the occupancy operations.
type TenantService struct {
	tenantRepo    domain.TenantRepository
	houseRepo     domain.HouseRepository
	occupancyRepo domain.OccupancyRepository
	metrics       *metrics.RentMetrics
	logger        *slog.Logger
}

// NewTenantService creates a new TenantService.
func NewTenantService(
	tenantRepo domain.TenantRepository,
	houseRepo domain.HouseRepository,
	occupancyRepo domain.OccupancyRepository,
	m *metrics.RentMetrics,
	logger *slog.Logger,
) *TenantService {
	return &TenantService{
		tenantRepo:    tenantRepo,
		houseRepo:     houseRepo,
		occupancyRepo: occupancyRepo,
		metrics:       m,
		logger:        logger,
	}
}

// Create stores a new tenant. National ids are unique across all tenants.
func (s *TenantService) Create(ctx context.Context, req CreateTenantRequest) (*TenantView, error) {
	existing, err := s.tenantRepo.FindByNationalID(ctx, req.NationalID)
	if err != nil && !domain.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewConflict("national id is already registered")
	}

	now := time.Now().UTC()
	tenant := &domain.Tenant{
		ID:         uuid.New(),
		FullName:   req.FullName,
		Phone:      req.Phone,
		Email:      req.Email,
		NationalID: req.NationalID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.tenantRepo.Store(ctx, tenant); err != nil {
		s.logger.Error("failed to store tenant", "error", err)
		return nil, err
	}

	return &TenantView{Tenant: *tenant}, nil
}

// Get returns a single tenant by id.
func (s *TenantService) Get(ctx context.Context, tenantID uuid.UUID) (*TenantView, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return s.toView(ctx, tenant)
}

// List returns all tenants.
func (s *TenantService) List(ctx context.Context) ([]*TenantView, error) {
	tenants, err := s.tenantRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	houses, err := s.houseRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	locations := make(map[uuid.UUID]string, len(houses))
	for _, h := range houses {
		locations[h.ID] = h.Location
	}

	views := make([]*TenantView, 0, len(tenants))
	for _, t := range tenants {
		view := &TenantView{Tenant: *t}
		if t.HouseID != nil {
			view.HouseLocation = locations[*t.HouseID]
		}
		views = append(views, view)
	}
	return views, nil
}

// Update overwrites a tenant's contact fields and tenancy dates.
func (s *TenantService) Update(ctx context.Context, tenantID uuid.UUID, req UpdateTenantRequest) (*TenantView, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	tenant.FullName = req.FullName
	tenant.Phone = req.Phone
	tenant.Email = req.Email
	tenant.StartDate = req.StartDate
	tenant.EndDate = req.EndDate
	tenant.UpdatedAt = time.Now().UTC()

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		s.logger.Error("failed to update tenant", "error", err, "tenant_id", tenant.ID)
		return nil, err
	}

	return s.toView(ctx, tenant)
}

// Leave releases the tenant's current house, if any, setting it VACANT.
// This is the tenant-driven counterpart of HouseService.MarkVacant; both
// converge to the same released state. Idempotent for an unhoused tenant.
func (s *TenantService) Leave(ctx context.Context, tenantID uuid.UUID) (*TenantView, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if tenant.HouseID == nil {
		return &TenantView{Tenant: *tenant}, nil
	}

	house, err := s.houseRepo.FindByID(ctx, *tenant.HouseID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	house.Status = domain.HouseVacant
	house.TenantID = nil
	house.UpdatedAt = now
	tenant.HouseID = nil
	tenant.UpdatedAt = now

	if err := s.occupancyRepo.Release(ctx, house, tenant); err != nil {
		s.logger.Error("failed to release tenant from house", "error", err, "house_id", house.ID, "tenant_id", tenant.ID)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.OccupancyChanges.WithLabelValues("leave").Inc()
	}
	s.logger.Info("tenant left house", "house_id", house.ID, "tenant_id", tenant.ID)

	return &TenantView{Tenant: *tenant}, nil
}

func (s *TenantService) toView(ctx context.Context, tenant *domain.Tenant) (*TenantView, error) {
	view := &TenantView{Tenant: *tenant}
	if tenant.HouseID != nil {
		house, err := s.houseRepo.FindByID(ctx, *tenant.HouseID)
		if err != nil {
			return nil, err
		}
		view.HouseLocation = house.Location
	}
	return view, nil
}
