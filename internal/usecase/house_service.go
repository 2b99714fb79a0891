package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/adapter/metrics"
	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/domain"
)

// CreateHouseRequest carries the caller-supplied fields for a new house.
type CreateHouseRequest struct {
	Location    string    `json:"location"`
	RentAmount  float64   `json:"rent_amount"`
	Description string    `json:"description,omitempty"`
	OwnerID     uuid.UUID `json:"owner_id"`
}

// HouseView is the house entity enriched with the display names the API
// returns alongside it.
type HouseView struct {
	domain.House
	OwnerName  string `json:"owner_name"`
	TenantName string `json:"tenant_name,omitempty"`
}

// HouseService handles house record keeping and the occupancy operations
// that bind tenants to houses.
type HouseService struct {
	houseRepo     domain.HouseRepository
	ownerRepo     domain.OwnerRepository
	tenantRepo    domain.TenantRepository
	occupancyRepo domain.OccupancyRepository
	metrics       *metrics.RentMetrics
	logger        *slog.Logger
}

// NewHouseService creates a new HouseService.
func NewHouseService(
	houseRepo domain.HouseRepository,
	ownerRepo domain.OwnerRepository,
	tenantRepo domain.TenantRepository,
	occupancyRepo domain.OccupancyRepository,
	m *metrics.RentMetrics,
	logger *slog.Logger,
) *HouseService {
	return &HouseService{
		houseRepo:     houseRepo,
		ownerRepo:     ownerRepo,
		tenantRepo:    tenantRepo,
		occupancyRepo: occupancyRepo,
		metrics:       m,
		logger:        logger,
	}
}

// Create stores a new house for an existing owner. Houses start VACANT.
func (s *HouseService) Create(ctx context.Context, req CreateHouseRequest) (*HouseView, error) {
	owner, err := s.ownerRepo.FindByID(ctx, req.OwnerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	house := &domain.House{
		ID:          uuid.New(),
		Location:    req.Location,
		RentAmount:  req.RentAmount,
		Description: req.Description,
		Status:      domain.HouseVacant,
		OwnerID:     owner.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.houseRepo.Store(ctx, house); err != nil {
		s.logger.Error("failed to store house", "error", err)
		return nil, err
	}

	return &HouseView{House: *house, OwnerName: owner.Name}, nil
}

// Get returns a single house by id.
func (s *HouseService) Get(ctx context.Context, houseID uuid.UUID) (*HouseView, error) {
	house, err := s.houseRepo.FindByID(ctx, houseID)
	if err != nil {
		return nil, err
	}
	return s.toView(ctx, house)
}

// List returns all houses.
func (s *HouseService) List(ctx context.Context) ([]*HouseView, error) {
	houses, err := s.houseRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, houses)
}

// ListVacant returns all houses currently without a tenant.
func (s *HouseService) ListVacant(ctx context.Context) ([]*HouseView, error) {
	houses, err := s.houseRepo.FindByStatus(ctx, domain.HouseVacant)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, houses)
}

// AssignTenant binds a tenant to a house. A house holds at most one tenant
// and a tenant holds at most one house; both sides are persisted in one
// transaction so the relation can never be observed half-applied.
func (s *HouseService) AssignTenant(ctx context.Context, houseID, tenantID uuid.UUID) (*HouseView, error) {
	house, err := s.houseRepo.FindByID(ctx, houseID)
	if err != nil {
		return nil, err
	}
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if house.Status == domain.HouseOccupied {
		return nil, domain.NewConflict("house is already occupied")
	}
	if tenant.HouseID != nil {
		return nil, domain.NewConflict("tenant is already assigned to another house")
	}

	now := time.Now().UTC()
	house.Status = domain.HouseOccupied
	house.TenantID = &tenant.ID
	house.UpdatedAt = now
	tenant.HouseID = &house.ID
	tenant.UpdatedAt = now

	if err := s.occupancyRepo.Bind(ctx, house, tenant); err != nil {
		s.logger.Error("failed to bind tenant to house", "error", err, "house_id", house.ID, "tenant_id", tenant.ID)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.OccupancyChanges.WithLabelValues("assign").Inc()
	}
	s.logger.Info("tenant assigned to house", "house_id", house.ID, "tenant_id", tenant.ID)

	return s.toView(ctx, house)
}

// MarkVacant releases a house's tenant, if any, and sets the house VACANT.
// Calling it on an already-vacant house is a no-op on the relation.
func (s *HouseService) MarkVacant(ctx context.Context, houseID uuid.UUID) (*HouseView, error) {
	house, err := s.houseRepo.FindByID(ctx, houseID)
	if err != nil {
		return nil, err
	}

	if house.TenantID == nil {
		return s.toView(ctx, house)
	}

	tenant, err := s.tenantRepo.FindByID(ctx, *house.TenantID)
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
		s.metrics.OccupancyChanges.WithLabelValues("vacate").Inc()
	}
	s.logger.Info("house marked vacant", "house_id", house.ID, "tenant_id", tenant.ID)

	return s.toView(ctx, house)
}

func (s *HouseService) toView(ctx context.Context, house *domain.House) (*HouseView, error) {
	view := &HouseView{House: *house}

	owner, err := s.ownerRepo.FindByID(ctx, house.OwnerID)
	if err != nil {
		return nil, err
	}
	view.OwnerName = owner.Name

	if house.TenantID != nil {
		tenant, err := s.tenantRepo.FindByID(ctx, *house.TenantID)
		if err != nil {
			return nil, err
		}
		view.TenantName = tenant.FullName
	}

	return view, nil
}

// toViews resolves display names for a batch of houses with one scan of the
// owner and tenant sets instead of a lookup per row.
func (s *HouseService) toViews(ctx context.Context, houses []*domain.House) ([]*HouseView, error) {
	owners, err := s.ownerRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	ownerNames := make(map[uuid.UUID]string, len(owners))
	for _, o := range owners {
		ownerNames[o.ID] = o.Name
	}

	tenants, err := s.tenantRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	tenantNames := make(map[uuid.UUID]string, len(tenants))
	for _, t := range tenants {
		tenantNames[t.ID] = t.FullName
	}

	views := make([]*HouseView, 0, len(houses))
	for _, h := range houses {
		view := &HouseView{House: *h, OwnerName: ownerNames[h.OwnerID]}
		if h.TenantID != nil {
			view.TenantName = tenantNames[*h.TenantID]
		}
		views = append(views, view)
	}
	return views, nil
}
