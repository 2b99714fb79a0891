package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/domain"
)

// CreateOwnerRequest carries the caller-supplied fields for a new owner.
type CreateOwnerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// OwnerService handles owner record keeping.
type OwnerService struct {
	ownerRepo domain.OwnerRepository
	houseRepo domain.HouseRepository
	logger    *slog.Logger
}

// NewOwnerService creates a new OwnerService.
func NewOwnerService(ownerRepo domain.OwnerRepository, houseRepo domain.HouseRepository, logger *slog.Logger) *OwnerService {
	return &OwnerService{
		ownerRepo: ownerRepo,
		houseRepo: houseRepo,
		logger:    logger,
	}
}

// Create stores a new owner record.
func (s *OwnerService) Create(ctx context.Context, req CreateOwnerRequest) (*domain.Owner, error) {
	now := time.Now().UTC()
	owner := &domain.Owner{
		ID:        uuid.New(),
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.ownerRepo.Store(ctx, owner); err != nil {
		s.logger.Error("failed to store owner", "error", err)
		return nil, err
	}

	return owner, nil
}

// List returns all owners.
func (s *OwnerService) List(ctx context.Context) ([]*domain.Owner, error) {
	return s.ownerRepo.FindAll(ctx)
}

// Delete removes an owner together with its houses and their payments.
// The cascade is refused while any of the owner's houses is occupied; tenants
// must leave (or be vacated) first.
func (s *OwnerService) Delete(ctx context.Context, ownerID uuid.UUID) error {
	owner, err := s.ownerRepo.FindByID(ctx, ownerID)
	if err != nil {
		return err
	}

	houses, err := s.houseRepo.FindByOwnerID(ctx, owner.ID)
	if err != nil {
		return err
	}
	for _, h := range houses {
		if h.Occupied() {
			return domain.NewConflict("owner has occupied houses; vacate them before deletion")
		}
	}

	if err := s.ownerRepo.DeleteWithHouses(ctx, owner.ID); err != nil {
		s.logger.Error("failed to delete owner", "error", err, "owner_id", owner.ID)
		return err
	}

	s.logger.Info("owner deleted with houses", "owner_id", owner.ID, "houses", len(houses))
	return nil
}
