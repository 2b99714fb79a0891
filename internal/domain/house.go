package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// HouseStatus describes the occupancy state of a house.
type HouseStatus string

const (
	HouseVacant   HouseStatus = "VACANT"
	HouseOccupied HouseStatus = "OCCUPIED"
)

// House represents a rental property. Status and TenantID always move
// together: a house is OCCUPIED exactly when TenantID is set, and the
// referenced tenant's own HouseID points back at this house.
type House struct {
	ID          uuid.UUID   `json:"id"`
	Location    string      `json:"location"`
	RentAmount  float64     `json:"rent_amount"`
	Description string      `json:"description,omitempty"`
	Status      HouseStatus `json:"status"`
	OwnerID     uuid.UUID   `json:"owner_id"`
	TenantID    *uuid.UUID  `json:"tenant_id,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Occupied reports whether the house currently has a tenant bound to it.
func (h *House) Occupied() bool {
	return h.Status == HouseOccupied && h.TenantID != nil
}

// HouseRepository defines the interface for house persistence.
type HouseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*House, error)
	FindAll(ctx context.Context) ([]*House, error)
	FindByStatus(ctx context.Context, status HouseStatus) ([]*House, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*House, error)
	Store(ctx context.Context, h *House) error
	Update(ctx context.Context, h *House) error
}

// OccupancyRepository persists the two sides of the house/tenant binding.
// Both methods must apply the house and tenant rows within a single storage
// transaction; a partial write would leave the bidirectional reference
// inconsistent.
type OccupancyRepository interface {
	// Bind stores house (OCCUPIED, tenant set) and tenant (house set) together.
	Bind(ctx context.Context, h *House, t *Tenant) error

	// Release stores house (VACANT, tenant cleared) and tenant (house
	// cleared) together.
	Release(ctx context.Context, h *House, t *Tenant) error
}
