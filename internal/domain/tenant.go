package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Tenant represents a renter. HouseID is set only while the tenant is bound
// to a house through the occupancy operations; it is never written directly.
type Tenant struct {
	ID         uuid.UUID  `json:"id"`
	FullName   string     `json:"full_name"`
	Phone      string     `json:"phone"`
	Email      string     `json:"email"`
	NationalID string     `json:"national_id"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	HouseID    *uuid.UUID `json:"house_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TenantRepository defines the interface for tenant persistence.
type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	FindAll(ctx context.Context) ([]*Tenant, error)
	FindByNationalID(ctx context.Context, nationalID string) (*Tenant, error)
	Store(ctx context.Context, t *Tenant) error
	Update(ctx context.Context, t *Tenant) error
}
