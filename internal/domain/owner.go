package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Owner represents a property owner. An owner may hold any number of houses.
type Owner struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnerRepository defines the interface for owner persistence.
type OwnerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Owner, error)
	FindAll(ctx context.Context) ([]*Owner, error)
	Store(ctx context.Context, o *Owner) error

	// DeleteWithHouses removes the owner together with all of its houses and
	// the payments bound to those houses, in a single transaction. Callers
	// must verify beforehand that none of the houses is occupied.
	DeleteWithHouses(ctx context.Context, id uuid.UUID) error
}
