package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/domain"
)

const houseColumns = `id, location, rent_amount, description, status, owner_id, tenant_id, created_at, updated_at`

// HouseRepository implements domain.HouseRepository for PostgreSQL.
type HouseRepository struct {
	db *sql.DB
}

// NewHouseRepository creates a new PostgreSQL house repository.
func NewHouseRepository(db *sql.DB) *HouseRepository {
	return &HouseRepository{db: db}
}

func scanHouse(row interface{ Scan(...any) error }) (*domain.House, error) {
	var (
		house       domain.House
		description sql.NullString
		tenantID    uuid.NullUUID
	)
	err := row.Scan(
		&house.ID,
		&house.Location,
		&house.RentAmount,
		&description,
		&house.Status,
		&house.OwnerID,
		&tenantID,
		&house.CreatedAt,
		&house.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	house.Description = description.String
	if tenantID.Valid {
		house.TenantID = &tenantID.UUID
	}
	return &house, nil
}

func (r *HouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.House, error) {
	query := `SELECT ` + houseColumns + ` FROM houses WHERE id = $1`

	house, err := scanHouse(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("house", id.String())
		}
		return nil, fmt.Errorf("find house by id: %w", err)
	}

	return house, nil
}

func (r *HouseRepository) FindAll(ctx context.Context) ([]*domain.House, error) {
	query := `SELECT ` + houseColumns + ` FROM houses ORDER BY created_at`
	return r.queryHouses(ctx, query)
}

func (r *HouseRepository) FindByStatus(ctx context.Context, status domain.HouseStatus) ([]*domain.House, error) {
	query := `SELECT ` + houseColumns + ` FROM houses WHERE status = $1 ORDER BY created_at`
	return r.queryHouses(ctx, query, status)
}

func (r *HouseRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*domain.House, error) {
	query := `SELECT ` + houseColumns + ` FROM houses WHERE owner_id = $1 ORDER BY created_at`
	return r.queryHouses(ctx, query, ownerID)
}

func (r *HouseRepository) queryHouses(ctx context.Context, query string, args ...any) ([]*domain.House, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query houses: %w", err)
	}
	defer rows.Close()

	var houses []*domain.House
	for rows.Next() {
		house, err := scanHouse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan house: %w", err)
		}
		houses = append(houses, house)
	}

	return houses, rows.Err()
}

func (r *HouseRepository) Store(ctx context.Context, h *domain.House) error {
	query := `
        INSERT INTO houses (id, location, rent_amount, description, status, owner_id, tenant_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `

	_, err := r.db.ExecContext(ctx, query,
		h.ID,
		h.Location,
		h.RentAmount,
		nullString(h.Description),
		h.Status,
		h.OwnerID,
		nullUUID(h.TenantID),
		h.CreatedAt,
		h.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("store house: %w", err)
	}

	return nil
}

func (r *HouseRepository) Update(ctx context.Context, h *domain.House) error {
	query := `
        UPDATE houses
        SET location = $2, rent_amount = $3, description = $4, status = $5, tenant_id = $6, updated_at = $7
        WHERE id = $1
    `

	res, err := r.db.ExecContext(ctx, query,
		h.ID,
		h.Location,
		h.RentAmount,
		nullString(h.Description),
		h.Status,
		nullUUID(h.TenantID),
		h.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update house: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update house: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFound("house", h.ID.String())
	}

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
