package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/domain"
)

const tenantColumns = `id, full_name, phone, email, national_id, start_date, end_date, house_id, created_at, updated_at`

// TenantRepository implements domain.TenantRepository for PostgreSQL.
type TenantRepository struct {
	db *sql.DB
}

// NewTenantRepository creates a new PostgreSQL tenant repository.
func NewTenantRepository(db *sql.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

func scanTenant(row interface{ Scan(...any) error }) (*domain.Tenant, error) {
	var (
		tenant  domain.Tenant
		endDate sql.NullTime
		houseID uuid.NullUUID
	)
	err := row.Scan(
		&tenant.ID,
		&tenant.FullName,
		&tenant.Phone,
		&tenant.Email,
		&tenant.NationalID,
		&tenant.StartDate,
		&endDate,
		&houseID,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if endDate.Valid {
		tenant.EndDate = &endDate.Time
	}
	if houseID.Valid {
		tenant.HouseID = &houseID.UUID
	}
	return &tenant, nil
}

func (r *TenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`

	tenant, err := scanTenant(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("tenant", id.String())
		}
		return nil, fmt.Errorf("find tenant by id: %w", err)
	}

	return tenant, nil
}

func (r *TenantRepository) FindByNationalID(ctx context.Context, nationalID string) (*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE national_id = $1`

	tenant, err := scanTenant(r.db.QueryRowContext(ctx, query, nationalID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("tenant", nationalID)
		}
		return nil, fmt.Errorf("find tenant by national id: %w", err)
	}

	return tenant, nil
}

func (r *TenantRepository) FindAll(ctx context.Context) ([]*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []*domain.Tenant
	for rows.Next() {
		tenant, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, tenant)
	}

	return tenants, rows.Err()
}

func (r *TenantRepository) Store(ctx context.Context, t *domain.Tenant) error {
	query := `
        INSERT INTO tenants (id, full_name, phone, email, national_id, start_date, end_date, house_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `

	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.FullName,
		t.Phone,
		t.Email,
		t.NationalID,
		t.StartDate,
		nullTime(t.EndDate),
		nullUUID(t.HouseID),
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("store tenant: %w", err)
	}

	return nil
}

func (r *TenantRepository) Update(ctx context.Context, t *domain.Tenant) error {
	query := `
        UPDATE tenants
        SET full_name = $2, phone = $3, email = $4, start_date = $5, end_date = $6, house_id = $7, updated_at = $8
        WHERE id = $1
    `

	res, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.FullName,
		t.Phone,
		t.Email,
		t.StartDate,
		nullTime(t.EndDate),
		nullUUID(t.HouseID),
		t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tenant: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update tenant: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFound("tenant", t.ID.String())
	}

	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
