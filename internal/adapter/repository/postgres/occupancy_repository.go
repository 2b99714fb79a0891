package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/domain"
)

// OccupancyRepository implements domain.OccupancyRepository for PostgreSQL.
// Both sides of the house/tenant binding are written within one transaction,
// so a race or failure can never leave the relation half-applied.
type OccupancyRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewOccupancyRepository creates a new PostgreSQL occupancy repository.
func NewOccupancyRepository(db *sql.DB, logger *slog.Logger) *OccupancyRepository {
	return &OccupancyRepository{db: db, logger: logger}
}

func (r *OccupancyRepository) Bind(ctx context.Context, h *domain.House, t *domain.Tenant) error {
	return r.writeBoth(ctx, h, t)
}

func (r *OccupancyRepository) Release(ctx context.Context, h *domain.House, t *domain.Tenant) error {
	return r.writeBoth(ctx, h, t)
}

func (r *OccupancyRepository) writeBoth(ctx context.Context, h *domain.House, t *domain.Tenant) error {
	txn, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin occupancy tx: %w", err)
	}
	defer txn.Rollback() // Rollback is a no-op if Commit() is called

	res, err := txn.ExecContext(ctx,
		`UPDATE houses SET status = $2, tenant_id = $3, updated_at = $4 WHERE id = $1`,
		h.ID, h.Status, nullUUID(h.TenantID), h.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("write house side: %w", err)
	}
	if affected, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("write house side: %w", err)
	} else if affected == 0 {
		return domain.NewNotFound("house", h.ID.String())
	}

	res, err = txn.ExecContext(ctx,
		`UPDATE tenants SET house_id = $2, updated_at = $3 WHERE id = $1`,
		t.ID, nullUUID(t.HouseID), t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("write tenant side: %w", err)
	}
	if affected, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("write tenant side: %w", err)
	} else if affected == 0 {
		return domain.NewNotFound("tenant", t.ID.String())
	}

	if err := txn.Commit(); err != nil {
		r.logger.Error("occupancy tx commit failed", "error", err, "house_id", h.ID, "tenant_id", t.ID)
		return fmt.Errorf("commit occupancy tx: %w", err)
	}

	return nil
}
