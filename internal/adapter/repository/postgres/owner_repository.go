package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/domain"
)

// OwnerRepository implements domain.OwnerRepository for PostgreSQL.
type OwnerRepository struct {
	db *sql.DB
}

// NewOwnerRepository creates a new PostgreSQL owner repository.
func NewOwnerRepository(db *sql.DB) *OwnerRepository {
	return &OwnerRepository{db: db}
}

func (r *OwnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Owner, error) {
	query := `
        SELECT id, name, phone, email, created_at, updated_at
        FROM owners
        WHERE id = $1
    `

	var owner domain.Owner
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&owner.ID,
		&owner.Name,
		&owner.Phone,
		&owner.Email,
		&owner.CreatedAt,
		&owner.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("owner", id.String())
		}
		return nil, fmt.Errorf("find owner by id: %w", err)
	}

	return &owner, nil
}

func (r *OwnerRepository) FindAll(ctx context.Context) ([]*domain.Owner, error) {
	query := `
        SELECT id, name, phone, email, created_at, updated_at
        FROM owners
        ORDER BY created_at
    `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list owners: %w", err)
	}
	defer rows.Close()

	var owners []*domain.Owner
	for rows.Next() {
		var owner domain.Owner
		if err := rows.Scan(
			&owner.ID,
			&owner.Name,
			&owner.Phone,
			&owner.Email,
			&owner.CreatedAt,
			&owner.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan owner: %w", err)
		}
		owners = append(owners, &owner)
	}

	return owners, rows.Err()
}

func (r *OwnerRepository) Store(ctx context.Context, o *domain.Owner) error {
	query := `
        INSERT INTO owners (id, name, phone, email, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `

	_, err := r.db.ExecContext(ctx, query,
		o.ID,
		o.Name,
		o.Phone,
		o.Email,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("store owner: %w", err)
	}

	return nil
}

// DeleteWithHouses removes the owner, the owner's houses, and the payments
// bound to those houses in one transaction.
func (r *OwnerRepository) DeleteWithHouses(ctx context.Context, id uuid.UUID) error {
	txn, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin owner delete: %w", err)
	}
	defer txn.Rollback() // Rollback is a no-op if Commit() is called

	if _, err := txn.ExecContext(ctx,
		`DELETE FROM payments WHERE house_id IN (SELECT id FROM houses WHERE owner_id = $1)`, id,
	); err != nil {
		return fmt.Errorf("delete owner payments: %w", err)
	}

	if _, err := txn.ExecContext(ctx, `DELETE FROM houses WHERE owner_id = $1`, id); err != nil {
		return fmt.Errorf("delete owner houses: %w", err)
	}

	res, err := txn.ExecContext(ctx, `DELETE FROM owners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete owner: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete owner: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFound("owner", id.String())
	}

	return txn.Commit()
}
