package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nkaka-t/Simple-House-Rent-Management-System/internal/domain"
)

const paymentColumns = `id, month, year, amount, status, payment_date, tenant_id, house_id, created_at, updated_at`

// PaymentRepository implements domain.PaymentRepository for PostgreSQL.
type PaymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository creates a new PostgreSQL payment repository.
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func scanPayment(row interface{ Scan(...any) error }) (*domain.Payment, error) {
	var (
		payment     domain.Payment
		paymentDate sql.NullTime
	)
	err := row.Scan(
		&payment.ID,
		&payment.Month,
		&payment.Year,
		&payment.Amount,
		&payment.Status,
		&paymentDate,
		&payment.TenantID,
		&payment.HouseID,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if paymentDate.Valid {
		payment.PaymentDate = &paymentDate.Time
	}
	return &payment, nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	payment, err := scanPayment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("payment", id.String())
		}
		return nil, fmt.Errorf("find payment by id: %w", err)
	}

	return payment, nil
}

func (r *PaymentRepository) FindAll(ctx context.Context) ([]*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY created_at`
	return r.queryPayments(ctx, query)
}

func (r *PaymentRepository) FindByTenantID(ctx context.Context, tenantID uuid.UUID) ([]*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE tenant_id = $1 ORDER BY created_at`
	return r.queryPayments(ctx, query, tenantID)
}

func (r *PaymentRepository) FindByStatus(ctx context.Context, status domain.PaymentStatus) ([]*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE status = $1 ORDER BY created_at`
	return r.queryPayments(ctx, query, status)
}

func (r *PaymentRepository) FindByTenantIDAndStatus(ctx context.Context, tenantID uuid.UUID, status domain.PaymentStatus) ([]*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE tenant_id = $1 AND status = $2 ORDER BY created_at`
	return r.queryPayments(ctx, query, tenantID, status)
}

func (r *PaymentRepository) FindByMonthAndYear(ctx context.Context, month, year int) ([]*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE month = $1 AND year = $2 ORDER BY created_at`
	return r.queryPayments(ctx, query, month, year)
}

func (r *PaymentRepository) queryPayments(ctx context.Context, query string, args ...any) ([]*domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, payment)
	}

	return payments, rows.Err()
}

func (r *PaymentRepository) Store(ctx context.Context, p *domain.Payment) error {
	query := `
        INSERT INTO payments (id, month, year, amount, status, payment_date, tenant_id, house_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `

	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Month,
		p.Year,
		p.Amount,
		p.Status,
		nullTime(p.PaymentDate),
		p.TenantID,
		p.HouseID,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("store payment: %w", err)
	}

	return nil
}

func (r *PaymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	query := `
        UPDATE payments
        SET month = $2, year = $3, amount = $4, status = $5, payment_date = $6, tenant_id = $7, house_id = $8, updated_at = $9
        WHERE id = $1
    `

	res, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Month,
		p.Year,
		p.Amount,
		p.Status,
		nullTime(p.PaymentDate),
		p.TenantID,
		p.HouseID,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFound("payment", p.ID.String())
	}

	return nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFound("payment", id.String())
	}

	return nil
}
