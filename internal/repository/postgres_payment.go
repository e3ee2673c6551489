package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/payment-gateway/internal/domain"
)

type PostgresPaymentRepository struct {
	db *pgxpool.Pool
}

func NewPostgresPaymentRepository(db *pgxpool.Pool) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{
		db: db,
	}
}

// Create inserts a new payment record. The processor or the caller may
// redeliver a creation request, so a unique violation on transaction_id is
// treated as an idempotent success and the existing row is left untouched.
func (p *PostgresPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (
			transaction_id,
			amount,
			currency,
			status
		)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := p.db.QueryRow(
		ctx,
		query,
		payment.TransactionID,
		payment.Amount,
		payment.Currency,
		payment.Status,
	).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return nil
	}

	return err
}

func (p *PostgresPaymentRepository) UpdateStatus(
	ctx context.Context,
	transactionID string,
	status domain.PaymentStatus) (int64, error) {

	query := `
		UPDATE payments
		SET status = $1, updated_at = now()
		WHERE transaction_id = $2
	`

	tag, err := p.db.Exec(ctx, query, status, transactionID)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (p *PostgresPaymentRepository) Rebind(ctx context.Context, oldID, newID string) (int64, error) {
	query := `
		UPDATE payments
		SET transaction_id = $1, updated_at = now()
		WHERE transaction_id = $2
	`

	tag, err := p.db.Exec(ctx, query, newID, oldID)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (p *PostgresPaymentRepository) GetByTransactionID(
	ctx context.Context,
	transactionID string) (*domain.Payment, error) {

	query := `
		SELECT id, transaction_id, amount, currency, status, created_at, updated_at
		FROM payments
		WHERE transaction_id = $1
	`

	var payment domain.Payment

	err := p.db.QueryRow(ctx, query, transactionID).Scan(
		&payment.ID,
		&payment.TransactionID,
		&payment.Amount,
		&payment.Currency,
		&payment.Status,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}

	return &payment, nil
}
