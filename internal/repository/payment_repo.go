package repository

import (
	"context"
	"errors"
	"time"

	"astrorekha_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrAlreadyFinal is returned when a payment has left the "created" state
	// and a second transition is attempted. Callers treat it as a no-op replay.
	ErrAlreadyFinal = errors.New("payment already finalized")

	// ErrPaymentNotFound is returned when no payment row exists for a txn id.
	// Unlike a replay this signals a dropped insert or a forged id, so callers
	// must not answer it with success.
	ErrPaymentNotFound = errors.New("payment not found")
)

type PaymentRepository struct {
	db *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts a new payment row with status "created".
func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO payments (id, gateway, txn_id, user_id, type, item_id, feature, coins,
		                       customer_email, amount, currency, payment_status, created_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, ''), NULLIF($7, ''), $8,
		         NULLIF($9, ''), $10, $11, $12, now())`,
		p.ID, p.Gateway, p.TxnID, p.UserID, p.Type, p.ItemID, p.Feature, p.Coins,
		p.CustomerEmail, p.Amount, p.Currency, domain.PaymentCreated,
	)
	return err
}

// MarkPaidTx transitions a payment created -> paid inside the given
// transaction and returns the row as it was. The WHERE guard on status makes
// replayed callbacks land on zero rows, which is how fulfillment stays
// idempotent for coin credits.
func (r *PaymentRepository) MarkPaidTx(ctx context.Context, tx pgx.Tx, txnID, gatewayPaymentID string) (*domain.Payment, error) {
	row := tx.QueryRow(ctx,
		`UPDATE payments
		 SET payment_status = 'paid', gateway_payment_id = NULLIF($2, ''), fulfilled_at = now()
		 WHERE txn_id = $1 AND payment_status = 'created'
		 RETURNING id, gateway, txn_id, COALESCE(gateway_payment_id, ''), COALESCE(user_id, ''),
		           type, COALESCE(item_id, ''), COALESCE(feature, ''), COALESCE(coins, 0),
		           COALESCE(customer_email, ''), amount, currency, payment_status, created_at, fulfilled_at`,
		txnID, gatewayPaymentID,
	)

	p, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Zero rows means either a replay or a txn we never recorded.
			var status string
			if err := tx.QueryRow(ctx,
				`SELECT payment_status FROM payments WHERE txn_id = $1`, txnID,
			).Scan(&status); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return nil, ErrPaymentNotFound
				}
				return nil, err
			}
			return nil, ErrAlreadyFinal
		}
		return nil, err
	}
	return p, nil
}

// MarkFailed records a failed gateway callback.
func (r *PaymentRepository) MarkFailed(ctx context.Context, txnID string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE payments SET payment_status = 'failed' WHERE txn_id = $1 AND payment_status = 'created'`,
		txnID,
	)
	return err
}

// GetByTxnID returns a payment by its gateway transaction/order id.
func (r *PaymentRepository) GetByTxnID(ctx context.Context, txnID string) (*domain.Payment, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, gateway, txn_id, COALESCE(gateway_payment_id, ''), COALESCE(user_id, ''),
		        type, COALESCE(item_id, ''), COALESCE(feature, ''), COALESCE(coins, 0),
		        COALESCE(customer_email, ''), amount, currency, payment_status, created_at, fulfilled_at
		 FROM payments
		 WHERE txn_id = $1`,
		txnID,
	)
	p, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return p, nil
}

// GetAll returns every payment, newest first. The revenue aggregator does its
// bucketing in memory, acceptable at current volume.
func (r *PaymentRepository) GetAll(ctx context.Context) ([]domain.Payment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, gateway, txn_id, COALESCE(gateway_payment_id, ''), COALESCE(user_id, ''),
		        type, COALESCE(item_id, ''), COALESCE(feature, ''), COALESCE(coins, 0),
		        COALESCE(customer_email, ''), amount, currency, payment_status, created_at, fulfilled_at
		 FROM payments
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var (
		p           domain.Payment
		fulfilledAt *time.Time
	)
	err := row.Scan(&p.ID, &p.Gateway, &p.TxnID, &p.GatewayPaymentID, &p.UserID,
		&p.Type, &p.ItemID, &p.Feature, &p.Coins, &p.CustomerEmail,
		&p.Amount, &p.Currency, &p.PaymentStatus, &p.CreatedAt, &fulfilledAt)
	if err != nil {
		return nil, err
	}
	p.FulfilledAt = fulfilledAt
	return &p, nil
}
