package repository

import (
	"context"
	"encoding/json"
	"errors"

	"astrorekha_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, COALESCE(email, ''), COALESCE(name, ''), COALESCE(unlocked_features, '{}'::jsonb),
		        COALESCE(coins, 0), COALESCE(bundle_purchased, ''), COALESCE(purchase_type, ''),
		        COALESCE(payment_status, ''), COALESCE(is_dev_tester, false), created_at, updated_at
		 FROM users
		 WHERE id = $1`,
		id,
	)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, COALESCE(email, ''), COALESCE(name, ''), COALESCE(unlocked_features, '{}'::jsonb),
		        COALESCE(coins, 0), COALESCE(bundle_purchased, ''), COALESCE(purchase_type, ''),
		        COALESCE(payment_status, ''), COALESCE(is_dev_tester, false), created_at, updated_at
		 FROM users
		 WHERE email = $1`,
		email,
	)
	return scanUser(row)
}

// GetAll returns every user row; the revenue aggregator enriches transactions
// with it. Anonymous onboarding rows are included and filtered by the caller.
func (r *UserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, COALESCE(email, ''), COALESCE(name, ''), COALESCE(unlocked_features, '{}'::jsonb),
		        COALESCE(coins, 0), COALESCE(bundle_purchased, ''), COALESCE(purchase_type, ''),
		        COALESCE(payment_status, ''), COALESCE(is_dev_tester, false), created_at, updated_at
		 FROM users`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	return result, rows.Err()
}

// ApplyFulfillment upserts the user row with a purchase's entitlements inside
// the caller's transaction. Feature flags merge with jsonb concatenation and
// coins increment in SQL, so two concurrent fulfillments compose instead of
// overwriting each other.
func (r *UserRepository) ApplyFulfillment(ctx context.Context, tx pgx.Tx, userID string, features []string, coinDelta int64, purchaseType, bundleID, gatewayPaymentID string) error {
	unlock := make(map[string]bool, len(features))
	for _, f := range features {
		unlock[f] = true
	}
	unlockJSON, err := json.Marshal(unlock)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO users (id, unlocked_features, coins, purchase_type, bundle_purchased, payment_status, gateway_payment_id, created_at, updated_at)
		 VALUES ($1, $2::jsonb, $3, $4, NULLIF($5, ''), 'paid', NULLIF($6, ''), now(), now())
		 ON CONFLICT (id) DO UPDATE SET
			unlocked_features  = COALESCE(users.unlocked_features, '{}'::jsonb) || EXCLUDED.unlocked_features,
			coins              = COALESCE(users.coins, 0) + $3,
			purchase_type      = EXCLUDED.purchase_type,
			bundle_purchased   = COALESCE(EXCLUDED.bundle_purchased, users.bundle_purchased),
			payment_status     = 'paid',
			gateway_payment_id = COALESCE(EXCLUDED.gateway_payment_id, users.gateway_payment_id),
			updated_at         = now()`,
		userID, unlockJSON, coinDelta, purchaseType, bundleID, gatewayPaymentID,
	)
	return err
}

// ActivateTester unlocks every feature and sets a large coin balance for the
// given user. Used only by the password-gated dev endpoint.
func (r *UserRepository) ActivateTester(ctx context.Context, userID string) error {
	unlock := make(map[string]bool, len(domain.AllFeatures))
	for _, f := range domain.AllFeatures {
		unlock[f] = true
	}
	unlockJSON, err := json.Marshal(unlock)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO users (id, unlocked_features, coins, is_dev_tester, created_at, updated_at)
		 VALUES ($1, $2::jsonb, 999999, true, now(), now())
		 ON CONFLICT (id) DO UPDATE SET
			unlocked_features = $2::jsonb,
			coins             = 999999,
			is_dev_tester     = true,
			updated_at        = now()`,
		userID, unlockJSON,
	)
	return err
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u            domain.User
		featuresJSON []byte
	)
	err := row.Scan(&u.ID, &u.Email, &u.Name, &featuresJSON, &u.Coins,
		&u.BundlePurchased, &u.PurchaseType, &u.PaymentStatus, &u.IsDevTester,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	u.UnlockedFeatures = domain.DefaultFeatures()
	if len(featuresJSON) > 0 {
		_ = json.Unmarshal(featuresJSON, &u.UnlockedFeatures)
	}
	return &u, nil
}
