package repository

import (
	"context"
	"encoding/json"
	"errors"

	"astrorekha_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrTestNotFound = errors.New("ab test not found")

type ABTestRepository struct {
	db *pgxpool.Pool
}

func NewABTestRepository(db *pgxpool.Pool) *ABTestRepository {
	return &ABTestRepository{db: db}
}

func (r *ABTestRepository) GetTest(ctx context.Context, id string) (*domain.ABTest, error) {
	var (
		t            domain.ABTest
		variantsJSON []byte
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, COALESCE(name, ''), status, variants, created_at, updated_at
		 FROM ab_tests WHERE id = $1`,
		id,
	).Scan(&t.ID, &t.Name, &t.Status, &variantsJSON, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTestNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(variantsJSON, &t.Variants); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ABTestRepository) ListTests(ctx context.Context) ([]*domain.ABTest, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, COALESCE(name, ''), status, variants, created_at, updated_at
		 FROM ab_tests ORDER BY created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.ABTest
	for rows.Next() {
		var (
			t            domain.ABTest
			variantsJSON []byte
		)
		if err := rows.Scan(&t.ID, &t.Name, &t.Status, &variantsJSON, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(variantsJSON, &t.Variants); err != nil {
			return nil, err
		}
		result = append(result, &t)
	}
	return result, rows.Err()
}

// UpsertTest creates or updates a test config. Nil maps / empty strings leave
// the stored value untouched.
func (r *ABTestRepository) UpsertTest(ctx context.Context, t *domain.ABTest) error {
	variantsJSON, err := json.Marshal(t.Variants)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO ab_tests (id, name, status, variants, created_at, updated_at)
		 VALUES ($1, $2, $3, $4::jsonb, now(), now())
		 ON CONFLICT (id) DO UPDATE SET
			name       = CASE WHEN EXCLUDED.name <> '' THEN EXCLUDED.name ELSE ab_tests.name END,
			status     = CASE WHEN EXCLUDED.status <> '' THEN EXCLUDED.status ELSE ab_tests.status END,
			variants   = CASE WHEN EXCLUDED.variants <> 'null'::jsonb THEN EXCLUDED.variants ELSE ab_tests.variants END,
			updated_at = now()`,
		t.ID, t.Name, t.Status, variantsJSON,
	)
	return err
}

func (r *ABTestRepository) GetAssignment(ctx context.Context, testID, visitorID string) (*domain.ABAssignment, error) {
	var a domain.ABAssignment
	err := r.db.QueryRow(ctx,
		`SELECT id, test_id, visitor_id, variant, assigned_at
		 FROM ab_test_assignments WHERE id = $1`,
		testID+"_"+visitorID,
	).Scan(&a.ID, &a.TestID, &a.VisitorID, &a.Variant, &a.AssignedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// SaveAssignment persists a variant assignment and returns the variant that
// actually stuck. ON CONFLICT DO NOTHING plus a read-back keeps the first
// assignment permanent even when two requests race for the same visitor.
func (r *ABTestRepository) SaveAssignment(ctx context.Context, testID, visitorID, variant string) (string, error) {
	id := testID + "_" + visitorID
	_, err := r.db.Exec(ctx,
		`INSERT INTO ab_test_assignments (id, test_id, visitor_id, variant, assigned_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (id) DO NOTHING`,
		id, testID, visitorID, variant,
	)
	if err != nil {
		return "", err
	}

	var stored string
	if err := r.db.QueryRow(ctx,
		`SELECT variant FROM ab_test_assignments WHERE id = $1`, id,
	).Scan(&stored); err != nil {
		return "", err
	}
	return stored, nil
}

// RecordEvent appends the raw event and bumps the per-variant aggregate in a
// single atomic upsert.
func (r *ABTestRepository) RecordEvent(ctx context.Context, e *domain.ABEvent, revenue int64) error {
	metaJSON, err := json.Marshal(e.Metadata)
	if err != nil {
		metaJSON = []byte("{}")
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO ab_test_events (test_id, variant, event_type, visitor_id, user_id, metadata, created_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6::jsonb, now())`,
		e.TestID, e.Variant, e.EventType, e.VisitorID, e.UserID, metaJSON,
	)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO ab_test_stats (id, test_id, variant, impressions, conversions, bounces, checkouts_started, total_revenue, created_at, updated_at)
		 VALUES ($1, $2, $3,
		         CASE WHEN $4 = 'impression' THEN 1 ELSE 0 END,
		         CASE WHEN $4 = 'conversion' THEN 1 ELSE 0 END,
		         CASE WHEN $4 = 'bounce' THEN 1 ELSE 0 END,
		         CASE WHEN $4 = 'checkout_started' THEN 1 ELSE 0 END,
		         $5, now(), now())
		 ON CONFLICT (id) DO UPDATE SET
			impressions       = ab_test_stats.impressions + CASE WHEN $4 = 'impression' THEN 1 ELSE 0 END,
			conversions       = ab_test_stats.conversions + CASE WHEN $4 = 'conversion' THEN 1 ELSE 0 END,
			bounces           = ab_test_stats.bounces + CASE WHEN $4 = 'bounce' THEN 1 ELSE 0 END,
			checkouts_started = ab_test_stats.checkouts_started + CASE WHEN $4 = 'checkout_started' THEN 1 ELSE 0 END,
			total_revenue     = ab_test_stats.total_revenue + $5,
			updated_at        = now()`,
		e.TestID+"_"+e.Variant, e.TestID, e.Variant, e.EventType, revenue,
	)
	return err
}

// GetStats returns the aggregate counters for one variant of a test. A
// missing row comes back as all zeros.
func (r *ABTestRepository) GetStats(ctx context.Context, testID, variant string) (*domain.ABStats, error) {
	s := &domain.ABStats{ID: testID + "_" + variant, TestID: testID, Variant: variant}
	err := r.db.QueryRow(ctx,
		`SELECT impressions, conversions, bounces, checkouts_started, total_revenue, created_at, updated_at
		 FROM ab_test_stats WHERE id = $1`,
		s.ID,
	).Scan(&s.Impressions, &s.Conversions, &s.Bounces, &s.CheckoutsStarted, &s.TotalRevenue, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return s, nil
		}
		return nil, err
	}
	return s, nil
}
