package repository

import (
	"context"
	"encoding/json"
	"errors"

	"astrorekha_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrPricingNotSet = errors.New("pricing config not set")

const pricingKey = "pricing"

// PricingRepository stores the pricing blob in a generic settings key/value
// table, keyed "pricing".
type PricingRepository struct {
	db *pgxpool.Pool
}

func NewPricingRepository(db *pgxpool.Pool) *PricingRepository {
	return &PricingRepository{db: db}
}

func (r *PricingRepository) Get(ctx context.Context) (*domain.PricingConfig, error) {
	var value []byte
	err := r.db.QueryRow(ctx,
		`SELECT value FROM settings WHERE key = $1`, pricingKey,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPricingNotSet
		}
		return nil, err
	}

	var cfg domain.PricingConfig
	if err := json.Unmarshal(value, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *PricingRepository) Save(ctx context.Context, cfg *domain.PricingConfig) error {
	value, err := json.Marshal(cfg)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO settings (key, value, updated_at)
		 VALUES ($1, $2::jsonb, now())
		 ON CONFLICT (key) DO UPDATE SET value = $2::jsonb, updated_at = now()`,
		pricingKey, value,
	)
	return err
}
