package repository

import (
	"context"
	"errors"
	"strings"

	"astrorekha_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrPromoNotFound = errors.New("promo code not found")
	ErrPromoExhausted = errors.New("promo code usage limit reached")
)

type PromoRepository struct {
	db *pgxpool.Pool
}

func NewPromoRepository(db *pgxpool.Pool) *PromoRepository {
	return &PromoRepository{db: db}
}

// Find looks a code up trying the exact spelling, then uppercase, then
// lowercase, matching how codes were historically entered.
func (r *PromoRepository) Find(ctx context.Context, code string) (*domain.PromoCode, error) {
	trimmed := strings.TrimSpace(code)
	variants := []string{trimmed, strings.ToUpper(trimmed), strings.ToLower(trimmed)}

	for _, v := range variants {
		promo, err := r.getByID(ctx, v)
		if err == nil {
			return promo, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}
	return nil, ErrPromoNotFound
}

// Consume increments used_count for a code, guarded by max_uses so the limit
// can never be overshot under concurrent validation. max_uses = 0 means
// unlimited.
func (r *PromoRepository) Consume(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE promo_codes
		 SET used_count = used_count + 1, last_used_at = now()
		 WHERE id = $1 AND (max_uses = 0 OR used_count < max_uses)`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPromoExhausted
	}
	return nil
}

func (r *PromoRepository) getByID(ctx context.Context, id string) (*domain.PromoCode, error) {
	var p domain.PromoCode
	err := r.db.QueryRow(ctx,
		`SELECT id, active, COALESCE(discount, 100), COALESCE(type, 'percent'), COALESCE(coins, 100),
		        COALESCE(plan, 'yearly'), COALESCE(unlock_all, true), expires_at,
		        COALESCE(max_uses, 0), COALESCE(used_count, 0), last_used_at
		 FROM promo_codes
		 WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Active, &p.Discount, &p.Type, &p.Coins, &p.Plan, &p.UnlockAll,
		&p.ExpiresAt, &p.MaxUses, &p.UsedCount, &p.LastUsedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
