package service

import (
	"context"
	"errors"
	"time"

	"astrorekha_backend/internal/domain"
	"astrorekha_backend/internal/repository"
)

var (
	ErrPromoNotFound     = errors.New("invalid promo code")
	ErrPromoInactive     = errors.New("promo code is no longer active")
	ErrPromoExpired      = errors.New("promo code has expired")
	ErrPromoLimitReached = errors.New("promo code has reached its usage limit")
)

type PromoService struct {
	repo *repository.PromoRepository
}

func NewPromoService(repo *repository.PromoRepository) *PromoService {
	return &PromoService{repo: repo}
}

// CheckEligibility runs the static checks in their documented order:
// active flag, then expiry, then usage limit. The usage-limit check here is
// advisory; the authoritative guard is the conditional UPDATE in Consume.
func CheckEligibility(p *domain.PromoCode, now time.Time) error {
	if !p.Active {
		return ErrPromoInactive
	}
	if p.ExpiresAt != nil && p.ExpiresAt.Before(now) {
		return ErrPromoExpired
	}
	if p.MaxUses > 0 && p.UsedCount >= p.MaxUses {
		return ErrPromoLimitReached
	}
	return nil
}

// Validate looks up a code, checks it and consumes one use. Validation
// deliberately spends a use: the storefront applies the discount immediately
// on success, so "check" and "redeem" are the same step here.
func (s *PromoService) Validate(ctx context.Context, code string) (*domain.PromoGrant, error) {
	promo, err := s.repo.Find(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrPromoNotFound) {
			return nil, ErrPromoNotFound
		}
		return nil, err
	}

	if err := CheckEligibility(promo, time.Now()); err != nil {
		return nil, err
	}

	if err := s.repo.Consume(ctx, promo.ID); err != nil {
		if errors.Is(err, repository.ErrPromoExhausted) {
			return nil, ErrPromoLimitReached
		}
		return nil, err
	}

	return &domain.PromoGrant{
		Code:      promo.ID,
		Discount:  promo.Discount,
		Type:      promo.Type,
		Coins:     promo.Coins,
		Plan:      promo.Plan,
		UnlockAll: promo.UnlockAll,
	}, nil
}
