package service

import (
	"errors"
	"testing"
	"time"

	"astrorekha_backend/internal/domain"
)

func TestCheckEligibility_ActiveCode(t *testing.T) {
	p := &domain.PromoCode{ID: "FREE100", Active: true, MaxUses: 0}
	if err := CheckEligibility(p, time.Now()); err != nil {
		t.Fatalf("active unlimited code should be eligible: %v", err)
	}
}

func TestCheckEligibility_Inactive(t *testing.T) {
	expired := time.Now().Add(-time.Hour)
	p := &domain.PromoCode{ID: "OLD", Active: false, ExpiresAt: &expired, MaxUses: 1, UsedCount: 5}

	// Inactive wins even when other checks would also fail.
	if err := CheckEligibility(p, time.Now()); !errors.Is(err, ErrPromoInactive) {
		t.Fatalf("expected ErrPromoInactive, got %v", err)
	}
}

func TestCheckEligibility_Expired(t *testing.T) {
	expired := time.Now().Add(-time.Minute)
	p := &domain.PromoCode{ID: "LATE", Active: true, ExpiresAt: &expired, MaxUses: 1, UsedCount: 5}

	if err := CheckEligibility(p, time.Now()); !errors.Is(err, ErrPromoExpired) {
		t.Fatalf("expected ErrPromoExpired before the limit check, got %v", err)
	}
}

func TestCheckEligibility_LimitReached(t *testing.T) {
	p := &domain.PromoCode{ID: "CAPPED", Active: true, MaxUses: 10, UsedCount: 10}
	if err := CheckEligibility(p, time.Now()); !errors.Is(err, ErrPromoLimitReached) {
		t.Fatalf("expected ErrPromoLimitReached, got %v", err)
	}

	p.UsedCount = 9
	if err := CheckEligibility(p, time.Now()); err != nil {
		t.Fatalf("one use left should be eligible: %v", err)
	}
}

func TestCheckEligibility_ZeroMaxUsesIsUnlimited(t *testing.T) {
	p := &domain.PromoCode{ID: "FOREVER", Active: true, MaxUses: 0, UsedCount: 100000}
	if err := CheckEligibility(p, time.Now()); err != nil {
		t.Fatalf("max_uses=0 must mean unlimited: %v", err)
	}
}

func TestCheckEligibility_FutureExpiry(t *testing.T) {
	future := time.Now().Add(time.Hour)
	p := &domain.PromoCode{ID: "SOON", Active: true, ExpiresAt: &future}
	if err := CheckEligibility(p, time.Now()); err != nil {
		t.Fatalf("future expiry should be eligible: %v", err)
	}
}
