package service

import (
	"testing"

	"astrorekha_backend/internal/domain"
)

func TestPickVariant_FiftyFifty(t *testing.T) {
	variants := map[string]domain.Variant{
		"A": {Weight: 50},
		"B": {Weight: 50},
	}

	if got := PickVariant(variants, 10); got != "A" {
		t.Fatalf("roll 10 should land on A, got %s", got)
	}
	if got := PickVariant(variants, 50); got != "A" {
		t.Fatalf("roll exactly at the boundary belongs to A, got %s", got)
	}
	if got := PickVariant(variants, 75); got != "B" {
		t.Fatalf("roll 75 should land on B, got %s", got)
	}
}

func TestPickVariant_Skewed(t *testing.T) {
	variants := map[string]domain.Variant{
		"A": {Weight: 90},
		"B": {Weight: 10},
	}

	if got := PickVariant(variants, 89); got != "A" {
		t.Fatalf("roll 89 should land on A, got %s", got)
	}
	if got := PickVariant(variants, 95); got != "B" {
		t.Fatalf("roll 95 should land on B, got %s", got)
	}
}

func TestPickVariant_ZeroWeightSkipped(t *testing.T) {
	variants := map[string]domain.Variant{
		"A": {Weight: 0},
		"B": {Weight: 100},
	}

	// A zero-weight variant only catches a roll of exactly 0.
	if got := PickVariant(variants, 1); got != "B" {
		t.Fatalf("roll 1 should land on B, got %s", got)
	}
}

func TestPickVariant_Empty(t *testing.T) {
	if got := PickVariant(map[string]domain.Variant{}, 0); got != "A" {
		t.Fatalf("empty variant map should fall back to A, got %s", got)
	}
}

func TestPickVariant_RollBeyondTotal(t *testing.T) {
	variants := map[string]domain.Variant{
		"A": {Weight: 50},
		"B": {Weight: 50},
	}
	// Defensive: out-of-range rolls fall back to the first key.
	if got := PickVariant(variants, 500); got != "A" {
		t.Fatalf("out-of-range roll should fall back to A, got %s", got)
	}
}

func TestTotalWeight(t *testing.T) {
	variants := map[string]domain.Variant{
		"A": {Weight: 70},
		"B": {Weight: 30},
	}
	if got := TotalWeight(variants); got != 100 {
		t.Fatalf("expected total 100, got %d", got)
	}
	if got := TotalWeight(nil); got != 0 {
		t.Fatalf("nil map should sum to 0, got %d", got)
	}
}

func TestBuildReport_Rates(t *testing.T) {
	stats := &domain.ABStats{
		TestID:           "pricing-test-1",
		Variant:          "A",
		Impressions:      200,
		Conversions:      10,
		Bounces:          50,
		CheckoutsStarted: 40,
		TotalRevenue:     8390,
	}

	r := BuildReport(stats)
	if r.ConversionRate != "5.00" {
		t.Fatalf("conversion rate: %s", r.ConversionRate)
	}
	if r.BounceRate != "25.00" {
		t.Fatalf("bounce rate: %s", r.BounceRate)
	}
	if r.CheckoutRate != "20.00" {
		t.Fatalf("checkout rate: %s", r.CheckoutRate)
	}
	if r.CheckoutToConversionRate != "25.00" {
		t.Fatalf("checkout-to-conversion rate: %s", r.CheckoutToConversionRate)
	}
	if r.AvgRevenuePerUser != "839.00" {
		t.Fatalf("avg revenue per user: %s", r.AvgRevenuePerUser)
	}
}

func TestBuildReport_ZeroDenominators(t *testing.T) {
	r := BuildReport(&domain.ABStats{TestID: "t", Variant: "B"})
	if r.ConversionRate != "0.00" || r.BounceRate != "0.00" || r.CheckoutRate != "0.00" {
		t.Fatalf("zero stats should produce 0.00 rates: %+v", r)
	}
	if r.AvgRevenuePerUser != "0.00" {
		t.Fatalf("no conversions should produce 0.00 ARPU: %s", r.AvgRevenuePerUser)
	}
}
