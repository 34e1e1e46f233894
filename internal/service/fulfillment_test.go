package service

import (
	"testing"

	"astrorekha_backend/internal/domain"
)

func containsAll(got []string, want ...string) bool {
	set := make(map[string]bool, len(got))
	for _, f := range got {
		set[f] = true
	}
	for _, w := range want {
		if !set[w] {
			return false
		}
	}
	return true
}

func TestUnlockSet_Bundles(t *testing.T) {
	features, coins := UnlockSet(&domain.Payment{Type: domain.PurchaseBundle, ItemID: "palm-reading"})
	if !containsAll(features, domain.FeaturePalmReading) || len(features) != 1 {
		t.Fatalf("palm-reading unlocks: %v", features)
	}
	if coins != 15 {
		t.Fatalf("expected 15 bonus coins, got %d", coins)
	}

	features, coins = UnlockSet(&domain.Payment{Type: domain.PurchaseBundle, ItemID: "palm-birth"})
	if !containsAll(features, domain.FeaturePalmReading, domain.FeatureBirthChart) || len(features) != 2 {
		t.Fatalf("palm-birth unlocks: %v", features)
	}
	if coins != 15 {
		t.Fatalf("expected 15 bonus coins, got %d", coins)
	}

	features, _ = UnlockSet(&domain.Payment{Type: domain.PurchaseBundle, ItemID: "palm-birth-compat"})
	if !containsAll(features, domain.FeaturePalmReading, domain.FeatureBirthChart, domain.FeatureCompatibilityTest) || len(features) != 3 {
		t.Fatalf("palm-birth-compat unlocks: %v", features)
	}
}

func TestUnlockSet_UnknownBundleStillGrantsCoins(t *testing.T) {
	features, coins := UnlockSet(&domain.Payment{Type: domain.PurchaseBundle, ItemID: "no-such-bundle"})
	if len(features) != 0 {
		t.Fatalf("unknown bundle should unlock nothing, got %v", features)
	}
	if coins != 15 {
		t.Fatalf("bundle purchases always carry the bonus, got %d", coins)
	}
}

func TestUnlockSet_Upsell(t *testing.T) {
	features, coins := UnlockSet(&domain.Payment{Type: domain.PurchaseUpsell, Feature: domain.FeaturePrediction2026})
	if !containsAll(features, domain.FeaturePrediction2026) || len(features) != 1 {
		t.Fatalf("upsell unlocks: %v", features)
	}
	if coins != 0 {
		t.Fatalf("upsell should not credit coins, got %d", coins)
	}
}

func TestUnlockSet_Report(t *testing.T) {
	features, coins := UnlockSet(&domain.Payment{Type: domain.PurchaseReport, Feature: domain.FeatureBirthChart})
	if !containsAll(features, domain.FeatureBirthChart) || len(features) != 1 {
		t.Fatalf("report unlocks: %v", features)
	}
	if coins != 0 {
		t.Fatalf("report should not credit coins, got %d", coins)
	}
}

func TestUnlockSet_Coins(t *testing.T) {
	features, coins := UnlockSet(&domain.Payment{Type: domain.PurchaseCoins, Coins: 150})
	if len(features) != 0 {
		t.Fatalf("coin purchase should unlock nothing, got %v", features)
	}
	if coins != 150 {
		t.Fatalf("expected 150 coins, got %d", coins)
	}
}
