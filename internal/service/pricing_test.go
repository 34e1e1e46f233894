package service

import (
	"errors"
	"testing"

	"astrorekha_backend/internal/domain"
)

func TestResolveItem_Bundle(t *testing.T) {
	cfg := domain.DefaultPricing()

	item, err := ResolveItem(cfg, domain.PurchaseBundle, "palm-birth")
	if err != nil {
		t.Fatalf("resolve bundle: %v", err)
	}
	if item.Amount != 839 {
		t.Fatalf("expected default palm-birth price 839, got %d", item.Amount)
	}
	if item.BundleID != "palm-birth" || item.ItemID != "palm-birth" {
		t.Fatalf("unexpected item ids: %+v", item)
	}
	if item.ProductInfo == "" {
		t.Fatal("expected product info from bundle name")
	}
}

func TestResolveItem_CoinPackage(t *testing.T) {
	cfg := domain.DefaultPricing()

	item, err := ResolveItem(cfg, domain.PurchaseCoins, "coins-150")
	if err != nil {
		t.Fatalf("resolve coin package: %v", err)
	}
	if item.Amount != 1082 {
		t.Fatalf("expected coins-150 price 1082, got %d", item.Amount)
	}
	if item.Coins != 150 {
		t.Fatalf("expected 150 coins, got %d", item.Coins)
	}
	if item.ProductInfo != "150 Coins" {
		t.Fatalf("unexpected product info: %s", item.ProductInfo)
	}
}

func TestResolveItem_Upsell(t *testing.T) {
	cfg := domain.DefaultPricing()

	item, err := ResolveItem(cfg, domain.PurchaseUpsell, "2026-predictions")
	if err != nil {
		t.Fatalf("resolve upsell: %v", err)
	}
	if item.Amount != 499 {
		t.Fatalf("expected 2026-predictions price 499, got %d", item.Amount)
	}
	if item.Feature != domain.FeaturePrediction2026 {
		t.Fatalf("expected feature %s, got %s", domain.FeaturePrediction2026, item.Feature)
	}
}

func TestResolveItem_InvalidType(t *testing.T) {
	cfg := domain.DefaultPricing()

	_, err := ResolveItem(cfg, "subscription", "palm-birth")
	if !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}

func TestResolveItem_UnknownItem(t *testing.T) {
	cfg := domain.DefaultPricing()

	_, err := ResolveItem(cfg, domain.PurchaseBundle, "palm-unknown")
	if !errors.Is(err, ErrInvalidItem) {
		t.Fatalf("expected ErrInvalidItem, got %v", err)
	}

	_, err = ResolveItem(cfg, domain.PurchaseCoins, "coins-9000")
	if !errors.Is(err, ErrInvalidItem) {
		t.Fatalf("expected ErrInvalidItem for unknown coin package, got %v", err)
	}
}

func TestResolveItem_AmountIgnoresClientInput(t *testing.T) {
	// The resolver only consults the config; a custom config changes the price.
	cfg := domain.DefaultPricing()
	for i := range cfg.Bundles {
		if cfg.Bundles[i].ID == "palm-reading" {
			cfg.Bundles[i].Price = 100
		}
	}

	item, err := ResolveItem(cfg, domain.PurchaseBundle, "palm-reading")
	if err != nil {
		t.Fatalf("resolve bundle: %v", err)
	}
	if item.Amount != 100 {
		t.Fatalf("expected overridden price 100, got %d", item.Amount)
	}
}
