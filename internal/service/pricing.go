package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"astrorekha_backend/internal/domain"
	"astrorekha_backend/internal/logger"
	"astrorekha_backend/internal/repository"
)

var (
	ErrInvalidType = errors.New("invalid purchase type")
	ErrInvalidItem = errors.New("invalid item")
)

type PricingService struct {
	repo *repository.PricingRepository
}

func NewPricingService(repo *repository.PricingRepository) *PricingService {
	return &PricingService{repo: repo}
}

// Resolve returns the stored pricing config, or the hardcoded default when the
// settings row is missing or unreadable. Every call re-reads; no cache.
func (s *PricingService) Resolve(ctx context.Context) *domain.PricingConfig {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrPricingNotSet) {
			logger.Warn("pricing config read failed, using defaults", "error", err)
		}
		return domain.DefaultPricing()
	}
	return cfg
}

func (s *PricingService) Save(ctx context.Context, cfg *domain.PricingConfig) error {
	return s.repo.Save(ctx, cfg)
}

// ResolvedItem is the server-side answer for a checkout request. Amount is in
// whole rupees; it comes from the pricing config and never from the client.
type ResolvedItem struct {
	Amount      int64
	ProductInfo string
	ItemID      string
	BundleID    string
	Feature     string
	Coins       int64
}

// ResolveItem maps a (type, itemId) pair onto the active pricing config.
func ResolveItem(cfg *domain.PricingConfig, purchaseType, itemID string) (*ResolvedItem, error) {
	switch purchaseType {
	case domain.PurchaseBundle:
		bundle := cfg.BundleByID(itemID)
		if bundle == nil {
			return nil, fmt.Errorf("%w: bundle %q", ErrInvalidItem, itemID)
		}
		return &ResolvedItem{
			Amount:      bundle.Price,
			ProductInfo: bundle.Name,
			ItemID:      itemID,
			BundleID:    itemID,
		}, nil

	case domain.PurchaseUpsell:
		upsell := cfg.UpsellByID(itemID)
		if upsell == nil {
			return nil, fmt.Errorf("%w: upsell %q", ErrInvalidItem, itemID)
		}
		return &ResolvedItem{
			Amount:      upsell.Price,
			ProductInfo: upsell.Name,
			ItemID:      itemID,
			Feature:     upsell.Feature,
		}, nil

	case domain.PurchaseCoins:
		pkg := cfg.CoinPackageByID(itemID)
		if pkg == nil {
			return nil, fmt.Errorf("%w: coin package %q", ErrInvalidItem, itemID)
		}
		return &ResolvedItem{
			Amount:      pkg.Price,
			ProductInfo: strconv.FormatInt(pkg.Coins, 10) + " Coins",
			ItemID:      itemID,
			Coins:       pkg.Coins,
		}, nil

	case domain.PurchaseReport:
		report := cfg.ReportByID(itemID)
		if report == nil {
			return nil, fmt.Errorf("%w: report %q", ErrInvalidItem, itemID)
		}
		return &ResolvedItem{
			Amount:      report.Price,
			ProductInfo: report.Name,
			ItemID:      itemID,
			Feature:     report.Feature,
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrInvalidType, purchaseType)
}
