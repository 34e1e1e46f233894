package service

import (
	"context"

	"astrorekha_backend/internal/domain"
	"astrorekha_backend/internal/logger"
	"astrorekha_backend/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// bundleFeatures maps bundle ids to the feature set they unlock at
// fulfillment time. Kept static so a stale pricing edit cannot change what an
// already-initiated purchase grants.
var bundleFeatures = map[string][]string{
	"palm-reading":      {domain.FeaturePalmReading},
	"palm-birth":        {domain.FeaturePalmReading, domain.FeatureBirthChart},
	"palm-birth-compat": {domain.FeaturePalmReading, domain.FeatureBirthChart, domain.FeatureCompatibilityTest},
}

// bundleBonusCoins is credited with every bundle purchase.
const bundleBonusCoins = 15

// UnlockSet computes what a paid purchase grants: the features to switch on
// and the coin delta to credit. Features only ever turn on; nothing here can
// revoke a previously unlocked feature.
func UnlockSet(p *domain.Payment) (features []string, coinDelta int64) {
	switch p.Type {
	case domain.PurchaseBundle:
		if p.ItemID != "" {
			features = append(features, bundleFeatures[p.ItemID]...)
		}
		coinDelta = bundleBonusCoins
	case domain.PurchaseUpsell, domain.PurchaseReport:
		if p.Feature != "" {
			features = append(features, p.Feature)
		}
	case domain.PurchaseCoins:
		coinDelta = p.Coins
	}
	return features, coinDelta
}

// FulfillmentService applies confirmed payments to user records.
type FulfillmentService struct {
	db          *pgxpool.Pool
	paymentRepo *repository.PaymentRepository
	userRepo    *repository.UserRepository
}

func NewFulfillmentService(db *pgxpool.Pool, paymentRepo *repository.PaymentRepository, userRepo *repository.UserRepository) *FulfillmentService {
	return &FulfillmentService{db: db, paymentRepo: paymentRepo, userRepo: userRepo}
}

// Fulfill marks the payment paid and credits the owning user, all in one
// database transaction. The created->paid transition is guarded on current
// status, so a replayed callback for an already-fulfilled transaction is a
// no-op: it returns credited=false and does not double-credit coins.
func (s *FulfillmentService) Fulfill(ctx context.Context, txnID, gatewayPaymentID string) (credited bool, err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	payment, err := s.paymentRepo.MarkPaidTx(ctx, tx, txnID, gatewayPaymentID)
	if err != nil {
		if err == repository.ErrAlreadyFinal {
			logger.Info("fulfillment replay ignored", "txn_id", txnID)
			return false, nil
		}
		if err == repository.ErrPaymentNotFound {
			// A confirmed gateway callback without a payment row means the
			// initiate-time insert was lost or the id is forged. Surface it
			// loudly so reconciliation can pick it up.
			logger.Warn("fulfillment for unknown transaction", "txn_id", txnID, "gateway_payment_id", gatewayPaymentID)
			return false, err
		}
		return false, err
	}

	if payment.UserID != "" {
		features, coinDelta := UnlockSet(payment)

		purchaseType := payment.Type
		if purchaseType == domain.PurchaseBundle {
			purchaseType = "one-time"
		}

		if err := s.userRepo.ApplyFulfillment(ctx, tx, payment.UserID, features, coinDelta, purchaseType, payment.ItemID, gatewayPaymentID); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}

	logger.Info("payment fulfilled",
		"txn_id", txnID,
		"gateway", payment.Gateway,
		"type", payment.Type,
		"user_id", payment.UserID,
		"amount", payment.Amount,
	)
	return true, nil
}
