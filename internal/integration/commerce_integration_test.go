package integration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"astrorekha_backend/internal/domain"
	"astrorekha_backend/internal/repository"
	"astrorekha_backend/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	applyMigrations(t, db)
	return db
}

func TestFulfillment_ReplayDoesNotDoubleCredit(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()

	paymentRepo := repository.NewPaymentRepository(db)
	userRepo := repository.NewUserRepository(db)
	fulfillment := service.NewFulfillmentService(db, paymentRepo, userRepo)

	userID := fmt.Sprintf("user_it_%d", time.Now().UnixNano())
	txnID := service.NewTxnID(userID, time.Now())

	payment := &domain.Payment{
		ID:       "pay_" + txnID,
		Gateway:  domain.GatewayPayU,
		TxnID:    txnID,
		UserID:   userID,
		Type:     domain.PurchaseBundle,
		ItemID:   "palm-birth",
		Amount:   83900,
		Currency: "INR",
	}
	if err := paymentRepo.Create(ctx, payment); err != nil {
		t.Fatalf("create payment: %v", err)
	}

	credited, err := fulfillment.Fulfill(ctx, txnID, "mihpay_1")
	if err != nil {
		t.Fatalf("first fulfill: %v", err)
	}
	if !credited {
		t.Fatal("first fulfill should credit")
	}

	user, err := userRepo.GetByID(ctx, userID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	coinsAfterFirst := user.Coins
	if coinsAfterFirst != 15 {
		t.Fatalf("expected 15 bonus coins, got %d", coinsAfterFirst)
	}
	if !user.UnlockedFeatures[domain.FeaturePalmReading] || !user.UnlockedFeatures[domain.FeatureBirthChart] {
		t.Fatalf("bundle features not unlocked: %v", user.UnlockedFeatures)
	}

	// Replayed callback: success, no second credit.
	credited, err = fulfillment.Fulfill(ctx, txnID, "mihpay_1")
	if err != nil {
		t.Fatalf("replayed fulfill: %v", err)
	}
	if credited {
		t.Fatal("replay must not credit again")
	}

	user, err = userRepo.GetByID(ctx, userID)
	if err != nil {
		t.Fatalf("get user after replay: %v", err)
	}
	if user.Coins != coinsAfterFirst {
		t.Fatalf("replay changed coin balance: %d -> %d", coinsAfterFirst, user.Coins)
	}
}

func TestFulfillment_UnknownTransaction(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()

	paymentRepo := repository.NewPaymentRepository(db)
	userRepo := repository.NewUserRepository(db)
	fulfillment := service.NewFulfillmentService(db, paymentRepo, userRepo)

	_, err := fulfillment.Fulfill(ctx, fmt.Sprintf("TXN_%d_ghost", time.Now().UnixNano()), "mihpay_x")
	if !errors.Is(err, repository.ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound, got %v", err)
	}
}

func TestABTestAssignment_Sticky(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()

	repo := repository.NewABTestRepository(db)
	visitorID := fmt.Sprintf("visitor_it_%d", time.Now().UnixNano())

	stored, err := repo.SaveAssignment(ctx, service.DefaultTestID, visitorID, "A")
	if err != nil {
		t.Fatalf("first assignment: %v", err)
	}
	if stored != "A" {
		t.Fatalf("first assignment should stick as written, got %s", stored)
	}

	// A later write with a different variant must lose to the stored one.
	stored, err = repo.SaveAssignment(ctx, service.DefaultTestID, visitorID, "B")
	if err != nil {
		t.Fatalf("second assignment: %v", err)
	}
	if stored != "A" {
		t.Fatalf("assignment changed on rewrite: got %s", stored)
	}

	// Through the service: repeated Assign calls return the same variant.
	svc := service.NewABTestService(repo)
	first, err := svc.Assign(ctx, service.DefaultTestID, visitorID)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if first.Variant != "A" || !first.Cached {
		t.Fatalf("expected cached A assignment, got %+v", first)
	}

	for i := 0; i < 5; i++ {
		again, err := svc.Assign(ctx, service.DefaultTestID, visitorID)
		if err != nil {
			t.Fatalf("assign #%d: %v", i, err)
		}
		if again.Variant != first.Variant {
			t.Fatalf("assignment not sticky: %s vs %s", again.Variant, first.Variant)
		}
	}
}
