package service

import (
	"testing"
	"time"

	"astrorekha_backend/internal/domain"
)

func paidPayment(id string, amountPaise int64, typ, itemID, userID string, at time.Time) domain.Payment {
	return domain.Payment{
		ID:            id,
		TxnID:         "txn_" + id,
		Type:          typ,
		ItemID:        itemID,
		UserID:        userID,
		Amount:        amountPaise,
		Currency:      "INR",
		PaymentStatus: domain.PaymentPaid,
		CreatedAt:     at,
	}
}

func TestSummarize_Basics(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	payments := []domain.Payment{
		paidPayment("p1", 83900, domain.PurchaseBundle, "palm-birth", "u1", now.Add(-time.Hour)),
		paidPayment("p2", 49900, domain.PurchaseUpsell, "2026-predictions", "u2", now.AddDate(0, 0, -3)),
		paidPayment("p3", 108200, domain.PurchaseCoins, "coins-150", "u1", now.AddDate(0, -1, 0)),
		{ID: "p4", TxnID: "txn_p4", Type: domain.PurchaseBundle, Amount: 55900, PaymentStatus: domain.PaymentFailed, CreatedAt: now},
		{ID: "p5", TxnID: "txn_p5", Type: domain.PurchaseBundle, Amount: 55900, PaymentStatus: domain.PaymentCreated, CreatedAt: now},
	}
	users := []*domain.User{
		{ID: "u1", Email: "one@example.com", Name: "One"},
		{ID: "u2", Email: "two@example.com", Name: "Two"},
		{ID: "anon_123"},
	}

	s := Summarize(payments, users, now, nil)

	if s.TotalRevenue != "2420.00" {
		t.Fatalf("total revenue: %s", s.TotalRevenue)
	}
	if s.RevenueToday != "839.00" {
		t.Fatalf("revenue today: %s", s.RevenueToday)
	}
	if s.RevenueThisMonth != "1338.00" {
		t.Fatalf("revenue this month: %s", s.RevenueThisMonth)
	}
	if s.RevenueLastMonth != "1082.00" {
		t.Fatalf("revenue last month: %s", s.RevenueLastMonth)
	}
	if s.TotalPayments != 5 || s.SuccessfulPayments != 3 || s.FailedPayments != 1 || s.PendingPayments != 1 {
		t.Fatalf("payment counts: %+v", s)
	}
	if s.TotalUsers != 2 {
		t.Fatalf("anon users must not count, got %d", s.TotalUsers)
	}
	if s.UniquePayingUsers != 2 {
		t.Fatalf("unique payers: %d", s.UniquePayingUsers)
	}
	if s.RevenueByType[domain.PurchaseBundle] != 839 {
		t.Fatalf("bundle revenue: %v", s.RevenueByType[domain.PurchaseBundle])
	}
	if s.RevenueByType[domain.PurchaseCoins] != 1082 {
		t.Fatalf("coins revenue: %v", s.RevenueByType[domain.PurchaseCoins])
	}
	if got := s.BundleBreakdown["palm-birth"]; got.Count != 1 || got.Revenue != 839 {
		t.Fatalf("palm-birth breakdown: %+v", got)
	}
	// ARPU = 2420 / 2 payers
	if s.ARPU != "1210.00" {
		t.Fatalf("arpu: %s", s.ARPU)
	}
	if len(s.RevenueOverTime) != 30 {
		t.Fatalf("expected 30-day series, got %d", len(s.RevenueOverTime))
	}
}

func TestSummarize_MoMGrowth(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	payments := []domain.Payment{
		paidPayment("p1", 100000, domain.PurchaseBundle, "palm-reading", "u1", now),
		paidPayment("p2", 50000, domain.PurchaseBundle, "palm-reading", "u2", now.AddDate(0, -1, 0)),
	}
	s := Summarize(payments, nil, now, nil)
	if s.MoMGrowth != "100.0" {
		t.Fatalf("mom growth: %s", s.MoMGrowth)
	}

	// No revenue last month: growth is undefined, not infinity.
	s = Summarize(payments[:1], nil, now, nil)
	if s.MoMGrowth != "N/A" {
		t.Fatalf("expected N/A growth, got %s", s.MoMGrowth)
	}
}

func TestSummarize_CustomDateRange(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	payments := []domain.Payment{
		paidPayment("p1", 55900, domain.PurchaseBundle, "palm-reading", "u1", time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)),
		paidPayment("p2", 55900, domain.PurchaseBundle, "palm-reading", "u2", time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)),
		paidPayment("p3", 55900, domain.PurchaseBundle, "palm-reading", "u3", time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)),
	}

	s := Summarize(payments, nil, now, &DateRange{Start: "2026-03-09", End: "2026-03-11"})
	if s.CustomDateRevenue != "559.00" {
		t.Fatalf("custom range revenue: %s", s.CustomDateRevenue)
	}
	if s.CustomDatePaymentCount != 1 {
		t.Fatalf("custom range count: %d", s.CustomDatePaymentCount)
	}

	// End date omitted: single-day range.
	s = Summarize(payments, nil, now, &DateRange{Start: "2026-03-12"})
	if s.CustomDateRevenue != "559.00" || s.CustomDatePaymentCount != 1 {
		t.Fatalf("single-day range: %s / %d", s.CustomDateRevenue, s.CustomDatePaymentCount)
	}

	// Unparseable dates: no custom section rather than an error.
	s = Summarize(payments, nil, now, &DateRange{Start: "next tuesday"})
	if s.CustomDateRange != nil {
		t.Fatalf("bad dates should be ignored: %+v", s.CustomDateRange)
	}
}

func TestSummarize_TransactionEnrichment(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	payments := []domain.Payment{
		paidPayment("p1", 55900, domain.PurchaseBundle, "palm-reading", "u1", now),
		paidPayment("p2", 55900, domain.PurchaseBundle, "palm-reading", "ghost", now),
	}
	users := []*domain.User{{ID: "u1", Email: "one@example.com", Name: "One"}}

	s := Summarize(payments, users, now, nil)
	if len(s.RecentTransactions) != 2 {
		t.Fatalf("recent txns: %d", len(s.RecentTransactions))
	}

	var known, unknown *RevenueTxn
	for i := range s.RecentTransactions {
		switch s.RecentTransactions[i].UserID {
		case "u1":
			known = &s.RecentTransactions[i]
		case "ghost":
			unknown = &s.RecentTransactions[i]
		}
	}
	if known == nil || known.UserName != "One" || known.UserEmail != "one@example.com" {
		t.Fatalf("known user enrichment: %+v", known)
	}
	if unknown == nil || unknown.UserName != "Unknown" || unknown.UserEmail != "Unknown" {
		t.Fatalf("unknown user fallback: %+v", unknown)
	}
}
