package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"astrorekha_backend/internal/domain"
	"astrorekha_backend/internal/repository"
)

// RevenueTxn is one row of the dashboard's transaction views, enriched with
// user identity where known.
type RevenueTxn struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	UserID    string    `json:"userId,omitempty"`
	UserEmail string    `json:"userEmail"`
	UserName  string    `json:"userName"`
	Amount    float64   `json:"amount"`
	ItemID    string    `json:"bundleId,omitempty"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
}

type DayRevenue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

type BundleStat struct {
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// RevenueSummary is the full admin dashboard payload. Money values are in
// rupees; payments store paise and are converted here.
type RevenueSummary struct {
	Currency         string `json:"currency"`
	TotalRevenue     string `json:"totalRevenue"`
	RevenueToday     string `json:"revenueToday"`
	RevenueThisWeek  string `json:"revenueThisWeek"`
	RevenueThisMonth string `json:"revenueThisMonth"`
	RevenueThisYear  string `json:"revenueThisYear"`
	RevenueLastMonth string `json:"revenueLastMonth"`
	MoMGrowth        string `json:"momGrowth"`

	RevenueByType   map[string]float64    `json:"revenueByType"`
	BundleBreakdown map[string]BundleStat `json:"bundleBreakdown"`
	ARPU            string                `json:"arpu"`

	TotalPayments      int `json:"totalPayments"`
	SuccessfulPayments int `json:"successfulPayments"`
	FailedPayments     int `json:"failedPayments"`
	PendingPayments    int `json:"pendingPayments"`

	RevenueOverTime    []DayRevenue `json:"revenueOverTime"`
	RecentTransactions []RevenueTxn `json:"recentTransactions"`

	TotalUsers       int `json:"totalUsers"`
	UniquePayingUsers int `json:"uniquePayingUsers"`

	CustomDateRevenue      string       `json:"customDateRevenue,omitempty"`
	CustomDatePaymentCount int          `json:"customDatePaymentCount,omitempty"`
	CustomDateTransactions []RevenueTxn `json:"customDateTransactions,omitempty"`
	CustomDateRange        *DateRange   `json:"customDateRange,omitempty"`
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

const recentTxnLimit = 100

func paiseToRupees(amount int64) float64 {
	return float64(amount) / 100
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// Summarize computes the full dashboard rollup from raw payment and user rows.
// Pure: the caller supplies "now" and the optional date range.
func Summarize(payments []domain.Payment, users []*domain.User, now time.Time, dr *DateRange) *RevenueSummary {
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfWeek := startOfToday.AddDate(0, 0, -int(startOfToday.Weekday()))
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfYear := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	startOfLastMonth := startOfMonth.AddDate(0, -1, 0)

	var paid []domain.Payment
	var failed, pending int
	for _, p := range payments {
		switch p.PaymentStatus {
		case domain.PaymentPaid:
			paid = append(paid, p)
		case domain.PaymentFailed:
			failed++
		case domain.PaymentCreated:
			pending++
		}
	}

	sumSince := func(from time.Time) float64 {
		var total float64
		for _, p := range paid {
			if !p.CreatedAt.Before(from) {
				total += paiseToRupees(p.Amount)
			}
		}
		return total
	}

	totalRevenue := 0.0
	for _, p := range paid {
		totalRevenue += paiseToRupees(p.Amount)
	}

	revenueLastMonth := 0.0
	for _, p := range paid {
		if !p.CreatedAt.Before(startOfLastMonth) && p.CreatedAt.Before(startOfMonth) {
			revenueLastMonth += paiseToRupees(p.Amount)
		}
	}
	revenueThisMonth := sumSince(startOfMonth)

	momGrowth := "N/A"
	if revenueLastMonth > 0 {
		momGrowth = fmt.Sprintf("%.1f", (revenueThisMonth-revenueLastMonth)/revenueLastMonth*100)
	}

	byType := map[string]float64{
		domain.PurchaseBundle: 0,
		domain.PurchaseUpsell: 0,
		domain.PurchaseCoins:  0,
		domain.PurchaseReport: 0,
	}
	for _, p := range paid {
		if _, ok := byType[p.Type]; ok {
			byType[p.Type] += paiseToRupees(p.Amount)
		}
	}

	bundleBreakdown := make(map[string]BundleStat, 3)
	for _, id := range []string{"palm-reading", "palm-birth", "palm-birth-compat"} {
		var bs BundleStat
		for _, p := range paid {
			if p.ItemID == id {
				bs.Count++
				bs.Revenue += paiseToRupees(p.Amount)
			}
		}
		bundleBreakdown[id] = bs
	}

	// Registered users only; anonymous onboarding rows don't count.
	userMap := make(map[string]*domain.User, len(users))
	registered := 0
	for _, u := range users {
		if strings.HasPrefix(u.ID, "anon_") {
			continue
		}
		userMap[u.ID] = u
		registered++
	}

	payers := make(map[string]struct{})
	for _, p := range paid {
		if p.UserID != "" {
			payers[p.UserID] = struct{}{}
		}
	}
	arpu := "0"
	if len(payers) > 0 {
		arpu = money(totalRevenue / float64(len(payers)))
	}

	// 30-day daily series, oldest first.
	series := make([]DayRevenue, 0, 30)
	for i := 29; i >= 0; i-- {
		dayStart := startOfToday.AddDate(0, 0, -i)
		dayEnd := dayStart.AddDate(0, 0, 1)
		var dayRevenue float64
		for _, p := range paid {
			if !p.CreatedAt.Before(dayStart) && p.CreatedAt.Before(dayEnd) {
				dayRevenue += paiseToRupees(p.Amount)
			}
		}
		series = append(series, DayRevenue{Date: dayStart.Format("2006-01-02"), Revenue: dayRevenue})
	}

	toTxn := func(p domain.Payment) RevenueTxn {
		txn := RevenueTxn{
			ID:        p.ID,
			Date:      p.CreatedAt,
			UserID:    p.UserID,
			UserEmail: p.CustomerEmail,
			UserName:  "Unknown",
			Amount:    paiseToRupees(p.Amount),
			ItemID:    p.ItemID,
			Type:      p.Type,
			Status:    p.PaymentStatus,
		}
		if u, ok := userMap[p.UserID]; ok {
			if u.Email != "" {
				txn.UserEmail = u.Email
			}
			if u.Name != "" {
				txn.UserName = u.Name
			}
		}
		if txn.UserEmail == "" {
			txn.UserEmail = "Unknown"
		}
		return txn
	}

	recent := make([]RevenueTxn, 0, recentTxnLimit)
	for _, p := range paid {
		if len(recent) == recentTxnLimit {
			break
		}
		recent = append(recent, toTxn(p))
	}

	summary := &RevenueSummary{
		Currency:           "INR",
		TotalRevenue:       money(totalRevenue),
		RevenueToday:       money(sumSince(startOfToday)),
		RevenueThisWeek:    money(sumSince(startOfWeek)),
		RevenueThisMonth:   money(revenueThisMonth),
		RevenueThisYear:    money(sumSince(startOfYear)),
		RevenueLastMonth:   money(revenueLastMonth),
		MoMGrowth:          momGrowth,
		RevenueByType:      byType,
		BundleBreakdown:    bundleBreakdown,
		ARPU:               arpu,
		TotalPayments:      len(payments),
		SuccessfulPayments: len(paid),
		FailedPayments:     failed,
		PendingPayments:    pending,
		RevenueOverTime:    series,
		RecentTransactions: recent,
		TotalUsers:         registered,
		UniquePayingUsers:  len(payers),
	}

	if dr != nil && dr.Start != "" {
		end := dr.End
		if end == "" {
			end = dr.Start
		}
		rangeStart, err1 := time.ParseInLocation("2006-01-02", dr.Start, now.Location())
		rangeEnd, err2 := time.ParseInLocation("2006-01-02", end, now.Location())
		if err1 == nil && err2 == nil {
			rangeEnd = rangeEnd.AddDate(0, 0, 1)

			var rangeRevenue float64
			var rangeTxns []RevenueTxn
			for _, p := range paid {
				if !p.CreatedAt.Before(rangeStart) && p.CreatedAt.Before(rangeEnd) {
					rangeRevenue += paiseToRupees(p.Amount)
					rangeTxns = append(rangeTxns, toTxn(p))
				}
			}

			summary.CustomDateRevenue = money(rangeRevenue)
			summary.CustomDatePaymentCount = len(rangeTxns)
			summary.CustomDateTransactions = rangeTxns
			summary.CustomDateRange = &DateRange{Start: dr.Start, End: end}
		}
	}

	return summary
}

// RevenueService loads the raw rows and delegates to Summarize.
type RevenueService struct {
	paymentRepo *repository.PaymentRepository
	userRepo    *repository.UserRepository
}

func NewRevenueService(paymentRepo *repository.PaymentRepository, userRepo *repository.UserRepository) *RevenueService {
	return &RevenueService{paymentRepo: paymentRepo, userRepo: userRepo}
}

func (s *RevenueService) Report(ctx context.Context, dr *DateRange) (*RevenueSummary, error) {
	payments, err := s.paymentRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return Summarize(payments, users, time.Now(), dr), nil
}
