package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"astrorekha_backend/internal/domain"
	"astrorekha_backend/internal/repository"
)

const DefaultTestID = "pricing-test-1"

var (
	ErrInvalidEventType = errors.New("invalid event type")
	ErrBadWeights       = errors.New("variant weights must sum to 100")
)

type ABTestService struct {
	repo *repository.ABTestRepository
}

func NewABTestService(repo *repository.ABTestRepository) *ABTestService {
	return &ABTestService{repo: repo}
}

// defaultVariants is the 50/50 pricing-page split a test starts with.
func defaultVariants() map[string]domain.Variant {
	return map[string]domain.Variant{
		"A": {Weight: 50, Page: "step-17"},
		"B": {Weight: 50, Page: "a-step-17"},
	}
}

// PickVariant draws a variant proportionally to the configured weights. The
// walk subtracts each weight from the roll in sorted-key order and stops at
// the first non-positive remainder. roll must be in [0, totalWeight).
func PickVariant(variants map[string]domain.Variant, roll float64) string {
	keys := make([]string, 0, len(variants))
	for k := range variants {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if len(keys) == 0 {
		return "A"
	}

	for _, k := range keys {
		roll -= float64(variants[k].Weight)
		if roll <= 0 {
			return k
		}
	}
	return keys[0]
}

// TotalWeight sums the variant weights.
func TotalWeight(variants map[string]domain.Variant) int {
	total := 0
	for _, v := range variants {
		total += v.Weight
	}
	return total
}

// Assignment is what the funnel page receives: the variant plus the page that
// variant renders.
type Assignment struct {
	TestID  string         `json:"testId"`
	Variant string         `json:"variant"`
	Page    string         `json:"page"`
	Test    *domain.ABTest `json:"test,omitempty"`
	Cached  bool           `json:"cached,omitempty"`
}

// Assign returns the visitor's variant for a test, creating the test with
// default weights if it has never been seen. Once a visitor has an
// assignment it is returned as-is forever, regardless of weight changes.
func (s *ABTestService) Assign(ctx context.Context, testID, visitorID string) (*Assignment, error) {
	test, err := s.repo.GetTest(ctx, testID)
	if err != nil {
		if !errors.Is(err, repository.ErrTestNotFound) {
			return nil, err
		}
		test = &domain.ABTest{
			ID:       testID,
			Name:     "Pricing Page A/B Test",
			Status:   domain.TestActive,
			Variants: defaultVariants(),
		}
		if err := s.repo.UpsertTest(ctx, test); err != nil {
			return nil, err
		}
	}

	// Paused tests always answer the control variant.
	if test.Status != domain.TestActive {
		return &Assignment{TestID: testID, Variant: "A", Page: s.pageFor(test, "A"), Test: test}, nil
	}

	if visitorID != "" {
		if existing, err := s.repo.GetAssignment(ctx, testID, visitorID); err == nil {
			return &Assignment{
				TestID:  testID,
				Variant: existing.Variant,
				Page:    s.pageFor(test, existing.Variant),
				Test:    test,
				Cached:  true,
			}, nil
		}
	}

	variants := test.Variants
	if len(variants) == 0 {
		variants = defaultVariants()
	}

	roll := rand.Float64() * float64(TotalWeight(variants))
	variant := PickVariant(variants, roll)

	if visitorID != "" {
		// The stored value wins a race; another request may have assigned
		// this visitor a different variant first.
		stored, err := s.repo.SaveAssignment(ctx, testID, visitorID, variant)
		if err != nil {
			return nil, err
		}
		variant = stored
	}

	return &Assignment{TestID: testID, Variant: variant, Page: s.pageFor(test, variant), Test: test}, nil
}

func (s *ABTestService) pageFor(test *domain.ABTest, variant string) string {
	if v, ok := test.Variants[variant]; ok && v.Page != "" {
		return v.Page
	}
	if variant == "A" {
		return "step-17"
	}
	return "a-step-17"
}

// Update applies an admin config change. Weights, when present, must sum to 100.
func (s *ABTestService) Update(ctx context.Context, testID, name, status string, variants map[string]domain.Variant) (*domain.ABTest, error) {
	if variants != nil && TotalWeight(variants) != 100 {
		return nil, ErrBadWeights
	}

	t := &domain.ABTest{ID: testID, Name: name, Status: status, Variants: variants}
	if err := s.repo.UpsertTest(ctx, t); err != nil {
		return nil, err
	}
	return s.repo.GetTest(ctx, testID)
}

// List returns every configured test.
func (s *ABTestService) List(ctx context.Context) ([]*domain.ABTest, error) {
	return s.repo.ListTests(ctx)
}

// Track records an A/B event and bumps the variant's aggregate counters.
// Conversion events carry the paid amount in metadata and add it to revenue.
func (s *ABTestService) Track(ctx context.Context, e *domain.ABEvent) error {
	if !domain.ValidEventType(e.EventType) {
		return fmt.Errorf("%w: %q", ErrInvalidEventType, e.EventType)
	}

	var revenue int64
	if e.EventType == domain.EventConversion {
		if amount, ok := e.Metadata["amount"].(float64); ok {
			revenue = int64(amount)
		}
	}

	return s.repo.RecordEvent(ctx, e, revenue)
}

// VariantReport is a stats row with derived rates, formatted to two decimals
// the way the dashboard expects.
type VariantReport struct {
	domain.ABStats
	ConversionRate           string `json:"conversionRate"`
	BounceRate               string `json:"bounceRate"`
	CheckoutRate             string `json:"checkoutRate"`
	CheckoutToConversionRate string `json:"checkoutToConversionRate"`
	AvgRevenuePerUser        string `json:"avgRevenuePerUser"`
}

// BuildReport derives the dashboard rates from raw counters.
func BuildReport(stats *domain.ABStats) VariantReport {
	r := VariantReport{ABStats: *stats}
	r.ConversionRate = ratio(stats.Conversions, stats.Impressions)
	r.BounceRate = ratio(stats.Bounces, stats.Impressions)
	r.CheckoutRate = ratio(stats.CheckoutsStarted, stats.Impressions)
	r.CheckoutToConversionRate = ratio(stats.Conversions, stats.CheckoutsStarted)
	if stats.Conversions > 0 {
		r.AvgRevenuePerUser = fmt.Sprintf("%.2f", float64(stats.TotalRevenue)/float64(stats.Conversions))
	} else {
		r.AvgRevenuePerUser = "0.00"
	}
	return r
}

func ratio(num, den int64) string {
	if den == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(num)/float64(den)*100)
}

// Stats returns the per-variant reports for a test's A and B arms.
func (s *ABTestService) Stats(ctx context.Context, testID string) (map[string]VariantReport, error) {
	result := make(map[string]VariantReport, 2)
	for _, variant := range []string{"A", "B"} {
		stats, err := s.repo.GetStats(ctx, testID, variant)
		if err != nil {
			return nil, err
		}
		result[variant] = BuildReport(stats)
	}
	return result, nil
}
