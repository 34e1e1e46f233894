package domain

// Pricing items are modelled as one struct per purchasable kind rather than a
// single loose bag, so a bundle cannot be confused with a coin package at
// compile time. Prices are in whole rupees; gateways convert as needed.

type BundlePlan struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         int64    `json:"price"`
	OriginalPrice int64    `json:"originalPrice"`
	Discount      string   `json:"discount"`
	Description   string   `json:"description"`
	Features      []string `json:"features"`
	FeatureList   []string `json:"featureList"`
	Popular       bool     `json:"popular"`
	LimitedOffer  bool     `json:"limitedOffer"`
	Active        bool     `json:"active"`
}

type UpsellPlan struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	OriginalPrice int64  `json:"originalPrice"`
	Discount      string `json:"discount"`
	Description   string `json:"description"`
	Feature       string `json:"feature"`
	Active        bool   `json:"active"`
}

type ReportPlan struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	OriginalPrice int64  `json:"originalPrice"`
	Feature       string `json:"feature"`
	Active        bool   `json:"active"`
}

type CoinPackage struct {
	ID            string `json:"id"`
	Coins         int64  `json:"coins"`
	Price         int64  `json:"price"`
	OriginalPrice int64  `json:"originalPrice"`
	Active        bool   `json:"active"`
}

type PricingConfig struct {
	Bundles      []BundlePlan  `json:"bundles"`
	Upsells      []UpsellPlan  `json:"upsells"`
	Reports      []ReportPlan  `json:"reports"`
	CoinPackages []CoinPackage `json:"coinPackages"`
}

func (p *PricingConfig) BundleByID(id string) *BundlePlan {
	for i := range p.Bundles {
		if p.Bundles[i].ID == id {
			return &p.Bundles[i]
		}
	}
	return nil
}

func (p *PricingConfig) UpsellByID(id string) *UpsellPlan {
	for i := range p.Upsells {
		if p.Upsells[i].ID == id {
			return &p.Upsells[i]
		}
	}
	return nil
}

func (p *PricingConfig) ReportByID(id string) *ReportPlan {
	for i := range p.Reports {
		if p.Reports[i].ID == id {
			return &p.Reports[i]
		}
	}
	return nil
}

func (p *PricingConfig) CoinPackageByID(id string) *CoinPackage {
	for i := range p.CoinPackages {
		if p.CoinPackages[i].ID == id {
			return &p.CoinPackages[i]
		}
	}
	return nil
}

// DefaultPricing is the fallback used whenever the settings row is missing or
// unreadable. It must keep the same shape as the stored config.
func DefaultPricing() *PricingConfig {
	return &PricingConfig{
		Bundles: []BundlePlan{
			{
				ID:            "palm-reading",
				Name:          "Palm Reading",
				Price:         559,
				OriginalPrice: 699,
				Discount:      "20% OFF",
				Description:   "Personalized palm reading report delivered instantly.",
				Features:      []string{FeaturePalmReading},
				FeatureList: []string{
					"Complete palm line analysis",
					"Life, heart, head line insights",
					"Personality traits revealed",
				},
				Active: true,
			},
			{
				ID:            "palm-birth",
				Name:          "Palm + Birth Chart",
				Price:         839,
				OriginalPrice: 1199,
				Discount:      "30% OFF",
				Description:   "Deep palm insights plus your full zodiac reading.",
				Features:      []string{FeaturePalmReading, FeatureBirthChart},
				FeatureList: []string{
					"Everything in Palm Reading",
					"Complete birth chart analysis",
					"Planetary positions & houses",
				},
				Popular: true,
				Active:  true,
			},
			{
				ID:            "palm-birth-compat",
				Name:          "Palm + Birth Chart + Compatibility Report",
				Price:         1599,
				OriginalPrice: 3199,
				Discount:      "50% OFF",
				Description:   "Complete cosmic package with all reports included.",
				Features:      []string{FeaturePalmReading, FeatureBirthChart, FeatureCompatibilityTest},
				FeatureList: []string{
					"Everything in Palm + Birth Chart",
					"Full compatibility analysis",
					"Partner matching report",
				},
				LimitedOffer: true,
				Active:       true,
			},
		},
		Upsells: []UpsellPlan{
			{
				ID:            "2026-predictions",
				Name:          "2026 Future Predictions",
				Price:         499,
				OriginalPrice: 999,
				Discount:      "50% OFF",
				Description:   "Detailed predictions for your 2026 journey.",
				Feature:       FeaturePrediction2026,
				Active:        true,
			},
		},
		Reports: []ReportPlan{
			{ID: "report-2026", Name: "2026 Future Predictions", Price: 582, OriginalPrice: 999, Feature: FeaturePrediction2026, Active: true},
			{ID: "report-birth-chart", Name: "Birth Chart Report", Price: 582, OriginalPrice: 999, Feature: FeatureBirthChart, Active: true},
			{ID: "report-compatibility", Name: "Compatibility Report", Price: 582, OriginalPrice: 999, Feature: FeatureCompatibilityTest, Active: true},
		},
		CoinPackages: []CoinPackage{
			{ID: "coins-50", Coins: 50, Price: 416, OriginalPrice: 500, Active: true},
			{ID: "coins-150", Coins: 150, Price: 1082, OriginalPrice: 1500, Active: true},
			{ID: "coins-300", Coins: 300, Price: 1666, OriginalPrice: 2500, Active: true},
			{ID: "coins-500", Coins: 500, Price: 2499, OriginalPrice: 3500, Active: true},
		},
	}
}
