package domain

import "time"

// Feature keys stored in users.unlocked_features.
const (
	FeaturePalmReading       = "palmReading"
	FeatureBirthChart        = "birthChart"
	FeatureCompatibilityTest = "compatibilityTest"
	FeaturePrediction2026    = "prediction2026"
)

// AllFeatures lists every known feature key, used for the zero-value
// entitlement map and for dev tester activation.
var AllFeatures = []string{
	FeaturePalmReading,
	FeatureBirthChart,
	FeatureCompatibilityTest,
	FeaturePrediction2026,
}

type User struct {
	ID               string          `db:"id" json:"id"`
	Email            string          `db:"email" json:"email,omitempty"`
	Name             string          `db:"name" json:"name,omitempty"`
	UnlockedFeatures map[string]bool `db:"unlocked_features" json:"unlocked_features"`
	Coins            int64           `db:"coins" json:"coins"`
	BundlePurchased  string          `db:"bundle_purchased" json:"bundle_purchased,omitempty"`
	PurchaseType     string          `db:"purchase_type" json:"purchase_type,omitempty"`
	PaymentStatus    string          `db:"payment_status" json:"payment_status,omitempty"`
	IsDevTester      bool            `db:"is_dev_tester" json:"is_dev_tester,omitempty"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

// DefaultFeatures returns the locked entitlement map new users start with.
func DefaultFeatures() map[string]bool {
	m := make(map[string]bool, len(AllFeatures))
	for _, f := range AllFeatures {
		m[f] = false
	}
	return m
}
