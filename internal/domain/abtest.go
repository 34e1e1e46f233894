package domain

import "time"

// A/B test event types.
const (
	EventImpression      = "impression"
	EventConversion      = "conversion"
	EventBounce          = "bounce"
	EventCheckoutStarted = "checkout_started"
)

const (
	TestActive = "active"
	TestPaused = "paused"
)

type Variant struct {
	Weight int    `json:"weight"`
	Page   string `json:"page,omitempty"`
}

type ABTest struct {
	ID        string             `db:"id" json:"id"`
	Name      string             `db:"name" json:"name"`
	Status    string             `db:"status" json:"status"`
	Variants  map[string]Variant `db:"variants" json:"variants"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt time.Time          `db:"updated_at" json:"updated_at"`
}

// ABAssignment is the sticky (testId, visitorId) -> variant record. Once
// written it never changes, even if the test weights do.
type ABAssignment struct {
	ID         string    `db:"id" json:"id"`
	TestID     string    `db:"test_id" json:"test_id"`
	VisitorID  string    `db:"visitor_id" json:"visitor_id"`
	Variant    string    `db:"variant" json:"variant"`
	AssignedAt time.Time `db:"assigned_at" json:"assigned_at"`
}

type ABStats struct {
	ID               string    `db:"id" json:"id"`
	TestID           string    `db:"test_id" json:"test_id"`
	Variant          string    `db:"variant" json:"variant"`
	Impressions      int64     `db:"impressions" json:"impressions"`
	Conversions      int64     `db:"conversions" json:"conversions"`
	Bounces          int64     `db:"bounces" json:"bounces"`
	CheckoutsStarted int64     `db:"checkouts_started" json:"checkouts_started"`
	TotalRevenue     int64     `db:"total_revenue" json:"total_revenue"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

type ABEvent struct {
	ID        int64          `db:"id" json:"id"`
	TestID    string         `db:"test_id" json:"test_id"`
	Variant   string         `db:"variant" json:"variant"`
	EventType string         `db:"event_type" json:"event_type"`
	VisitorID string         `db:"visitor_id" json:"visitor_id,omitempty"`
	UserID    string         `db:"user_id" json:"user_id,omitempty"`
	Metadata  map[string]any `db:"metadata" json:"metadata,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

func ValidEventType(t string) bool {
	switch t {
	case EventImpression, EventConversion, EventBounce, EventCheckoutStarted:
		return true
	}
	return false
}
