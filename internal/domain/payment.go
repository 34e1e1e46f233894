package domain

import "time"

// Purchase types accepted by both gateways.
const (
	PurchaseBundle = "bundle"
	PurchaseUpsell = "upsell"
	PurchaseCoins  = "coins"
	PurchaseReport = "report"
)

// Payment status lifecycle: created -> paid | failed.
const (
	PaymentCreated = "created"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

// Gateways
const (
	GatewayPayU     = "payu"
	GatewayRazorpay = "razorpay"
)

// Payment is one row per checkout attempt. Amount is stored in minor
// currency units (paise) regardless of which gateway created it.
type Payment struct {
	ID               string     `db:"id" json:"id"`
	Gateway          string     `db:"gateway" json:"gateway"`
	TxnID            string     `db:"txn_id" json:"txn_id"`
	GatewayPaymentID string     `db:"gateway_payment_id" json:"gateway_payment_id,omitempty"`
	UserID           string     `db:"user_id" json:"user_id,omitempty"`
	Type             string     `db:"type" json:"type"`
	ItemID           string     `db:"item_id" json:"item_id,omitempty"`
	Feature          string     `db:"feature" json:"feature,omitempty"`
	Coins            int64      `db:"coins" json:"coins,omitempty"`
	CustomerEmail    string     `db:"customer_email" json:"customer_email,omitempty"`
	Amount           int64      `db:"amount" json:"amount"`
	Currency         string     `db:"currency" json:"currency"`
	PaymentStatus    string     `db:"payment_status" json:"payment_status"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	FulfilledAt      *time.Time `db:"fulfilled_at" json:"fulfilled_at,omitempty"`
}

func ValidPurchaseType(t string) bool {
	switch t {
	case PurchaseBundle, PurchaseUpsell, PurchaseCoins, PurchaseReport:
		return true
	}
	return false
}
