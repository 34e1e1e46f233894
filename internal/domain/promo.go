package domain

import "time"

type PromoCode struct {
	ID         string     `db:"id" json:"id"`
	Active     bool       `db:"active" json:"active"`
	Discount   int        `db:"discount" json:"discount"`
	Type       string     `db:"type" json:"type"`
	Coins      int64      `db:"coins" json:"coins"`
	Plan       string     `db:"plan" json:"plan"`
	UnlockAll  bool       `db:"unlock_all" json:"unlock_all"`
	ExpiresAt  *time.Time `db:"expires_at" json:"expires_at,omitempty"`
	MaxUses    int        `db:"max_uses" json:"max_uses"`
	UsedCount  int        `db:"used_count" json:"used_count"`
	LastUsedAt *time.Time `db:"last_used_at" json:"last_used_at,omitempty"`
}

// PromoGrant is the discount descriptor returned on successful validation.
type PromoGrant struct {
	Code      string `json:"code"`
	Discount  int    `json:"discount"`
	Type      string `json:"type"`
	Coins     int64  `json:"coins"`
	Plan      string `json:"plan"`
	UnlockAll bool   `json:"unlockAll"`
}
