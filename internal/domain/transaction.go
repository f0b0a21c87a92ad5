package domain

import "time"

// Transaction is one entry of the KuzCoin ledger. Amount is the coin delta
// (negative for purchases and promo pools); XP movements go into Meta.
type Transaction struct {
	ID        int64                  `db:"id" json:"id"`
	UserID    int64                  `db:"user_id" json:"user_id"`
	Type      string                 `db:"type" json:"type"`
	Amount    int64                  `db:"amount" json:"amount"`
	Meta      map[string]interface{} `db:"meta" json:"meta,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}

// Ledger entry types written by the engine.
const (
	TxEventWatch      = "event_watch"
	TxEventComment    = "event_comment"
	TxEventLike       = "event_like"
	TxEventSubscribe  = "event_subscribe"
	TxAchievement     = "achievement"
	TxPurchase        = "purchase"
	TxBoosterActivate = "booster_activate"
	TxPromoCreate     = "promo_create"
	TxPromoRedeem     = "promo_redeem"
)
