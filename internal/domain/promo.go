package domain

import "time"

// PromoCode is a shareable token redeemable once per user for a fixed coin
// reward, capped by a global activation count. Codes are global, not
// per-user; the creator pays the full reward pool up front.
type PromoCode struct {
	ID                 int64     `json:"id"`
	Code               string    `json:"code"`
	Amount             int64     `json:"amount"`
	MaxActivations     int       `json:"max_activations"`
	CurrentActivations int       `json:"current_activations"`
	CreatorID          int64     `json:"creator_id"`
	CreatedAt          time.Time `json:"created_at"`

	// Redeemers is loaded on demand, not with every query.
	Redeemers []int64 `json:"redeemers,omitempty"`
}

// Exhausted reports whether the activation cap is reached.
func (p *PromoCode) Exhausted() bool {
	return p.CurrentActivations >= p.MaxActivations
}
