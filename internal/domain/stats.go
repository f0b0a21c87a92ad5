package domain

import "time"

// BoostKind - kind of temporary multiplier granted by a consumable booster
type BoostKind string

const (
	BoostXP   BoostKind = "xp_boost"
	BoostCoin BoostKind = "coin_boost"
)

// BoostDuration is how long an activated booster stays in effect.
const BoostDuration = 24 * time.Hour

// StarterCoins is credited to every freshly created stats record.
const StarterCoins = 100

// UserStats is the per-user gamification record. It is stored as a single
// JSON blob keyed by user id; Version is the optimistic-concurrency token
// kept in a separate column and never serialized into the blob.
type UserStats struct {
	XP             int64                   `json:"xp"`
	Level          int                     `json:"level"`
	Kuzcoins       int64                   `json:"kuzcoins"`
	VideosWatched  int64                   `json:"videos_watched"`
	CommentsPosted int64                   `json:"comments_posted"`
	LikesGiven     int64                   `json:"likes_given"`
	Subscriptions  int64                   `json:"subscriptions"`
	Achievements   []string                `json:"achievements"`
	PurchasedItems []string                `json:"purchased_items"`
	// ConsumedBoosters keeps ids of boosters that were activated and used up.
	// Only consulted when booster repurchase is disabled by policy.
	ConsumedBoosters []string              `json:"consumed_boosters,omitempty"`
	EquippedItems    map[Slot]string       `json:"equipped_items"`
	ActiveBoosts     map[BoostKind]time.Time `json:"active_boosts"`
	Premium          bool                  `json:"premium,omitempty"`
	SecretsFound     []string              `json:"secrets_found,omitempty"`
	LastActivity     time.Time             `json:"last_activity"`

	Version int64 `json:"-"`
}

// NewUserStats returns the default record created lazily on first load.
func NewUserStats() *UserStats {
	return &UserStats{
		Kuzcoins:       StarterCoins,
		Level:          1,
		Achievements:   []string{},
		PurchasedItems: []string{},
		EquippedItems:  make(map[Slot]string),
		ActiveBoosts:   make(map[BoostKind]time.Time),
	}
}

// HasAchievement reports whether the achievement id is already held.
func (s *UserStats) HasAchievement(id string) bool {
	for _, a := range s.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// OwnsItem reports whether the item id is in the purchased set.
func (s *UserStats) OwnsItem(id string) bool {
	for _, it := range s.PurchasedItems {
		if it == id {
			return true
		}
	}
	return false
}

// HasConsumedBooster reports whether the booster id was activated before.
func (s *UserStats) HasConsumedBooster(id string) bool {
	for _, it := range s.ConsumedBoosters {
		if it == id {
			return true
		}
	}
	return false
}

// HasSecret reports whether the secret video id was already recorded.
func (s *UserStats) HasSecret(videoID string) bool {
	for _, v := range s.SecretsFound {
		if v == videoID {
			return true
		}
	}
	return false
}

// BoostActive reports whether the boost kind is unexpired at the given time.
// Staleness is resolved lazily on read; there is no background expiry sweep.
func (s *UserStats) BoostActive(kind BoostKind, now time.Time) bool {
	expiry, ok := s.ActiveBoosts[kind]
	return ok && expiry.After(now)
}

// XPMultiplier returns the XP multiplier in effect at the given time.
func (s *UserStats) XPMultiplier(now time.Time) int64 {
	if s.BoostActive(BoostXP, now) {
		return 2
	}
	return 1
}

// CoinMultiplier returns the coin multiplier in effect at the given time.
func (s *UserStats) CoinMultiplier(now time.Time) int64 {
	if s.BoostActive(BoostCoin, now) {
		return 2
	}
	return 1
}

// RemovePurchasedItem deletes the item id from the purchased set.
func (s *UserStats) RemovePurchasedItem(id string) {
	for i, it := range s.PurchasedItems {
		if it == id {
			s.PurchasedItems = append(s.PurchasedItems[:i], s.PurchasedItems[i+1:]...)
			return
		}
	}
}
