package domain

import (
	"testing"
	"time"
)

func TestNewUserStatsDefaults(t *testing.T) {
	s := NewUserStats()
	if s.Kuzcoins != StarterCoins {
		t.Errorf("starter coins = %d, want %d", s.Kuzcoins, StarterCoins)
	}
	if s.Level != 1 {
		t.Errorf("starting level = %d, want 1", s.Level)
	}
	if s.EquippedItems == nil || s.ActiveBoosts == nil {
		t.Error("maps must be initialized")
	}
}

func TestBoostActiveExpiresLazily(t *testing.T) {
	now := time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)

	s := NewUserStats()
	s.ActiveBoosts[BoostXP] = now.Add(time.Hour)

	if !s.BoostActive(BoostXP, now) {
		t.Error("boost should be active before expiry")
	}
	if s.BoostActive(BoostXP, now.Add(2*time.Hour)) {
		t.Error("boost should be inactive after expiry")
	}
	if s.BoostActive(BoostCoin, now) {
		t.Error("untracked kind should be inactive")
	}
}

func TestMultipliers(t *testing.T) {
	now := time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)

	s := NewUserStats()
	if s.XPMultiplier(now) != 1 || s.CoinMultiplier(now) != 1 {
		t.Fatal("multipliers must default to 1")
	}

	s.ActiveBoosts[BoostXP] = now.Add(time.Hour)
	if s.XPMultiplier(now) != 2 {
		t.Error("xp multiplier should be 2 under an active boost")
	}
	if s.CoinMultiplier(now) != 1 {
		t.Error("coin multiplier must not react to the xp boost")
	}

	// expired boost falls back to 1 without cleanup
	s.ActiveBoosts[BoostXP] = now.Add(-time.Minute)
	if s.XPMultiplier(now) != 1 {
		t.Error("expired boost must not multiply")
	}
}

func TestRemovePurchasedItem(t *testing.T) {
	s := NewUserStats()
	s.PurchasedItems = []string{"a", "b", "c"}

	s.RemovePurchasedItem("b")
	if s.OwnsItem("b") {
		t.Error("b should be removed")
	}
	if !s.OwnsItem("a") || !s.OwnsItem("c") {
		t.Error("other items must survive removal")
	}

	// removing a missing id is a no-op
	s.RemovePurchasedItem("zzz")
	if len(s.PurchasedItems) != 2 {
		t.Errorf("len = %d, want 2", len(s.PurchasedItems))
	}
}
