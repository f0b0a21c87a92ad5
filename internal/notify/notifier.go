package notify

import (
	"context"

	"kuztube_backend/internal/domain"
)

// Event types pushed to subscribers.
const (
	EventStatsChanged        = "stats_changed"
	EventAchievementUnlocked = "achievement_unlocked"
)

// Event is the wire shape of a change notification.
type Event struct {
	Type    string      `json:"type"`
	UserID  int64       `json:"user_id"`
	Payload interface{} `json:"payload,omitempty"`
}

// Notifier is the engine's observer hook. The engine never talks to a
// global event mechanism directly; callers subscribe through implementations
// of this interface (websocket hub, Redis pub/sub, or nothing at all).
// Delivery is best-effort and advisory: a missed event only delays a re-read.
type Notifier interface {
	StatsChanged(ctx context.Context, userID int64, stats *domain.UserStats)
	AchievementUnlocked(ctx context.Context, userID int64, ach domain.Achievement)
}

// Nop discards all notifications.
type Nop struct{}

func (Nop) StatsChanged(context.Context, int64, *domain.UserStats)        {}
func (Nop) AchievementUnlocked(context.Context, int64, domain.Achievement) {}

// Multi fans a notification out to several notifiers.
type Multi []Notifier

func (m Multi) StatsChanged(ctx context.Context, userID int64, stats *domain.UserStats) {
	for _, n := range m {
		n.StatsChanged(ctx, userID, stats)
	}
}

func (m Multi) AchievementUnlocked(ctx context.Context, userID int64, ach domain.Achievement) {
	for _, n := range m {
		n.AchievementUnlocked(ctx, userID, ach)
	}
}
