package notify

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"kuztube_backend/internal/domain"
	"kuztube_backend/internal/logger"

	redis "github.com/redis/go-redis/v9"
)

// pendingTTL is how long a freshly unlocked achievement stays readable via
// Pending before it silently expires (the transient toast window).
const pendingTTL = 5 * time.Second

// RedisNotifier publishes change events on a Redis channel so that other
// server instances and their websocket sessions see them, and parks newly
// unlocked achievements under a short-lived key for the notification poll.
type RedisNotifier struct {
	rdb     *redis.Client
	channel string
}

func NewRedisNotifier(rdb *redis.Client, channel string) *RedisNotifier {
	if channel == "" {
		channel = "kuztube:events"
	}
	return &RedisNotifier{rdb: rdb, channel: channel}
}

func (n *RedisNotifier) publish(ctx context.Context, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if err := n.rdb.Publish(ctx, n.channel, data).Err(); err != nil {
		logger.Warn("notify: publish failed", "error", err)
	}
}

func (n *RedisNotifier) StatsChanged(ctx context.Context, userID int64, stats *domain.UserStats) {
	n.publish(ctx, Event{Type: EventStatsChanged, UserID: userID, Payload: stats})
}

func (n *RedisNotifier) AchievementUnlocked(ctx context.Context, userID int64, ach domain.Achievement) {
	n.publish(ctx, Event{Type: EventAchievementUnlocked, UserID: userID, Payload: ach})

	data, err := json.Marshal(ach)
	if err != nil {
		return
	}
	key := pendingKey(userID)
	pipe := n.rdb.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, pendingTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Warn("notify: pending push failed", "error", err)
	}
}

// Pending drains the transient achievement notifications for a user. An
// expired or empty key yields an empty slice.
func (n *RedisNotifier) Pending(ctx context.Context, userID int64) ([]domain.Achievement, error) {
	key := pendingKey(userID)
	vals, err := n.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return []domain.Achievement{}, nil
	}
	_ = n.rdb.Del(ctx, key).Err()

	res := make([]domain.Achievement, 0, len(vals))
	for _, v := range vals {
		var ach domain.Achievement
		if err := json.Unmarshal([]byte(v), &ach); err != nil {
			continue
		}
		// Condition funcs don't survive serialization; restore from catalog.
		if full, ok := domain.AchievementByID(ach.ID); ok {
			ach = full
		}
		res = append(res, ach)
	}
	return res, nil
}

func pendingKey(userID int64) string {
	return "kuztube:achnotif:" + strconv.FormatInt(userID, 10)
}
