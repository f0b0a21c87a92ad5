package service

import (
	"context"
	"errors"
	"time"

	"kuztube_backend/internal/domain"
	"kuztube_backend/internal/logger"
	"kuztube_backend/internal/notify"
	"kuztube_backend/internal/repository"
)

// Base rewards per event. Fixed, not configurable.
const (
	watchXP       = 5
	watchCoins    = 1
	commentXP     = 10
	commentCoins  = 3
	likeXP        = 2
	likeCoins     = 1
	subscribeXP   = 15
	subscribeCoins = 5
)

// maxSaveAttempts bounds the load-compute-save retry loop on version
// conflicts. Past the bound the conflict is surfaced to the caller.
const maxSaveAttempts = 3

// StatsStore is the persistence contract for the per-user stats record.
type StatsStore interface {
	Load(ctx context.Context, userID int64) (*domain.UserStats, error)
	Save(ctx context.Context, userID int64, stats *domain.UserStats) error
}

// Ledger records coin movements for auditing. Failures are logged, never
// propagated: the stats blob is the balance of record.
type Ledger interface {
	Record(ctx context.Context, tx *domain.Transaction) error
}

// GamificationService is the economy engine: reward events, the achievement
// loop, and the shop lifecycle. Every mutation runs load-compute-save with
// optimistic retries, then notifies observers.
type GamificationService struct {
	stats    StatsStore
	ledger   Ledger
	notifier notify.Notifier

	// allowBoosterRepurchase controls whether a consumed booster id may be
	// bought again. Kept configurable because the products disagree on it.
	allowBoosterRepurchase bool

	now func() time.Time
}

func NewGamificationService(stats StatsStore, ledger Ledger, notifier notify.Notifier, allowBoosterRepurchase bool) *GamificationService {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &GamificationService{
		stats:                  stats,
		ledger:                 ledger,
		notifier:               notifier,
		allowBoosterRepurchase: allowBoosterRepurchase,
		now:                    time.Now,
	}
}

// EventResult is what every mutating operation returns: the fresh snapshot
// plus any achievements unlocked by it.
type EventResult struct {
	Stats    *domain.UserStats    `json:"stats"`
	Unlocked []domain.Achievement `json:"unlocked_achievements,omitempty"`
}

// GetStats returns the current record, defaulted if none is stored yet.
func (s *GamificationService) GetStats(ctx context.Context, userID int64) (*domain.UserStats, error) {
	return s.stats.Load(ctx, userID)
}

// LevelInfo is the derived display state for the level widget.
type LevelInfo struct {
	Level          domain.Level            `json:"level"`
	NextLevel      *domain.Level           `json:"next_level,omitempty"`
	Progress       int                     `json:"progress"`
	XPMultiplier   int64                   `json:"xp_multiplier"`
	CoinMultiplier int64                   `json:"coin_multiplier"`
	ActiveBoosts   map[domain.BoostKind]time.Time `json:"active_boosts"`
}

// GetLevelInfo returns current level, next level, percent progress and the
// multipliers in effect right now.
func (s *GamificationService) GetLevelInfo(ctx context.Context, userID int64) (*LevelInfo, error) {
	stats, err := s.stats.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()

	active := make(map[domain.BoostKind]time.Time)
	for kind, expiry := range stats.ActiveBoosts {
		if expiry.After(now) {
			active[kind] = expiry
		}
	}

	return &LevelInfo{
		Level:          domain.LevelForXP(stats.XP),
		NextLevel:      domain.NextLevel(stats.XP),
		Progress:       domain.LevelProgress(stats.XP),
		XPMultiplier:   stats.XPMultiplier(now),
		CoinMultiplier: stats.CoinMultiplier(now),
		ActiveBoosts:   active,
	}, nil
}

// withStats runs one load-mutate-evaluate-save cycle, retrying the whole
// cycle on a version conflict. The mutation must be pure over its inputs so
// a retry is safe.
func (s *GamificationService) withStats(ctx context.Context, userID int64, mutate func(st *domain.UserStats, now time.Time) error) (*EventResult, error) {
	var lastErr error
	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		stats, err := s.stats.Load(ctx, userID)
		if err != nil {
			return nil, err
		}

		now := s.now()
		if err := mutate(stats, now); err != nil {
			return nil, err
		}

		unlocked := s.applyAchievements(stats, now)
		stats.LastActivity = now

		err = s.stats.Save(ctx, userID, stats)
		if errors.Is(err, repository.ErrVersionConflict) {
			saveConflicts.Inc()
			lastErr = err
			continue
		}
		if err != nil {
			return nil, err
		}

		s.notifier.StatsChanged(ctx, userID, stats)
		for _, ach := range unlocked {
			achievementsUnlocked.Inc()
			s.notifier.AchievementUnlocked(ctx, userID, ach)
		}
		return &EventResult{Stats: stats, Unlocked: unlocked}, nil
	}
	return nil, lastErr
}

// applyAchievements evaluates and grants until a fixpoint: granted rewards
// may themselves satisfy further predicates (coin and level thresholds).
// Each achievement is granted exactly once; held ids never re-fire.
func (s *GamificationService) applyAchievements(stats *domain.UserStats, now time.Time) []domain.Achievement {
	var all []domain.Achievement
	for range domain.Achievements {
		unlocked := domain.Evaluate(stats, now)
		if len(unlocked) == 0 {
			break
		}
		for _, ach := range unlocked {
			stats.Achievements = append(stats.Achievements, ach.ID)
			stats.XP += ach.XPReward
			stats.Kuzcoins += ach.CoinReward
		}
		stats.Level = domain.LevelForXP(stats.XP).Level
		all = append(all, unlocked...)
	}
	return all
}

// recordEvent is the shared shape of the four reward operations: bump a
// counter, grant base rewards times the active multipliers, recompute level,
// evaluate achievements, persist, journal.
func (s *GamificationService) recordEvent(ctx context.Context, userID int64, txType string, baseXP, baseCoins int64, mutate func(st *domain.UserStats)) (*EventResult, error) {
	var earnedCoins, earnedXP int64

	res, err := s.withStats(ctx, userID, func(st *domain.UserStats, now time.Time) error {
		if mutate != nil {
			mutate(st)
		}
		earnedXP = baseXP * st.XPMultiplier(now)
		earnedCoins = baseCoins * st.CoinMultiplier(now)
		st.XP += earnedXP
		st.Kuzcoins += earnedCoins
		st.Level = domain.LevelForXP(st.XP).Level
		return nil
	})
	if err != nil {
		return nil, err
	}

	eventsRecorded.WithLabelValues(txType).Inc()
	s.journal(ctx, userID, txType, earnedCoins, map[string]interface{}{"xp": earnedXP})
	s.journalAchievements(ctx, userID, res.Unlocked)
	return res, nil
}

// RecordVideoWatch records a completed video watch. Watching one of the
// hidden videos also marks the matching secret as found.
func (s *GamificationService) RecordVideoWatch(ctx context.Context, userID int64, videoID string) (*EventResult, error) {
	return s.recordEvent(ctx, userID, domain.TxEventWatch, watchXP, watchCoins, func(st *domain.UserStats) {
		st.VideosWatched++
		if isSecretVideo(videoID) && !st.HasSecret(videoID) {
			st.SecretsFound = append(st.SecretsFound, videoID)
		}
	})
}

// RecordComment records a posted comment.
func (s *GamificationService) RecordComment(ctx context.Context, userID int64) (*EventResult, error) {
	return s.recordEvent(ctx, userID, domain.TxEventComment, commentXP, commentCoins, func(st *domain.UserStats) {
		st.CommentsPosted++
	})
}

// RecordLike records a given like.
func (s *GamificationService) RecordLike(ctx context.Context, userID int64) (*EventResult, error) {
	return s.recordEvent(ctx, userID, domain.TxEventLike, likeXP, likeCoins, func(st *domain.UserStats) {
		st.LikesGiven++
	})
}

// RecordSubscription records a channel subscription. Multipliers apply here
// like everywhere else.
func (s *GamificationService) RecordSubscription(ctx context.Context, userID int64) (*EventResult, error) {
	return s.recordEvent(ctx, userID, domain.TxEventSubscribe, subscribeXP, subscribeCoins, func(st *domain.UserStats) {
		st.Subscriptions++
	})
}

// SetPremium flips the premium flag pushed by the billing collaborator.
func (s *GamificationService) SetPremium(ctx context.Context, userID int64, premium bool) (*EventResult, error) {
	return s.withStats(ctx, userID, func(st *domain.UserStats, _ time.Time) error {
		st.Premium = premium
		return nil
	})
}

// Purchase buys a catalog item. Durable goods cannot be bought twice; a
// consumed booster can be bought again unless policy forbids it.
func (s *GamificationService) Purchase(ctx context.Context, userID int64, itemID string) (*EventResult, error) {
	item, ok := domain.ItemByID(itemID)
	if !ok {
		return nil, ErrItemNotFound
	}

	res, err := s.withStats(ctx, userID, func(st *domain.UserStats, _ time.Time) error {
		if st.OwnsItem(item.ID) {
			return ErrAlreadyOwned
		}
		if item.Category == domain.CategoryBoosters && !s.allowBoosterRepurchase && st.HasConsumedBooster(item.ID) {
			return ErrAlreadyOwned
		}
		if st.Kuzcoins < item.Price {
			return ErrInsufficientFunds
		}
		st.Kuzcoins -= item.Price
		st.PurchasedItems = append(st.PurchasedItems, item.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	purchasesTotal.Inc()
	s.journal(ctx, userID, domain.TxPurchase, -item.Price, map[string]interface{}{"item": item.ID})
	s.journalAchievements(ctx, userID, res.Unlocked)
	return res, nil
}

// Equip toggles a cosmetic item in its slot. Equipping over an occupied slot
// displaces the previous item, which stays owned. Equipping the item that
// already occupies the slot clears the slot instead.
func (s *GamificationService) Equip(ctx context.Context, userID int64, itemID string) (bool, *EventResult, error) {
	item, ok := domain.ItemByID(itemID)
	if !ok {
		return false, nil, ErrItemNotFound
	}
	slot, ok := domain.SlotForCategory(item.Category)
	if !ok {
		return false, nil, ErrNotEquippable
	}

	var equipped bool
	res, err := s.withStats(ctx, userID, func(st *domain.UserStats, _ time.Time) error {
		if !st.OwnsItem(item.ID) {
			return ErrNotOwned
		}
		if st.EquippedItems[slot] == item.ID {
			delete(st.EquippedItems, slot)
			equipped = false
		} else {
			st.EquippedItems[slot] = item.ID
			equipped = true
		}
		return nil
	})
	if err != nil {
		return false, nil, err
	}
	return equipped, res, nil
}

// Activate consumes a booster: the boost kind becomes active for 24 hours
// and the item leaves the inventory. Boosts do not stack or extend.
func (s *GamificationService) Activate(ctx context.Context, userID int64, itemID string) (*EventResult, error) {
	kind, ok := domain.BoostKindForItem(itemID)
	if !ok {
		if _, exists := domain.ItemByID(itemID); !exists {
			return nil, ErrItemNotFound
		}
		return nil, ErrNotActivatable
	}

	res, err := s.withStats(ctx, userID, func(st *domain.UserStats, now time.Time) error {
		if !st.OwnsItem(itemID) {
			return ErrNotOwned
		}
		if st.BoostActive(kind, now) {
			return ErrBoostAlreadyActive
		}
		st.ActiveBoosts[kind] = now.Add(domain.BoostDuration)
		st.RemovePurchasedItem(itemID)
		st.ConsumedBoosters = append(st.ConsumedBoosters, itemID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	boostersActivated.Inc()
	s.journal(ctx, userID, domain.TxBoosterActivate, 0, map[string]interface{}{"item": itemID, "kind": string(kind)})
	return res, nil
}

// CreditCoins adds coins to the user's balance and runs the achievement
// loop. Used by promo redemption.
func (s *GamificationService) CreditCoins(ctx context.Context, userID int64, amount int64, txType string, meta map[string]interface{}) (*EventResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	res, err := s.withStats(ctx, userID, func(st *domain.UserStats, _ time.Time) error {
		st.Kuzcoins += amount
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.journal(ctx, userID, txType, amount, meta)
	s.journalAchievements(ctx, userID, res.Unlocked)
	return res, nil
}

// DebitCoins removes coins from the user's balance, rejecting overdrafts.
// Used by promo creation.
func (s *GamificationService) DebitCoins(ctx context.Context, userID int64, amount int64, txType string, meta map[string]interface{}) (*EventResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	res, err := s.withStats(ctx, userID, func(st *domain.UserStats, _ time.Time) error {
		if st.Kuzcoins < amount {
			return ErrInsufficientFunds
		}
		st.Kuzcoins -= amount
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.journal(ctx, userID, txType, -amount, meta)
	return res, nil
}

func (s *GamificationService) journal(ctx context.Context, userID int64, txType string, amount int64, meta map[string]interface{}) {
	if s.ledger == nil {
		return
	}
	err := s.ledger.Record(ctx, &domain.Transaction{
		UserID: userID,
		Type:   txType,
		Amount: amount,
		Meta:   meta,
	})
	if err != nil {
		logger.Warn("ledger write failed", "user_id", userID, "type", txType, "error", err)
	}
}

func (s *GamificationService) journalAchievements(ctx context.Context, userID int64, unlocked []domain.Achievement) {
	for _, ach := range unlocked {
		s.journal(ctx, userID, domain.TxAchievement, ach.CoinReward, map[string]interface{}{
			"achievement": ach.ID,
			"xp":          ach.XPReward,
		})
	}
}

func isSecretVideo(videoID string) bool {
	switch videoID {
	case domain.SecretVideoKuz, domain.SecretVideoBackroom, domain.SecretVideoGoldcat:
		return true
	default:
		return false
	}
}
