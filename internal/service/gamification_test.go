package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"kuztube_backend/internal/domain"
	"kuztube_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// weekday afternoon so no time-window achievement fires by accident
var testNow = time.Date(2025, time.March, 12, 15, 0, 0, 0, time.UTC)

type fakeStatsStore struct {
	mu      sync.Mutex
	records map[int64]*domain.UserStats

	saveErrs  []error // consumed one per Save call
	saveCalls int
}

func newFakeStatsStore() *fakeStatsStore {
	return &fakeStatsStore{records: make(map[int64]*domain.UserStats)}
}

func cloneStats(s *domain.UserStats) *domain.UserStats {
	c := *s
	c.Achievements = append([]string(nil), s.Achievements...)
	c.PurchasedItems = append([]string(nil), s.PurchasedItems...)
	c.ConsumedBoosters = append([]string(nil), s.ConsumedBoosters...)
	c.SecretsFound = append([]string(nil), s.SecretsFound...)
	c.EquippedItems = make(map[domain.Slot]string, len(s.EquippedItems))
	for k, v := range s.EquippedItems {
		c.EquippedItems[k] = v
	}
	c.ActiveBoosts = make(map[domain.BoostKind]time.Time, len(s.ActiveBoosts))
	for k, v := range s.ActiveBoosts {
		c.ActiveBoosts[k] = v
	}
	return &c
}

func (f *fakeStatsStore) Load(_ context.Context, userID int64) (*domain.UserStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[userID]
	if !ok {
		return domain.NewUserStats(), nil
	}
	return cloneStats(rec), nil
}

func (f *fakeStatsStore) Save(_ context.Context, userID int64, stats *domain.UserStats) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveCalls++
	if len(f.saveErrs) > 0 {
		err := f.saveErrs[0]
		f.saveErrs = f.saveErrs[1:]
		if err != nil {
			return err
		}
	}
	stats.Version++
	f.records[userID] = cloneStats(stats)
	return nil
}

func (f *fakeStatsStore) put(userID int64, stats *domain.UserStats) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[userID] = cloneStats(stats)
}

type fakeLedger struct {
	mu      sync.Mutex
	entries []*domain.Transaction
}

func (f *fakeLedger) Record(_ context.Context, tx *domain.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, tx)
	return nil
}

func (f *fakeLedger) byType(txType string) []*domain.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Transaction
	for _, tx := range f.entries {
		if tx.Type == txType {
			out = append(out, tx)
		}
	}
	return out
}

func newTestService(store *fakeStatsStore, ledger *fakeLedger) *GamificationService {
	svc := NewGamificationService(store, ledger, nil, true)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestRecordVideoWatchFreshUser(t *testing.T) {
	store := newFakeStatsStore()
	ledger := &fakeLedger{}
	svc := newTestService(store, ledger)

	res, err := svc.RecordVideoWatch(context.Background(), 1, "vid-42")
	require.NoError(t, err)

	// 5 xp + first_watch reward 10; 100 starter + 1 + 10
	assert.Equal(t, int64(15), res.Stats.XP)
	assert.Equal(t, int64(111), res.Stats.Kuzcoins)
	assert.Equal(t, 1, res.Stats.Level)
	assert.Equal(t, int64(1), res.Stats.VideosWatched)

	require.Len(t, res.Unlocked, 1)
	assert.Equal(t, "first_watch", res.Unlocked[0].ID)

	require.Len(t, ledger.byType(domain.TxEventWatch), 1)
	require.Len(t, ledger.byType(domain.TxAchievement), 1)
}

func TestFirstPurchase(t *testing.T) {
	store := newFakeStatsStore()
	svc := newTestService(store, &fakeLedger{})

	seed := domain.NewUserStats()
	seed.Kuzcoins = 500
	store.put(7, seed)

	res, err := svc.Purchase(context.Background(), 7, "frame_gold")
	require.NoError(t, err)

	// 500 - 500 + first_purchase reward 50
	assert.Equal(t, int64(50), res.Stats.Kuzcoins)
	assert.Equal(t, int64(50), res.Stats.XP)
	assert.True(t, res.Stats.OwnsItem("frame_gold"))

	require.Len(t, res.Unlocked, 1)
	assert.Equal(t, "first_purchase", res.Unlocked[0].ID)
}

func TestPurchaseRejections(t *testing.T) {
	store := newFakeStatsStore()
	svc := newTestService(store, &fakeLedger{})
	ctx := context.Background()

	_, err := svc.Purchase(ctx, 1, "no_such_item")
	assert.ErrorIs(t, err, ErrItemNotFound)

	// starter balance is 100, badge_star costs 200
	_, err = svc.Purchase(ctx, 1, "badge_star")
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	seed := domain.NewUserStats()
	seed.Kuzcoins = 1000
	seed.PurchasedItems = []string{"badge_star"}
	seed.Achievements = []string{"first_purchase"}
	store.put(2, seed)

	_, err = svc.Purchase(ctx, 2, "badge_star")
	assert.ErrorIs(t, err, ErrAlreadyOwned)

	// a failed purchase must not touch the balance
	st, err := svc.GetStats(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), st.Kuzcoins)
}

func TestEquipLifecycle(t *testing.T) {
	store := newFakeStatsStore()
	svc := newTestService(store, &fakeLedger{})
	ctx := context.Background()

	seed := domain.NewUserStats()
	seed.PurchasedItems = []string{"badge_star", "badge_crown", "booster_xp"}
	seed.Achievements = []string{"first_purchase"}
	store.put(3, seed)

	equipped, res, err := svc.Equip(ctx, 3, "badge_star")
	require.NoError(t, err)
	assert.True(t, equipped)
	assert.Equal(t, "badge_star", res.Stats.EquippedItems[domain.SlotBadge])

	// equipping another badge displaces the first; the first stays owned
	equipped, res, err = svc.Equip(ctx, 3, "badge_crown")
	require.NoError(t, err)
	assert.True(t, equipped)
	assert.Equal(t, "badge_crown", res.Stats.EquippedItems[domain.SlotBadge])
	assert.True(t, res.Stats.OwnsItem("badge_star"))

	// equipping the occupant clears the slot
	equipped, res, err = svc.Equip(ctx, 3, "badge_crown")
	require.NoError(t, err)
	assert.False(t, equipped)
	_, occupied := res.Stats.EquippedItems[domain.SlotBadge]
	assert.False(t, occupied)

	_, _, err = svc.Equip(ctx, 3, "frame_gold")
	assert.ErrorIs(t, err, ErrNotOwned)

	_, _, err = svc.Equip(ctx, 3, "booster_xp")
	assert.ErrorIs(t, err, ErrNotEquippable)

	_, _, err = svc.Equip(ctx, 3, "no_such_item")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestBoosterActivation(t *testing.T) {
	store := newFakeStatsStore()
	ledger := &fakeLedger{}
	svc := newTestService(store, ledger)
	ctx := context.Background()

	seed := domain.NewUserStats()
	seed.PurchasedItems = []string{"booster_xp"}
	seed.Achievements = []string{"first_purchase"}
	store.put(4, seed)

	res, err := svc.Activate(ctx, 4, "booster_xp")
	require.NoError(t, err)
	assert.False(t, res.Stats.OwnsItem("booster_xp"), "booster is consumed on activation")
	assert.True(t, res.Stats.BoostActive(domain.BoostXP, testNow))
	assert.Equal(t, testNow.Add(domain.BoostDuration), res.Stats.ActiveBoosts[domain.BoostXP])
	assert.True(t, res.Stats.HasConsumedBooster("booster_xp"))

	// watching under the boost doubles xp but not coins
	before, err := svc.GetStats(ctx, 4)
	require.NoError(t, err)
	watch, err := svc.RecordVideoWatch(ctx, 4, "vid-1")
	require.NoError(t, err)
	gotXP := watch.Stats.XP - before.XP
	for _, a := range watch.Unlocked {
		gotXP -= a.XPReward
	}
	assert.Equal(t, int64(10), gotXP)

	// a second booster of the same kind cannot be activated while one runs
	more, err := svc.GetStats(ctx, 4)
	require.NoError(t, err)
	more.PurchasedItems = append(more.PurchasedItems, "booster_xp")
	store.put(4, more)

	_, err = svc.Activate(ctx, 4, "booster_xp")
	assert.ErrorIs(t, err, ErrBoostAlreadyActive)

	_, err = svc.Activate(ctx, 4, "frame_gold")
	assert.ErrorIs(t, err, ErrNotActivatable)

	_, err = svc.Activate(ctx, 4, "booster_coin")
	assert.ErrorIs(t, err, ErrNotOwned)
}

func TestBoosterRepurchasePolicy(t *testing.T) {
	store := newFakeStatsStore()
	ctx := context.Background()

	seed := domain.NewUserStats()
	seed.Kuzcoins = 1000
	seed.ConsumedBoosters = []string{"booster_xp"}
	seed.Achievements = []string{"first_purchase"}
	store.put(5, seed)

	strict := NewGamificationService(store, &fakeLedger{}, nil, false)
	strict.now = func() time.Time { return testNow }
	_, err := strict.Purchase(ctx, 5, "booster_xp")
	assert.ErrorIs(t, err, ErrAlreadyOwned)

	relaxed := newTestService(store, &fakeLedger{})
	res, err := relaxed.Purchase(ctx, 5, "booster_xp")
	require.NoError(t, err)
	assert.True(t, res.Stats.OwnsItem("booster_xp"))
}

func TestSubscriptionAppliesCoinMultiplier(t *testing.T) {
	store := newFakeStatsStore()
	svc := newTestService(store, &fakeLedger{})

	seed := domain.NewUserStats()
	seed.ActiveBoosts[domain.BoostCoin] = testNow.Add(time.Hour)
	store.put(6, seed)

	res, err := svc.RecordSubscription(context.Background(), 6)
	require.NoError(t, err)

	var achCoins, achXP int64
	for _, a := range res.Unlocked {
		achCoins += a.CoinReward
		achXP += a.XPReward
	}
	assert.Equal(t, int64(15)+achXP, res.Stats.XP, "xp is not doubled by a coin boost")
	assert.Equal(t, int64(100+10)+achCoins, res.Stats.Kuzcoins, "base 5 coins doubled")
}

func TestAchievementCascade(t *testing.T) {
	store := newFakeStatsStore()
	svc := newTestService(store, &fakeLedger{})

	// one watch away from watcher_10, whose coin reward tips the balance
	// over the coins_1000 threshold
	seed := domain.NewUserStats()
	seed.XP = 50
	seed.Kuzcoins = 985
	seed.VideosWatched = 9
	seed.Achievements = []string{"first_watch"}
	store.put(8, seed)

	res, err := svc.RecordVideoWatch(context.Background(), 8, "vid-10")
	require.NoError(t, err)

	ids := make([]string, 0, len(res.Unlocked))
	for _, a := range res.Unlocked {
		ids = append(ids, a.ID)
	}
	assert.Contains(t, ids, "watcher_10")
	assert.Contains(t, ids, "coins_1000")

	// 985 + 1 + 15 = 1001; coins_1000 itself pays no coins
	assert.Equal(t, int64(1001), res.Stats.Kuzcoins)
	// 50 + 5 + 25 + 50
	assert.Equal(t, int64(130), res.Stats.XP)
	assert.Equal(t, 2, res.Stats.Level)
}

func TestSetPremiumUnlocksAchievement(t *testing.T) {
	store := newFakeStatsStore()
	svc := newTestService(store, &fakeLedger{})

	res, err := svc.SetPremium(context.Background(), 9, true)
	require.NoError(t, err)
	assert.True(t, res.Stats.Premium)

	require.Len(t, res.Unlocked, 1)
	assert.Equal(t, "premium_member", res.Unlocked[0].ID)
}

func TestSaveRetriesOnVersionConflict(t *testing.T) {
	store := newFakeStatsStore()
	store.saveErrs = []error{repository.ErrVersionConflict, nil}
	svc := newTestService(store, &fakeLedger{})

	res, err := svc.RecordLike(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Stats.LikesGiven)
	assert.Equal(t, 2, store.saveCalls)
}

func TestSaveConflictSurfacedAfterRetries(t *testing.T) {
	store := newFakeStatsStore()
	store.saveErrs = []error{
		repository.ErrVersionConflict,
		repository.ErrVersionConflict,
		repository.ErrVersionConflict,
	}
	svc := newTestService(store, &fakeLedger{})

	_, err := svc.RecordLike(context.Background(), 11)
	assert.ErrorIs(t, err, repository.ErrVersionConflict)
	assert.Equal(t, maxSaveAttempts, store.saveCalls)
}

func TestSecretVideoUnlocks(t *testing.T) {
	store := newFakeStatsStore()
	svc := newTestService(store, &fakeLedger{})

	res, err := svc.RecordVideoWatch(context.Background(), 12, domain.SecretVideoGoldcat)
	require.NoError(t, err)
	assert.True(t, res.Stats.HasSecret(domain.SecretVideoGoldcat))

	ids := make([]string, 0, len(res.Unlocked))
	for _, a := range res.Unlocked {
		ids = append(ids, a.ID)
	}
	assert.Contains(t, ids, "secret_goldcat")
	assert.Contains(t, ids, "first_watch")

	// re-watching the same secret does not duplicate it
	res, err = svc.RecordVideoWatch(context.Background(), 12, domain.SecretVideoGoldcat)
	require.NoError(t, err)
	assert.Len(t, res.Stats.SecretsFound, 1)
	assert.Empty(t, res.Unlocked)
}

func TestDebitCoins(t *testing.T) {
	store := newFakeStatsStore()
	svc := newTestService(store, &fakeLedger{})
	ctx := context.Background()

	_, err := svc.DebitCoins(ctx, 13, 500, domain.TxPromoCreate, nil)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	_, err = svc.DebitCoins(ctx, 13, 0, domain.TxPromoCreate, nil)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	res, err := svc.DebitCoins(ctx, 13, 40, domain.TxPromoCreate, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(60), res.Stats.Kuzcoins)
}

func TestGetLevelInfo(t *testing.T) {
	store := newFakeStatsStore()
	svc := newTestService(store, &fakeLedger{})

	seed := domain.NewUserStats()
	seed.XP = 150
	seed.Level = 2
	seed.ActiveBoosts[domain.BoostXP] = testNow.Add(time.Hour)
	seed.ActiveBoosts[domain.BoostCoin] = testNow.Add(-time.Hour) // stale
	store.put(14, seed)

	info, err := svc.GetLevelInfo(context.Background(), 14)
	require.NoError(t, err)
	assert.Equal(t, 2, info.Level.Level)
	require.NotNil(t, info.NextLevel)
	assert.Equal(t, 3, info.NextLevel.Level)
	assert.Equal(t, 25, info.Progress)
	assert.Equal(t, int64(2), info.XPMultiplier)
	assert.Equal(t, int64(1), info.CoinMultiplier)

	// the stale boost is filtered from the view
	_, ok := info.ActiveBoosts[domain.BoostCoin]
	assert.False(t, ok)
}
