package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"kuztube_backend/internal/domain"
	"kuztube_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePromoStore struct {
	mu     sync.Mutex
	nextID int64
	codes  map[string]*domain.PromoCode
	// redeemed[codeID] is the set of users who redeemed it
	redeemed map[int64]map[int64]bool

	createErr error
}

func newFakePromoStore() *fakePromoStore {
	return &fakePromoStore{
		codes:    make(map[string]*domain.PromoCode),
		redeemed: make(map[int64]map[int64]bool),
	}
}

func (f *fakePromoStore) Create(_ context.Context, p *domain.PromoCode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.codes[p.Code]; exists {
		return repository.ErrCodeTaken
	}
	f.nextID++
	p.ID = f.nextID
	f.codes[p.Code] = p
	return nil
}

func (f *fakePromoStore) GetByCode(_ context.Context, code string) (*domain.PromoCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.codes[code]
	if !ok {
		return nil, repository.ErrPromoNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePromoStore) RegisterRedemption(_ context.Context, codeID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.redeemed[codeID] == nil {
		f.redeemed[codeID] = make(map[int64]bool)
	}
	if f.redeemed[codeID][userID] {
		return repository.ErrAlreadyRedeemed
	}
	for _, p := range f.codes {
		if p.ID != codeID {
			continue
		}
		if p.CurrentActivations >= p.MaxActivations {
			return repository.ErrExhausted
		}
		p.CurrentActivations++
		f.redeemed[codeID][userID] = true
		return nil
	}
	return repository.ErrPromoNotFound
}

func (f *fakePromoStore) ListByCreator(_ context.Context, creatorID int64) ([]*domain.PromoCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.PromoCode
	for _, p := range f.codes {
		if p.CreatorID == creatorID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakePromoStore) Redeemers(_ context.Context, codeID int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []int64
	for userID := range f.redeemed[codeID] {
		out = append(out, userID)
	}
	return out, nil
}

func newPromoFixture(creatorCoins int64) (*PromoService, *fakePromoStore, *fakeStatsStore) {
	statsStore := newFakeStatsStore()
	seed := domain.NewUserStats()
	seed.Kuzcoins = creatorCoins
	statsStore.put(1, seed)

	engine := newTestService(statsStore, &fakeLedger{})
	promoStore := newFakePromoStore()
	return NewPromoService(promoStore, engine), promoStore, statsStore
}

func TestCreatePromoDebitsPool(t *testing.T) {
	svc, _, statsStore := newPromoFixture(600)

	p, err := svc.Create(context.Background(), 1, 50, 10, "PARTY")
	require.NoError(t, err)
	assert.Equal(t, "PARTY", p.Code)
	assert.Equal(t, int64(50), p.Amount)
	assert.Equal(t, 10, p.MaxActivations)

	// 600 - 50x10
	st, err := statsStore.Load(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(100), st.Kuzcoins)
}

func TestCreatePromoValidation(t *testing.T) {
	svc, _, _ := newPromoFixture(10000)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, 0, 5, "")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Create(ctx, 1, 50, 0, "")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Create(ctx, 1, 50, 5, "AB")
	assert.ErrorIs(t, err, ErrCodeTooShort)

	// code is normalized to upper case before the length check
	p, err := svc.Create(ctx, 1, 50, 5, "  party2 ")
	require.NoError(t, err)
	assert.Equal(t, "PARTY2", p.Code)

	_, err = svc.Create(ctx, 1, 50, 5, "party2")
	assert.ErrorIs(t, err, ErrCodeTaken)
}

func TestCreatePromoInsufficientFunds(t *testing.T) {
	svc, _, statsStore := newPromoFixture(100)

	_, err := svc.Create(context.Background(), 1, 50, 10, "")
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	st, err := statsStore.Load(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(100), st.Kuzcoins, "failed create must not debit")
}

func TestCreatePromoRefundsOnStoreFailure(t *testing.T) {
	svc, promoStore, statsStore := newPromoFixture(600)
	promoStore.createErr = assert.AnError

	_, err := svc.Create(context.Background(), 1, 50, 10, "OOPS1")
	require.Error(t, err)

	st, err := statsStore.Load(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(600), st.Kuzcoins, "pool must be refunded when the code is not stored")
}

func TestGeneratedCodeShape(t *testing.T) {
	svc, _, _ := newPromoFixture(10000)

	p, err := svc.Create(context.Background(), 1, 10, 2, "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p.Code, "KUZ-"))
	assert.Len(t, p.Code, 12)
	assert.Equal(t, strings.ToUpper(p.Code), p.Code)
}

func TestRedeemPromo(t *testing.T) {
	svc, _, statsStore := newPromoFixture(600)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, 50, 2, "SHARE")
	require.NoError(t, err)

	p, res, err := svc.Redeem(ctx, 2, "share")
	require.NoError(t, err)
	assert.Equal(t, int64(50), p.Amount)
	assert.Equal(t, int64(150), res.Stats.Kuzcoins, "starter 100 + 50")

	// a user redeems a given code at most once
	_, _, err = svc.Redeem(ctx, 2, "SHARE")
	assert.ErrorIs(t, err, ErrAlreadyRedeemed)

	// balance unchanged by the rejected attempt
	st, err := statsStore.Load(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(150), st.Kuzcoins)
}

func TestRedeemRejections(t *testing.T) {
	svc, _, _ := newPromoFixture(600)
	ctx := context.Background()

	_, _, err := svc.Redeem(ctx, 2, "NOPE")
	assert.ErrorIs(t, err, ErrCodeNotFound)

	_, err2 := svc.Create(ctx, 1, 50, 1, "SOLO")
	require.NoError(t, err2)

	_, _, err = svc.Redeem(ctx, 1, "SOLO")
	assert.ErrorIs(t, err, ErrSelfRedemption)

	_, _, err = svc.Redeem(ctx, 2, "SOLO")
	require.NoError(t, err)

	// cap of one activation is now reached
	_, _, err = svc.Redeem(ctx, 3, "SOLO")
	assert.ErrorIs(t, err, ErrCodeExhausted)
}

func TestListMineAttachesRedeemers(t *testing.T) {
	svc, _, _ := newPromoFixture(600)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, 10, 5, "MINE1")
	require.NoError(t, err)
	_, _, err = svc.Redeem(ctx, 2, "MINE1")
	require.NoError(t, err)
	_, _, err = svc.Redeem(ctx, 3, "MINE1")
	require.NoError(t, err)

	codes, err := svc.ListMine(ctx, 1)
	require.NoError(t, err)
	require.Len(t, codes, 1)
	assert.Equal(t, 2, codes[0].CurrentActivations)
	assert.ElementsMatch(t, []int64{2, 3}, codes[0].Redeemers)
}
