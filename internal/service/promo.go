package service

import (
	"context"
	"errors"
	"strings"

	"kuztube_backend/internal/domain"
	"kuztube_backend/internal/logger"
	"kuztube_backend/internal/repository"

	"github.com/google/uuid"
)

// PromoStore is the persistence contract for promo codes.
type PromoStore interface {
	Create(ctx context.Context, p *domain.PromoCode) error
	GetByCode(ctx context.Context, code string) (*domain.PromoCode, error)
	RegisterRedemption(ctx context.Context, codeID, userID int64) error
	ListByCreator(ctx context.Context, creatorID int64) ([]*domain.PromoCode, error)
	Redeemers(ctx context.Context, codeID int64) ([]int64, error)
}

// PromoService creates and redeems promo codes. The coin side of both
// operations goes through the gamification engine so balances, ledger and
// achievement evaluation stay in one place.
type PromoService struct {
	store  PromoStore
	engine *GamificationService
}

func NewPromoService(store PromoStore, engine *GamificationService) *PromoService {
	return &PromoService{store: store, engine: engine}
}

// Create makes a new code. The creator pays amount x maxActivations up
// front; a custom code must be at least 3 characters and globally unique.
func (s *PromoService) Create(ctx context.Context, creatorID int64, amount int64, maxActivations int, customCode string) (*domain.PromoCode, error) {
	if amount <= 0 || maxActivations <= 0 {
		return nil, ErrInvalidAmount
	}

	code := strings.ToUpper(strings.TrimSpace(customCode))
	if code == "" {
		code = generateCode()
	} else if len(code) < 3 {
		return nil, ErrCodeTooShort
	}

	total := amount * int64(maxActivations)
	if _, err := s.engine.DebitCoins(ctx, creatorID, total, domain.TxPromoCreate, map[string]interface{}{"code": code}); err != nil {
		return nil, err
	}

	p := &domain.PromoCode{
		Code:           code,
		Amount:         amount,
		MaxActivations: maxActivations,
		CreatorID:      creatorID,
	}
	if err := s.store.Create(ctx, p); err != nil {
		// give the pool back; the code was never stored
		if _, refundErr := s.engine.CreditCoins(ctx, creatorID, total, domain.TxPromoCreate, map[string]interface{}{"code": code, "refund": true}); refundErr != nil {
			logger.Error("promo create refund failed", "creator_id", creatorID, "amount", total, "error", refundErr)
		}
		if errors.Is(err, repository.ErrCodeTaken) {
			return nil, ErrCodeTaken
		}
		return nil, err
	}
	return p, nil
}

// Redeem credits the code's amount to the user. A user redeems a given code
// at most once and never their own.
func (s *PromoService) Redeem(ctx context.Context, userID int64, code string) (*domain.PromoCode, *EventResult, error) {
	p, err := s.store.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, repository.ErrPromoNotFound) {
			return nil, nil, ErrCodeNotFound
		}
		return nil, nil, err
	}

	if p.CreatorID == userID {
		return nil, nil, ErrSelfRedemption
	}
	if p.Exhausted() {
		return nil, nil, ErrCodeExhausted
	}

	if err := s.store.RegisterRedemption(ctx, p.ID, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyRedeemed):
			return nil, nil, ErrAlreadyRedeemed
		case errors.Is(err, repository.ErrExhausted):
			return nil, nil, ErrCodeExhausted
		default:
			return nil, nil, err
		}
	}
	p.CurrentActivations++

	res, err := s.engine.CreditCoins(ctx, userID, p.Amount, domain.TxPromoRedeem, map[string]interface{}{"code": p.Code})
	if err != nil {
		// redemption is already registered; the credit is lost only if the
		// stats store itself failed, which we surface loudly
		logger.Error("promo credit failed after redemption", "user_id", userID, "code", p.Code, "error", err)
		return nil, nil, err
	}

	promoRedemptions.Inc()
	return p, res, nil
}

// ListMine returns codes created by the user, with redeemer lists attached.
func (s *PromoService) ListMine(ctx context.Context, creatorID int64) ([]*domain.PromoCode, error) {
	codes, err := s.store.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	for _, p := range codes {
		redeemers, err := s.store.Redeemers(ctx, p.ID)
		if err != nil {
			continue
		}
		p.Redeemers = redeemers
	}
	return codes, nil
}

func generateCode() string {
	return "KUZ-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
