package repository

import (
	"context"
	"errors"

	"kuztube_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrPromoNotFound  = errors.New("promo code not found")
	ErrCodeTaken      = errors.New("promo code already exists")
	ErrAlreadyRedeemed = errors.New("promo code already redeemed by user")
	ErrExhausted      = errors.New("promo code activation cap reached")
)

// pgUniqueViolation is the Postgres error code for unique constraint hits.
const pgUniqueViolation = "23505"

type PromoRepository struct {
	db *pgxpool.Pool
}

func NewPromoRepository(db *pgxpool.Pool) *PromoRepository {
	return &PromoRepository{db: db}
}

// Create inserts a new code. A duplicate code string returns ErrCodeTaken.
func (r *PromoRepository) Create(ctx context.Context, p *domain.PromoCode) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO promo_codes (code, amount, max_activations, creator_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, current_activations, created_at`,
		p.Code, p.Amount, p.MaxActivations, p.CreatorID,
	).Scan(&p.ID, &p.CurrentActivations, &p.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrCodeTaken
	}
	return err
}

// GetByCode returns a code by its string, without redeemers.
func (r *PromoRepository) GetByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	var p domain.PromoCode
	err := r.db.QueryRow(ctx,
		`SELECT id, code, amount, max_activations, current_activations, creator_id, created_at
		 FROM promo_codes
		 WHERE code = $1`,
		code,
	).Scan(&p.ID, &p.Code, &p.Amount, &p.MaxActivations, &p.CurrentActivations, &p.CreatorID, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPromoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// RegisterRedemption records a redemption atomically: the activation counter
// is bumped only while below the cap, and the unique (code_id, user_id)
// constraint enforces at-most-once per user even across racing requests.
func (r *PromoRepository) RegisterRedemption(ctx context.Context, codeID, userID int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO promo_redemptions (code_id, user_id) VALUES ($1, $2)`,
		codeID, userID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrAlreadyRedeemed
		}
		return err
	}

	tag, err := tx.Exec(ctx,
		`UPDATE promo_codes
		 SET current_activations = current_activations + 1
		 WHERE id = $1 AND current_activations < max_activations`,
		codeID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrExhausted
	}

	return tx.Commit(ctx)
}

// ListByCreator returns codes created by the user, newest first.
func (r *PromoRepository) ListByCreator(ctx context.Context, creatorID int64) ([]*domain.PromoCode, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, code, amount, max_activations, current_activations, creator_id, created_at
		 FROM promo_codes
		 WHERE creator_id = $1
		 ORDER BY created_at DESC`,
		creatorID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.PromoCode
	for rows.Next() {
		var p domain.PromoCode
		if err := rows.Scan(&p.ID, &p.Code, &p.Amount, &p.MaxActivations,
			&p.CurrentActivations, &p.CreatorID, &p.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &p)
	}
	return res, rows.Err()
}

// Redeemers returns the user ids that redeemed the code.
func (r *PromoRepository) Redeemers(ctx context.Context, codeID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id FROM promo_redemptions WHERE code_id = $1 ORDER BY created_at`,
		codeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		res = append(res, id)
	}
	return res, rows.Err()
}
