package service

import "errors"

// Business rejections. Handlers render these as 4xx with the message text;
// anything else is an unexpected failure and becomes a 500.
var (
	ErrItemNotFound       = errors.New("item not found")
	ErrAlreadyOwned       = errors.New("item already owned")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrNotOwned           = errors.New("item not owned")
	ErrNotEquippable      = errors.New("item cannot be equipped")
	ErrNotActivatable     = errors.New("item is not a booster")
	ErrBoostAlreadyActive = errors.New("boost of this kind is already active")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrCodeNotFound       = errors.New("promo code not found")
	ErrCodeTooShort       = errors.New("promo code must be at least 3 characters")
	ErrCodeTaken          = errors.New("promo code already exists")
	ErrSelfRedemption     = errors.New("cannot redeem your own promo code")
	ErrAlreadyRedeemed    = errors.New("promo code already redeemed")
	ErrCodeExhausted      = errors.New("promo code activation cap reached")
)

// IsBusinessError reports whether the error is an expected rule rejection.
func IsBusinessError(err error) bool {
	for _, e := range []error{
		ErrItemNotFound, ErrAlreadyOwned, ErrInsufficientFunds, ErrNotOwned,
		ErrNotEquippable, ErrNotActivatable, ErrBoostAlreadyActive,
		ErrInvalidAmount, ErrCodeNotFound, ErrCodeTooShort, ErrCodeTaken,
		ErrSelfRedemption, ErrAlreadyRedeemed, ErrCodeExhausted,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
