package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type CreatePromoRequest struct {
	Amount         int64  `json:"amount" binding:"required,min=1"`
	MaxActivations int    `json:"max_activations" binding:"required,min=1"`
	Code           string `json:"code"`
}

// CreatePromo creates a promo code paid from the caller's balance.
func (h *Handler) CreatePromo(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req CreatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	promo, err := h.Promo.Create(c.Request.Context(), userID, req.Amount, req.MaxActivations, req.Code)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"promo": promo})
}

type RedeemPromoRequest struct {
	Code string `json:"code" binding:"required"`
}

// RedeemPromo redeems a code for the caller.
func (h *Handler) RedeemPromo(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req RedeemPromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}

	promo, res, err := h.Promo.Redeem(c.Request.Context(), userID, req.Code)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"amount": promo.Amount,
		"stats":  res.Stats,
	})
}

// MyPromoCodes lists codes created by the caller.
func (h *Handler) MyPromoCodes(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	codes, err := h.Promo.ListMine(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"codes": codes})
}
