package handlers

import (
	"net/http"

	"kuztube_backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ItemRequest struct {
	ItemID string `json:"item_id" binding:"required"`
}

// Purchase buys a shop item.
func (h *Handler) Purchase(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_id is required"})
		return
	}

	res, err := h.Gamification.Purchase(c.Request.Context(), userID, req.ItemID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":    res.Stats,
		"unlocked": res.Unlocked,
	})
}

// Equip toggles a cosmetic item in its slot.
func (h *Handler) Equip(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_id is required"})
		return
	}

	equipped, res, err := h.Gamification.Equip(c.Request.Context(), userID, req.ItemID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"equipped": equipped,
		"stats":    res.Stats,
	})
}

// Activate consumes a booster.
func (h *Handler) Activate(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_id is required"})
		return
	}

	res, err := h.Gamification.Activate(c.Request.Context(), userID, req.ItemID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": res.Stats})
}

// GetShop returns the static shop catalog.
func (h *Handler) GetShop(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": domain.ShopItems})
}
