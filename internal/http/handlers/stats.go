package handlers

import (
	"net/http"
	"strconv"

	"kuztube_backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// MyStats returns the caller's full stats record.
func (h *Handler) MyStats(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	stats, err := h.Gamification.GetStats(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// MyLevel returns the derived level widget state.
func (h *Handler) MyLevel(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	info, err := h.Gamification.GetLevelInfo(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// MyNotifications drains the transient achievement notifications. They
// expire on their own a few seconds after unlock, so polling later than
// that simply yields nothing.
func (h *Handler) MyNotifications(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if h.Notifications == nil {
		c.JSON(http.StatusOK, gin.H{"achievements": []domain.Achievement{}})
		return
	}

	achs, err := h.Notifications.Pending(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"achievements": []domain.Achievement{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"achievements": achs})
}

type PremiumRequest struct {
	Premium *bool `json:"premium" binding:"required"`
}

// SetPremium flips the caller's premium flag. The flag itself is owned by
// billing; this endpoint only mirrors it into the stats record.
func (h *Handler) SetPremium(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req PremiumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "premium is required"})
		return
	}

	res, err := h.Gamification.SetPremium(c.Request.Context(), userID, *req.Premium)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":    res.Stats,
		"unlocked": res.Unlocked,
	})
}

// MyTransactions returns the caller's recent ledger entries.
func (h *Handler) MyTransactions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	txs, err := h.TxRepo.GetByUserID(c.Request.Context(), userID, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}
