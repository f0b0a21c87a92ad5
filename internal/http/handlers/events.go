package handlers

import (
	"context"
	"net/http"

	"kuztube_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// WatchRequest identifies the watched video. The id only matters for the
// hidden-video achievements; any other value is just counted.
type WatchRequest struct {
	VideoID string `json:"video_id"`
}

// RecordWatch records a completed video watch.
func (h *Handler) RecordWatch(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req WatchRequest
	_ = c.ShouldBindJSON(&req)

	res, err := h.Gamification.RecordVideoWatch(c.Request.Context(), userID, req.VideoID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondEvent(c, res)
}

// RecordComment records a posted comment.
func (h *Handler) RecordComment(c *gin.Context) {
	h.recordSimple(c, h.Gamification.RecordComment)
}

// RecordLike records a given like.
func (h *Handler) RecordLike(c *gin.Context) {
	h.recordSimple(c, h.Gamification.RecordLike)
}

// RecordSubscription records a channel subscription.
func (h *Handler) RecordSubscription(c *gin.Context) {
	h.recordSimple(c, h.Gamification.RecordSubscription)
}

func (h *Handler) recordSimple(c *gin.Context, record func(ctx context.Context, userID int64) (*service.EventResult, error)) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	res, err := record(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondEvent(c, res)
}

func respondEvent(c *gin.Context, res *service.EventResult) {
	c.JSON(http.StatusOK, gin.H{
		"stats":    res.Stats,
		"unlocked": res.Unlocked,
	})
}
