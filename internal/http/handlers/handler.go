package handlers

import (
	"errors"
	"net/http"

	"kuztube_backend/internal/logger"
	"kuztube_backend/internal/notify"
	"kuztube_backend/internal/repository"
	"kuztube_backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB           *pgxpool.Pool
	Gamification *service.GamificationService
	Promo        *service.PromoService
	StatsRepo    *repository.StatsRepository
	TxRepo       *repository.TransactionRepository

	// Notifications is nil when Redis is not configured; the poll endpoint
	// then always returns an empty list.
	Notifications *notify.RedisNotifier
}

// getUserID extracts the user id set by the JWT middleware.
func getUserID(c interface{ Get(string) (any, bool) }) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// respondServiceError maps engine errors onto HTTP responses. Business rule
// rejections become 4xx with the rule text; everything else is a 500.
func respondServiceError(c *gin.Context, err error) {
	if service.IsBusinessError(err) {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrItemNotFound) || errors.Is(err, service.ErrCodeNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	logger.Error("request failed", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
