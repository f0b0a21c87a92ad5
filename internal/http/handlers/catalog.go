package handlers

import (
	"net/http"

	"kuztube_backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// GetLevels returns the static level ladder.
func (h *Handler) GetLevels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"levels": domain.Levels})
}

// GetAchievements returns the static achievement catalog. Secret entries
// keep their masked names; the predicate itself never leaves the server.
func (h *Handler) GetAchievements(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"achievements": domain.Achievements})
}
