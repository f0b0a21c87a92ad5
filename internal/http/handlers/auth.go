package handlers

import (
	"net/http"

	"kuztube_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthRequest carries the identity asserted by the platform's auth
// collaborator. This service does not own accounts; it trusts the id and
// only mints a token scoped to the gamification API.
type AuthRequest struct {
	UserID      int64  `json:"user_id" binding:"required"`
	DisplayName string `json:"display_name"`
}

func (h *Handler) Auth(c *gin.Context) {
	var req AuthRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if req.DisplayName != "" {
		if err := h.StatsRepo.SetDisplayName(c.Request.Context(), req.UserID, req.DisplayName); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store profile"})
			return
		}
	}

	token, err := service.GenerateJWT(req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user_id": req.UserID})
}
