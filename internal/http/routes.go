package http

import (
	"time"

	"kuztube_backend/internal/config"
	"kuztube_backend/internal/http/handlers"
	"kuztube_backend/internal/http/middleware"
	"kuztube_backend/internal/notify"
	"kuztube_backend/internal/repository"
	"kuztube_backend/internal/service"
	"kuztube_backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	redis "github.com/redis/go-redis/v9"
)

// RegisterRoutes wires repositories, services and handlers onto the router.
// rdb may be nil; websocket delivery still works for sessions on this
// instance, only cross-instance fanout and stored notifications need Redis.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, rdb *redis.Client, cfg *config.Config, version string) *ws.Hub {
	statsRepo := repository.NewStatsRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	promoRepo := repository.NewPromoRepository(db)

	hub := ws.NewHub()

	var redisNotifier *notify.RedisNotifier
	notifiers := notify.Multi{hub}
	if rdb != nil {
		redisNotifier = notify.NewRedisNotifier(rdb, "")
		notifiers = append(notifiers, redisNotifier)
	}

	engine := service.NewGamificationService(statsRepo, txRepo, notifiers, cfg.AllowBoosterRepurchase)
	promo := service.NewPromoService(promoRepo, engine)

	h := &handlers.Handler{
		DB:            db,
		Gamification:  engine,
		Promo:         promo,
		StatsRepo:     statsRepo,
		TxRepo:        txRepo,
		Notifications: redisNotifier,
	}
	healthHandler := handlers.NewHealthHandler(db, rdb, version)

	apiRateWindow := time.Duration(cfg.APIRateWindowSec) * time.Second
	eventRateWindow := time.Duration(cfg.EventRateWindowSec) * time.Second

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, apiRateWindow))

	// Auth gets an extra in-memory limiter that holds even without Redis
	v1.POST("/auth", middleware.SimpleRateLimit(10, time.Minute), h.Auth)

	// Static catalogs
	v1.GET("/levels", h.GetLevels)
	v1.GET("/achievements", h.GetAchievements)
	v1.GET("/shop", h.GetShop)

	// Current user
	v1.GET("/me/stats", middleware.JWT(), h.MyStats)
	v1.GET("/me/level", middleware.JWT(), h.MyLevel)
	v1.GET("/me/notifications", middleware.JWT(), h.MyNotifications)
	v1.GET("/me/transactions", middleware.JWT(), h.MyTransactions)
	v1.POST("/me/premium", middleware.JWT(), h.SetPremium)

	// Reward events get a per-user limit on top of the per-IP one
	eventRL := middleware.EventRateLimit(cfg.EventRateLimit, eventRateWindow)
	v1.POST("/events/watch", middleware.JWT(), eventRL, h.RecordWatch)
	v1.POST("/events/comment", middleware.JWT(), eventRL, h.RecordComment)
	v1.POST("/events/like", middleware.JWT(), eventRL, h.RecordLike)
	v1.POST("/events/subscribe", middleware.JWT(), eventRL, h.RecordSubscription)

	// Shop
	v1.POST("/shop/purchase", middleware.JWT(), h.Purchase)
	v1.POST("/shop/equip", middleware.JWT(), h.Equip)
	v1.POST("/shop/activate", middleware.JWT(), h.Activate)

	// Promo codes
	v1.POST("/promo", middleware.JWT(), h.CreatePromo)
	v1.POST("/promo/redeem", middleware.JWT(), h.RedeemPromo)
	v1.GET("/promo/mine", middleware.JWT(), h.MyPromoCodes)

	// Leaderboard
	v1.GET("/leaderboard", h.GetLeaderboard)

	// Live event stream
	r.GET("/ws", h.WS(hub))

	return hub
}
