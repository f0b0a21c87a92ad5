package service

import "github.com/prometheus/client_golang/prometheus"

var (
	eventsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamification_events_total",
			Help: "Total reward events recorded, by event type",
		},
		[]string{"type"},
	)
	achievementsUnlocked = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gamification_achievements_unlocked_total",
			Help: "Total achievements unlocked",
		},
	)
	purchasesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gamification_purchases_total",
			Help: "Total successful shop purchases",
		},
	)
	boostersActivated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gamification_boosters_activated_total",
			Help: "Total boosters consumed",
		},
	)
	promoRedemptions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gamification_promo_redemptions_total",
			Help: "Total successful promo code redemptions",
		},
	)
	saveConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gamification_save_conflicts_total",
			Help: "Total optimistic-concurrency conflicts on stats save",
		},
	)
)

func init() {
	prometheus.MustRegister(eventsRecorded)
	prometheus.MustRegister(achievementsUnlocked)
	prometheus.MustRegister(purchasesTotal)
	prometheus.MustRegister(boostersActivated)
	prometheus.MustRegister(promoRedemptions)
	prometheus.MustRegister(saveConflicts)
}
