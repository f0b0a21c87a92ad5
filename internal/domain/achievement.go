package domain

import "time"

// AchievementCategory groups achievements for display.
type AchievementCategory string

const (
	AchWatching AchievementCategory = "watching"
	AchComments AchievementCategory = "comments"
	AchLikes    AchievementCategory = "likes"
	AchSocial   AchievementCategory = "social"
	AchLevels   AchievementCategory = "levels"
	AchWealth   AchievementCategory = "wealth"
	AchShop     AchievementCategory = "shop"
	AchTime     AchievementCategory = "time"
	AchSecret   AchievementCategory = "secret"
)

// Secret video ids that unlock hidden achievements when watched.
const (
	SecretVideoKuz      = "kuz-000-genesis"
	SecretVideoBackroom = "kuz-404-backrooms"
	SecretVideoGoldcat  = "kuz-777-goldcat"
)

// Achievement is one entry of the static catalog. Condition is a pure
// predicate over the stats record and wall-clock time; it must never depend
// on anything else so evaluation stays idempotent.
type Achievement struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Icon        string              `json:"icon"`
	XPReward    int64               `json:"xp_reward"`
	CoinReward  int64               `json:"coin_reward"`
	Category    AchievementCategory `json:"category"`
	Condition   func(s *UserStats, now time.Time) bool `json:"-"`
}

func watched(n int64) func(*UserStats, time.Time) bool {
	return func(s *UserStats, _ time.Time) bool { return s.VideosWatched >= n }
}

func commented(n int64) func(*UserStats, time.Time) bool {
	return func(s *UserStats, _ time.Time) bool { return s.CommentsPosted >= n }
}

func liked(n int64) func(*UserStats, time.Time) bool {
	return func(s *UserStats, _ time.Time) bool { return s.LikesGiven >= n }
}

func subscribed(n int64) func(*UserStats, time.Time) bool {
	return func(s *UserStats, _ time.Time) bool { return s.Subscriptions >= n }
}

func reachedLevel(n int) func(*UserStats, time.Time) bool {
	return func(s *UserStats, _ time.Time) bool { return s.Level >= n }
}

func holdsCoins(n int64) func(*UserStats, time.Time) bool {
	return func(s *UserStats, _ time.Time) bool { return s.Kuzcoins >= n }
}

func ownsItems(n int) func(*UserStats, time.Time) bool {
	return func(s *UserStats, _ time.Time) bool { return len(s.PurchasedItems) >= n }
}

func foundSecret(videoID string) func(*UserStats, time.Time) bool {
	return func(s *UserStats, _ time.Time) bool { return s.HasSecret(videoID) }
}

// Achievements is the static catalog.
var Achievements = []Achievement{
	// Watching
	{ID: "first_watch", Name: "First Steps", Description: "Watch your first video", Icon: "🎬", XPReward: 10, CoinReward: 10, Category: AchWatching, Condition: watched(1)},
	{ID: "watcher_10", Name: "Binge Watcher", Description: "Watch 10 videos", Icon: "📺", XPReward: 25, CoinReward: 15, Category: AchWatching, Condition: watched(10)},
	{ID: "watcher_50", Name: "Screen Time", Description: "Watch 50 videos", Icon: "🍿", XPReward: 50, CoinReward: 25, Category: AchWatching, Condition: watched(50)},
	{ID: "watcher_100", Name: "Century Club", Description: "Watch 100 videos", Icon: "💯", XPReward: 100, CoinReward: 50, Category: AchWatching, Condition: watched(100)},
	{ID: "watcher_500", Name: "Marathon Runner", Description: "Watch 500 videos", Icon: "🏃", XPReward: 250, CoinReward: 100, Category: AchWatching, Condition: watched(500)},
	{ID: "watcher_1000", Name: "Kuz Addict", Description: "Watch 1000 videos", Icon: "🤯", XPReward: 500, CoinReward: 250, Category: AchWatching, Condition: watched(1000)},

	// Comments
	{ID: "first_comment", Name: "Ice Breaker", Description: "Post your first comment", Icon: "💬", XPReward: 15, CoinReward: 10, Category: AchComments, Condition: commented(1)},
	{ID: "commenter_10", Name: "Chatterbox", Description: "Post 10 comments", Icon: "🗣️", XPReward: 30, CoinReward: 15, Category: AchComments, Condition: commented(10)},
	{ID: "commenter_50", Name: "Discussion Leader", Description: "Post 50 comments", Icon: "📢", XPReward: 75, CoinReward: 30, Category: AchComments, Condition: commented(50)},
	{ID: "commenter_100", Name: "Community Voice", Description: "Post 100 comments", Icon: "🎤", XPReward: 150, CoinReward: 60, Category: AchComments, Condition: commented(100)},
	{ID: "commenter_500", Name: "Keyboard Warrior", Description: "Post 500 comments", Icon: "⌨️", XPReward: 400, CoinReward: 150, Category: AchComments, Condition: commented(500)},

	// Likes
	{ID: "first_like", Name: "Show Some Love", Description: "Give your first like", Icon: "👍", XPReward: 5, CoinReward: 5, Category: AchLikes, Condition: liked(1)},
	{ID: "likes_50", Name: "Supportive", Description: "Give 50 likes", Icon: "❤️", XPReward: 40, CoinReward: 20, Category: AchLikes, Condition: liked(50)},
	{ID: "likes_100", Name: "Spreading Joy", Description: "Give 100 likes", Icon: "💖", XPReward: 80, CoinReward: 40, Category: AchLikes, Condition: liked(100)},
	{ID: "likes_500", Name: "Like Machine", Description: "Give 500 likes", Icon: "🤖", XPReward: 200, CoinReward: 80, Category: AchLikes, Condition: liked(500)},
	{ID: "likes_1000", Name: "Heart of Gold", Description: "Give 1000 likes", Icon: "💛", XPReward: 400, CoinReward: 160, Category: AchLikes, Condition: liked(1000)},

	// Subscriptions
	{ID: "first_sub", Name: "Follower", Description: "Subscribe to your first channel", Icon: "🔔", XPReward: 20, CoinReward: 10, Category: AchSocial, Condition: subscribed(1)},
	{ID: "subs_10", Name: "Loyal Fan", Description: "Subscribe to 10 channels", Icon: "📣", XPReward: 50, CoinReward: 25, Category: AchSocial, Condition: subscribed(10)},
	{ID: "subs_50", Name: "Super Fan", Description: "Subscribe to 50 channels", Icon: "🎺", XPReward: 150, CoinReward: 75, Category: AchSocial, Condition: subscribed(50)},
	{ID: "subs_100", Name: "Channel Collector", Description: "Subscribe to 100 channels", Icon: "📚", XPReward: 300, CoinReward: 150, Category: AchSocial, Condition: subscribed(100)},

	// Levels
	{ID: "level_3", Name: "Rising Star", Description: "Reach level 3", Icon: "⭐", XPReward: 30, CoinReward: 20, Category: AchLevels, Condition: reachedLevel(3)},
	{ID: "level_5", Name: "Halfway There", Description: "Reach level 5", Icon: "🌟", XPReward: 75, CoinReward: 50, Category: AchLevels, Condition: reachedLevel(5)},
	{ID: "level_7", Name: "Almost Famous", Description: "Reach level 7", Icon: "🏆", XPReward: 150, CoinReward: 100, Category: AchLevels, Condition: reachedLevel(7)},
	{ID: "level_9", Name: "Kuz Legend", Description: "Reach the highest level", Icon: "💎", XPReward: 500, CoinReward: 300, Category: AchLevels, Condition: reachedLevel(9)},

	// Wealth
	{ID: "coins_1000", Name: "Saver", Description: "Hold 1000 KuzCoins", Icon: "🪙", XPReward: 50, CoinReward: 0, Category: AchWealth, Condition: holdsCoins(1000)},
	{ID: "coins_5000", Name: "Piggy Bank", Description: "Hold 5000 KuzCoins", Icon: "🐷", XPReward: 100, CoinReward: 0, Category: AchWealth, Condition: holdsCoins(5000)},
	{ID: "coins_10000", Name: "KuzCoin Tycoon", Description: "Hold 10000 KuzCoins", Icon: "🏦", XPReward: 250, CoinReward: 0, Category: AchWealth, Condition: holdsCoins(10000)},

	// Shop
	{ID: "first_purchase", Name: "Shopper", Description: "Buy your first shop item", Icon: "🛒", XPReward: 50, CoinReward: 50, Category: AchShop, Condition: ownsItems(1)},
	{ID: "collector", Name: "Collector", Description: "Own 5 shop items", Icon: "🎒", XPReward: 100, CoinReward: 50, Category: AchShop, Condition: ownsItems(5)},
	{ID: "shopaholic", Name: "Shopaholic", Description: "Own 10 shop items", Icon: "🛍️", XPReward: 200, CoinReward: 100, Category: AchShop, Condition: ownsItems(10)},

	// Time windows
	{ID: "night_owl", Name: "Night Owl", Description: "Be active between midnight and 5 AM", Icon: "🦉", XPReward: 25, CoinReward: 10, Category: AchTime,
		Condition: func(_ *UserStats, now time.Time) bool { return now.Hour() < 5 }},
	{ID: "early_bird", Name: "Early Bird", Description: "Be active between 5 and 8 AM", Icon: "🐦", XPReward: 25, CoinReward: 10, Category: AchTime,
		Condition: func(_ *UserStats, now time.Time) bool { h := now.Hour(); return h >= 5 && h < 8 }},
	{ID: "weekend_warrior", Name: "Weekend Warrior", Description: "Be active on a weekend", Icon: "🎉", XPReward: 20, CoinReward: 10, Category: AchTime,
		Condition: func(_ *UserStats, now time.Time) bool { d := now.Weekday(); return d == time.Saturday || d == time.Sunday }},
	{ID: "new_year", Name: "Happy New Year", Description: "Be active on January 1st", Icon: "🎆", XPReward: 100, CoinReward: 100, Category: AchTime,
		Condition: func(_ *UserStats, now time.Time) bool { return now.Month() == time.January && now.Day() == 1 }},
	{ID: "halloween", Name: "Spooky Season", Description: "Be active on October 31st", Icon: "🎃", XPReward: 66, CoinReward: 66, Category: AchTime,
		Condition: func(_ *UserStats, now time.Time) bool { return now.Month() == time.October && now.Day() == 31 }},
	{ID: "valentine", Name: "Be Mine", Description: "Be active on February 14th", Icon: "💘", XPReward: 50, CoinReward: 50, Category: AchTime,
		Condition: func(_ *UserStats, now time.Time) bool { return now.Month() == time.February && now.Day() == 14 }},

	// Secrets and premium
	{ID: "secret_genesis", Name: "???", Description: "You found where it all began", Icon: "🗝️", XPReward: 100, CoinReward: 100, Category: AchSecret, Condition: foundSecret(SecretVideoKuz)},
	{ID: "secret_backrooms", Name: "???", Description: "You were not supposed to see that", Icon: "🚪", XPReward: 100, CoinReward: 100, Category: AchSecret, Condition: foundSecret(SecretVideoBackroom)},
	{ID: "secret_goldcat", Name: "???", Description: "The golden cat sees everything", Icon: "🐈", XPReward: 100, CoinReward: 100, Category: AchSecret, Condition: foundSecret(SecretVideoGoldcat)},
	{ID: "premium_member", Name: "VIP", Description: "Become a premium member", Icon: "🎖️", XPReward: 100, CoinReward: 100, Category: AchSecret,
		Condition: func(s *UserStats, _ time.Time) bool { return s.Premium }},
}

var achievementIndex = func() map[string]Achievement {
	m := make(map[string]Achievement, len(Achievements))
	for _, a := range Achievements {
		m[a.ID] = a
	}
	return m
}()

// AchievementByID looks up a catalog entry.
func AchievementByID(id string) (Achievement, bool) {
	a, ok := achievementIndex[id]
	return a, ok
}

// Evaluate returns achievements whose condition is newly satisfied: the
// predicate holds and the id is not yet in the record. It never returns an
// already-held achievement, so calling it after every mutation is safe.
func Evaluate(s *UserStats, now time.Time) []Achievement {
	var unlocked []Achievement
	for _, a := range Achievements {
		if s.HasAchievement(a.ID) {
			continue
		}
		if a.Condition(s, now) {
			unlocked = append(unlocked, a)
		}
	}
	return unlocked
}
