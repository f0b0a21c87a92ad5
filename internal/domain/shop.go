package domain

// ItemCategory is the closed set of shop categories.
type ItemCategory string

const (
	CategoryFrames   ItemCategory = "frames"
	CategoryBadges   ItemCategory = "badges"
	CategoryEffects  ItemCategory = "effects"
	CategoryBoosters ItemCategory = "boosters"
	CategoryThemes   ItemCategory = "themes"
)

// Slot is a cosmetic equip slot. Each slot holds at most one item.
type Slot string

const (
	SlotFrame  Slot = "frame"
	SlotBadge  Slot = "badge"
	SlotEffect Slot = "effect"
	SlotTheme  Slot = "theme"
)

// Rarity of a shop item.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// ShopItem is one entry of the static shop catalog.
type ShopItem struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       int64        `json:"price"`
	Icon        string       `json:"icon"`
	Category    ItemCategory `json:"category"`
	Rarity      Rarity       `json:"rarity"`
}

// ShopItems is the static catalog.
var ShopItems = []ShopItem{
	{ID: "frame_gold", Name: "Golden Frame", Description: "A shiny golden avatar frame", Price: 500, Icon: "🖼️", Category: CategoryFrames, Rarity: RarityRare},
	{ID: "frame_neon", Name: "Neon Frame", Description: "Glowing neon avatar frame", Price: 750, Icon: "💡", Category: CategoryFrames, Rarity: RarityEpic},
	{ID: "frame_rainbow", Name: "Rainbow Frame", Description: "Animated rainbow avatar frame", Price: 1500, Icon: "🌈", Category: CategoryFrames, Rarity: RarityLegendary},
	{ID: "badge_star", Name: "Star Badge", Description: "A star next to your name", Price: 200, Icon: "⭐", Category: CategoryBadges, Rarity: RarityCommon},
	{ID: "badge_crown", Name: "Crown Badge", Description: "A crown next to your name", Price: 600, Icon: "👑", Category: CategoryBadges, Rarity: RarityRare},
	{ID: "badge_diamond", Name: "Diamond Badge", Description: "A diamond next to your name", Price: 1200, Icon: "💎", Category: CategoryBadges, Rarity: RarityEpic},
	{ID: "effect_sparkle", Name: "Sparkle Effect", Description: "Sparkles on your channel page", Price: 400, Icon: "✨", Category: CategoryEffects, Rarity: RarityRare},
	{ID: "effect_fire", Name: "Fire Effect", Description: "Flames on your channel page", Price: 800, Icon: "🔥", Category: CategoryEffects, Rarity: RarityEpic},
	{ID: "theme_dark_pro", Name: "Dark Pro Theme", Description: "Deep dark profile theme", Price: 300, Icon: "🌑", Category: CategoryThemes, Rarity: RarityCommon},
	{ID: "theme_retro", Name: "Retro Theme", Description: "VHS-era profile theme", Price: 450, Icon: "📼", Category: CategoryThemes, Rarity: RarityRare},
	{ID: "theme_synthwave", Name: "Synthwave Theme", Description: "Purple sunset profile theme", Price: 900, Icon: "🌆", Category: CategoryThemes, Rarity: RarityEpic},
	{ID: "booster_xp", Name: "XP Booster", Description: "Double XP for 24 hours", Price: 250, Icon: "🚀", Category: CategoryBoosters, Rarity: RarityRare},
	{ID: "booster_coin", Name: "Coin Booster", Description: "Double KuzCoins for 24 hours", Price: 250, Icon: "💰", Category: CategoryBoosters, Rarity: RarityRare},
}

// ItemByID looks up a catalog entry.
func ItemByID(id string) (ShopItem, bool) {
	for _, it := range ShopItems {
		if it.ID == id {
			return it, true
		}
	}
	return ShopItem{}, false
}

// SlotForCategory maps a category to its equip slot. The mapping is total
// over the category enum; boosters have no slot and return false.
func SlotForCategory(cat ItemCategory) (Slot, bool) {
	switch cat {
	case CategoryFrames:
		return SlotFrame, true
	case CategoryBadges:
		return SlotBadge, true
	case CategoryEffects:
		return SlotEffect, true
	case CategoryThemes:
		return SlotTheme, true
	default:
		return "", false
	}
}

// BoostKindForItem maps a booster item id to the boost kind it grants.
func BoostKindForItem(id string) (BoostKind, bool) {
	switch id {
	case "booster_xp":
		return BoostXP, true
	case "booster_coin":
		return BoostCoin, true
	default:
		return "", false
	}
}
