package domain

// Level is one entry of the static level ladder.
type Level struct {
	Level int    `json:"level"`
	Name  string `json:"name"`
	MinXP int64  `json:"min_xp"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// Levels is the static ladder. MinXP is strictly increasing; a user's level
// is the highest entry whose threshold is <= their xp.
var Levels = []Level{
	{Level: 1, Name: "Newbie", MinXP: 0, Color: "#9ca3af", Icon: "🌱"},
	{Level: 2, Name: "Viewer", MinXP: 100, Color: "#60a5fa", Icon: "📺"},
	{Level: 3, Name: "Fan", MinXP: 300, Color: "#34d399", Icon: "⭐"},
	{Level: 4, Name: "Enthusiast", MinXP: 700, Color: "#fbbf24", Icon: "🔥"},
	{Level: 5, Name: "Star", MinXP: 1500, Color: "#f472b6", Icon: "🌟"},
	{Level: 6, Name: "Superstar", MinXP: 3000, Color: "#a78bfa", Icon: "💫"},
	{Level: 7, Name: "Expert", MinXP: 6000, Color: "#f97316", Icon: "🏆"},
	{Level: 8, Name: "Master", MinXP: 12000, Color: "#ef4444", Icon: "👑"},
	{Level: 9, Name: "Kuz Legend", MinXP: 25000, Color: "#facc15", Icon: "💎"},
}

// LevelForXP returns the highest level whose threshold is <= xp.
func LevelForXP(xp int64) Level {
	current := Levels[0]
	for _, l := range Levels {
		if l.MinXP <= xp {
			current = l
		}
	}
	return current
}

// NextLevel returns the entry after the current one, or nil at the top.
func NextLevel(xp int64) *Level {
	current := LevelForXP(xp)
	for i, l := range Levels {
		if l.Level == current.Level && i+1 < len(Levels) {
			next := Levels[i+1]
			return &next
		}
	}
	return nil
}

// LevelProgress returns percent progress (0-100) from the current level
// threshold towards the next one. At the top level it is always 100.
func LevelProgress(xp int64) int {
	current := LevelForXP(xp)
	next := NextLevel(xp)
	if next == nil {
		return 100
	}
	span := next.MinXP - current.MinXP
	if span <= 0 {
		return 100
	}
	progress := int((xp - current.MinXP) * 100 / span)
	if progress > 100 {
		progress = 100
	}
	return progress
}
