package domain

import "testing"

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp   int64
		want int
	}{
		{0, 1},
		{50, 1},
		{99, 1},
		{100, 2},
		{299, 2},
		{300, 3},
		{699, 3},
		{700, 4},
		{1500, 5},
		{3000, 6},
		{6000, 7},
		{12000, 8},
		{25000, 9},
		{1000000, 9},
	}

	for _, tt := range tests {
		got := LevelForXP(tt.xp)
		if got.Level != tt.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", tt.xp, got.Level, tt.want)
		}
	}
}

func TestLadderIsStrictlyIncreasing(t *testing.T) {
	if Levels[0].MinXP != 0 {
		t.Fatalf("first level must start at 0 xp, got %d", Levels[0].MinXP)
	}
	for i := 1; i < len(Levels); i++ {
		if Levels[i].MinXP <= Levels[i-1].MinXP {
			t.Errorf("level %d threshold %d is not above level %d threshold %d",
				Levels[i].Level, Levels[i].MinXP, Levels[i-1].Level, Levels[i-1].MinXP)
		}
		if Levels[i].Level != Levels[i-1].Level+1 {
			t.Errorf("level numbers not contiguous at index %d", i)
		}
	}
}

func TestNextLevel(t *testing.T) {
	next := NextLevel(0)
	if next == nil || next.Level != 2 {
		t.Fatalf("NextLevel(0) = %+v, want level 2", next)
	}

	next = NextLevel(150)
	if next == nil || next.Level != 3 {
		t.Fatalf("NextLevel(150) = %+v, want level 3", next)
	}

	if next := NextLevel(25000); next != nil {
		t.Errorf("NextLevel at top of ladder = %+v, want nil", next)
	}
}

func TestLevelProgress(t *testing.T) {
	tests := []struct {
		xp   int64
		want int
	}{
		{0, 0},
		{50, 50},
		{100, 0},
		{200, 50},
		{25000, 100},
		{99999, 100},
	}

	for _, tt := range tests {
		if got := LevelProgress(tt.xp); got != tt.want {
			t.Errorf("LevelProgress(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}
