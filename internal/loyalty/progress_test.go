package loyalty

import (
	"errors"
	"math"
	"testing"
)

func TestComputeTierProgress_Scenarios(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		wantTier   string
		wantNext   string // "" = none
		wantPct    int
		wantToNext int
	}{
		{"mid pathfinder", 175, "pathfinder", "heritage", 50, 75},
		{"zero", 0, "explorer", "pathfinder", 0, 100},
		{"exact max", 900, "ambassador", "", 100, 0},
		{"above max", 1500, "ambassador", "", 100, 0},
		{"boundary pathfinder", 100, "pathfinder", "heritage", 0, 150},
		{"one below boundary", 99, "explorer", "pathfinder", 99, 1},
		{"boundary heritage", 250, "heritage", "nomad", 0, 250},
		{"after redemption seed", 425, "heritage", "nomad", 70, 75},
		{"just below max", 899, "nomad", "ambassador", 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ComputeTierProgress(tt.total, DefaultTiers)
			if err != nil {
				t.Fatalf("ComputeTierProgress(%d) error = %v", tt.total, err)
			}
			if p.Tier.ID != tt.wantTier {
				t.Errorf("tier = %q, want %q", p.Tier.ID, tt.wantTier)
			}
			if tt.wantNext == "" {
				if p.NextTier != nil {
					t.Errorf("next tier = %q, want none", p.NextTier.ID)
				}
				if !p.AtMaxTier() {
					t.Error("AtMaxTier() = false, want true")
				}
			} else if p.NextTier == nil || p.NextTier.ID != tt.wantNext {
				t.Errorf("next tier = %v, want %q", p.NextTier, tt.wantNext)
			}
			if p.ProgressPct != tt.wantPct {
				t.Errorf("progress = %d, want %d", p.ProgressPct, tt.wantPct)
			}
			if p.PointsToNext != tt.wantToNext {
				t.Errorf("points to next = %d, want %d", p.PointsToNext, tt.wantToNext)
			}
			if p.Total != tt.total {
				t.Errorf("total = %d, want %d", p.Total, tt.total)
			}
		})
	}
}

func TestComputeTierProgress_NegativeTotal(t *testing.T) {
	_, err := ComputeTierProgress(-1, DefaultTiers)
	if !errors.Is(err, ErrNegativeTotal) {
		t.Fatalf("error = %v, want ErrNegativeTotal", err)
	}
}

func TestComputeTierProgress_EmptyTable(t *testing.T) {
	_, err := ComputeTierProgress(10, nil)
	if !errors.Is(err, ErrEmptyTierTable) {
		t.Fatalf("error = %v, want ErrEmptyTierTable", err)
	}
}

func TestComputeTierProgress_SingleTier(t *testing.T) {
	tiers := []Tier{{ID: "only", Name: "Only", Threshold: 0}}
	p, err := ComputeTierProgress(42, tiers)
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if p.Tier.ID != "only" || p.NextTier != nil || p.ProgressPct != 100 || p.PointsToNext != 0 {
		t.Errorf("single tier progress = %+v", p)
	}
}

func TestComputeTierProgress_RoundsHalfUp(t *testing.T) {
	tiers := []Tier{
		{ID: "a", Name: "A", Threshold: 0},
		{ID: "b", Name: "B", Threshold: 200},
		{ID: "c", Name: "C", Threshold: 1000},
	}

	// 1/200 = 0.5% rounds to 1.
	p, _ := ComputeTierProgress(1, tiers)
	if p.ProgressPct != 1 {
		t.Errorf("progress at 1/200 = %d, want 1", p.ProgressPct)
	}

	// 3/800 = 0.375% rounds to 0.
	p, _ = ComputeTierProgress(203, tiers)
	if p.ProgressPct != 0 {
		t.Errorf("progress at 3/800 = %d, want 0", p.ProgressPct)
	}

	// 4/800 = 0.5% rounds to 1.
	p, _ = ComputeTierProgress(204, tiers)
	if p.ProgressPct != 1 {
		t.Errorf("progress at 4/800 = %d, want 1", p.ProgressPct)
	}
}

func TestComputeTierProgress_Properties(t *testing.T) {
	tables := map[string][]Tier{
		"default": DefaultTiers,
		"legacy": {
			{ID: "bronze", Name: "Bronze", Threshold: 0},
			{ID: "silver", Name: "Silver", Threshold: 1000},
			{ID: "gold", Name: "Gold", Threshold: 5000},
			{ID: "platinum", Name: "Platinum", Threshold: 15000},
		},
		"tight": {
			{ID: "a", Name: "A", Threshold: 0},
			{ID: "b", Name: "B", Threshold: 1},
			{ID: "c", Name: "C", Threshold: 3},
		},
	}

	for name, tiers := range tables {
		t.Run(name, func(t *testing.T) {
			maxThreshold := tiers[len(tiers)-1].Threshold
			prev, err := ComputeTierProgress(0, tiers)
			if err != nil {
				t.Fatalf("ComputeTierProgress(0) error = %v", err)
			}

			for total := 0; total <= maxThreshold+50; total++ {
				p, err := ComputeTierProgress(total, tiers)
				if err != nil {
					t.Fatalf("ComputeTierProgress(%d) error = %v", total, err)
				}

				// Exactly one current tier: the highest threshold <= total.
				want := 0
				for i, tier := range tiers {
					if tier.Threshold <= total {
						want = i
					}
				}
				if p.TierIndex != want {
					t.Fatalf("total %d: tier index = %d, want %d", total, p.TierIndex, want)
				}

				if p.ProgressPct < 0 || p.ProgressPct > 100 {
					t.Fatalf("total %d: progress %d out of range", total, p.ProgressPct)
				}

				if total >= maxThreshold {
					if p.NextTier != nil || p.ProgressPct != 100 || p.PointsToNext != 0 {
						t.Fatalf("total %d: expected max tier result, got %+v", total, p)
					}
				}

				if p.TierIndex < prev.TierIndex {
					t.Fatalf("total %d: tier index decreased from %d to %d", total, prev.TierIndex, p.TierIndex)
				}
				if p.TierIndex == prev.TierIndex && p.ProgressPct < prev.ProgressPct {
					t.Fatalf("total %d: progress decreased within tier from %d to %d", total, prev.ProgressPct, p.ProgressPct)
				}

				again, _ := ComputeTierProgress(total, tiers)
				if again.TierIndex != p.TierIndex || again.ProgressPct != p.ProgressPct || again.PointsToNext != p.PointsToNext {
					t.Fatalf("total %d: repeated call differs: %+v vs %+v", total, p, again)
				}

				prev = p
			}
		})
	}
}

func TestApplyDelta(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		delta   int
		want    int
		wantErr error
	}{
		{"earn", 175, 250, 425, nil},
		{"redeem exact", 100, -100, 0, nil},
		{"redeem partial", 300, -50, 250, nil},
		{"zero delta", 0, 0, 0, nil},
		{"earn to max", 0, math.MaxInt, math.MaxInt, nil},
		{"overdraw", 100, -250, 100, ErrInsufficientBalance},
		{"overdraw from zero", 0, -1, 0, ErrInsufficientBalance},
		{"overflow huge delta", 375, math.MaxInt, 375, ErrPointsOverflow},
		{"overflow huge total", math.MaxInt, 100, math.MaxInt, ErrPointsOverflow},
		{"negative total", -5, 3, -5, ErrNegativeTotal},
		{"negative total zero delta", -1, 0, -1, ErrNegativeTotal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyDelta(tt.total, tt.delta)
			if (err != nil) != (tt.wantErr != nil) {
				t.Fatalf("ApplyDelta(%d, %d) error = %v, want %v", tt.total, tt.delta, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ApplyDelta(%d, %d) = %d, want %d", tt.total, tt.delta, got, tt.want)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyDelta_RejectsIffNegative(t *testing.T) {
	for total := 0; total <= 20; total++ {
		for delta := -30; delta <= 30; delta++ {
			_, err := ApplyDelta(total, delta)
			if rejected := err != nil; rejected != (total+delta < 0) {
				t.Fatalf("ApplyDelta(%d, %d) rejected=%v", total, delta, rejected)
			}
		}
	}

	// Sums past math.MaxInt are overflow, never a balance shortfall.
	for _, c := range [][2]int{{375, math.MaxInt}, {math.MaxInt, 100}, {math.MaxInt, 1}, {1, math.MaxInt}} {
		_, err := ApplyDelta(c[0], c[1])
		if !errors.Is(err, ErrPointsOverflow) {
			t.Errorf("ApplyDelta(%d, %d) error = %v, want ErrPointsOverflow", c[0], c[1], err)
		}
		if errors.Is(err, ErrInsufficientBalance) {
			t.Errorf("ApplyDelta(%d, %d) reported insufficient balance", c[0], c[1])
		}
	}
}

func TestPercentWithin_LargeThresholds(t *testing.T) {
	tests := []struct {
		name  string
		total int
		lo    int
		hi    int
		want  int
	}{
		{"two thirds of MaxInt/100", math.MaxInt / 150, 0, math.MaxInt / 100, 67},
		{"half of MaxInt", math.MaxInt / 2, 0, math.MaxInt, 50},
		{"just below MaxInt", math.MaxInt - 1, 0, math.MaxInt, 100},
		{"high lower bound", math.MaxInt - 100, math.MaxInt - 200, math.MaxInt, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := percentWithin(tt.total, tt.lo, tt.hi); got != tt.want {
				t.Errorf("percentWithin(%d, %d, %d) = %d, want %d", tt.total, tt.lo, tt.hi, got, tt.want)
			}
		})
	}

	tiers := []Tier{
		{ID: "low", Name: "Low", Threshold: 0},
		{ID: "high", Name: "High", Threshold: math.MaxInt / 100},
	}
	p, err := ComputeTierProgress(math.MaxInt/150, tiers)
	if err != nil {
		t.Fatalf("ComputeTierProgress: %v", err)
	}
	if p.ProgressPct != 67 {
		t.Errorf("progress = %d, want 67", p.ProgressPct)
	}
}

func TestInsufficientBalanceError(t *testing.T) {
	_, err := ApplyDelta(100, -250)

	var ibe *InsufficientBalanceError
	if !errors.As(err, &ibe) {
		t.Fatalf("error %v is not *InsufficientBalanceError", err)
	}
	if ibe.Balance != 100 || ibe.Requested != -250 {
		t.Errorf("got balance=%d requested=%d", ibe.Balance, ibe.Requested)
	}
	if ibe.Shortfall() != 150 {
		t.Errorf("Shortfall() = %d, want 150", ibe.Shortfall())
	}
	if ibe.Error() != "insufficient balance: have 100, need 250" {
		t.Errorf("Error() = %q", ibe.Error())
	}
}

func TestTierChanged(t *testing.T) {
	before, _ := ComputeTierProgress(175, DefaultTiers)
	after, _ := ComputeTierProgress(425, DefaultTiers)
	same, _ := ComputeTierProgress(200, DefaultTiers)

	if !TierChanged(before, after) {
		t.Error("175 -> 425 should change tier")
	}
	if TierChanged(before, same) {
		t.Error("175 -> 200 should stay in Pathfinder")
	}
}
