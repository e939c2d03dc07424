// Package loyalty maps an essence points total onto the tier table and
// applies ledger deltas. Everything here is pure: callers own the state.
package loyalty

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNegativeTotal       = errors.New("points total must not be negative")
	ErrEmptyTierTable      = errors.New("tier table is empty")
	ErrInvalidTierTable    = errors.New("invalid tier table")
	ErrPointsOverflow      = errors.New("points total would overflow")
)

// InsufficientBalanceError reports a rejected delta. It matches ErrInsufficientBalance.
type InsufficientBalanceError struct {
	Balance   int
	Requested int // the negative delta that was rejected
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: have %d, need %d", e.Balance, -e.Requested)
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// Shortfall is how many more points the caller needed.
func (e *InsufficientBalanceError) Shortfall() int {
	return -(e.Balance + e.Requested)
}

// Progress is the derived position of a points total within the tier table.
type Progress struct {
	Total        int   `json:"total"`
	Tier         Tier  `json:"tier"`
	TierIndex    int   `json:"tier_index"`
	NextTier     *Tier `json:"next_tier"`
	ProgressPct  int   `json:"progress_pct"`
	PointsToNext int   `json:"points_to_next"`
}

// AtMaxTier reports whether there is no higher tier to reach.
func (p Progress) AtMaxTier() bool {
	return p.NextTier == nil
}

// ComputeTierProgress selects the highest tier whose threshold is <= total
// (lower bound inclusive) and derives the progress toward the next one.
// The table must be sorted ascending with a first threshold of 0.
func ComputeTierProgress(total int, tiers []Tier) (Progress, error) {
	if total < 0 {
		return Progress{}, fmt.Errorf("%w: got %d", ErrNegativeTotal, total)
	}
	if len(tiers) == 0 {
		return Progress{}, ErrEmptyTierTable
	}

	idx := 0
	for i, t := range tiers {
		if t.Threshold <= total {
			idx = i
		}
	}

	p := Progress{
		Total:     total,
		Tier:      tiers[idx],
		TierIndex: idx,
	}

	if idx == len(tiers)-1 {
		p.ProgressPct = 100
		return p, nil
	}

	next := tiers[idx+1]
	p.NextTier = &next
	p.ProgressPct = percentWithin(total, tiers[idx].Threshold, next.Threshold)
	p.PointsToNext = max(0, next.Threshold-total)

	return p, nil
}

// percentWithin returns round(100*(total-lo)/(hi-lo)) clamped to [0, 100],
// rounding half up in integer arithmetic.
func percentWithin(total, lo, hi int) int {
	if hi <= lo {
		return 100
	}
	if total >= hi {
		return 100
	}
	if total <= lo {
		return 0
	}
	// 128-bit intermediate: 200*(total-lo) overflows int for large thresholds.
	span := uint64(hi - lo)
	nHi, nLo := bits.Mul64(200, uint64(total-lo))
	nLo, carry := bits.Add64(nLo, span, 0)
	pct, _ := bits.Div64(nHi+carry, nLo, 2*span)
	return int(min(100, pct))
}

// ApplyDelta returns total+delta, or an *InsufficientBalanceError when the
// result would be negative. Positive deltas earn, negative deltas redeem.
// A negative total fails with ErrNegativeTotal and a sum beyond math.MaxInt
// with ErrPointsOverflow.
func ApplyDelta(total, delta int) (int, error) {
	if total < 0 {
		return total, fmt.Errorf("%w: got %d", ErrNegativeTotal, total)
	}
	if delta > 0 && total > math.MaxInt-delta {
		return total, fmt.Errorf("%w: %d + %d", ErrPointsOverflow, total, delta)
	}
	next := total + delta
	if next < 0 {
		return total, &InsufficientBalanceError{Balance: total, Requested: delta}
	}
	return next, nil
}

// TierChanged reports whether two progress snapshots sit in different tiers.
func TierChanged(before, after Progress) bool {
	return before.Tier.ID != after.Tier.ID
}
