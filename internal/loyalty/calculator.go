package loyalty

import (
	"fmt"
	"log/slog"
	"sync"
)

// Calculator holds the active tier table and evaluates progress against it.
// Thread-safe: the table is protected by a RWMutex for hot-reload from the admin API.
type Calculator struct {
	tiers []Tier
	mu    sync.RWMutex
}

// NewCalculator creates a calculator pre-loaded with the given tiers.
func NewCalculator(tiers []Tier) *Calculator {
	slog.Info("tier calculator initialized", "tierCount", len(tiers))
	return &Calculator{tiers: tiers}
}

// Progress evaluates total against the current table.
func (c *Calculator) Progress(total int) (Progress, error) {
	c.mu.RLock()
	tiers := c.tiers
	c.mu.RUnlock()

	p, err := ComputeTierProgress(total, tiers)
	if err != nil {
		return Progress{}, err
	}

	slog.Debug("tier progress computed",
		"total", total,
		"tier", p.Tier.ID,
		"progressPct", p.ProgressPct,
		"pointsToNext", p.PointsToNext,
	)
	return p, nil
}

// Reload replaces the current tier table. Returns error if the new tiers are invalid.
func (c *Calculator) Reload(tiers []Tier) error {
	if err := ValidateTiers(tiers); err != nil {
		return fmt.Errorf("reload tiers: %w", err)
	}

	c.mu.Lock()
	c.tiers = tiers
	c.mu.Unlock()

	slog.Info("tier calculator reloaded", "tierCount", len(tiers))
	return nil
}

// Tiers returns a copy of the current tier table.
func (c *Calculator) Tiers() []Tier {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Tier, len(c.tiers))
	copy(out, c.tiers)
	return out
}
