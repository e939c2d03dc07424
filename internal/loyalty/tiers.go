package loyalty

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/kuriftu/essence/internal/config"
)

// Tier is one named loyalty level unlocked at Threshold essence points.
type Tier struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	LocalName string   `json:"local_name,omitempty"`
	Threshold int      `json:"threshold"`
	Benefits  []string `json:"benefits"`
	Color     string   `json:"color,omitempty"`
}

// DefaultTiers is the five-tier table written when the tiers file is missing.
var DefaultTiers = []Tier{
	{
		ID:        "explorer",
		Name:      "Explorer",
		LocalName: "አስሳሽ",
		Threshold: 0,
		Benefits:  []string{"Basic booking access", "Essence Points on stays", "Digital passport"},
		Color:     "#6B7280",
	},
	{
		ID:        "pathfinder",
		Name:      "Pathfinder",
		LocalName: "መንገድ ፈላጊ",
		Threshold: 100,
		Benefits:  []string{"10% discount on dining", "Welcome drink", "Late checkout when available"},
		Color:     "#2D6A4F",
	},
	{
		ID:        "heritage",
		Name:      "Heritage Seeker",
		LocalName: "የቅርስ ፈላጊ",
		Threshold: 250,
		Benefits:  []string{"15% spa discount", "Room upgrade when available", "Cultural experience discount"},
		Color:     "#B76E48",
	},
	{
		ID:        "nomad",
		Name:      "Cultural Nomad",
		LocalName: "የባህል ተዘዋዋሪ",
		Threshold: 500,
		Benefits:  []string{"20% off all services", "Priority booking", "Exclusive cultural events"},
		Color:     "#D4AF37",
	},
	{
		ID:        "ambassador",
		Name:      "Kuriftu Ambassador",
		LocalName: "የኩሪፍቱ አምባሳደር",
		Threshold: 900,
		Benefits:  []string{"25% off all services", "Dedicated concierge", "Free airport transfers", "Annual free night"},
		Color:     "#9C27B0",
	},
}

// LoadTiers reads tiers from a JSON file, validates them, and returns the slice.
func LoadTiers(path string) ([]Tier, error) {
	slog.Debug("loading tiers configuration", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tiers file %q: %w", path, err)
	}

	var tiers []Tier
	if err := json.Unmarshal(data, &tiers); err != nil {
		return nil, fmt.Errorf("parse tiers JSON: %w", err)
	}

	if err := ValidateTiers(tiers); err != nil {
		return nil, err
	}

	slog.Info("tiers configuration loaded",
		"path", path,
		"tierCount", len(tiers),
	)

	return tiers, nil
}

// ValidateTiers checks that a tier table satisfies all invariants:
//   - at least MinTierCount tiers
//   - the first threshold is 0
//   - thresholds strictly ascending (contiguous, non-overlapping ranges)
//   - non-empty, unique IDs and non-empty names
func ValidateTiers(tiers []Tier) error {
	if len(tiers) < config.MinTierCount {
		return fmt.Errorf("%w: need at least %d tiers, got %d", ErrInvalidTierTable, config.MinTierCount, len(tiers))
	}

	if tiers[0].Threshold != 0 {
		return fmt.Errorf("%w: first tier must start at 0, got %d", ErrInvalidTierTable, tiers[0].Threshold)
	}

	seen := make(map[string]bool, len(tiers))
	for i, t := range tiers {
		id := strings.TrimSpace(t.ID)
		if id == "" {
			return fmt.Errorf("%w: tier %d has an empty id", ErrInvalidTierTable, i)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate tier id %q", ErrInvalidTierTable, id)
		}
		seen[id] = true

		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("%w: tier %q has an empty name", ErrInvalidTierTable, id)
		}

		if i > 0 && t.Threshold <= tiers[i-1].Threshold {
			return fmt.Errorf("%w: tier %d threshold %d must be greater than tier %d threshold %d",
				ErrInvalidTierTable, i, t.Threshold, i-1, tiers[i-1].Threshold)
		}
	}

	return nil
}

// CreateDefaultTiers writes the default tier table to the given path.
func CreateDefaultTiers(path string) error {
	slog.Info("creating default tiers configuration", "path", path)

	data, err := json.MarshalIndent(DefaultTiers, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal default tiers: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write default tiers to %q: %w", path, err)
	}

	slog.Info("default tiers configuration created",
		"path", path,
		"tierCount", len(DefaultTiers),
	)

	return nil
}

// SaveTiers validates and writes a tier table to path.
func SaveTiers(path string, tiers []Tier) error {
	if err := ValidateTiers(tiers); err != nil {
		return err
	}

	data, err := json.MarshalIndent(tiers, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tiers: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write tiers to %q: %w", path, err)
	}

	slog.Info("tiers configuration saved", "path", path, "tierCount", len(tiers))
	return nil
}

// LoadOrCreateTiers tries to load tiers from path. If the file does not exist,
// it creates the default configuration first, then loads it.
func LoadOrCreateTiers(path string) ([]Tier, error) {
	tiers, err := LoadTiers(path)
	if err == nil {
		return tiers, nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		// File exists but is invalid.
		return nil, err
	}

	if err := CreateDefaultTiers(path); err != nil {
		return nil, err
	}

	return LoadTiers(path)
}
