package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kuriftu/essence/internal/config"
)

// ExperienceKind tags what a guest did at a resort.
type ExperienceKind int

const (
	ExperienceStay ExperienceKind = iota + 1
	ExperienceSpa
	ExperienceDining
	ExperienceAdventure
	ExperienceCultural
)

// AllExperienceKinds lists every kind in display order.
var AllExperienceKinds = []ExperienceKind{
	ExperienceStay,
	ExperienceSpa,
	ExperienceDining,
	ExperienceAdventure,
	ExperienceCultural,
}

var experienceSlugs = map[ExperienceKind]string{
	ExperienceStay:      "stay",
	ExperienceSpa:       "spa",
	ExperienceDining:    "dining",
	ExperienceAdventure: "adventure",
	ExperienceCultural:  "cultural",
}

// String returns the wire slug ("stay", "spa", ...).
func (k ExperienceKind) String() string {
	if s, ok := experienceSlugs[k]; ok {
		return s
	}
	return fmt.Sprintf("experience(%d)", int(k))
}

// Valid reports whether k is one of the declared kinds.
func (k ExperienceKind) Valid() bool {
	_, ok := experienceSlugs[k]
	return ok
}

// ParseExperienceKind maps a slug back to its kind.
func ParseExperienceKind(s string) (ExperienceKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, slug := range experienceSlugs {
		if slug == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", config.ErrUnknownExperience, s)
}

func (k ExperienceKind) MarshalJSON() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", config.ErrUnknownExperience, int(k))
	}
	return json.Marshal(k.String())
}

func (k *ExperienceKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseExperienceKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
