package handlers

import "github.com/kuriftu/essence/internal/catalog"

// ExperienceDisplay is how the front end renders an experience kind.
type ExperienceDisplay struct {
	Kind      catalog.ExperienceKind `json:"kind"`
	Label     string                 `json:"label"`
	LocalName string                 `json:"local_name"`
	Icon      string                 `json:"icon"`
	Color     string                 `json:"color"`
	Hero      string                 `json:"hero"`
}

// experienceDisplays must cover every catalog.ExperienceKind.
var experienceDisplays = map[catalog.ExperienceKind]ExperienceDisplay{
	catalog.ExperienceStay: {
		Label:     "Resort Stay",
		LocalName: "መኖሪያ",
		Icon:      "Coffee",
		Color:     "#1B4332",
		Hero:      "Inspired by Emperor Menelik II's royal quarters",
	},
	catalog.ExperienceSpa: {
		Label:     "Spa Treatment",
		LocalName: "ስፓ",
		Icon:      "Spa",
		Color:     "#D4AF37",
		Hero:      "Techniques from Queen Taytu's royal treatments",
	},
	catalog.ExperienceDining: {
		Label:     "Dining Experience",
		LocalName: "ምግብ",
		Icon:      "Utensils",
		Color:     "#B76E48",
		Hero:      "Recipes from Chef Yohanis Gebreyesus",
	},
	catalog.ExperienceAdventure: {
		Label:     "Adventure Activity",
		LocalName: "ጀብዱ",
		Icon:      "Mountain",
		Color:     "#2D6A4F",
		Hero:      "Trails discovered by explorer Ewunetu Bilata",
	},
	catalog.ExperienceCultural: {
		Label:     "Cultural Experience",
		LocalName: "ባህላዊ",
		Icon:      "Landmark",
		Color:     "#9C27B0",
		Hero:      "Cultural wisdom from Laureate Tsegaye Gebre-Medhin",
	},
}

// DisplayFor returns the display metadata for kind.
func DisplayFor(kind catalog.ExperienceKind) (ExperienceDisplay, bool) {
	d, ok := experienceDisplays[kind]
	d.Kind = kind
	return d, ok
}

func allExperienceDisplays() []ExperienceDisplay {
	out := make([]ExperienceDisplay, 0, len(catalog.AllExperienceKinds))
	for _, k := range catalog.AllExperienceKinds {
		if d, ok := DisplayFor(k); ok {
			out = append(out, d)
		}
	}
	return out
}
