// Package catalog holds the static resort data the loyalty program runs on:
// resorts, earning actions, rewards, events and the demo visit history.
package catalog

import (
	"fmt"

	"github.com/kuriftu/essence/internal/config"
)

// Resort is a property where guests check in and collect stamps.
type Resort struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	Description   string   `json:"description"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	Rating        float64  `json:"rating"`
	EssencePoints int      `json:"essence_points"`
	Amenities     []string `json:"amenities"`
}

// ActionCategory groups earning actions.
type ActionCategory string

const (
	ActionBooking    ActionCategory = "booking"
	ActionEngagement ActionCategory = "engagement"
	ActionReferral   ActionCategory = "referral"
	ActionPremium    ActionCategory = "premium"
)

// Action is something a member does to earn points.
type Action struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Points      int            `json:"points"`
	Category    ActionCategory `json:"category"`
	Repeatable  bool           `json:"repeatable"`
}

// RewardCategory groups redeemable rewards.
type RewardCategory string

const (
	RewardExperience RewardCategory = "experience"
	RewardItem       RewardCategory = "item"
	RewardDiscount   RewardCategory = "discount"
	RewardExclusive  RewardCategory = "exclusive"
)

// Reward is something a member spends points on.
type Reward struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	PointsCost  int            `json:"points_cost"`
	Category    RewardCategory `json:"category"`
	Available   bool           `json:"available"`
}

// Event is an upcoming resort event that awards points to attendees.
type Event struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ResortID    string `json:"resort_id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Points      int    `json:"points"`
	Price       string `json:"price"`
}

// Itinerary is a recommended multi-resort journey.
type Itinerary struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Duration      string   `json:"duration"`
	ResortIDs     []string `json:"resort_ids"`
	Description   string   `json:"description"`
	Highlights    []string `json:"highlights"`
	EssencePoints int      `json:"essence_points"`
}

// Visit is a historical completed experience used to seed the demo passport.
type Visit struct {
	ID         string
	ResortID   string
	Experience ExperienceKind
	Date       string
	Points     int
}

// Catalog indexes the static data for lookups.
type Catalog struct {
	resorts     []Resort
	actions     []Action
	rewards     []Reward
	events      []Event
	itineraries []Itinerary
	visits      []Visit

	resortByID map[string]Resort
	actionByID map[string]Action
	rewardByID map[string]Reward
}

// New builds a catalog from the given slices.
func New(resorts []Resort, actions []Action, rewards []Reward, events []Event, itineraries []Itinerary, visits []Visit) *Catalog {
	c := &Catalog{
		resorts:     resorts,
		actions:     actions,
		rewards:     rewards,
		events:      events,
		itineraries: itineraries,
		visits:      visits,
		resortByID:  make(map[string]Resort, len(resorts)),
		actionByID:  make(map[string]Action, len(actions)),
		rewardByID:  make(map[string]Reward, len(rewards)),
	}
	for _, r := range resorts {
		c.resortByID[r.ID] = r
	}
	for _, a := range actions {
		c.actionByID[a.ID] = a
	}
	for _, r := range rewards {
		c.rewardByID[r.ID] = r
	}
	return c
}

// Default returns the built-in Kuriftu catalog.
func Default() *Catalog {
	return New(defaultResorts, defaultActions, defaultRewards, defaultEvents, defaultItineraries, defaultVisits)
}

func (c *Catalog) Resorts() []Resort { return c.resorts }
func (c *Catalog) Actions() []Action { return c.actions }
func (c *Catalog) Rewards() []Reward { return c.rewards }
func (c *Catalog) Events() []Event { return c.events }
func (c *Catalog) Itineraries() []Itinerary { return c.itineraries }
func (c *Catalog) SeedVisits() []Visit { return c.visits }

// Resort looks up a resort by ID.
func (c *Catalog) Resort(id string) (Resort, error) {
	r, ok := c.resortByID[id]
	if !ok {
		return Resort{}, fmt.Errorf("%w: %q", config.ErrUnknownResort, id)
	}
	return r, nil
}

// Action looks up an earning action by ID.
func (c *Catalog) Action(id string) (Action, error) {
	a, ok := c.actionByID[id]
	if !ok {
		return Action{}, fmt.Errorf("%w: %q", config.ErrUnknownAction, id)
	}
	return a, nil
}

// Reward looks up a reward by ID.
func (c *Catalog) Reward(id string) (Reward, error) {
	r, ok := c.rewardByID[id]
	if !ok {
		return Reward{}, fmt.Errorf("%w: %q", config.ErrUnknownReward, id)
	}
	return r, nil
}
