// Package ledger applies earn, redeem and visit events to member accounts
// and reports how each one moved the member through the tier table.
package ledger

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sync"

	"github.com/kuriftu/essence/internal/catalog"
	"github.com/kuriftu/essence/internal/config"
	"github.com/kuriftu/essence/internal/events"
	"github.com/kuriftu/essence/internal/loyalty"
	"github.com/kuriftu/essence/internal/metrics"
	"github.com/kuriftu/essence/internal/models"
	"github.com/kuriftu/essence/internal/store"
)

var memberIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._@-]*$`)

// ValidateMemberID checks that id is usable as an account key.
func ValidateMemberID(id string) error {
	if id == "" || len(id) > config.MaxMemberIDLength || !memberIDPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", config.ErrInvalidMemberID, id)
	}
	return nil
}

// Summary is a member's account together with its tier position.
type Summary struct {
	Account    models.Account   `json:"account"`
	Progress   loyalty.Progress `json:"progress"`
	StampCount int              `json:"stamp_count"`
}

// Outcome describes one applied ledger event.
type Outcome struct {
	MemberID    string             `json:"member_id"`
	Delta       int                `json:"delta"`
	Before      loyalty.Progress   `json:"before"`
	After       loyalty.Progress   `json:"after"`
	TierChanged bool               `json:"tier_changed"`
	Entry       models.LedgerEntry `json:"entry"`
}

// Service owns member balances. Tier progress is always derived from the
// balance through the calculator, never stored.
type Service struct {
	db         *store.DB
	calc       *loyalty.Calculator
	catalog    *catalog.Catalog
	seedPoints int
	events     *events.Hub

	// Serializes the completed-action check with its ledger write.
	earnMu sync.Mutex
}

// NewService creates a ledger service. New accounts open with seedPoints.
func NewService(db *store.DB, calc *loyalty.Calculator, cat *catalog.Catalog, seedPoints int) *Service {
	return &Service{
		db:         db,
		calc:       calc,
		catalog:    cat,
		seedPoints: seedPoints,
	}
}

// SetEvents attaches the hub that receives points and tier events.
// Call before the service is shared.
func (s *Service) SetEvents(hub *events.Hub) {
	s.events = hub
}

// Account returns the member's account, opening it on first access.
func (s *Service) Account(memberID string) (*Summary, error) {
	if err := ValidateMemberID(memberID); err != nil {
		return nil, err
	}

	a, _, err := s.db.GetOrCreateAccount(memberID, s.seedPoints)
	if err != nil {
		return nil, err
	}

	p, err := s.calc.Progress(a.Balance)
	if err != nil {
		return nil, fmt.Errorf("progress for %s: %w", memberID, err)
	}

	stamps, err := s.db.CountStamps(memberID)
	if err != nil {
		return nil, err
	}

	return &Summary{Account: *a, Progress: p, StampCount: stamps}, nil
}

// Ledger returns a page of the member's ledger entries, newest first.
func (s *Service) Ledger(memberID string, page models.Pagination) ([]models.LedgerEntry, int, error) {
	if err := ValidateMemberID(memberID); err != nil {
		return nil, 0, err
	}
	return s.db.ListLedger(memberID, page)
}

// Passport returns the member's stamps, oldest first.
func (s *Service) Passport(memberID string) ([]models.Stamp, error) {
	if err := ValidateMemberID(memberID); err != nil {
		return nil, err
	}
	return s.db.ListStamps(memberID)
}

// Earn credits the points for an earning action. One-shot actions can
// only be earned once per member.
func (s *Service) Earn(memberID, actionID string) (*Outcome, error) {
	action, err := s.catalog.Action(actionID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureAccount(memberID); err != nil {
		return nil, err
	}

	s.earnMu.Lock()
	defer s.earnMu.Unlock()

	if !action.Repeatable {
		done, err := s.db.HasCompletedAction(memberID, action.ID)
		if err != nil {
			return nil, err
		}
		if done {
			return nil, fmt.Errorf("%w: %s", config.ErrActionAlreadyComplete, action.ID)
		}
	}

	change, err := s.db.ApplyDelta(memberID, action.Points, models.EntryEarn, action.ID, action.Title)
	if err != nil {
		return nil, err
	}
	return s.outcome(change)
}

// Redeem spends points on a reward. The balance is left untouched when it
// cannot cover the cost.
func (s *Service) Redeem(memberID, rewardID string) (*Outcome, error) {
	reward, err := s.catalog.Reward(rewardID)
	if err != nil {
		return nil, err
	}
	if !reward.Available {
		return nil, fmt.Errorf("%w: %s", config.ErrRewardUnavailable, reward.ID)
	}
	if err := s.ensureAccount(memberID); err != nil {
		return nil, err
	}

	change, err := s.db.ApplyDelta(memberID, -reward.PointsCost, models.EntryRedeem, reward.ID, reward.Title)
	if err != nil {
		if errors.Is(err, loyalty.ErrInsufficientBalance) {
			metrics.RedemptionsRejected.Inc()
			slog.Info("redemption rejected",
				"memberID", memberID,
				"rewardID", reward.ID,
				"cost", reward.PointsCost,
				"error", err,
			)
		}
		return nil, err
	}
	return s.outcome(change)
}

// Adjust applies a manual correction of delta points.
func (s *Service) Adjust(memberID string, delta int, note string) (*Outcome, error) {
	if delta == 0 {
		return nil, fmt.Errorf("adjustment must be non-zero")
	}
	if err := s.ensureAccount(memberID); err != nil {
		return nil, err
	}

	change, err := s.db.ApplyDelta(memberID, delta, models.EntryAdjust, "", note)
	if err != nil {
		return nil, err
	}
	return s.outcome(change)
}

// Visit stamps the member's passport and credits the visit's points.
func (s *Service) Visit(stamp models.Stamp) (*Outcome, error) {
	if err := s.ensureAccount(stamp.MemberID); err != nil {
		return nil, err
	}

	change, err := s.db.AddStamp(stamp, models.EntryCheckIn)
	if err != nil {
		return nil, err
	}
	return s.outcome(change)
}

// SeedDemo opens memberID with the catalog's demo visit history. It is a
// no-op when the account already exists.
func (s *Service) SeedDemo(memberID string) (bool, error) {
	if err := ValidateMemberID(memberID); err != nil {
		return false, err
	}

	_, created, err := s.db.GetOrCreateAccount(memberID, 0)
	if err != nil {
		return false, err
	}
	if !created {
		slog.Debug("demo member already seeded", "memberID", memberID)
		return false, nil
	}

	balance := 0
	for _, v := range s.catalog.SeedVisits() {
		change, err := s.db.AddStamp(models.Stamp{
			MemberID:   memberID,
			ResortID:   v.ResortID,
			Experience: v.Experience,
			Points:     v.Points,
			VisitedAt:  v.Date,
		}, models.EntrySeed)
		if err != nil {
			return false, fmt.Errorf("seed visit %s: %w", v.ID, err)
		}
		balance = change.After
	}

	slog.Info("demo member seeded",
		"memberID", memberID,
		"visits", len(s.catalog.SeedVisits()),
		"balance", balance,
	)
	return true, nil
}

func (s *Service) ensureAccount(memberID string) error {
	if err := ValidateMemberID(memberID); err != nil {
		return err
	}
	_, _, err := s.db.GetOrCreateAccount(memberID, s.seedPoints)
	return err
}

func (s *Service) outcome(change *store.Change) (*Outcome, error) {
	before, err := s.calc.Progress(change.Before)
	if err != nil {
		return nil, fmt.Errorf("progress before: %w", err)
	}
	after, err := s.calc.Progress(change.After)
	if err != nil {
		return nil, fmt.Errorf("progress after: %w", err)
	}

	o := &Outcome{
		MemberID:    change.Entry.MemberID,
		Delta:       change.Entry.Delta,
		Before:      before,
		After:       after,
		TierChanged: loyalty.TierChanged(before, after),
		Entry:       change.Entry,
	}
	s.record(o)
	return o, nil
}

func (s *Service) record(o *Outcome) {
	switch {
	case o.Delta > 0:
		metrics.PointsEarned.WithLabelValues(string(o.Entry.Kind)).Add(float64(o.Delta))
	case o.Delta < 0:
		metrics.PointsRedeemed.Add(float64(-o.Delta))
	}

	s.events.Broadcast(events.Event{
		Type:     events.TypePoints,
		MemberID: o.MemberID,
		Data: events.PointsData{
			MemberID: o.MemberID,
			Kind:     string(o.Entry.Kind),
			Delta:    o.Delta,
			Balance:  o.After.Total,
			Tier:     o.After.Tier.ID,
			Percent:  o.After.ProgressPct,
		},
	})

	if !o.TierChanged {
		return
	}

	metrics.TierChanges.WithLabelValues(o.After.Tier.ID).Inc()
	direction := "up"
	if o.After.TierIndex < o.Before.TierIndex {
		direction = "down"
	}
	slog.Info("member tier changed",
		"memberID", o.MemberID,
		"direction", direction,
		"from", o.Before.Tier.ID,
		"to", o.After.Tier.ID,
		"balance", o.After.Total,
	)
	s.events.Broadcast(events.Event{
		Type:     events.TypeTierChanged,
		MemberID: o.MemberID,
		Data: events.TierChangedData{
			MemberID:  o.MemberID,
			From:      o.Before.Tier.ID,
			To:        o.After.Tier.ID,
			Direction: direction,
		},
	})
}
