package ledger

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/kuriftu/essence/internal/catalog"
	"github.com/kuriftu/essence/internal/config"
	"github.com/kuriftu/essence/internal/loyalty"
	"github.com/kuriftu/essence/internal/models"
	"github.com/kuriftu/essence/internal/store"
)

func newTestService(t *testing.T, seed int) *Service {
	t.Helper()

	db, err := store.New(filepath.Join(t.TempDir(), "test.sqlite"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	if err := db.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewService(db, loyalty.NewCalculator(loyalty.DefaultTiers), catalog.Default(), seed)
}

func TestValidateMemberID(t *testing.T) {
	valid := []string{"demo", "guest-42", "a.b_c@d"}
	for _, id := range valid {
		if err := ValidateMemberID(id); err != nil {
			t.Errorf("ValidateMemberID(%q) error = %v", id, err)
		}
	}

	long := make([]byte, config.MaxMemberIDLength+1)
	for i := range long {
		long[i] = 'a'
	}
	invalid := []string{"", " demo", "-x", "a/b", string(long)}
	for _, id := range invalid {
		if err := ValidateMemberID(id); !errors.Is(err, config.ErrInvalidMemberID) {
			t.Errorf("ValidateMemberID(%q) error = %v, want ErrInvalidMemberID", id, err)
		}
	}
}

func TestAccount_OpensWithSeed(t *testing.T) {
	s := newTestService(t, 120)

	sum, err := s.Account("m1")
	if err != nil {
		t.Fatalf("Account() error = %v", err)
	}
	if sum.Account.Balance != 120 {
		t.Errorf("Balance = %d, want 120", sum.Account.Balance)
	}
	if sum.Progress.Tier.ID != "pathfinder" {
		t.Errorf("Tier = %s, want pathfinder", sum.Progress.Tier.ID)
	}
	if sum.StampCount != 0 {
		t.Errorf("StampCount = %d, want 0", sum.StampCount)
	}
}

func TestEarn(t *testing.T) {
	s := newTestService(t, 0)

	o, err := s.Earn("m1", "resort-booking")
	if err != nil {
		t.Fatalf("Earn() error = %v", err)
	}
	if o.Delta != 100 || o.After.Total != 100 {
		t.Errorf("outcome = delta %d total %d, want 100/100", o.Delta, o.After.Total)
	}
	if !o.TierChanged || o.Before.Tier.ID != "explorer" || o.After.Tier.ID != "pathfinder" {
		t.Errorf("tier %s -> %s (changed=%v), want explorer -> pathfinder", o.Before.Tier.ID, o.After.Tier.ID, o.TierChanged)
	}
	if o.Entry.Kind != models.EntryEarn || o.Entry.Reference != "resort-booking" {
		t.Errorf("entry = %+v", o.Entry)
	}

	// Repeatable actions can be earned again without a tier change.
	o, err = s.Earn("m1", "dining")
	if err != nil {
		t.Fatalf("Earn(dining) error = %v", err)
	}
	if o.TierChanged {
		t.Error("130 points should stay in pathfinder")
	}
}

func TestEarn_OneShotAction(t *testing.T) {
	s := newTestService(t, 0)

	if _, err := s.Earn("m1", "share-passport"); err != nil {
		t.Fatalf("first Earn() error = %v", err)
	}
	_, err := s.Earn("m1", "share-passport")
	if !errors.Is(err, config.ErrActionAlreadyComplete) {
		t.Errorf("second Earn() error = %v, want ErrActionAlreadyComplete", err)
	}

	// Other members are unaffected.
	if _, err := s.Earn("m2", "share-passport"); err != nil {
		t.Errorf("Earn() for another member error = %v", err)
	}
}

func TestEarn_Errors(t *testing.T) {
	s := newTestService(t, 0)

	if _, err := s.Earn("m1", "nope"); !errors.Is(err, config.ErrUnknownAction) {
		t.Errorf("unknown action error = %v", err)
	}
	if _, err := s.Earn("", "dining"); !errors.Is(err, config.ErrInvalidMemberID) {
		t.Errorf("empty member error = %v", err)
	}
}

func TestRedeem(t *testing.T) {
	s := newTestService(t, 120)

	o, err := s.Redeem("m1", "tote-bag")
	if err != nil {
		t.Fatalf("Redeem() error = %v", err)
	}
	if o.Delta != -50 || o.After.Total != 70 {
		t.Errorf("outcome = delta %d total %d, want -50/70", o.Delta, o.After.Total)
	}
	if !o.TierChanged || o.After.Tier.ID != "explorer" {
		t.Errorf("redeeming below 100 should drop to explorer, got %s", o.After.Tier.ID)
	}
}

func TestRedeem_InsufficientBalance(t *testing.T) {
	s := newTestService(t, 120)

	_, err := s.Redeem("m1", "spa-discount")
	if !errors.Is(err, loyalty.ErrInsufficientBalance) {
		t.Fatalf("Redeem() error = %v, want ErrInsufficientBalance", err)
	}

	sum, _ := s.Account("m1")
	if sum.Account.Balance != 120 {
		t.Errorf("Balance = %d, want unchanged 120", sum.Account.Balance)
	}
}

func TestRedeem_Unavailable(t *testing.T) {
	s := newTestService(t, 1000)

	if _, err := s.Redeem("m1", "room-upgrade"); !errors.Is(err, config.ErrRewardUnavailable) {
		t.Errorf("error = %v, want ErrRewardUnavailable", err)
	}
	if _, err := s.Redeem("m1", "nope"); !errors.Is(err, config.ErrUnknownReward) {
		t.Errorf("error = %v, want ErrUnknownReward", err)
	}
}

func TestAdjust(t *testing.T) {
	s := newTestService(t, 0)

	o, err := s.Adjust("m1", 900, "ambassador grant")
	if err != nil {
		t.Fatalf("Adjust() error = %v", err)
	}
	if o.After.Tier.ID != "ambassador" || !o.After.AtMaxTier() {
		t.Errorf("tier = %s, want ambassador at max", o.After.Tier.ID)
	}
	if o.After.ProgressPct != 100 || o.After.PointsToNext != 0 {
		t.Errorf("max tier progress = %d/%d, want 100/0", o.After.ProgressPct, o.After.PointsToNext)
	}

	if _, err := s.Adjust("m1", 0, ""); err == nil {
		t.Error("zero adjustment should fail")
	}
	if _, err := s.Adjust("m1", -901, ""); !errors.Is(err, loyalty.ErrInsufficientBalance) {
		t.Errorf("overdraw error = %v", err)
	}
}

func TestVisit(t *testing.T) {
	s := newTestService(t, 0)

	o, err := s.Visit(models.Stamp{
		MemberID:   "m1",
		ResortID:   "bahirdar",
		Experience: catalog.ExperienceCultural,
		Points:     180,
	})
	if err != nil {
		t.Fatalf("Visit() error = %v", err)
	}
	if o.Entry.Kind != models.EntryCheckIn || o.After.Total != 180 {
		t.Errorf("outcome = %+v", o)
	}

	stamps, _ := s.Passport("m1")
	if len(stamps) != 1 || stamps[0].ResortID != "bahirdar" {
		t.Errorf("passport = %+v", stamps)
	}
}

func TestSeedDemo(t *testing.T) {
	s := newTestService(t, 0)

	seeded, err := s.SeedDemo(config.DemoMemberID)
	if err != nil {
		t.Fatalf("SeedDemo() error = %v", err)
	}
	if !seeded {
		t.Error("first SeedDemo() should seed")
	}

	sum, err := s.Account(config.DemoMemberID)
	if err != nil {
		t.Fatalf("Account() error = %v", err)
	}
	if sum.Account.Balance != 375 {
		t.Errorf("Balance = %d, want 375", sum.Account.Balance)
	}
	if sum.Progress.Tier.ID != "heritage" || sum.Progress.ProgressPct != 50 || sum.Progress.PointsToNext != 125 {
		t.Errorf("progress = %+v, want heritage 50%% 125 to next", sum.Progress)
	}
	if sum.StampCount != 5 {
		t.Errorf("StampCount = %d, want 5", sum.StampCount)
	}

	seeded, err = s.SeedDemo(config.DemoMemberID)
	if err != nil {
		t.Fatalf("second SeedDemo() error = %v", err)
	}
	if seeded {
		t.Error("second SeedDemo() should be a no-op")
	}

	entries, total, _ := s.Ledger(config.DemoMemberID, models.Pagination{Page: 1, PageSize: 10})
	if total != 5 || len(entries) != 5 {
		t.Errorf("ledger total/len = %d/%d, want 5/5", total, len(entries))
	}
}
