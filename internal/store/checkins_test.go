package store

import (
	"errors"
	"testing"

	"github.com/kuriftu/essence/internal/catalog"
	"github.com/kuriftu/essence/internal/config"
	"github.com/kuriftu/essence/internal/models"
)

func newTestCheckIn(id string) *models.CheckIn {
	return &models.CheckIn{
		ID:          id,
		MemberID:    "m1",
		ResortID:    "entoto",
		Experience:  catalog.ExperienceAdventure,
		Points:      120,
		Status:      models.CheckInPending,
		ActivatesAt: "2026-01-01T10:00:01Z",
		ExpiresAt:   "2026-01-01T10:05:00Z",
	}
}

func TestCreateAndGetCheckIn(t *testing.T) {
	db := newTestDB(t)

	if err := db.CreateCheckIn(newTestCheckIn("c1")); err != nil {
		t.Fatalf("CreateCheckIn() error = %v", err)
	}

	c, err := db.GetCheckIn("c1")
	if err != nil {
		t.Fatalf("GetCheckIn() error = %v", err)
	}
	if c.Status != models.CheckInPending || c.Experience != catalog.ExperienceAdventure || c.Points != 120 {
		t.Errorf("check-in = %+v", c)
	}
	if c.ScannedAt != nil || c.CompletedAt != nil {
		t.Error("new check-in should have no scan or completion time")
	}

	_, err = db.GetCheckIn("missing")
	if !errors.Is(err, config.ErrCheckInNotFound) {
		t.Errorf("error = %v, want ErrCheckInNotFound", err)
	}
}

func TestUpdateCheckInStatus(t *testing.T) {
	db := newTestDB(t)
	db.CreateCheckIn(newTestCheckIn("c1"))

	steps := []models.CheckInStatus{models.CheckInActive, models.CheckInScanned, models.CheckInCompleted}
	for _, status := range steps {
		if err := db.UpdateCheckInStatus("c1", status); err != nil {
			t.Fatalf("UpdateCheckInStatus(%s) error = %v", status, err)
		}
	}

	c, _ := db.GetCheckIn("c1")
	if c.Status != models.CheckInCompleted {
		t.Errorf("Status = %s, want COMPLETED", c.Status)
	}
	if c.ScannedAt == nil {
		t.Error("ScannedAt should be set")
	}
	if c.CompletedAt == nil {
		t.Error("CompletedAt should be set")
	}

	err := db.UpdateCheckInStatus("missing", models.CheckInActive)
	if !errors.Is(err, config.ErrCheckInNotFound) {
		t.Errorf("error = %v, want ErrCheckInNotFound", err)
	}
}

func TestExpireOpenCheckIns(t *testing.T) {
	db := newTestDB(t)
	db.CreateCheckIn(newTestCheckIn("pending"))
	db.CreateCheckIn(newTestCheckIn("active"))
	db.UpdateCheckInStatus("active", models.CheckInActive)
	db.CreateCheckIn(newTestCheckIn("done"))
	db.UpdateCheckInStatus("done", models.CheckInCompleted)

	n, err := db.ExpireOpenCheckIns()
	if err != nil {
		t.Fatalf("ExpireOpenCheckIns() error = %v", err)
	}
	if n != 2 {
		t.Errorf("expired = %d, want 2", n)
	}

	for id, want := range map[string]models.CheckInStatus{
		"pending": models.CheckInExpired,
		"active":  models.CheckInExpired,
		"done":    models.CheckInCompleted,
	} {
		c, _ := db.GetCheckIn(id)
		if c.Status != want {
			t.Errorf("%s status = %s, want %s", id, c.Status, want)
		}
	}
}
