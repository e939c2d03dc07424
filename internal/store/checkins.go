package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kuriftu/essence/internal/catalog"
	"github.com/kuriftu/essence/internal/config"
	"github.com/kuriftu/essence/internal/models"
)

// CreateCheckIn inserts a new check-in.
func (d *DB) CreateCheckIn(c *models.CheckIn) error {
	if c.CreatedAt == "" {
		c.CreatedAt = now()
	}
	_, err := d.conn.Exec(`
		INSERT INTO checkins (id, member_id, resort_id, experience, points, status, created_at, activates_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.MemberID, c.ResortID, c.Experience.String(), c.Points, c.Status,
		c.CreatedAt, c.ActivatesAt, c.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert check-in %s: %w", c.ID, err)
	}

	slog.Info("check-in created",
		"checkInID", c.ID,
		"memberID", c.MemberID,
		"resortID", c.ResortID,
		"experience", c.Experience,
		"expiresAt", c.ExpiresAt,
	)
	return nil
}

// GetCheckIn retrieves a check-in by ID.
func (d *DB) GetCheckIn(id string) (*models.CheckIn, error) {
	c := &models.CheckIn{}
	var experience string
	err := d.conn.QueryRow(`
		SELECT id, member_id, resort_id, experience, points, status, created_at,
		       activates_at, expires_at, scanned_at, completed_at
		FROM checkins WHERE id = ?`, id,
	).Scan(
		&c.ID, &c.MemberID, &c.ResortID, &experience, &c.Points, &c.Status, &c.CreatedAt,
		&c.ActivatesAt, &c.ExpiresAt, &c.ScannedAt, &c.CompletedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", config.ErrCheckInNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get check-in %s: %w", id, err)
	}

	kind, err := catalog.ParseExperienceKind(experience)
	if err != nil {
		return nil, fmt.Errorf("check-in %s: %w", id, err)
	}
	c.Experience = kind
	return c, nil
}

// UpdateCheckInStatus moves a check-in to a new status. Scanned and terminal
// statuses stamp scanned_at and completed_at respectively.
func (d *DB) UpdateCheckInStatus(id string, status models.CheckInStatus) error {
	ts := now()
	var scannedAt, completedAt *string
	if status == models.CheckInScanned {
		scannedAt = &ts
	}
	if status.Terminal() {
		completedAt = &ts
	}

	result, err := d.conn.Exec(`
		UPDATE checkins
		SET status = ?,
		    scanned_at = COALESCE(?, scanned_at),
		    completed_at = COALESCE(?, completed_at)
		WHERE id = ?`,
		status, scannedAt, completedAt, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update check-in status %s to %s: %w", id, status, err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("%w: %s", config.ErrCheckInNotFound, id)
	}

	slog.Info("check-in status updated", "checkInID", id, "status", status)
	return nil
}

// ExpireOpenCheckIns marks every non-terminal check-in as EXPIRED.
func (d *DB) ExpireOpenCheckIns() (int64, error) {
	result, err := d.conn.Exec(`
		UPDATE checkins SET status = ?, completed_at = ?
		WHERE status IN (?, ?, ?)`,
		models.CheckInExpired, now(),
		models.CheckInPending, models.CheckInActive, models.CheckInScanned,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to expire open check-ins: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected > 0 {
		slog.Info("expired open check-ins", "count", affected)
	}
	return affected, nil
}
