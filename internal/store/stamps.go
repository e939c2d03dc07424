package store

import (
	"fmt"
	"log/slog"

	"github.com/kuriftu/essence/internal/catalog"
	"github.com/kuriftu/essence/internal/models"
)

// AddStamp records a passport stamp and credits its points in one
// transaction. The stamp's VisitedAt defaults to now when empty.
func (d *DB) AddStamp(s models.Stamp, kind models.EntryKind) (*Change, error) {
	if !s.Experience.Valid() {
		return nil, fmt.Errorf("invalid experience kind %d for stamp", int(s.Experience))
	}
	if s.VisitedAt == "" {
		s.VisitedAt = now()
	}

	tx, err := d.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin stamp transaction: %w", err)
	}
	defer tx.Rollback()

	reference := s.ResortID
	if s.CheckInID != nil {
		reference = *s.CheckInID
	}
	change, err := applyDeltaTx(tx, s.MemberID, s.Points, kind, reference, s.Experience.String())
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(`
		INSERT INTO stamps (member_id, resort_id, experience, points, visited_at, checkin_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.MemberID, s.ResortID, s.Experience.String(), s.Points, s.VisitedAt, s.CheckInID,
	); err != nil {
		return nil, fmt.Errorf("failed to insert stamp for %s: %w", s.MemberID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit stamp for %s: %w", s.MemberID, err)
	}

	slog.Info("passport stamped",
		"memberID", s.MemberID,
		"resortID", s.ResortID,
		"experience", s.Experience,
		"points", s.Points,
		"balanceAfter", change.After,
	)
	return change, nil
}

// ListStamps returns the member's passport, oldest visit first.
func (d *DB) ListStamps(memberID string) ([]models.Stamp, error) {
	rows, err := d.conn.Query(`
		SELECT id, member_id, resort_id, experience, points, visited_at, checkin_id
		FROM stamps WHERE member_id = ?
		ORDER BY visited_at, id`, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stamps for %s: %w", memberID, err)
	}
	defer rows.Close()

	stamps := []models.Stamp{}
	for rows.Next() {
		var s models.Stamp
		var experience string
		if err := rows.Scan(&s.ID, &s.MemberID, &s.ResortID, &experience, &s.Points, &s.VisitedAt, &s.CheckInID); err != nil {
			return nil, fmt.Errorf("failed to scan stamp row: %w", err)
		}
		kind, err := catalog.ParseExperienceKind(experience)
		if err != nil {
			return nil, fmt.Errorf("stamp %d: %w", s.ID, err)
		}
		s.Experience = kind
		stamps = append(stamps, s)
	}
	return stamps, rows.Err()
}

// CountStamps returns the number of stamps in the member's passport.
func (d *DB) CountStamps(memberID string) (int, error) {
	var n int
	if err := d.conn.QueryRow(`SELECT COUNT(*) FROM stamps WHERE member_id = ?`, memberID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count stamps for %s: %w", memberID, err)
	}
	return n, nil
}
