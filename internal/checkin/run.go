package checkin

import (
	"context"
	"log/slog"
	"time"

	"github.com/kuriftu/essence/internal/models"
)

// run drives one check-in through its lifecycle.
func (m *Manager) run(ctx context.Context, c models.CheckIn, sess *session) {
	defer m.wg.Done()
	defer m.remove(c.ID)
	defer sess.cancel()

	slog.Info("check-in goroutine started",
		"checkInID", c.ID,
		"memberID", c.MemberID,
		"resortID", c.ResortID,
	)

	if !m.wait(ctx, c.ID, sess, m.activation) {
		return
	}
	if !m.advance(c.ID, sess, models.CheckInActive, models.CheckInPending) {
		return
	}
	slog.Info("check-in QR code active", "checkInID", c.ID, "expiresAt", c.ExpiresAt)

	expiry := time.NewTimer(m.ttl)
	defer expiry.Stop()

	select {
	case <-ctx.Done():
		m.abandon(ctx, c.ID, sess)
		return
	case <-expiry.C:
		if m.advance(c.ID, sess, models.CheckInExpired, models.CheckInActive) {
			slog.Info("check-in QR code expired unscanned", "checkInID", c.ID)
			return
		}
		// A scan or cancel won the race with the expiry timer.
		select {
		case <-sess.scanned:
		case <-ctx.Done():
			m.abandon(ctx, c.ID, sess)
			return
		}
	case <-sess.scanned:
	}

	slog.Info("check-in scanned, settling", "checkInID", c.ID, "settle", m.settle)
	if !m.wait(ctx, c.ID, sess, m.settle) {
		return
	}

	m.complete(c, sess)
}

// wait sleeps for d unless ctx ends first. It reports whether the full
// delay elapsed.
func (m *Manager) wait(ctx context.Context, id string, sess *session, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		m.abandon(ctx, id, sess)
		return false
	case <-timer.C:
		return true
	}
}

// abandon expires a check-in whose context ended. Cancelled check-ins are
// already terminal and are left alone.
func (m *Manager) abandon(ctx context.Context, id string, sess *session) {
	expired := m.advance(id, sess, models.CheckInExpired,
		models.CheckInPending, models.CheckInActive, models.CheckInScanned)

	slog.Info("check-in goroutine exiting",
		"checkInID", id,
		"status", sess.current(),
		"expired", expired,
		"reason", ctx.Err(),
	)
}

// complete stamps the passport and credits the visit.
func (m *Manager) complete(c models.CheckIn, sess *session) {
	id := c.ID
	outcome, err := m.ledger.Visit(models.Stamp{
		MemberID:   c.MemberID,
		ResortID:   c.ResortID,
		Experience: c.Experience,
		Points:     c.Points,
		CheckInID:  &id,
	})
	if err != nil {
		slog.Error("failed to credit check-in visit",
			"checkInID", c.ID,
			"memberID", c.MemberID,
			"error", err,
		)
		m.advance(c.ID, sess, models.CheckInExpired, models.CheckInScanned)
		return
	}

	m.advance(c.ID, sess, models.CheckInCompleted, models.CheckInScanned)
	slog.Info("check-in completed",
		"checkInID", c.ID,
		"memberID", c.MemberID,
		"points", c.Points,
		"balance", outcome.After.Total,
		"tier", outcome.After.Tier.ID,
		"tierChanged", outcome.TierChanged,
	)
}
