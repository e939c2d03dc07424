// Package checkin simulates the resort QR check-in flow. Each open check-in
// runs in its own goroutine: PENDING until the code activates, ACTIVE until
// it is scanned or the code expires, SCANNED while the visit settles, then
// COMPLETED once the passport is stamped and the points are credited.
package checkin

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kuriftu/essence/internal/catalog"
	"github.com/kuriftu/essence/internal/config"
	"github.com/kuriftu/essence/internal/events"
	"github.com/kuriftu/essence/internal/ledger"
	"github.com/kuriftu/essence/internal/metrics"
	"github.com/kuriftu/essence/internal/models"
	"github.com/kuriftu/essence/internal/store"
)

// session is the in-memory half of an open check-in.
type session struct {
	cancel   context.CancelFunc
	scanned  chan struct{}
	memberID string
	resortID string
	points   int

	// mu serializes status changes with their DB write.
	mu     sync.Mutex
	status models.CheckInStatus
}

// Manager owns all open check-ins.
type Manager struct {
	db      *store.DB
	ledger  *ledger.Service
	catalog *catalog.Catalog
	events  *events.Hub

	activation time.Duration
	settle     time.Duration
	ttl        time.Duration
	maxActive  int

	mu       sync.Mutex
	sessions map[string]*session // checkInID -> session
	wg       sync.WaitGroup
}

// NewManager creates a check-in manager using the QR timings from cfg.
func NewManager(db *store.DB, svc *ledger.Service, cat *catalog.Catalog, cfg *config.Config) *Manager {
	m := &Manager{
		db:         db,
		ledger:     svc,
		catalog:    cat,
		activation: cfg.QRActivation(),
		settle:     cfg.QRScanSettle(),
		ttl:        cfg.QRTTL(),
		maxActive:  cfg.MaxActiveCheckIns,
		sessions:   make(map[string]*session),
	}

	slog.Info("check-in manager initialized",
		"activation", m.activation,
		"settle", m.settle,
		"ttl", m.ttl,
		"maxActive", m.maxActive,
	)
	return m
}

// SetEvents attaches the hub that receives check-in status events.
// Call before the first Create.
func (m *Manager) SetEvents(hub *events.Hub) {
	m.events = hub
}

// ActiveCount returns the number of open check-ins.
func (m *Manager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Create opens a check-in for memberID at resortID. The awarded points are
// the resort's essence points.
func (m *Manager) Create(memberID, resortID string, kind catalog.ExperienceKind) (*models.CheckIn, error) {
	if err := ledger.ValidateMemberID(memberID); err != nil {
		return nil, err
	}
	resort, err := m.catalog.Resort(resortID)
	if err != nil {
		return nil, err
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %d", config.ErrUnknownExperience, int(kind))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) >= m.maxActive {
		return nil, fmt.Errorf("%w: limit is %d", config.ErrTooManyCheckIns, m.maxActive)
	}

	now := time.Now().UTC()
	c := &models.CheckIn{
		ID:          uuid.New().String(),
		MemberID:    memberID,
		ResortID:    resort.ID,
		Experience:  kind,
		Points:      resort.EssencePoints,
		Status:      models.CheckInPending,
		CreatedAt:   now.Format(time.RFC3339),
		ActivatesAt: now.Add(m.activation).Format(time.RFC3339),
		ExpiresAt:   now.Add(m.activation + m.ttl).Format(time.RFC3339),
	}

	if err := m.db.CreateCheckIn(c); err != nil {
		return nil, fmt.Errorf("failed to create check-in: %w", err)
	}

	// The deadline is a backstop; the timers in run normally finish first.
	deadline := m.activation + m.ttl + m.settle + config.CheckInContextGrace
	ctx, cancel := context.WithTimeout(context.Background(), deadline)

	sess := &session{
		cancel:   cancel,
		scanned:  make(chan struct{}),
		memberID: c.MemberID,
		resortID: c.ResortID,
		points:   c.Points,
		status:   models.CheckInPending,
	}
	m.sessions[c.ID] = sess
	metrics.CheckInsActive.Inc()

	m.publish(c.ID, sess, models.CheckInPending)

	m.wg.Add(1)
	go m.run(ctx, *c, sess)

	return c, nil
}

// Get returns the stored state of a check-in.
func (m *Manager) Get(id string) (*models.CheckIn, error) {
	return m.db.GetCheckIn(id)
}

// Scan simulates the resort scanning the member's QR code. Only ACTIVE
// check-ins can be scanned.
func (m *Manager) Scan(id string) error {
	sess, err := m.lookup(id)
	if err != nil {
		return err
	}

	if !m.advance(id, sess, models.CheckInScanned, models.CheckInActive) {
		return fmt.Errorf("%w: %s is %s", config.ErrCheckInNotActive, id, sess.current())
	}
	close(sess.scanned)
	return nil
}

// Cancel abandons a check-in that has not been scanned yet.
func (m *Manager) Cancel(id string) error {
	sess, err := m.lookup(id)
	if err != nil {
		return err
	}

	if !m.advance(id, sess, models.CheckInCancelled, models.CheckInPending, models.CheckInActive) {
		return fmt.Errorf("%w: %s is %s", config.ErrCheckInNotActive, id, sess.current())
	}
	sess.cancel()
	return nil
}

// Stop cancels every open check-in, waits for the goroutines to exit and
// expires anything left open in the DB.
func (m *Manager) Stop() {
	slog.Info("check-in manager stopping", "activeCount", m.ActiveCount())

	m.mu.Lock()
	for id, sess := range m.sessions {
		slog.Debug("cancelling check-in for shutdown", "checkInID", id)
		sess.cancel()
	}
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("all check-in goroutines stopped cleanly")
	case <-time.After(config.ShutdownTimeout):
		slog.Warn("check-in shutdown timed out, some goroutines may still be running",
			"timeout", config.ShutdownTimeout,
		)
	}

	expired, err := m.db.ExpireOpenCheckIns()
	if err != nil {
		slog.Error("failed to expire open check-ins", "error", err)
	} else if expired > 0 {
		slog.Warn("expired open check-ins during shutdown", "count", expired)
	}

	slog.Info("check-in manager stopped")
}

// lookup returns the open session for id, or the reason there is none.
func (m *Manager) lookup(id string) (*session, error) {
	m.mu.Lock()
	sess, open := m.sessions[id]
	m.mu.Unlock()
	if open {
		return sess, nil
	}

	c, err := m.db.GetCheckIn(id)
	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %s is %s", config.ErrCheckInClosed, id, c.Status)
}

// advance moves sess to status if it is currently in one of from, and
// persists the change. It reports whether the transition happened.
func (m *Manager) advance(id string, sess *session, status models.CheckInStatus, from ...models.CheckInStatus) bool {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !slices.Contains(from, sess.status) {
		return false
	}
	sess.status = status

	if err := m.db.UpdateCheckInStatus(id, status); err != nil {
		slog.Error("failed to persist check-in status",
			"checkInID", id,
			"status", status,
			"error", err,
		)
	}
	if status.Terminal() {
		metrics.CheckInsFinished.WithLabelValues(string(status)).Inc()
	}
	m.publish(id, sess, status)
	return true
}

func (m *Manager) publish(id string, sess *session, status models.CheckInStatus) {
	m.events.Broadcast(events.Event{
		Type:     events.TypeCheckIn,
		MemberID: sess.memberID,
		Data: events.CheckInData{
			ID:       id,
			MemberID: sess.memberID,
			ResortID: sess.resortID,
			Status:   string(status),
			Points:   sess.points,
		},
	})
}

func (s *session) current() models.CheckInStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// remove drops a check-in from the open set. Called by its goroutine after
// all DB writes are done.
func (m *Manager) remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()

	metrics.CheckInsActive.Dec()
	slog.Debug("check-in removed from open set", "checkInID", id)
}
