// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Ledger ─────────────────────────────────────────────────────────────────

// PointsEarned counts essence points credited, by ledger entry kind.
var PointsEarned = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "essence",
	Subsystem: "ledger",
	Name:      "points_earned_total",
	Help:      "Total essence points credited to members.",
}, []string{"kind"})

// PointsRedeemed counts essence points spent on rewards.
var PointsRedeemed = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "essence",
	Subsystem: "ledger",
	Name:      "points_redeemed_total",
	Help:      "Total essence points redeemed for rewards.",
})

// RedemptionsRejected counts redemptions refused for insufficient balance.
var RedemptionsRejected = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "essence",
	Subsystem: "ledger",
	Name:      "redemptions_rejected_total",
	Help:      "Redemptions rejected because the balance was too low.",
})

// TierChanges counts tier transitions by destination tier.
var TierChanges = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "essence",
	Subsystem: "ledger",
	Name:      "tier_changes_total",
	Help:      "Tier transitions, labelled by the tier reached.",
}, []string{"tier"})

// ─── Check-ins ──────────────────────────────────────────────────────────────

// CheckInsActive tracks check-ins that have not reached a terminal status.
var CheckInsActive = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "essence",
	Subsystem: "checkin",
	Name:      "active",
	Help:      "Check-ins currently pending, displayed or scanned.",
})

// CheckInsFinished counts check-ins by terminal status.
var CheckInsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "essence",
	Subsystem: "checkin",
	Name:      "finished_total",
	Help:      "Check-ins that reached a terminal status.",
}, []string{"status"})

// ─── Maintenance ────────────────────────────────────────────────────────────

// Accounts is the number of member accounts, refreshed by the scheduler.
var Accounts = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "essence",
	Subsystem: "members",
	Name:      "accounts",
	Help:      "Member accounts opened so far.",
})

// EventClients is the number of connected event stream clients.
var EventClients = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "essence",
	Subsystem: "events",
	Name:      "clients",
	Help:      "Connected Server-Sent Events clients.",
})

// LogFilesRemoved counts log files deleted by retention cleanup.
var LogFilesRemoved = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "essence",
	Subsystem: "maintenance",
	Name:      "log_files_removed_total",
	Help:      "Old log files deleted by the retention job.",
})
