package config

import "time"

// Server
const (
	ServerReadTimeout  = 30 * time.Second
	ServerWriteTimeout = 60 * time.Second
	APITimeout         = 30 * time.Second
)

// Logging
const (
	LogFilePattern = "essence-%s.log" // %s = YYYY-MM-DD
	LogFilePrefix  = "essence-"
	LogMaxAgeDays  = 30
)

// Database
const (
	DBBusyTimeout = 5000 // milliseconds
)

// Tiers
const (
	MinTierCount = 2
)

// Members
const (
	DemoMemberID      = "demo"
	MaxMemberIDLength = 64
)

// Check-in (simulated QR)
const (
	DefaultQRActivation      = 1500 * time.Millisecond
	DefaultQRScanSettle      = 2 * time.Second
	DefaultQRTTL             = 5 * time.Minute
	MaxQRTTLSeconds          = 3600
	CheckInContextGrace      = 5 * time.Second
	DefaultMaxActiveCheckIns = 100
)

// Rate limiting
const (
	RateLimitBurst     = 20
	RateLimiterIdleTTL = 10 * time.Minute
)

// Event stream
const (
	EventChannelBuffer     = 64
	EventKeepAliveInterval = 15 * time.Second
)

// Graceful Shutdown
const (
	ShutdownTimeout = 10 * time.Second
)

// Pagination
const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Scheduled jobs (cron syntax)
const (
	LogCleanupSchedule   = "0 3 * * *"
	GaugeRefreshSchedule = "@every 1m"
	SchedulerStopTimeout = 5 * time.Second
)
