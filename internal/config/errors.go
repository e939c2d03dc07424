package config

import "errors"

// Sentinel errors for internal use.
var (
	ErrInvalidConfig = errors.New("invalid configuration")

	// Members
	ErrMemberNotFound  = errors.New("member not found")
	ErrInvalidMemberID = errors.New("invalid member id")

	// Catalog
	ErrUnknownAction         = errors.New("unknown earning action")
	ErrUnknownReward         = errors.New("unknown reward")
	ErrUnknownResort         = errors.New("unknown resort")
	ErrUnknownExperience     = errors.New("unknown experience kind")
	ErrRewardUnavailable     = errors.New("reward is not available")
	ErrActionAlreadyComplete = errors.New("action already completed")

	// Check-in
	ErrCheckInNotFound  = errors.New("check-in not found")
	ErrCheckInNotActive = errors.New("check-in is not active")
	ErrCheckInClosed    = errors.New("check-in already closed")
	ErrTooManyCheckIns  = errors.New("too many active check-ins")
)

// Error codes, shared with clients via API responses.
const (
	ErrorInvalidRequest      = "ERROR_INVALID_REQUEST"
	ErrorDatabase            = "ERROR_DATABASE"
	ErrorInvalidConfig       = "ERROR_INVALID_CONFIG"
	ErrorInvalidTiers        = "ERROR_INVALID_TIERS"
	ErrorInsufficientBalance = "ERROR_INSUFFICIENT_BALANCE"
	ErrorMemberNotFound      = "ERROR_MEMBER_NOT_FOUND"
	ErrorUnknownAction       = "ERROR_UNKNOWN_ACTION"
	ErrorUnknownReward       = "ERROR_UNKNOWN_REWARD"
	ErrorUnknownResort       = "ERROR_UNKNOWN_RESORT"
	ErrorUnknownExperience   = "ERROR_UNKNOWN_EXPERIENCE"
	ErrorRewardUnavailable   = "ERROR_REWARD_UNAVAILABLE"
	ErrorActionCompleted     = "ERROR_ACTION_COMPLETED"
	ErrorCheckInNotFound     = "ERROR_CHECKIN_NOT_FOUND"
	ErrorCheckInNotActive    = "ERROR_CHECKIN_NOT_ACTIVE"
	ErrorCheckInClosed       = "ERROR_CHECKIN_CLOSED"
	ErrorTooManyCheckIns     = "ERROR_TOO_MANY_CHECKINS"
	ErrorIPNotAllowed        = "ERROR_IP_NOT_ALLOWED"
	ErrorRateLimited         = "ERROR_RATE_LIMITED"
)
