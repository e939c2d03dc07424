package models

import "github.com/kuriftu/essence/internal/catalog"

// EntryKind classifies a ledger entry.
type EntryKind string

const (
	EntryEarn    EntryKind = "EARN"
	EntryCheckIn EntryKind = "CHECKIN"
	EntryRedeem  EntryKind = "REDEEM"
	EntrySeed    EntryKind = "SEED"
	EntryAdjust  EntryKind = "ADJUST"
)

// CheckInStatus represents the state of a simulated QR check-in.
type CheckInStatus string

const (
	CheckInPending   CheckInStatus = "PENDING"
	CheckInActive    CheckInStatus = "ACTIVE"
	CheckInScanned   CheckInStatus = "SCANNED"
	CheckInCompleted CheckInStatus = "COMPLETED"
	CheckInExpired   CheckInStatus = "EXPIRED"
	CheckInCancelled CheckInStatus = "CANCELLED"
)

// Terminal reports whether no further transitions are possible.
func (s CheckInStatus) Terminal() bool {
	switch s {
	case CheckInCompleted, CheckInExpired, CheckInCancelled:
		return true
	default:
		return false
	}
}

// Account is a member's essence points balance.
type Account struct {
	MemberID      string `json:"member_id"`
	Balance       int    `json:"balance"`
	TotalEarned   int    `json:"total_earned"`
	TotalRedeemed int    `json:"total_redeemed"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// LedgerEntry records one applied delta.
type LedgerEntry struct {
	ID           int64     `json:"id"`
	MemberID     string    `json:"member_id"`
	Kind         EntryKind `json:"kind"`
	Delta        int       `json:"delta"`
	BalanceAfter int       `json:"balance_after"`
	Reference    string    `json:"reference,omitempty"`
	Note         string    `json:"note,omitempty"`
	CreatedAt    string    `json:"created_at"`
}

// Stamp is one passport entry: a completed visit at a resort.
type Stamp struct {
	ID         int64                  `json:"id"`
	MemberID   string                 `json:"member_id"`
	ResortID   string                 `json:"resort_id"`
	Experience catalog.ExperienceKind `json:"experience"`
	Points     int                    `json:"points"`
	VisitedAt  string                 `json:"visited_at"`
	CheckInID  *string                `json:"checkin_id,omitempty"`
}

// CheckIn is a simulated QR check-in session.
type CheckIn struct {
	ID          string                 `json:"id"`
	MemberID    string                 `json:"member_id"`
	ResortID    string                 `json:"resort_id"`
	Experience  catalog.ExperienceKind `json:"experience"`
	Points      int                    `json:"points"`
	Status      CheckInStatus          `json:"status"`
	CreatedAt   string                 `json:"created_at"`
	ActivatesAt string                 `json:"activates_at"`
	ExpiresAt   string                 `json:"expires_at"`
	ScannedAt   *string                `json:"scanned_at,omitempty"`
	CompletedAt *string                `json:"completed_at,omitempty"`
}

// Pagination contains pagination parameters.
type Pagination struct {
	Page     int
	PageSize int
}

// Offset returns the SQL offset for the page (1-based pages).
func (p Pagination) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}
