package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kuriftu/essence/internal/config"
	"github.com/kuriftu/essence/internal/loyalty"
	"github.com/kuriftu/essence/internal/models"
)

// Change describes a balance update committed to the ledger.
type Change struct {
	Before int
	After  int
	Entry  models.LedgerEntry
}

// ApplyDelta adds delta to the member's balance and records a ledger entry
// in a single transaction. A delta that would take the balance below zero
// fails with loyalty.ErrInsufficientBalance and leaves the account as it was.
func (d *DB) ApplyDelta(memberID string, delta int, kind models.EntryKind, reference, note string) (*Change, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin ledger transaction: %w", err)
	}
	defer tx.Rollback()

	change, err := applyDeltaTx(tx, memberID, delta, kind, reference, note)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit ledger entry for %s: %w", memberID, err)
	}

	slog.Info("ledger entry applied",
		"memberID", memberID,
		"kind", kind,
		"delta", delta,
		"balanceBefore", change.Before,
		"balanceAfter", change.After,
		"reference", reference,
	)
	return change, nil
}

func applyDeltaTx(tx *sql.Tx, memberID string, delta int, kind models.EntryKind, reference, note string) (*Change, error) {
	var balance int
	err := tx.QueryRow(`SELECT balance FROM accounts WHERE member_id = ?`, memberID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", config.ErrMemberNotFound, memberID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read balance for %s: %w", memberID, err)
	}

	after, err := loyalty.ApplyDelta(balance, delta)
	if err != nil {
		return nil, err
	}

	earned, redeemed := 0, 0
	if delta > 0 {
		earned = delta
	} else {
		redeemed = -delta
	}

	ts := now()
	if _, err := tx.Exec(`
		UPDATE accounts
		SET balance = ?,
		    total_earned = total_earned + ?,
		    total_redeemed = total_redeemed + ?,
		    updated_at = ?
		WHERE member_id = ?`,
		after, earned, redeemed, ts, memberID,
	); err != nil {
		return nil, fmt.Errorf("failed to update balance for %s: %w", memberID, err)
	}

	result, err := tx.Exec(`
		INSERT INTO ledger_entries (member_id, kind, delta, balance_after, reference, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		memberID, kind, delta, after, reference, note, ts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert ledger entry for %s: %w", memberID, err)
	}
	id, _ := result.LastInsertId()

	return &Change{
		Before: balance,
		After:  after,
		Entry: models.LedgerEntry{
			ID:           id,
			MemberID:     memberID,
			Kind:         kind,
			Delta:        delta,
			BalanceAfter: after,
			Reference:    reference,
			Note:         note,
			CreatedAt:    ts,
		},
	}, nil
}

// ListLedger returns a page of the member's ledger, newest first, plus the
// total number of entries.
func (d *DB) ListLedger(memberID string, page models.Pagination) ([]models.LedgerEntry, int, error) {
	total, err := d.CountLedger(memberID)
	if err != nil {
		return nil, 0, err
	}

	rows, err := d.conn.Query(`
		SELECT id, member_id, kind, delta, balance_after, reference, note, created_at
		FROM ledger_entries WHERE member_id = ?
		ORDER BY id DESC
		LIMIT ? OFFSET ?`,
		memberID, page.PageSize, page.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list ledger for %s: %w", memberID, err)
	}
	defer rows.Close()

	entries := make([]models.LedgerEntry, 0, page.PageSize)
	for rows.Next() {
		var e models.LedgerEntry
		if err := rows.Scan(&e.ID, &e.MemberID, &e.Kind, &e.Delta, &e.BalanceAfter, &e.Reference, &e.Note, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}

// CountLedger returns the number of ledger entries for a member.
func (d *DB) CountLedger(memberID string) (int, error) {
	var n int
	if err := d.conn.QueryRow(`SELECT COUNT(*) FROM ledger_entries WHERE member_id = ?`, memberID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count ledger for %s: %w", memberID, err)
	}
	return n, nil
}

// HasCompletedAction reports whether the member has already earned points
// for the given action.
func (d *DB) HasCompletedAction(memberID, actionID string) (bool, error) {
	var n int
	err := d.conn.QueryRow(`
		SELECT COUNT(*) FROM ledger_entries
		WHERE member_id = ? AND kind = ? AND reference = ?`,
		memberID, models.EntryEarn, actionID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check action %s for %s: %w", actionID, memberID, err)
	}
	return n > 0, nil
}
