package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kuriftu/essence/internal/config"
	"github.com/kuriftu/essence/internal/models"
)

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// GetOrCreateAccount returns the account for memberID, opening it with the
// given seed balance if it does not exist yet. A non-zero seed is recorded
// as a SEED ledger entry. The second return value reports whether the
// account was created by this call.
func (d *DB) GetOrCreateAccount(memberID string, seed int) (*models.Account, bool, error) {
	if seed < 0 {
		return nil, false, fmt.Errorf("negative seed balance %d", seed)
	}

	tx, err := d.conn.Begin()
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin account transaction: %w", err)
	}
	defer tx.Rollback()

	ts := now()
	result, err := tx.Exec(`
		INSERT OR IGNORE INTO accounts (member_id, balance, total_earned, total_redeemed, created_at, updated_at)
		VALUES (?, ?, ?, 0, ?, ?)`,
		memberID, seed, seed, ts, ts,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to ensure account %s: %w", memberID, err)
	}

	affected, _ := result.RowsAffected()
	created := affected > 0
	if created && seed > 0 {
		if _, err := tx.Exec(`
			INSERT INTO ledger_entries (member_id, kind, delta, balance_after, reference, note, created_at)
			VALUES (?, ?, ?, ?, '', 'opening balance', ?)`,
			memberID, models.EntrySeed, seed, seed, ts,
		); err != nil {
			return nil, false, fmt.Errorf("failed to record opening balance for %s: %w", memberID, err)
		}
	}

	a, err := scanAccount(tx.QueryRow(accountSelect+` WHERE member_id = ?`, memberID))
	if err != nil {
		return nil, false, fmt.Errorf("failed to get account %s: %w", memberID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("failed to commit account %s: %w", memberID, err)
	}

	if created {
		slog.Info("account opened", "memberID", memberID, "seed", seed)
	}
	return a, created, nil
}

// GetAccount retrieves an existing account.
func (d *DB) GetAccount(memberID string) (*models.Account, error) {
	a, err := scanAccount(d.conn.QueryRow(accountSelect+` WHERE member_id = ?`, memberID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", config.ErrMemberNotFound, memberID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", memberID, err)
	}
	return a, nil
}

// CountAccounts returns the number of open accounts.
func (d *DB) CountAccounts() (int, error) {
	var n int
	if err := d.conn.QueryRow(`SELECT COUNT(*) FROM accounts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return n, nil
}

const accountSelect = `
	SELECT member_id, balance, total_earned, total_redeemed, created_at, updated_at
	FROM accounts`

func scanAccount(row *sql.Row) (*models.Account, error) {
	a := &models.Account{}
	err := row.Scan(&a.MemberID, &a.Balance, &a.TotalEarned, &a.TotalRedeemed, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}
