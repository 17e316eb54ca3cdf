package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
)

// GetBalance reads a holder's position. A missing row is a zero
// balance; under a transaction the row, if present, is locked.
func (s session) GetBalance(ctx context.Context, mint, holder string) (uint64, error) {
	var amount string
	err := s.q.QueryRowContext(ctx, `
		SELECT amount::text
		FROM balances
		WHERE mint = $1 AND holder = $2`+s.forUpdate(),
		mint, holder,
	).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}
	return uintColumn(amount)
}

func (s session) SetBalance(ctx context.Context, mint, holder string, amount uint64) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO balances (mint, holder, amount, updated_at)
		VALUES ($1, $2, $3::numeric, now())
		ON CONFLICT (mint, holder) DO UPDATE SET
			amount = EXCLUDED.amount,
			updated_at = now()`,
		mint, holder, uintParam(amount),
	)
	if err != nil {
		return fmt.Errorf("set balance: %w", err)
	}
	return nil
}

func (s session) AppendTokenEntry(ctx context.Context, entry *model.TokenEntry) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO token_entries (id, mint, kind, from_holder, to_holder, amount, memo, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8, $9)`,
		entry.ID, entry.Mint, entry.Kind, entry.From, entry.To,
		uintParam(entry.Amount), entry.Memo, entry.Reference, entry.CreatedAt,
	)
	return mapError("append token entry", err)
}

func (s session) ListTokenEntries(ctx context.Context, mint string, limit int) ([]model.TokenEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.q.QueryContext(ctx, `
		SELECT id, mint, kind, from_holder, to_holder, amount::text, memo, reference, created_at
		FROM token_entries
		WHERE mint = $1
		ORDER BY seq DESC
		LIMIT $2`,
		mint, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list token entries: %w", err)
	}
	defer rows.Close()

	var entries []model.TokenEntry
	for rows.Next() {
		var (
			e      model.TokenEntry
			amount string
		)
		if err := rows.Scan(&e.ID, &e.Mint, &e.Kind, &e.From, &e.To, &amount, &e.Memo, &e.Reference, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan token entry: %w", err)
		}
		if e.Amount, err = uintColumn(amount); err != nil {
			return nil, fmt.Errorf("list token entries: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list token entries: %w", err)
	}
	return entries, nil
}
