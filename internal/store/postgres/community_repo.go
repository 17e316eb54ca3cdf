package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
)

func (s session) GetCommunity(ctx context.Context, address string) (*model.Community, error) {
	var c model.Community
	err := s.q.QueryRowContext(ctx, `
		SELECT address, name, admin, token_mint, token_symbol, token_decimals,
		       governance_threshold, transfer_fee_bps, member_count,
		       treasury, collection_mint, created_at
		FROM communities
		WHERE address = $1`+s.forUpdate(),
		address,
	).Scan(
		&c.Address, &c.Name, &c.Admin, &c.TokenMint, &c.TokenSymbol, &c.TokenDecimals,
		&c.GovernanceThreshold, &c.TransferFeeBps, &c.MemberCount,
		&c.Treasury, &c.CollectionMint, &c.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get community: %w", err)
	}
	return &c, nil
}

func (s session) PutCommunity(ctx context.Context, c *model.Community) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO communities (address, name, admin, token_mint, token_symbol, token_decimals,
		                         governance_threshold, transfer_fee_bps, member_count,
		                         treasury, collection_mint, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (address) DO UPDATE SET
			admin = EXCLUDED.admin,
			governance_threshold = EXCLUDED.governance_threshold,
			transfer_fee_bps = EXCLUDED.transfer_fee_bps,
			member_count = EXCLUDED.member_count`,
		c.Address, c.Name, c.Admin, c.TokenMint, c.TokenSymbol, c.TokenDecimals,
		c.GovernanceThreshold, c.TransferFeeBps, c.MemberCount,
		c.Treasury, c.CollectionMint, c.CreatedAt,
	)
	return mapError("put community", err)
}

func (s session) GetTokenMint(ctx context.Context, address string) (*model.TokenMint, error) {
	var (
		tm     model.TokenMint
		supply string
	)
	err := s.q.QueryRowContext(ctx, `
		SELECT address, community, symbol, decimals, supply::text, initialized, created_at
		FROM token_mints
		WHERE address = $1`+s.forUpdate(),
		address,
	).Scan(&tm.Address, &tm.Community, &tm.Symbol, &tm.Decimals, &supply, &tm.Initialized, &tm.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get token mint: %w", err)
	}
	if tm.Supply, err = uintColumn(supply); err != nil {
		return nil, fmt.Errorf("get token mint: %w", err)
	}
	return &tm, nil
}

func (s session) PutTokenMint(ctx context.Context, tm *model.TokenMint) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO token_mints (address, community, symbol, decimals, supply, initialized, created_at)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, $7)
		ON CONFLICT (address) DO UPDATE SET
			supply = EXCLUDED.supply,
			initialized = EXCLUDED.initialized`,
		tm.Address, tm.Community, tm.Symbol, tm.Decimals, uintParam(tm.Supply), tm.Initialized, tm.CreatedAt,
	)
	return mapError("put token mint", err)
}
