package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
)

func (s session) GetNfcCard(ctx context.Context, address string) (*model.NfcCard, error) {
	var (
		card     model.NfcCard
		lastUsed sql.NullTime
	)
	err := s.q.QueryRowContext(ctx, `
		SELECT address, community, owner, card_id, asset_id, is_active,
		       last_used_at, total_uses, metadata_uri, created_at
		FROM nfc_cards
		WHERE address = $1`+s.forUpdate(),
		address,
	).Scan(
		&card.Address, &card.Community, &card.Owner, &card.CardID, &card.AssetID, &card.IsActive,
		&lastUsed, &card.TotalUses, &card.MetadataURI, &card.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get nfc card: %w", err)
	}
	if lastUsed.Valid {
		card.LastUsedAt = lastUsed.Time
	}
	return &card, nil
}

func (s session) PutNfcCard(ctx context.Context, card *model.NfcCard) error {
	var lastUsed *time.Time
	if !card.LastUsedAt.IsZero() {
		lastUsed = &card.LastUsedAt
	}
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO nfc_cards (address, community, owner, card_id, asset_id, is_active,
		                       last_used_at, total_uses, metadata_uri, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (address) DO UPDATE SET
			owner = EXCLUDED.owner,
			is_active = EXCLUDED.is_active,
			last_used_at = EXCLUDED.last_used_at,
			total_uses = EXCLUDED.total_uses,
			metadata_uri = EXCLUDED.metadata_uri`,
		card.Address, card.Community, card.Owner, card.CardID, card.AssetID, card.IsActive,
		lastUsed, card.TotalUses, card.MetadataURI, card.CreatedAt,
	)
	return mapError("put nfc card", err)
}
