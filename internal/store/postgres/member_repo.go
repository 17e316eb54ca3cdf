package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
)

func (s session) GetMember(ctx context.Context, address string) (*model.Member, error) {
	var (
		m    model.Member
		card sql.NullString
	)
	err := s.q.QueryRowContext(ctx, `
		SELECT address, community, wallet, name, metadata_uri, reputation_score,
		       total_events_attended, total_connections, total_transactions,
		       nfc_card, joined_at
		FROM members
		WHERE address = $1`+s.forUpdate(),
		address,
	).Scan(
		&m.Address, &m.Community, &m.Wallet, &m.Name, &m.MetadataURI, &m.ReputationScore,
		&m.TotalEventsAttended, &m.TotalConnections, &m.TotalTransactions,
		&card, &m.JoinedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	if card.Valid {
		m.NfcCard = &card.String
	}
	return &m, nil
}

func (s session) PutMember(ctx context.Context, m *model.Member) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO members (address, community, wallet, name, metadata_uri, reputation_score,
		                     total_events_attended, total_connections, total_transactions,
		                     nfc_card, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (address) DO UPDATE SET
			name = EXCLUDED.name,
			metadata_uri = EXCLUDED.metadata_uri,
			reputation_score = EXCLUDED.reputation_score,
			total_events_attended = EXCLUDED.total_events_attended,
			total_connections = EXCLUDED.total_connections,
			total_transactions = EXCLUDED.total_transactions,
			nfc_card = EXCLUDED.nfc_card`,
		m.Address, m.Community, m.Wallet, m.Name, m.MetadataURI, m.ReputationScore,
		m.TotalEventsAttended, m.TotalConnections, m.TotalTransactions,
		m.NfcCard, m.JoinedAt,
	)
	return mapError("put member", err)
}
