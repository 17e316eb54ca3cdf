package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
)

func (s session) GetConnection(ctx context.Context, address string) (*model.Connection, error) {
	var (
		c        model.Connection
		metadata sql.NullString
		lastAt   sql.NullTime
	)
	err := s.q.QueryRowContext(ctx, `
		SELECT address, community, member_a, member_b, kind, metadata,
		       interaction_count, last_interaction_at, created_at
		FROM connections
		WHERE address = $1`+s.forUpdate(),
		address,
	).Scan(
		&c.Address, &c.Community, &c.MemberA, &c.MemberB, &c.Kind, &metadata,
		&c.InteractionCount, &lastAt, &c.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get connection: %w", err)
	}
	if metadata.Valid {
		c.Metadata = &metadata.String
	}
	if lastAt.Valid {
		c.LastInteractionAt = lastAt.Time
	}
	return &c, nil
}

func (s session) PutConnection(ctx context.Context, c *model.Connection) error {
	var lastAt *time.Time
	if !c.LastInteractionAt.IsZero() {
		lastAt = &c.LastInteractionAt
	}
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO connections (address, community, member_a, member_b, kind, metadata,
		                         interaction_count, last_interaction_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (address) DO UPDATE SET
			kind = EXCLUDED.kind,
			metadata = EXCLUDED.metadata,
			interaction_count = EXCLUDED.interaction_count,
			last_interaction_at = EXCLUDED.last_interaction_at`,
		c.Address, c.Community, c.MemberA, c.MemberB, c.Kind, c.Metadata,
		c.InteractionCount, lastAt, c.CreatedAt,
	)
	return mapError("put connection", err)
}

func (s session) DeleteConnection(ctx context.Context, address string) error {
	_, err := s.q.ExecContext(ctx, `DELETE FROM connections WHERE address = $1`, address)
	if err != nil {
		return fmt.Errorf("delete connection: %w", err)
	}
	return nil
}
