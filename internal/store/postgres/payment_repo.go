package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
)

func (s session) GetPaymentRequest(ctx context.Context, address string) (*model.PaymentRequest, error) {
	var (
		pr        model.PaymentRequest
		amount    string
		settledAt sql.NullTime
	)
	err := s.q.QueryRowContext(ctx, `
		SELECT address, community, from_wallet, to_wallet, amount::text, description,
		       status, created_at, expires_at, settled_at
		FROM payment_requests
		WHERE address = $1`+s.forUpdate(),
		address,
	).Scan(
		&pr.Address, &pr.Community, &pr.From, &pr.To, &amount, &pr.Description,
		&pr.Status, &pr.CreatedAt, &pr.ExpiresAt, &settledAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get payment request: %w", err)
	}
	if pr.Amount, err = uintColumn(amount); err != nil {
		return nil, fmt.Errorf("get payment request: %w", err)
	}
	if settledAt.Valid {
		pr.SettledAt = &settledAt.Time
	}
	return &pr, nil
}

func (s session) PutPaymentRequest(ctx context.Context, pr *model.PaymentRequest) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO payment_requests (address, community, from_wallet, to_wallet, amount,
		                              description, status, created_at, expires_at, settled_at)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8, $9, $10)
		ON CONFLICT (address) DO UPDATE SET
			status = EXCLUDED.status,
			settled_at = EXCLUDED.settled_at`,
		pr.Address, pr.Community, pr.From, pr.To, uintParam(pr.Amount),
		pr.Description, pr.Status, pr.CreatedAt, pr.ExpiresAt, pr.SettledAt,
	)
	return mapError("put payment request", err)
}
