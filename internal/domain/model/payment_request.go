package model

import "time"

type PaymentRequestStatus string

const (
	PaymentPending   PaymentRequestStatus = "pending"
	PaymentCompleted PaymentRequestStatus = "completed"
	PaymentCancelled PaymentRequestStatus = "cancelled"

	// PaymentExpired is derived on read, never stored.
	PaymentExpired PaymentRequestStatus = "expired"
)

// PaymentRequest asks one member to pay another. Status transitions are
// one-way: pending -> completed | cancelled, and a pending request past
// ExpiresAt reads as expired and rejects further mutation.
type PaymentRequest struct {
	Address     string               `db:"address"`
	Community   string               `db:"community"`
	From        string               `db:"from_wallet"`
	To          string               `db:"to_wallet"`
	Amount      uint64               `db:"amount"`
	Description string               `db:"description"`
	Status      PaymentRequestStatus `db:"status"`
	CreatedAt   time.Time            `db:"created_at"`
	ExpiresAt   time.Time            `db:"expires_at"`
	SettledAt   *time.Time           `db:"settled_at"`
}

const (
	PaymentDescriptionMinLen = 3
	PaymentDescriptionMaxLen = 200

	PaymentExpiryMax = 30 * 24 * time.Hour
)

// EffectiveStatus applies lazy expiry to a pending request.
func (p *PaymentRequest) EffectiveStatus(now time.Time) PaymentRequestStatus {
	if p.Status == PaymentPending && now.After(p.ExpiresAt) {
		return PaymentExpired
	}
	return p.Status
}
