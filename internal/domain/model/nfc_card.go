package model

import "time"

// NfcCard is a physical credential bound to one member. Authentication
// and transfer require the card to be active; revocation is one-way.
type NfcCard struct {
	Address     string    `db:"address"`
	Community   string    `db:"community"`
	Owner       string    `db:"owner"`
	CardID      string    `db:"card_id"`
	AssetID     string    `db:"asset_id"`
	IsActive    bool      `db:"is_active"`
	LastUsedAt  time.Time `db:"last_used_at"`
	TotalUses   int64     `db:"total_uses"`
	MetadataURI string    `db:"metadata_uri"`
	CreatedAt   time.Time `db:"created_at"`
}

const (
	CardIDMinLen = 8
	CardIDMaxLen = 64
)

func ValidateCardID(cardID string) error {
	if len(cardID) < CardIDMinLen || len(cardID) > CardIDMaxLen {
		return ErrInvalidArgument("card id must be %d-%d characters", CardIDMinLen, CardIDMaxLen)
	}
	return nil
}
