package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenMint tracks a community token's identity and circulating supply.
// Supply changes only through explicit mint and burn instructions; every
// other movement is conservative.
type TokenMint struct {
	Address     string    `db:"address"`
	Community   string    `db:"community"`
	Symbol      string    `db:"symbol"`
	Decimals    uint8     `db:"decimals"`
	Supply      uint64    `db:"supply"`
	Initialized bool      `db:"initialized"`
	CreatedAt   time.Time `db:"created_at"`
}

// TokenBalance is one holder's position in one mint. Holder is either a
// member wallet or a treasury custody address.
type TokenBalance struct {
	Mint      string    `db:"mint"`
	Holder    string    `db:"holder"`
	Amount    uint64    `db:"amount"`
	UpdatedAt time.Time `db:"updated_at"`
}

// TokenEntryKind labels journal rows written alongside balance changes.
type TokenEntryKind string

const (
	TokenEntryMint     TokenEntryKind = "mint"
	TokenEntryBurn     TokenEntryKind = "burn"
	TokenEntryTransfer TokenEntryKind = "transfer"
	TokenEntryFee      TokenEntryKind = "fee"
	TokenEntryDeposit  TokenEntryKind = "deposit"
	TokenEntryWithdraw TokenEntryKind = "withdraw"
	TokenEntryReward   TokenEntryKind = "reward"
	TokenEntryRefund   TokenEntryKind = "refund"
)

// TransferMemoMaxLen bounds the free-text memo on a journal row.
const TransferMemoMaxLen = 500

// TokenEntry is an append-only journal row. From/To are empty on the
// supply side of a mint/burn. Reference carries the address of the
// record that caused the movement (payment request, proposal, event).
type TokenEntry struct {
	ID        uuid.UUID      `db:"id"`
	Mint      string         `db:"mint"`
	Kind      TokenEntryKind `db:"kind"`
	From      string         `db:"from_holder"`
	To        string         `db:"to_holder"`
	Amount    uint64         `db:"amount"`
	Memo      string         `db:"memo"`
	Reference string         `db:"reference"`
	CreatedAt time.Time      `db:"created_at"`
}
