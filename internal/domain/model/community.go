package model

import "time"

// Community is the root record of a deployment tenant. The admin,
// governance threshold, and transfer fee live here and are re-read on
// every authorization check; nothing about them is process-global.
type Community struct {
	Address             string    `db:"address"`
	Name                string    `db:"name"`
	Admin               string    `db:"admin"`
	TokenMint           string    `db:"token_mint"`
	TokenSymbol         string    `db:"token_symbol"`
	TokenDecimals       uint8     `db:"token_decimals"`
	GovernanceThreshold uint8     `db:"governance_threshold"`
	TransferFeeBps      uint16    `db:"transfer_fee_bps"`
	MemberCount         uint32    `db:"member_count"`
	Treasury            string    `db:"treasury"`
	CollectionMint      string    `db:"collection_mint"`
	CreatedAt           time.Time `db:"created_at"`
}

const (
	CommunityNameMinLen = 3
	CommunityNameMaxLen = 50
	TokenSymbolMinLen   = 2
	TokenSymbolMaxLen   = 10
	TokenDecimalsMax    = 9
	TransferFeeBpsMax   = 1000

	// BpsDenominator converts basis points to a fraction.
	BpsDenominator = 10000
)

// ValidateGovernanceThreshold enforces the [1,100] percent range.
func ValidateGovernanceThreshold(threshold uint8) error {
	if threshold < 1 || threshold > 100 {
		return ErrInvalidConfig("governance threshold %d outside [1,100]", threshold)
	}
	return nil
}

// ValidateTransferFeeBps enforces the [0,1000] basis point range.
func ValidateTransferFeeBps(feeBps uint16) error {
	if feeBps > TransferFeeBpsMax {
		return ErrInvalidConfig("transfer fee %d bps exceeds max %d", feeBps, TransferFeeBpsMax)
	}
	return nil
}

// TransferFee returns the fee owed to treasury custody for a transfer
// of amount at feeBps: floor(amount * feeBps / 10000). Split to avoid
// overflowing uint64 at large amounts; exact for any feeBps <= 10000.
func TransferFee(amount uint64, feeBps uint16) uint64 {
	f := uint64(feeBps)
	return (amount/BpsDenominator)*f + (amount%BpsDenominator)*f/BpsDenominator
}
