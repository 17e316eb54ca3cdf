package model

import "time"

// Member is a wallet's registration inside one community. A wallet
// registers at most once per community; the derived address enforces it.
type Member struct {
	Address             string    `db:"address"`
	Community           string    `db:"community"`
	Wallet              string    `db:"wallet"`
	Name                string    `db:"name"`
	MetadataURI         string    `db:"metadata_uri"`
	ReputationScore     int64     `db:"reputation_score"`
	TotalEventsAttended uint32    `db:"total_events_attended"`
	TotalConnections    uint32    `db:"total_connections"`
	TotalTransactions   uint32    `db:"total_transactions"`
	NfcCard             *string   `db:"nfc_card"`
	JoinedAt            time.Time `db:"joined_at"`
}

const (
	MemberNameMinLen  = 1
	MemberNameMaxLen  = 50
	MetadataURIMaxLen = 200

	ReputationReasonMinLen = 3
	ReputationReasonMaxLen = 200
	ReputationDeltaMax     = 100
)

func ValidateMemberName(name string) error {
	if len(name) < MemberNameMinLen || len(name) > MemberNameMaxLen {
		return ErrInvalidArgument("member name must be %d-%d characters", MemberNameMinLen, MemberNameMaxLen)
	}
	return nil
}

func ValidateMetadataURI(uri string) error {
	if len(uri) > MetadataURIMaxLen {
		return ErrInvalidArgument("metadata uri exceeds %d characters", MetadataURIMaxLen)
	}
	return nil
}
