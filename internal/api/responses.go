package api

import (
	"time"

	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
)

// Response payloads are kept separate from the storage models so the
// wire shape can evolve without touching persistence.

type communityResponse struct {
	Address             string    `json:"address"`
	Name                string    `json:"name"`
	Admin               string    `json:"admin"`
	TokenMint           string    `json:"token_mint"`
	TokenSymbol         string    `json:"token_symbol"`
	TokenDecimals       uint8     `json:"token_decimals"`
	GovernanceThreshold uint8     `json:"governance_threshold"`
	TransferFeeBps      uint16    `json:"transfer_fee_bps"`
	MemberCount         uint32    `json:"member_count"`
	Treasury            string    `json:"treasury"`
	CollectionMint      string    `json:"collection_mint"`
	CreatedAt           time.Time `json:"created_at"`
}

func communityResponseFrom(c *model.Community) communityResponse {
	return communityResponse{
		Address:             c.Address,
		Name:                c.Name,
		Admin:               c.Admin,
		TokenMint:           c.TokenMint,
		TokenSymbol:         c.TokenSymbol,
		TokenDecimals:       c.TokenDecimals,
		GovernanceThreshold: c.GovernanceThreshold,
		TransferFeeBps:      c.TransferFeeBps,
		MemberCount:         c.MemberCount,
		Treasury:            c.Treasury,
		CollectionMint:      c.CollectionMint,
		CreatedAt:           c.CreatedAt,
	}
}

type memberResponse struct {
	Address             string    `json:"address"`
	Community           string    `json:"community"`
	Wallet              string    `json:"wallet"`
	Name                string    `json:"name"`
	MetadataURI         string    `json:"metadata_uri,omitempty"`
	ReputationScore     int64     `json:"reputation_score"`
	TotalEventsAttended uint32    `json:"total_events_attended"`
	TotalConnections    uint32    `json:"total_connections"`
	TotalTransactions   uint32    `json:"total_transactions"`
	NfcCard             *string   `json:"nfc_card,omitempty"`
	JoinedAt            time.Time `json:"joined_at"`
}

func memberResponseFrom(m *model.Member) memberResponse {
	return memberResponse{
		Address:             m.Address,
		Community:           m.Community,
		Wallet:              m.Wallet,
		Name:                m.Name,
		MetadataURI:         m.MetadataURI,
		ReputationScore:     m.ReputationScore,
		TotalEventsAttended: m.TotalEventsAttended,
		TotalConnections:    m.TotalConnections,
		TotalTransactions:   m.TotalTransactions,
		NfcCard:             m.NfcCard,
		JoinedAt:            m.JoinedAt,
	}
}

type proposalResponse struct {
	Address         string     `json:"address"`
	Community       string     `json:"community"`
	Proposer        string     `json:"proposer"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Kind            string     `json:"kind"`
	ExecutionData   []byte     `json:"execution_data,omitempty"`
	Status          string     `json:"status"`
	EffectiveStatus string     `json:"effective_status,omitempty"`
	YesVotes        uint64     `json:"yes_votes"`
	NoVotes         uint64     `json:"no_votes"`
	AbstainVotes    uint64     `json:"abstain_votes"`
	TotalVoters     uint32     `json:"total_voters"`
	VotingEndsAt    time.Time  `json:"voting_ends_at"`
	CreatedAt       time.Time  `json:"created_at"`
	ExecutedAt      *time.Time `json:"executed_at,omitempty"`
}

func proposalResponseFrom(p *model.Proposal) proposalResponse {
	return proposalResponse{
		Address:       p.Address,
		Community:     p.Community,
		Proposer:      p.Proposer,
		Title:         p.Title,
		Description:   p.Description,
		Kind:          string(p.Kind),
		ExecutionData: p.ExecutionData,
		Status:        string(p.Status),
		YesVotes:      p.YesVotes,
		NoVotes:       p.NoVotes,
		AbstainVotes:  p.AbstainVotes,
		TotalVoters:   p.TotalVoters,
		VotingEndsAt:  p.VotingEndsAt,
		CreatedAt:     p.CreatedAt,
		ExecutedAt:    p.ExecutedAt,
	}
}

type voteResponse struct {
	Address  string    `json:"address"`
	Proposal string    `json:"proposal"`
	Voter    string    `json:"voter"`
	Choice   string    `json:"choice"`
	Weight   uint64    `json:"weight"`
	VotedAt  time.Time `json:"voted_at"`
}

func voteResponseFrom(v *model.Vote) voteResponse {
	return voteResponse{
		Address:  v.Address,
		Proposal: v.Proposal,
		Voter:    v.Voter,
		Choice:   string(v.Choice),
		Weight:   v.Weight,
		VotedAt:  v.VotedAt,
	}
}

type tokenMintResponse struct {
	Address     string    `json:"address"`
	Community   string    `json:"community"`
	Symbol      string    `json:"symbol"`
	Decimals    uint8     `json:"decimals"`
	Supply      uint64    `json:"supply"`
	Initialized bool      `json:"initialized"`
	CreatedAt   time.Time `json:"created_at"`
}

func tokenMintResponseFrom(tm *model.TokenMint) tokenMintResponse {
	return tokenMintResponse{
		Address:     tm.Address,
		Community:   tm.Community,
		Symbol:      tm.Symbol,
		Decimals:    tm.Decimals,
		Supply:      tm.Supply,
		Initialized: tm.Initialized,
		CreatedAt:   tm.CreatedAt,
	}
}

type nfcCardResponse struct {
	Address     string     `json:"address"`
	Community   string     `json:"community"`
	Owner       string     `json:"owner"`
	CardID      string     `json:"card_id"`
	AssetID     string     `json:"asset_id"`
	IsActive    bool       `json:"is_active"`
	LastUsedAt  *time.Time `json:"last_used_at,omitempty"`
	TotalUses   int64      `json:"total_uses"`
	MetadataURI string     `json:"metadata_uri,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func nfcCardResponseFrom(card *model.NfcCard) nfcCardResponse {
	out := nfcCardResponse{
		Address:     card.Address,
		Community:   card.Community,
		Owner:       card.Owner,
		CardID:      card.CardID,
		AssetID:     card.AssetID,
		IsActive:    card.IsActive,
		TotalUses:   card.TotalUses,
		MetadataURI: card.MetadataURI,
		CreatedAt:   card.CreatedAt,
	}
	if !card.LastUsedAt.IsZero() {
		t := card.LastUsedAt
		out.LastUsedAt = &t
	}
	return out
}

type connectionResponse struct {
	Address           string    `json:"address"`
	Community         string    `json:"community"`
	MemberA           string    `json:"member_a"`
	MemberB           string    `json:"member_b"`
	Kind              string    `json:"kind"`
	Metadata          *string   `json:"metadata,omitempty"`
	InteractionCount  uint32    `json:"interaction_count"`
	LastInteractionAt time.Time `json:"last_interaction_at"`
	CreatedAt         time.Time `json:"created_at"`
}

func connectionResponseFrom(c *model.Connection) connectionResponse {
	return connectionResponse{
		Address:           c.Address,
		Community:         c.Community,
		MemberA:           c.MemberA,
		MemberB:           c.MemberB,
		Kind:              string(c.Kind),
		Metadata:          c.Metadata,
		InteractionCount:  c.InteractionCount,
		LastInteractionAt: c.LastInteractionAt,
		CreatedAt:         c.CreatedAt,
	}
}

type paymentRequestResponse struct {
	Address         string     `json:"address"`
	Community       string     `json:"community"`
	From            string     `json:"from"`
	To              string     `json:"to"`
	Amount          uint64     `json:"amount"`
	Description     string     `json:"description"`
	Status          string     `json:"status"`
	EffectiveStatus string     `json:"effective_status,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	ExpiresAt       time.Time  `json:"expires_at"`
	SettledAt       *time.Time `json:"settled_at,omitempty"`
}

func paymentRequestResponseFrom(pr *model.PaymentRequest) paymentRequestResponse {
	return paymentRequestResponse{
		Address:     pr.Address,
		Community:   pr.Community,
		From:        pr.From,
		To:          pr.To,
		Amount:      pr.Amount,
		Description: pr.Description,
		Status:      string(pr.Status),
		CreatedAt:   pr.CreatedAt,
		ExpiresAt:   pr.ExpiresAt,
		SettledAt:   pr.SettledAt,
	}
}

type eventResponse struct {
	Address          string    `json:"address"`
	Community        string    `json:"community"`
	Organizer        string    `json:"organizer"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	MaxAttendees     *uint32   `json:"max_attendees,omitempty"`
	CurrentAttendees uint32    `json:"current_attendees"`
	TokenReward      *uint64   `json:"token_reward,omitempty"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

func eventResponseFrom(e *model.Event) eventResponse {
	return eventResponse{
		Address:          e.Address,
		Community:        e.Community,
		Organizer:        e.Organizer,
		Name:             e.Name,
		Description:      e.Description,
		StartTime:        e.StartTime,
		EndTime:          e.EndTime,
		MaxAttendees:     e.MaxAttendees,
		CurrentAttendees: e.CurrentAttendees,
		TokenReward:      e.TokenReward,
		Status:           string(e.Status),
		CreatedAt:        e.CreatedAt,
	}
}

type attendanceResponse struct {
	Address       string    `json:"address"`
	Event         string    `json:"event"`
	Member        string    `json:"member"`
	NfcCard       string    `json:"nfc_card"`
	CheckedInAt   time.Time `json:"checked_in_at"`
	RewardClaimed bool      `json:"reward_claimed"`
}

func attendanceResponseFrom(a *model.Attendance) attendanceResponse {
	return attendanceResponse{
		Address:       a.Address,
		Event:         a.Event,
		Member:        a.Member,
		NfcCard:       a.NfcCard,
		CheckedInAt:   a.CheckedInAt,
		RewardClaimed: a.RewardClaimed,
	}
}

type balanceResponse struct {
	Mint   string `json:"mint"`
	Holder string `json:"holder"`
	Amount uint64 `json:"amount"`
}

type tokenEntryResponse struct {
	ID        string    `json:"id"`
	Mint      string    `json:"mint"`
	Kind      string    `json:"kind"`
	From      string    `json:"from,omitempty"`
	To        string    `json:"to,omitempty"`
	Amount    uint64    `json:"amount"`
	Memo      string    `json:"memo,omitempty"`
	Reference string    `json:"reference,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func tokenEntryResponseFrom(e *model.TokenEntry) tokenEntryResponse {
	return tokenEntryResponse{
		ID:        e.ID.String(),
		Mint:      e.Mint,
		Kind:      string(e.Kind),
		From:      e.From,
		To:        e.To,
		Amount:    e.Amount,
		Memo:      e.Memo,
		Reference: e.Reference,
		CreatedAt: e.CreatedAt,
	}
}
