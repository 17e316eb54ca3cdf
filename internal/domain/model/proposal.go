package model

import "time"

type ProposalKind string

const (
	ProposalKindTransfer     ProposalKind = "transfer"
	ProposalKindConfigChange ProposalKind = "config_change"
	ProposalKindMemberAction ProposalKind = "member_action"
	ProposalKindCustom       ProposalKind = "custom"
)

func (k ProposalKind) Valid() bool {
	switch k {
	case ProposalKindTransfer, ProposalKindConfigChange, ProposalKindMemberAction, ProposalKindCustom:
		return true
	}
	return false
}

type ProposalStatus string

const (
	ProposalActive    ProposalStatus = "active"
	ProposalApproved  ProposalStatus = "approved"
	ProposalRejected  ProposalStatus = "rejected"
	ProposalExecuted  ProposalStatus = "executed"
	ProposalCancelled ProposalStatus = "cancelled"

	// ProposalExpired is derived, never stored: an active proposal past
	// its deadline reads as expired.
	ProposalExpired ProposalStatus = "expired"
)

// Proposal is one governance item. Title is unique per community
// (derivation-enforced) and description/kind/payload are immutable
// after creation; only status, tallies, and ExecutedAt change.
type Proposal struct {
	Address       string         `db:"address"`
	Community     string         `db:"community"`
	Proposer      string         `db:"proposer"`
	Title         string         `db:"title"`
	Description   string         `db:"description"`
	Kind          ProposalKind   `db:"kind"`
	ExecutionData []byte         `db:"execution_data"`
	Status        ProposalStatus `db:"status"`
	YesVotes      uint64         `db:"yes_votes"`
	NoVotes       uint64         `db:"no_votes"`
	AbstainVotes  uint64         `db:"abstain_votes"`
	TotalVoters   uint32         `db:"total_voters"`
	VotingEndsAt  time.Time      `db:"voting_ends_at"`
	CreatedAt     time.Time      `db:"created_at"`
	ExecutedAt    *time.Time     `db:"executed_at"`
}

const (
	ProposalTitleMinLen       = 3
	ProposalTitleMaxLen       = 100
	ProposalDescriptionMinLen = 10
	ProposalDescriptionMaxLen = 500
	ExecutionDataMaxLen       = 1024

	VotingDurationMax = 30 * 24 * time.Hour
)

// EffectiveStatus applies lazy expiry: there is no background job, the
// deadline is compared at read/mutate time.
func (p *Proposal) EffectiveStatus(now time.Time) ProposalStatus {
	if p.Status == ProposalActive && now.After(p.VotingEndsAt) {
		return ProposalExpired
	}
	return p.Status
}

// Passed reports whether the final tally clears the community
// threshold: yes >= (yes+no) * threshold / 100, with a strict majority
// over no votes. Abstain votes carry no weight in the ratio.
func (p *Proposal) Passed(threshold uint8) bool {
	total := p.YesVotes + p.NoVotes
	required := total / 100 * uint64(threshold)
	if rem := total % 100; rem > 0 {
		required += rem * uint64(threshold) / 100
	}
	return p.YesVotes >= required && p.YesVotes > p.NoVotes
}

type VoteChoice string

const (
	VoteYes     VoteChoice = "yes"
	VoteNo      VoteChoice = "no"
	VoteAbstain VoteChoice = "abstain"
)

func (c VoteChoice) Valid() bool {
	return c == VoteYes || c == VoteNo || c == VoteAbstain
}

// Vote is immutable once cast. Weight is the voter's token balance at
// cast time and is never revalued on later balance changes.
type Vote struct {
	Address  string     `db:"address"`
	Proposal string     `db:"proposal"`
	Voter    string     `db:"voter"`
	Choice   VoteChoice `db:"choice"`
	Weight   uint64     `db:"weight"`
	VotedAt  time.Time  `db:"voted_at"`
}
