package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
)

func (s session) GetProposal(ctx context.Context, address string) (*model.Proposal, error) {
	var (
		p             model.Proposal
		yes, no, abst string
		executedAt    sql.NullTime
	)
	err := s.q.QueryRowContext(ctx, `
		SELECT address, community, proposer, title, description, kind, execution_data,
		       status, yes_votes::text, no_votes::text, abstain_votes::text, total_voters,
		       voting_ends_at, executed_at, created_at
		FROM proposals
		WHERE address = $1`+s.forUpdate(),
		address,
	).Scan(
		&p.Address, &p.Community, &p.Proposer, &p.Title, &p.Description, &p.Kind, &p.ExecutionData,
		&p.Status, &yes, &no, &abst, &p.TotalVoters,
		&p.VotingEndsAt, &executedAt, &p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get proposal: %w", err)
	}
	if p.YesVotes, err = uintColumn(yes); err != nil {
		return nil, fmt.Errorf("get proposal: %w", err)
	}
	if p.NoVotes, err = uintColumn(no); err != nil {
		return nil, fmt.Errorf("get proposal: %w", err)
	}
	if p.AbstainVotes, err = uintColumn(abst); err != nil {
		return nil, fmt.Errorf("get proposal: %w", err)
	}
	if executedAt.Valid {
		p.ExecutedAt = &executedAt.Time
	}
	return &p, nil
}

func (s session) PutProposal(ctx context.Context, p *model.Proposal) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO proposals (address, community, proposer, title, description, kind, execution_data,
		                       status, yes_votes, no_votes, abstain_votes, total_voters,
		                       voting_ends_at, executed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::numeric, $10::numeric, $11::numeric, $12, $13, $14, $15)
		ON CONFLICT (address) DO UPDATE SET
			status = EXCLUDED.status,
			yes_votes = EXCLUDED.yes_votes,
			no_votes = EXCLUDED.no_votes,
			abstain_votes = EXCLUDED.abstain_votes,
			total_voters = EXCLUDED.total_voters,
			executed_at = EXCLUDED.executed_at`,
		p.Address, p.Community, p.Proposer, p.Title, p.Description, p.Kind, p.ExecutionData,
		p.Status, uintParam(p.YesVotes), uintParam(p.NoVotes), uintParam(p.AbstainVotes), p.TotalVoters,
		p.VotingEndsAt, p.ExecutedAt, p.CreatedAt,
	)
	return mapError("put proposal", err)
}

func (s session) GetVote(ctx context.Context, address string) (*model.Vote, error) {
	var (
		v      model.Vote
		weight string
	)
	err := s.q.QueryRowContext(ctx, `
		SELECT address, proposal, voter, choice, weight::text, voted_at
		FROM votes
		WHERE address = $1`+s.forUpdate(),
		address,
	).Scan(&v.Address, &v.Proposal, &v.Voter, &v.Choice, &weight, &v.VotedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get vote: %w", err)
	}
	if v.Weight, err = uintColumn(weight); err != nil {
		return nil, fmt.Errorf("get vote: %w", err)
	}
	return &v, nil
}

// PutVote inserts only. Votes are immutable; a conflicting address is a
// duplicate cast.
func (s session) PutVote(ctx context.Context, v *model.Vote) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO votes (address, proposal, voter, choice, weight, voted_at)
		VALUES ($1, $2, $3, $4, $5::numeric, $6)`,
		v.Address, v.Proposal, v.Voter, v.Choice, uintParam(v.Weight), v.VotedAt,
	)
	return mapError("put vote", err)
}
