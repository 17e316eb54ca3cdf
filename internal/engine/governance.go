package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
	"github.com/pritamp20/socialchain-ledger/internal/store"
)

type CreateProposalParams struct {
	Community      string
	Title          string
	Description    string
	Kind           model.ProposalKind
	ExecutionData  []byte
	VotingDuration time.Duration
}

// CreateProposal opens a governance item. Proposer must be a member;
// the title is unique per community for as long as the record exists.
func (e *Engine) CreateProposal(ctx context.Context, caller string, p CreateProposalParams) (*model.Proposal, error) {
	if len(p.Title) < model.ProposalTitleMinLen || len(p.Title) > model.ProposalTitleMaxLen {
		return nil, model.ErrInvalidArgument("proposal title must be %d-%d characters", model.ProposalTitleMinLen, model.ProposalTitleMaxLen)
	}
	if len(p.Description) < model.ProposalDescriptionMinLen || len(p.Description) > model.ProposalDescriptionMaxLen {
		return nil, model.ErrInvalidArgument("proposal description must be %d-%d characters", model.ProposalDescriptionMinLen, model.ProposalDescriptionMaxLen)
	}
	if !p.Kind.Valid() {
		return nil, model.ErrInvalidArgument("unknown proposal kind %q", p.Kind)
	}
	if len(p.ExecutionData) > model.ExecutionDataMaxLen {
		return nil, model.ErrInvalidArgument("execution data exceeds %d bytes", model.ExecutionDataMaxLen)
	}
	if p.VotingDuration <= 0 || p.VotingDuration > model.VotingDurationMax {
		return nil, model.ErrInvalidArgument("voting duration must be positive and at most %s", model.VotingDurationMax)
	}

	var out *model.Proposal
	err := e.exec(ctx, "createProposal", func(tx store.Tx) (string, error) {
		community, err := e.loadCommunity(ctx, tx, p.Community)
		if err != nil {
			return "", err
		}
		if _, err := e.loadMember(ctx, tx, community, caller); err != nil {
			return "", err
		}

		proposalAddr := e.addr.Proposal(community.Address, p.Title)
		existing, err := tx.GetProposal(ctx, proposalAddr)
		if err != nil {
			return "", fmt.Errorf("check proposal: %w", err)
		}
		if existing != nil {
			return "", model.ErrDuplicate("proposal %q already exists in %q", p.Title, community.Name)
		}

		now := e.nowFn()
		proposal := &model.Proposal{
			Address:       proposalAddr,
			Community:     community.Address,
			Proposer:      caller,
			Title:         p.Title,
			Description:   p.Description,
			Kind:          p.Kind,
			ExecutionData: p.ExecutionData,
			Status:        model.ProposalActive,
			VotingEndsAt:  now.Add(p.VotingDuration),
			CreatedAt:     now,
		}
		if err := tx.PutProposal(ctx, proposal); err != nil {
			return "", fmt.Errorf("persist proposal: %w", err)
		}

		out = proposal
		return proposalAddr, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type CastVoteParams struct {
	Community string
	Title     string
	Choice    model.VoteChoice
}

// CastVote records one immutable vote per (proposal, voter). Weight is
// the voter's token balance read inside the same transaction; it is
// never revalued afterward. A failed cast leaves the tallies untouched.
func (e *Engine) CastVote(ctx context.Context, caller string, p CastVoteParams) (*model.Vote, error) {
	if !p.Choice.Valid() {
		return nil, model.ErrInvalidArgument("unknown vote choice %q", p.Choice)
	}

	var out *model.Vote
	err := e.exec(ctx, "castVote", func(tx store.Tx) (string, error) {
		community, err := e.loadCommunity(ctx, tx, p.Community)
		if err != nil {
			return "", err
		}
		if _, err := e.loadMember(ctx, tx, community, caller); err != nil {
			return "", err
		}
		proposal, err := e.loadProposal(ctx, tx, community, p.Title)
		if err != nil {
			return "", err
		}

		now := e.nowFn()
		switch proposal.EffectiveStatus(now) {
		case model.ProposalActive:
		case model.ProposalExpired:
			return "", model.ErrExpired("voting on %q ended at %s", proposal.Title, proposal.VotingEndsAt.UTC().Format(time.RFC3339))
		default:
			return "", model.ErrInvalidState("proposal %q is %s, not active", proposal.Title, proposal.Status)
		}

		voteAddr := e.addr.Vote(proposal.Address, caller)
		existing, err := tx.GetVote(ctx, voteAddr)
		if err != nil {
			return "", fmt.Errorf("check vote: %w", err)
		}
		if existing != nil {
			return "", model.ErrDuplicate("wallet %s already voted on %q", caller, proposal.Title)
		}

		weight, err := tx.GetBalance(ctx, community.TokenMint, caller)
		if err != nil {
			return "", fmt.Errorf("read voter balance: %w", err)
		}
		if weight == 0 {
			return "", model.ErrInsufficientBalance("wallet %s holds no tokens to vote with", caller)
		}

		vote := &model.Vote{
			Address:  voteAddr,
			Proposal: proposal.Address,
			Voter:    caller,
			Choice:   p.Choice,
			Weight:   weight,
			VotedAt:  now,
		}
		if err := tx.PutVote(ctx, vote); err != nil {
			return "", fmt.Errorf("persist vote: %w", err)
		}

		switch p.Choice {
		case model.VoteYes:
			proposal.YesVotes += weight
		case model.VoteNo:
			proposal.NoVotes += weight
		case model.VoteAbstain:
			proposal.AbstainVotes += weight
		}
		proposal.TotalVoters++
		if err := tx.PutProposal(ctx, proposal); err != nil {
			return "", fmt.Errorf("update tallies: %w", err)
		}

		out = vote
		return voteAddr, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type ProposalRef struct {
	Community string
	Title     string
}

// FinalizeProposal settles an active proposal after its deadline:
// approved when the yes share clears the community threshold with a
// strict majority, rejected otherwise.
func (e *Engine) FinalizeProposal(ctx context.Context, caller string, ref ProposalRef) (*model.Proposal, error) {
	var out *model.Proposal
	err := e.exec(ctx, "finalizeProposal", func(tx store.Tx) (string, error) {
		community, err := e.loadCommunity(ctx, tx, ref.Community)
		if err != nil {
			return "", err
		}
		proposal, err := e.loadProposal(ctx, tx, community, ref.Title)
		if err != nil {
			return "", err
		}

		if proposal.Status != model.ProposalActive {
			return "", model.ErrInvalidState("proposal %q is %s, not active", proposal.Title, proposal.Status)
		}
		if !e.nowFn().After(proposal.VotingEndsAt) {
			return "", model.ErrInvalidState("voting on %q has not ended", proposal.Title)
		}

		if proposal.Passed(community.GovernanceThreshold) {
			proposal.Status = model.ProposalApproved
		} else {
			proposal.Status = model.ProposalRejected
		}
		if err := tx.PutProposal(ctx, proposal); err != nil {
			return "", fmt.Errorf("persist proposal: %w", err)
		}

		out = proposal
		return proposal.Address, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ExecuteProposal marks an approved proposal executed. The payload is
// recorded, not interpreted; communities define its meaning off-ledger.
func (e *Engine) ExecuteProposal(ctx context.Context, caller string, ref ProposalRef) (*model.Proposal, error) {
	var out *model.Proposal
	err := e.exec(ctx, "executeProposal", func(tx store.Tx) (string, error) {
		community, err := e.loadCommunity(ctx, tx, ref.Community)
		if err != nil {
			return "", err
		}
		proposal, err := e.loadProposal(ctx, tx, community, ref.Title)
		if err != nil {
			return "", err
		}

		if proposal.Status != model.ProposalApproved {
			return "", model.ErrInvalidState("proposal %q is %s, not approved", proposal.Title, proposal.Status)
		}
		if proposal.ExecutedAt != nil {
			return "", model.ErrInvalidState("proposal %q already executed", proposal.Title)
		}

		now := e.nowFn()
		proposal.Status = model.ProposalExecuted
		proposal.ExecutedAt = &now
		if err := tx.PutProposal(ctx, proposal); err != nil {
			return "", fmt.Errorf("persist proposal: %w", err)
		}

		out = proposal
		return proposal.Address, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CancelProposal moves an active proposal to cancelled. Proposer or
// community admin only; finalized, executed, and already-cancelled
// proposals stay as they are.
func (e *Engine) CancelProposal(ctx context.Context, caller string, ref ProposalRef) (*model.Proposal, error) {
	var out *model.Proposal
	err := e.exec(ctx, "cancelProposal", func(tx store.Tx) (string, error) {
		community, err := e.loadCommunity(ctx, tx, ref.Community)
		if err != nil {
			return "", err
		}
		proposal, err := e.loadProposal(ctx, tx, community, ref.Title)
		if err != nil {
			return "", err
		}

		if proposal.Proposer != caller && community.Admin != caller {
			return "", model.ErrUnauthorized("only the proposer or admin may cancel")
		}
		if proposal.Status != model.ProposalActive {
			return "", model.ErrInvalidState("cannot cancel a %s proposal", proposal.Status)
		}

		proposal.Status = model.ProposalCancelled
		if err := tx.PutProposal(ctx, proposal); err != nil {
			return "", fmt.Errorf("persist proposal: %w", err)
		}

		out = proposal
		return proposal.Address, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Engine) loadProposal(ctx context.Context, tx store.Tx, community *model.Community, title string) (*model.Proposal, error) {
	proposal, err := tx.GetProposal(ctx, e.addr.Proposal(community.Address, title))
	if err != nil {
		return nil, fmt.Errorf("load proposal: %w", err)
	}
	if proposal == nil {
		return nil, model.ErrNotFound("proposal %q not found in %q", title, community.Name)
	}
	return proposal, nil
}
