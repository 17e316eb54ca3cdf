package memory

import "github.com/pritamp20/socialchain-ledger/internal/domain/model"

// Reads hand out copies so callers can mutate freely before Put; nil
// stays nil to signal a missing record.

func cloneCommunity(c *model.Community) *model.Community {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func cloneMember(m *model.Member) *model.Member {
	if m == nil {
		return nil
	}
	cp := *m
	if m.NfcCard != nil {
		card := *m.NfcCard
		cp.NfcCard = &card
	}
	return &cp
}

func cloneProposal(p *model.Proposal) *model.Proposal {
	if p == nil {
		return nil
	}
	cp := *p
	if p.ExecutionData != nil {
		cp.ExecutionData = append([]byte(nil), p.ExecutionData...)
	}
	if p.ExecutedAt != nil {
		at := *p.ExecutedAt
		cp.ExecutedAt = &at
	}
	return &cp
}

func cloneVote(v *model.Vote) *model.Vote {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}

func cloneTokenMint(tm *model.TokenMint) *model.TokenMint {
	if tm == nil {
		return nil
	}
	cp := *tm
	return &cp
}

func cloneNfcCard(c *model.NfcCard) *model.NfcCard {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func cloneConnection(c *model.Connection) *model.Connection {
	if c == nil {
		return nil
	}
	cp := *c
	if c.Metadata != nil {
		meta := *c.Metadata
		cp.Metadata = &meta
	}
	return &cp
}

func clonePaymentRequest(pr *model.PaymentRequest) *model.PaymentRequest {
	if pr == nil {
		return nil
	}
	cp := *pr
	if pr.SettledAt != nil {
		at := *pr.SettledAt
		cp.SettledAt = &at
	}
	return &cp
}

func cloneEvent(e *model.Event) *model.Event {
	if e == nil {
		return nil
	}
	cp := *e
	if e.MaxAttendees != nil {
		max := *e.MaxAttendees
		cp.MaxAttendees = &max
	}
	if e.TokenReward != nil {
		reward := *e.TokenReward
		cp.TokenReward = &reward
	}
	return &cp
}

func cloneAttendance(a *model.Attendance) *model.Attendance {
	if a == nil {
		return nil
	}
	cp := *a
	return &cp
}
