package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProposalEffectiveStatus(t *testing.T) {
	deadline := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	p := &Proposal{Status: ProposalActive, VotingEndsAt: deadline}

	assert.Equal(t, ProposalActive, p.EffectiveStatus(deadline.Add(-time.Hour)))
	assert.Equal(t, ProposalActive, p.EffectiveStatus(deadline))
	assert.Equal(t, ProposalExpired, p.EffectiveStatus(deadline.Add(time.Second)))

	// Terminal statuses are never overridden by the clock.
	p.Status = ProposalCancelled
	assert.Equal(t, ProposalCancelled, p.EffectiveStatus(deadline.Add(time.Hour)))
}

func TestProposalPassed(t *testing.T) {
	tests := []struct {
		name      string
		yes, no   uint64
		threshold uint8
		want      bool
	}{
		{"unanimous yes", 100, 0, 51, true},
		{"bare majority at 51", 51, 49, 51, true},
		{"below threshold", 50, 50, 51, false},
		{"majority but under threshold", 60, 40, 75, false},
		{"threshold met", 75, 25, 75, true},
		{"no votes at all", 0, 0, 51, false},
		{"yes must exceed no at 1 percent", 5, 5, 1, false},
		{"large tallies", 1 << 40, 1 << 39, 66, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Proposal{YesVotes: tt.yes, NoVotes: tt.no}
			assert.Equal(t, tt.want, p.Passed(tt.threshold))
		})
	}
}

func TestPaymentRequestEffectiveStatus(t *testing.T) {
	expiry := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	pr := &PaymentRequest{Status: PaymentPending, ExpiresAt: expiry}

	assert.Equal(t, PaymentPending, pr.EffectiveStatus(expiry))
	assert.Equal(t, PaymentExpired, pr.EffectiveStatus(expiry.Add(time.Second)))

	pr.Status = PaymentCancelled
	assert.Equal(t, PaymentCancelled, pr.EffectiveStatus(expiry.Add(time.Hour)))
}
