package stream

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStreamPublish(t *testing.T) {
	s := NewInMemoryStream()
	ctx := context.Background()

	evt := AppliedInstruction{
		Instruction: "initializeCommunity",
		Address:     "addr1",
		AppliedAt:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.Publish(ctx, evt))
	require.NoError(t, s.Publish(ctx, AppliedInstruction{Instruction: "registerMember", Address: "addr2"}))

	events := s.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "initializeCommunity", events[0].Instruction)
	assert.Equal(t, "addr2", events[1].Address)
}

func TestInMemoryStreamEventsReturnsSnapshot(t *testing.T) {
	s := NewInMemoryStream()
	require.NoError(t, s.Publish(context.Background(), AppliedInstruction{Instruction: "castVote"}))

	events := s.Events()
	events[0].Instruction = "mutated"

	assert.Equal(t, "castVote", s.Events()[0].Instruction)
}
