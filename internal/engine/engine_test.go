package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
)

func TestAppliedInstructionsPublished(t *testing.T) {
	f := newFixture(t)
	community := f.bootstrap()

	events := f.pub.Events()
	require.NotEmpty(t, events)
	assert.Equal(t, "initializeCommunity", events[0].Instruction)
	assert.Equal(t, community.Address, events[0].Address)
}

func TestRejectedInstructionsNotPublished(t *testing.T) {
	f := newFixture(t)
	f.bootstrap()
	before := len(f.pub.Events())

	_, err := f.eng.RegisterMember(context.Background(), aliceWallet, RegisterMemberParams{
		Community: "testdao",
		Name:      "alice again",
	})
	require.Equal(t, model.KindDuplicate, model.KindOf(err))
	assert.Len(t, f.pub.Events(), before)
}
