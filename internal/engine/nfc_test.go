package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
)

const cardID = "CARD-0001-ALICE"

func TestNfcCardLifecycle(t *testing.T) {
	f := newFixture(t)
	community := f.bootstrap()
	ctx := context.Background()

	card, err := f.eng.CreateNfcCard(ctx, aliceWallet, "testdao", cardID, "")
	require.NoError(t, err)
	assert.True(t, card.IsActive)
	assert.Equal(t, int64(0), card.TotalUses)

	member := f.member(community, aliceWallet)
	require.NotNil(t, member.NfcCard)
	assert.Equal(t, card.Address, *member.NfcCard)

	// owner authenticates; a stranger's attempt fails and leaves the
	// use counter where the one success put it
	require.NoError(t, f.eng.AuthenticateNfc(ctx, aliceWallet, "testdao", cardID))
	err = f.eng.AuthenticateNfc(ctx, bobWallet, "testdao", cardID)
	assert.Equal(t, model.KindUnauthorized, model.KindOf(err))

	stored, err := f.st.GetNfcCard(ctx, card.Address)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.TotalUses)
}

func TestCreateNfcCardConstraints(t *testing.T) {
	f := newFixture(t)
	f.bootstrap()
	ctx := context.Background()

	_, err := f.eng.CreateNfcCard(ctx, aliceWallet, "testdao", "short", "")
	assert.Equal(t, model.KindInvalidArgument, model.KindOf(err))

	_, err = f.eng.CreateNfcCard(ctx, aliceWallet, "testdao", cardID, "")
	require.NoError(t, err)

	// one card per member
	_, err = f.eng.CreateNfcCard(ctx, aliceWallet, "testdao", "CARD-0002-ALICE", "")
	assert.Equal(t, model.KindInvalidState, model.KindOf(err))

	// one member per card
	_, err = f.eng.CreateNfcCard(ctx, bobWallet, "testdao", cardID, "")
	assert.Equal(t, model.KindDuplicate, model.KindOf(err))
}

func TestTransferNfcCard(t *testing.T) {
	f := newFixture(t)
	community := f.bootstrap()
	ctx := context.Background()

	card, err := f.eng.CreateNfcCard(ctx, aliceWallet, "testdao", cardID, "")
	require.NoError(t, err)

	// only the holder may hand it over
	err = f.eng.TransferNfcCard(ctx, bobWallet, "testdao", cardID, carolWallet)
	assert.Equal(t, model.KindUnauthorized, model.KindOf(err))

	require.NoError(t, f.eng.TransferNfcCard(ctx, aliceWallet, "testdao", cardID, bobWallet))

	alice := f.member(community, aliceWallet)
	bob := f.member(community, bobWallet)
	assert.Nil(t, alice.NfcCard)
	require.NotNil(t, bob.NfcCard)
	assert.Equal(t, card.Address, *bob.NfcCard)

	// the recipient must be cardless
	_, err = f.eng.CreateNfcCard(ctx, carolWallet, "testdao", "CARD-0003-CAROL", "")
	require.NoError(t, err)
	err = f.eng.TransferNfcCard(ctx, bobWallet, "testdao", cardID, carolWallet)
	assert.Equal(t, model.KindInvalidState, model.KindOf(err))
}

func TestRevokeNfcCard(t *testing.T) {
	f := newFixture(t)
	community := f.bootstrap()
	ctx := context.Background()

	card, err := f.eng.CreateNfcCard(ctx, aliceWallet, "testdao", cardID, "")
	require.NoError(t, err)

	// a bystander may not revoke; the admin may
	err = f.eng.RevokeNfcCard(ctx, bobWallet, "testdao", cardID)
	assert.Equal(t, model.KindUnauthorized, model.KindOf(err))

	require.NoError(t, f.eng.RevokeNfcCard(ctx, adminWallet, "testdao", cardID))

	stored, err := f.st.GetNfcCard(ctx, card.Address)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	// revocation frees the member's card slot and is terminal
	alice := f.member(community, aliceWallet)
	assert.Nil(t, alice.NfcCard)

	err = f.eng.AuthenticateNfc(ctx, aliceWallet, "testdao", cardID)
	assert.Equal(t, model.KindInvalidState, model.KindOf(err))

	err = f.eng.RevokeNfcCard(ctx, adminWallet, "testdao", cardID)
	assert.Equal(t, model.KindInvalidState, model.KindOf(err))
}
