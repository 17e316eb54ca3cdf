package engine

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
)

func TestCreateCommunityTokenOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	community, err := f.eng.InitializeCommunity(ctx, adminWallet, InitializeCommunityParams{
		Name: "testdao", TokenSymbol: "TDAO", TokenDecimals: 6, GovernanceThreshold: 51,
	})
	require.NoError(t, err)

	// non-admin may not mint the initial supply
	_, err = f.eng.CreateCommunityToken(ctx, aliceWallet, "testdao", 10_000)
	assert.Equal(t, model.KindUnauthorized, model.KindOf(err))

	mint, err := f.eng.CreateCommunityToken(ctx, adminWallet, "testdao", 10_000)
	require.NoError(t, err)
	assert.True(t, mint.Initialized)
	assert.Equal(t, uint64(10_000), mint.Supply)
	assert.Equal(t, uint64(10_000), f.balance(community.TokenMint, community.Treasury))

	// second creation rejects even with a different supply
	_, err = f.eng.CreateCommunityToken(ctx, adminWallet, "testdao", 1)
	assert.Equal(t, model.KindInvalidState, model.KindOf(err))
}

func TestMintTokensToMember(t *testing.T) {
	f := newFixture(t)
	community := f.bootstrap()
	ctx := context.Background()

	require.NoError(t, f.eng.MintTokensToMember(ctx, adminWallet, "testdao", carolWallet, 250))
	assert.Equal(t, uint64(250), f.balance(community.TokenMint, carolWallet))

	mint, err := f.st.GetTokenMint(ctx, community.TokenMint)
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000+1000+500+250), mint.Supply)

	err = f.eng.MintTokensToMember(ctx, aliceWallet, "testdao", carolWallet, 250)
	assert.Equal(t, model.KindUnauthorized, model.KindOf(err))

	err = f.eng.MintTokensToMember(ctx, adminWallet, "testdao", carolWallet, 0)
	assert.Equal(t, model.KindInvalidArgument, model.KindOf(err))
}

func TestTransferTokensFee(t *testing.T) {
	f := newFixture(t)
	community := f.bootstrap()
	ctx := context.Background()

	fee := uint16(250) // 2.5%
	_, err := f.eng.UpdateCommunityConfig(ctx, adminWallet, UpdateCommunityConfigParams{
		Community: "testdao", NewFeeBps: &fee,
	})
	require.NoError(t, err)

	treasuryBefore := f.balance(community.TokenMint, community.Treasury)
	supplyBefore := f.st.TotalHeld(community.TokenMint)

	require.NoError(t, f.eng.TransferTokens(ctx, aliceWallet, TransferTokensParams{
		Community: "testdao", Recipient: bobWallet, Amount: 400,
	}))

	// fee = 400 * 250 / 10000 = 10
	assert.Equal(t, uint64(600), f.balance(community.TokenMint, aliceWallet))
	assert.Equal(t, uint64(890), f.balance(community.TokenMint, bobWallet))
	assert.Equal(t, treasuryBefore+10, f.balance(community.TokenMint, community.Treasury))

	// transfers conserve total supply
	assert.Equal(t, supplyBefore, f.st.TotalHeld(community.TokenMint))

	sender := f.member(community, aliceWallet)
	recipient := f.member(community, bobWallet)
	assert.Equal(t, uint32(1), sender.TotalTransactions)
	assert.Equal(t, uint32(1), recipient.TotalTransactions)
}

func TestTransferTokensZeroFee(t *testing.T) {
	f := newFixture(t)
	community := f.bootstrap()
	ctx := context.Background()

	require.NoError(t, f.eng.TransferTokens(ctx, aliceWallet, TransferTokensParams{
		Community: "testdao", Recipient: bobWallet, Amount: 100,
	}))
	assert.Equal(t, uint64(900), f.balance(community.TokenMint, aliceWallet))
	assert.Equal(t, uint64(600), f.balance(community.TokenMint, bobWallet))
	// nothing lands in treasury custody beyond the initial supply
	assert.Equal(t, uint64(10_000), f.balance(community.TokenMint, community.Treasury))
}

func TestTransferTokensInsufficientBalance(t *testing.T) {
	f := newFixture(t)
	community := f.bootstrap()
	ctx := context.Background()

	err := f.eng.TransferTokens(ctx, bobWallet, TransferTokensParams{
		Community: "testdao", Recipient: aliceWallet, Amount: 501,
	})
	assert.Equal(t, model.KindInsufficientBalance, model.KindOf(err))

	// the failed transfer moved nothing
	assert.Equal(t, uint64(500), f.balance(community.TokenMint, bobWallet))
	assert.Equal(t, uint64(1000), f.balance(community.TokenMint, aliceWallet))
}

func TestTransferTokensToSelf(t *testing.T) {
	f := newFixture(t)
	community := f.bootstrap()
	ctx := context.Background()

	heldBefore := f.st.TotalHeld(community.TokenMint)

	err := f.eng.TransferTokens(ctx, aliceWallet, TransferTokensParams{
		Community: "testdao", Recipient: aliceWallet, Amount: 400,
	})
	assert.Equal(t, model.KindInvalidArgument, model.KindOf(err))

	// a self-transfer must not create tokens
	assert.Equal(t, uint64(1000), f.balance(community.TokenMint, aliceWallet))
	assert.Equal(t, heldBefore, f.st.TotalHeld(community.TokenMint))
}

func TestTransferTokensMemoTooLong(t *testing.T) {
	f := newFixture(t)
	f.bootstrap()
	ctx := context.Background()

	err := f.eng.TransferTokens(ctx, aliceWallet, TransferTokensParams{
		Community: "testdao", Recipient: bobWallet, Amount: 10,
		Memo: strings.Repeat("x", model.TransferMemoMaxLen+1),
	})
	assert.Equal(t, model.KindInvalidArgument, model.KindOf(err))
}

func TestDepositToTreasury(t *testing.T) {
	f := newFixture(t)
	community := f.bootstrap()
	ctx := context.Background()

	require.NoError(t, f.eng.DepositToTreasury(ctx, aliceWallet, "testdao", 300))
	assert.Equal(t, uint64(700), f.balance(community.TokenMint, aliceWallet))
	assert.Equal(t, uint64(10_300), f.balance(community.TokenMint, community.Treasury))

	err := f.eng.DepositToTreasury(ctx, aliceWallet, "testdao", 10_000)
	assert.Equal(t, model.KindInsufficientBalance, model.KindOf(err))
}

func TestWithdrawFromTreasuryRequiresExecutedProposal(t *testing.T) {
	f := newFixture(t)
	community := f.bootstrap()
	ctx := context.Background()

	newProposal(t, f, "fund the meetup")

	// active proposal does not authorize a withdrawal
	err := f.eng.WithdrawFromTreasury(ctx, adminWallet, WithdrawFromTreasuryParams{
		Community: "testdao", ProposalTitle: "fund the meetup", Recipient: aliceWallet, Amount: 100,
	})
	assert.Equal(t, model.KindInvalidState, model.KindOf(err))

	_, err = f.eng.CastVote(ctx, aliceWallet, CastVoteParams{
		Community: "testdao", Title: "fund the meetup", Choice: model.VoteYes,
	})
	require.NoError(t, err)
	f.advance(73 * time.Hour)
	_, err = f.eng.FinalizeProposal(ctx, adminWallet, ProposalRef{Community: "testdao", Title: "fund the meetup"})
	require.NoError(t, err)
	_, err = f.eng.ExecuteProposal(ctx, adminWallet, ProposalRef{Community: "testdao", Title: "fund the meetup"})
	require.NoError(t, err)

	require.NoError(t, f.eng.WithdrawFromTreasury(ctx, adminWallet, WithdrawFromTreasuryParams{
		Community: "testdao", ProposalTitle: "fund the meetup", Recipient: aliceWallet, Amount: 100,
	}))
	assert.Equal(t, uint64(9_900), f.balance(community.TokenMint, community.Treasury))
	assert.Equal(t, uint64(1_100), f.balance(community.TokenMint, aliceWallet))
}

func TestBurnTokens(t *testing.T) {
	f := newFixture(t)
	community := f.bootstrap()
	ctx := context.Background()

	require.NoError(t, f.eng.MintTokensToMember(ctx, adminWallet, "testdao", adminWallet, 400))
	supplyBefore := func() uint64 {
		mint, err := f.st.GetTokenMint(ctx, community.TokenMint)
		require.NoError(t, err)
		return mint.Supply
	}()

	require.NoError(t, f.eng.BurnTokens(ctx, adminWallet, "testdao", 150))
	assert.Equal(t, uint64(250), f.balance(community.TokenMint, adminWallet))

	mint, err := f.st.GetTokenMint(ctx, community.TokenMint)
	require.NoError(t, err)
	assert.Equal(t, supplyBefore-150, mint.Supply)

	err = f.eng.BurnTokens(ctx, adminWallet, "testdao", 1_000_000)
	assert.Equal(t, model.KindInsufficientBalance, model.KindOf(err))

	err = f.eng.BurnTokens(ctx, aliceWallet, "testdao", 1)
	assert.Equal(t, model.KindUnauthorized, model.KindOf(err))
}

func TestTokenJournal(t *testing.T) {
	f := newFixture(t)
	community := f.bootstrap()
	ctx := context.Background()

	require.NoError(t, f.eng.TransferTokens(ctx, aliceWallet, TransferTokensParams{
		Community: "testdao", Recipient: bobWallet, Amount: 100, Memo: "lunch",
	}))

	entries, err := f.st.ListTokenEntries(ctx, community.TokenMint, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.TokenEntryTransfer, entries[0].Kind)
	assert.Equal(t, aliceWallet, entries[0].From)
	assert.Equal(t, bobWallet, entries[0].To)
	assert.Equal(t, uint64(100), entries[0].Amount)
	assert.Equal(t, "lunch", entries[0].Memo)
}
