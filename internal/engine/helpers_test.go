package engine

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pritamp20/socialchain-ledger/internal/address"
	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
	"github.com/pritamp20/socialchain-ledger/internal/store/memory"
	"github.com/pritamp20/socialchain-ledger/internal/stream"
)

const (
	adminWallet = "AdminWa11et11111111111111111111111111111111"
	aliceWallet = "A1iceWa11et1111111111111111111111111111111"
	bobWallet   = "BobWa11et111111111111111111111111111111111"
	carolWallet = "Caro1Wa11et1111111111111111111111111111111"
)

type fixture struct {
	t   *testing.T
	eng *Engine
	st  *memory.Store
	pub *stream.InMemoryStream
	now time.Time
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		t:   t,
		st:  memory.New(),
		pub: stream.NewInMemoryStream(),
		now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.eng = New(f.st, address.NewDeriver(256), logger,
		WithClock(func() time.Time { return f.now }),
		WithPublisher(f.pub),
	)
	return f
}

func (f *fixture) advance(d time.Duration) { f.now = f.now.Add(d) }

// bootstrap stands up a community named "testdao" with a live token and
// three registered members funded 1000/500/0.
func (f *fixture) bootstrap() *model.Community {
	f.t.Helper()
	ctx := context.Background()

	community, err := f.eng.InitializeCommunity(ctx, adminWallet, InitializeCommunityParams{
		Name:                "testdao",
		TokenSymbol:         "TDAO",
		TokenDecimals:       6,
		GovernanceThreshold: 51,
	})
	require.NoError(f.t, err)

	_, err = f.eng.CreateCommunityToken(ctx, adminWallet, "testdao", 10_000)
	require.NoError(f.t, err)

	for _, m := range []struct {
		wallet string
		name   string
	}{
		{adminWallet, "admin"},
		{aliceWallet, "alice"},
		{bobWallet, "bob"},
		{carolWallet, "carol"},
	} {
		_, err = f.eng.RegisterMember(ctx, m.wallet, RegisterMemberParams{
			Community: "testdao",
			Name:      m.name,
		})
		require.NoError(f.t, err)
	}

	require.NoError(f.t, f.eng.MintTokensToMember(ctx, adminWallet, "testdao", aliceWallet, 1000))
	require.NoError(f.t, f.eng.MintTokensToMember(ctx, adminWallet, "testdao", bobWallet, 500))
	return community
}

func (f *fixture) balance(mint, holder string) uint64 {
	f.t.Helper()
	bal, err := f.st.GetBalance(context.Background(), mint, holder)
	require.NoError(f.t, err)
	return bal
}

func (f *fixture) member(community *model.Community, wallet string) *model.Member {
	f.t.Helper()
	m, err := f.st.GetMember(context.Background(), f.eng.Deriver().Member(community.Address, wallet))
	require.NoError(f.t, err)
	require.NotNil(f.t, m)
	return m
}
