package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
)

func TestCreateConnection(t *testing.T) {
	f := newFixture(t)
	community := f.bootstrap()
	ctx := context.Background()

	meta := "met at the spring meetup"
	conn, err := f.eng.CreateConnection(ctx, aliceWallet, CreateConnectionParams{
		Community: "testdao", Other: bobWallet, Kind: model.ConnectionFriend, Metadata: &meta,
	})
	require.NoError(t, err)
	require.NotNil(t, conn.Metadata)
	assert.Equal(t, meta, *conn.Metadata)

	alice := f.member(community, aliceWallet)
	bob := f.member(community, bobWallet)
	assert.Equal(t, uint32(1), alice.TotalConnections)
	assert.Equal(t, uint32(1), bob.TotalConnections)

	// the reverse direction names the same connection
	_, err = f.eng.CreateConnection(ctx, bobWallet, CreateConnectionParams{
		Community: "testdao", Other: aliceWallet, Kind: model.ConnectionColleague,
	})
	assert.Equal(t, model.KindDuplicate, model.KindOf(err))

	_, err = f.eng.CreateConnection(ctx, aliceWallet, CreateConnectionParams{
		Community: "testdao", Other: aliceWallet, Kind: model.ConnectionFriend,
	})
	assert.Equal(t, model.KindInvalidArgument, model.KindOf(err))
}

func TestRecordInteraction(t *testing.T) {
	f := newFixture(t)
	f.bootstrap()
	ctx := context.Background()

	conn, err := f.eng.CreateConnection(ctx, aliceWallet, CreateConnectionParams{
		Community: "testdao", Other: bobWallet, Kind: model.ConnectionFriend,
	})
	require.NoError(t, err)

	f.advance(time.Hour)
	require.NoError(t, f.eng.RecordInteraction(ctx, bobWallet, "testdao", aliceWallet, model.InteractionPayment))
	require.NoError(t, f.eng.RecordInteraction(ctx, aliceWallet, "testdao", bobWallet, model.InteractionMessage))

	stored, err := f.st.GetConnection(ctx, conn.Address)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), stored.InteractionCount)
	assert.Equal(t, f.now, stored.LastInteractionAt)

	err = f.eng.RecordInteraction(ctx, aliceWallet, "testdao", carolWallet, model.InteractionMessage)
	assert.Equal(t, model.KindNotFound, model.KindOf(err))
}

func TestUpdateConnectionMetadata(t *testing.T) {
	f := newFixture(t)
	f.bootstrap()
	ctx := context.Background()

	conn, err := f.eng.CreateConnection(ctx, aliceWallet, CreateConnectionParams{
		Community: "testdao", Other: bobWallet, Kind: model.ConnectionFriend,
	})
	require.NoError(t, err)

	note := "project partner"
	require.NoError(t, f.eng.UpdateConnectionMetadata(ctx, bobWallet, "testdao", aliceWallet, &note))

	stored, err := f.st.GetConnection(ctx, conn.Address)
	require.NoError(t, err)
	require.NotNil(t, stored.Metadata)
	assert.Equal(t, note, *stored.Metadata)

	// nil clears
	require.NoError(t, f.eng.UpdateConnectionMetadata(ctx, aliceWallet, "testdao", bobWallet, nil))
	stored, err = f.st.GetConnection(ctx, conn.Address)
	require.NoError(t, err)
	assert.Nil(t, stored.Metadata)

	long := string(make([]byte, model.ConnectionMetadataMaxLen+1))
	err = f.eng.UpdateConnectionMetadata(ctx, aliceWallet, "testdao", bobWallet, &long)
	assert.Equal(t, model.KindInvalidArgument, model.KindOf(err))
}

func TestRemoveConnection(t *testing.T) {
	f := newFixture(t)
	community := f.bootstrap()
	ctx := context.Background()

	conn, err := f.eng.CreateConnection(ctx, aliceWallet, CreateConnectionParams{
		Community: "testdao", Other: bobWallet, Kind: model.ConnectionFriend,
	})
	require.NoError(t, err)

	require.NoError(t, f.eng.RemoveConnection(ctx, bobWallet, "testdao", aliceWallet))

	stored, err := f.st.GetConnection(ctx, conn.Address)
	require.NoError(t, err)
	assert.Nil(t, stored)

	alice := f.member(community, aliceWallet)
	bob := f.member(community, bobWallet)
	assert.Equal(t, uint32(0), alice.TotalConnections)
	assert.Equal(t, uint32(0), bob.TotalConnections)

	// removing again is a not-found, and the pair may reconnect after
	err = f.eng.RemoveConnection(ctx, aliceWallet, "testdao", bobWallet)
	assert.Equal(t, model.KindNotFound, model.KindOf(err))

	_, err = f.eng.CreateConnection(ctx, aliceWallet, CreateConnectionParams{
		Community: "testdao", Other: bobWallet, Kind: model.ConnectionColleague,
	})
	assert.NoError(t, err)
}

func TestUpdateReputation(t *testing.T) {
	f := newFixture(t)
	community := f.bootstrap()
	ctx := context.Background()

	require.NoError(t, f.eng.UpdateReputation(ctx, adminWallet, UpdateReputationParams{
		Community: "testdao", Member: aliceWallet, Delta: 40, Reason: "organized the spring meetup",
	}))
	require.NoError(t, f.eng.UpdateReputation(ctx, adminWallet, UpdateReputationParams{
		Community: "testdao", Member: aliceWallet, Delta: -100, Reason: "missed three commitments",
	}))

	// the running score goes negative; only the per-adjustment delta is bounded
	alice := f.member(community, aliceWallet)
	assert.Equal(t, int64(-60), alice.ReputationScore)

	err := f.eng.UpdateReputation(ctx, adminWallet, UpdateReputationParams{
		Community: "testdao", Member: aliceWallet, Delta: 101, Reason: "too generous",
	})
	assert.Equal(t, model.KindInvalidArgument, model.KindOf(err))

	err = f.eng.UpdateReputation(ctx, adminWallet, UpdateReputationParams{
		Community: "testdao", Member: aliceWallet, Delta: 10, Reason: "ok",
	})
	assert.Equal(t, model.KindInvalidArgument, model.KindOf(err))

	err = f.eng.UpdateReputation(ctx, bobWallet, UpdateReputationParams{
		Community: "testdao", Member: aliceWallet, Delta: 10, Reason: "peer endorsement",
	})
	assert.Equal(t, model.KindUnauthorized, model.KindOf(err))
}
