package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
	"github.com/pritamp20/socialchain-ledger/internal/store"
)

func TestWithinTxCommitsOnSuccess(t *testing.T) {
	s := New()
	ctx := context.Background()

	err := s.WithinTx(ctx, func(tx store.Tx) error {
		return tx.PutCommunity(ctx, &model.Community{Address: "c1", Name: "TestDAO"})
	})
	require.NoError(t, err)

	c, err := s.GetCommunity(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "TestDAO", c.Name)
}

func TestWithinTxDiscardsOnError(t *testing.T) {
	s := New()
	ctx := context.Background()
	boom := errors.New("validation failed")

	err := s.WithinTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.PutCommunity(ctx, &model.Community{Address: "c1"}))
		require.NoError(t, tx.SetBalance(ctx, "mint1", "alice", 100))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	c, err := s.GetCommunity(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, c, "rejected transition must leave no partial state")

	bal, err := s.GetBalance(ctx, "mint1", "alice")
	require.NoError(t, err)
	assert.Zero(t, bal)
}

func TestTxReadsOwnWrites(t *testing.T) {
	s := New()
	ctx := context.Background()

	err := s.WithinTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.SetBalance(ctx, "mint1", "alice", 75))
		bal, err := tx.GetBalance(ctx, "mint1", "alice")
		require.NoError(t, err)
		assert.Equal(t, uint64(75), bal)
		return nil
	})
	require.NoError(t, err)
}

func TestReadsReturnCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.WithinTx(ctx, func(tx store.Tx) error {
		return tx.PutMember(ctx, &model.Member{Address: "m1", Name: "Alice"})
	}))

	m, err := s.GetMember(ctx, "m1")
	require.NoError(t, err)
	m.Name = "Mallory"

	again, err := s.GetMember(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", again.Name)
}

func TestDeleteConnection(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.WithinTx(ctx, func(tx store.Tx) error {
		return tx.PutConnection(ctx, &model.Connection{Address: "conn1", Kind: model.ConnectionFriend})
	}))

	require.NoError(t, s.WithinTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.DeleteConnection(ctx, "conn1"))
		c, err := tx.GetConnection(ctx, "conn1")
		require.NoError(t, err)
		assert.Nil(t, c, "delete must be visible within the transaction")
		return nil
	}))

	c, err := s.GetConnection(ctx, "conn1")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestListTokenEntries(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.WithinTx(ctx, func(tx store.Tx) error {
		for i := 0; i < 3; i++ {
			e := &model.TokenEntry{Mint: "mint1", Kind: model.TokenEntryMint, Amount: uint64(i + 1), CreatedAt: base.Add(time.Duration(i) * time.Minute)}
			require.NoError(t, tx.AppendTokenEntry(ctx, e))
		}
		return tx.AppendTokenEntry(ctx, &model.TokenEntry{Mint: "other", Kind: model.TokenEntryMint, Amount: 99, CreatedAt: base})
	}))

	entries, err := s.ListTokenEntries(ctx, "mint1", 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, uint64(3), entries[0].Amount, "newest first")
}

func TestListTokenEntriesSameTimestamp(t *testing.T) {
	s := New()
	ctx := context.Background()
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// identical CreatedAt; the later append still lists first
	require.NoError(t, s.WithinTx(ctx, func(tx store.Tx) error {
		for _, kind := range []model.TokenEntryKind{model.TokenEntryMint, model.TokenEntryTransfer} {
			e := &model.TokenEntry{Mint: "mint1", Kind: kind, Amount: 7, CreatedAt: at}
			if err := tx.AppendTokenEntry(ctx, e); err != nil {
				return err
			}
		}
		return nil
	}))

	entries, err := s.ListTokenEntries(ctx, "mint1", 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, model.TokenEntryTransfer, entries[0].Kind)
	assert.Equal(t, model.TokenEntryMint, entries[1].Kind)
}
