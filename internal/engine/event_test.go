package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
)

func newEvent(t *testing.T, f *fixture, reward *uint64, cap *uint32) *model.Event {
	t.Helper()
	evt, err := f.eng.CreateEvent(context.Background(), aliceWallet, CreateEventParams{
		Community:    "testdao",
		Name:         "spring meetup",
		Description:  "quarterly community gathering",
		StartTime:    f.now.Add(time.Hour),
		EndTime:      f.now.Add(5 * time.Hour),
		MaxAttendees: cap,
		TokenReward:  reward,
	})
	require.NoError(t, err)
	return evt
}

// checkIn registers the wallet's card if needed and records attendance.
func checkIn(t *testing.T, f *fixture, wallet, card string) error {
	t.Helper()
	ctx := context.Background()
	if _, err := f.eng.CreateNfcCard(ctx, wallet, "testdao", card, ""); err != nil {
		if model.KindOf(err) != model.KindInvalidState { // already holds one
			require.NoError(t, err)
		}
	}
	_, err := f.eng.RecordAttendance(ctx, wallet, "testdao", "spring meetup")
	return err
}

func TestCreateEvent(t *testing.T) {
	f := newFixture(t)
	f.bootstrap()
	ctx := context.Background()

	evt := newEvent(t, f, nil, nil)
	assert.Equal(t, model.EventUpcoming, evt.Status)

	// unique name per community
	_, err := f.eng.CreateEvent(ctx, bobWallet, CreateEventParams{
		Community:   "testdao",
		Name:        "spring meetup",
		Description: "a different gathering",
		StartTime:   f.now.Add(time.Hour),
		EndTime:     f.now.Add(2 * time.Hour),
	})
	assert.Equal(t, model.KindDuplicate, model.KindOf(err))

	_, err = f.eng.CreateEvent(ctx, bobWallet, CreateEventParams{
		Community:   "testdao",
		Name:        "backwards",
		Description: "ends before it starts",
		StartTime:   f.now.Add(2 * time.Hour),
		EndTime:     f.now.Add(time.Hour),
	})
	assert.Equal(t, model.KindInvalidArgument, model.KindOf(err))
}

func TestRecordAttendanceWithReward(t *testing.T) {
	f := newFixture(t)
	community := f.bootstrap()
	ctx := context.Background()

	reward := uint64(50)
	evt := newEvent(t, f, &reward, nil)

	// not yet open
	err := checkIn(t, f, bobWallet, "CARD-0001-BOB00")
	assert.Equal(t, model.KindInvalidState, model.KindOf(err))

	f.advance(2 * time.Hour)
	bobBefore := f.balance(community.TokenMint, bobWallet)
	require.NoError(t, checkIn(t, f, bobWallet, "CARD-0001-BOB00"))

	assert.Equal(t, bobBefore+50, f.balance(community.TokenMint, bobWallet))

	bob := f.member(community, bobWallet)
	assert.Equal(t, uint32(1), bob.TotalEventsAttended)

	stored, err := f.st.GetEvent(ctx, evt.Address)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), stored.CurrentAttendees)
	assert.Equal(t, model.EventActive, stored.Status)

	att, err := f.st.GetAttendance(ctx, f.eng.Deriver().Attendance(evt.Address, bob.Address))
	require.NoError(t, err)
	require.NotNil(t, att)
	assert.True(t, att.RewardClaimed)

	// checking in twice is a duplicate and mints nothing further
	err = checkIn(t, f, bobWallet, "CARD-0001-BOB00")
	assert.Equal(t, model.KindDuplicate, model.KindOf(err))
	assert.Equal(t, bobBefore+50, f.balance(community.TokenMint, bobWallet))
}

func TestRecordAttendanceRequiresActiveCard(t *testing.T) {
	f := newFixture(t)
	f.bootstrap()
	ctx := context.Background()

	newEvent(t, f, nil, nil)
	f.advance(2 * time.Hour)

	// no card at all
	_, err := f.eng.RecordAttendance(ctx, bobWallet, "testdao", "spring meetup")
	assert.Equal(t, model.KindInvalidState, model.KindOf(err))

	// revoked card
	_, err = f.eng.CreateNfcCard(ctx, carolWallet, "testdao", "CARD-0002-CAROL", "")
	require.NoError(t, err)
	require.NoError(t, f.eng.RevokeNfcCard(ctx, carolWallet, "testdao", "CARD-0002-CAROL"))
	_, err = f.eng.RecordAttendance(ctx, carolWallet, "testdao", "spring meetup")
	assert.Equal(t, model.KindInvalidState, model.KindOf(err))
}

func TestRecordAttendanceCapacity(t *testing.T) {
	f := newFixture(t)
	f.bootstrap()

	cap := uint32(1)
	newEvent(t, f, nil, &cap)
	f.advance(2 * time.Hour)

	require.NoError(t, checkIn(t, f, bobWallet, "CARD-0001-BOB00"))
	err := checkIn(t, f, carolWallet, "CARD-0002-CAROL")
	assert.Equal(t, model.KindInvalidState, model.KindOf(err))
}

func TestRecordAttendanceWindow(t *testing.T) {
	f := newFixture(t)
	f.bootstrap()

	newEvent(t, f, nil, nil)

	// after the window the event reads ended
	f.advance(6 * time.Hour)
	err := checkIn(t, f, bobWallet, "CARD-0001-BOB00")
	assert.Equal(t, model.KindExpired, model.KindOf(err))
}

func TestCloseEvent(t *testing.T) {
	f := newFixture(t)
	f.bootstrap()
	ctx := context.Background()

	evt := newEvent(t, f, nil, nil)
	f.advance(2 * time.Hour)

	// a non-organizer member may not close
	err := f.eng.CloseEvent(ctx, bobWallet, "testdao", "spring meetup")
	assert.Equal(t, model.KindUnauthorized, model.KindOf(err))

	// the organizer may
	require.NoError(t, f.eng.CloseEvent(ctx, aliceWallet, "testdao", "spring meetup"))

	stored, err := f.st.GetEvent(ctx, evt.Address)
	require.NoError(t, err)
	assert.Equal(t, model.EventClosed, stored.Status)

	// closed means no more check-ins, and closing again rejects
	err = checkIn(t, f, bobWallet, "CARD-0001-BOB00")
	assert.Equal(t, model.KindInvalidState, model.KindOf(err))
	err = f.eng.CloseEvent(ctx, adminWallet, "testdao", "spring meetup")
	assert.Equal(t, model.KindInvalidState, model.KindOf(err))
}
