package room

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fesius1/Grand/internal/apperrors"
	"github.com/Fesius1/Grand/internal/game/engine"
	"github.com/Fesius1/Grand/internal/protocol"
	"github.com/Fesius1/Grand/internal/testutil"
)

func newTestManager() *Manager {
	return NewManager(engine.DefaultRules(), nil, time.Hour)
}

func TestCreateAndJoinRoom(t *testing.T) {
	t.Parallel()

	m := newTestManager()
	creator := testutil.NewMockClient("c1", "Alice")

	r, err := m.CreateRoom(creator)
	require.NoError(t, err)
	assert.Len(t, r.Code, 6)
	assert.Equal(t, r.Code, creator.GetRoom())
	assert.Equal(t, StateWaiting, r.State())
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 1, m.RoomCount())

	joiner := testutil.NewMockClient("c2", "Bob")
	r2, err := m.JoinRoom(joiner, r.Code)
	require.NoError(t, err)
	assert.Same(t, r, r2)
	assert.Equal(t, []string{"c1", "c2"}, r.MemberIDs())
	assert.Equal(t, 1, r.Member("c2").Seat)
}

func TestJoinRoomNotFound(t *testing.T) {
	t.Parallel()

	m := newTestManager()
	_, err := m.JoinRoom(testutil.NewMockClient("c1", "Alice"), "000000")
	assert.ErrorIs(t, err, apperrors.ErrRoomNotFound)
}

func TestJoinRoomFull(t *testing.T) {
	t.Parallel()

	m := newTestManager()
	r, err := m.CreateRoom(testutil.NewMockClient("c0", "Host"))
	require.NoError(t, err)

	for i := 1; i < MaxPlayers; i++ {
		id := fmt.Sprintf("c%d", i)
		_, err := m.JoinRoom(testutil.NewMockClient(id, id), r.Code)
		require.NoError(t, err)
	}

	_, err = m.JoinRoom(testutil.NewMockClient("late", "Late"), r.Code)
	assert.ErrorIs(t, err, apperrors.ErrRoomFull)
}

func TestJoinRoomAfterGameStarted(t *testing.T) {
	t.Parallel()

	m := newTestManager()
	r, err := m.CreateRoom(testutil.NewMockClient("c1", "Alice"))
	require.NoError(t, err)
	r.SetState(StatePlaying)

	_, err = m.JoinRoom(testutil.NewMockClient("c2", "Bob"), r.Code)
	assert.ErrorIs(t, err, apperrors.ErrGameStarted)
}

func TestLeaveRoomCompactsSeats(t *testing.T) {
	t.Parallel()

	m := newTestManager()
	c1 := testutil.NewMockClient("c1", "Alice")
	c2 := testutil.NewMockClient("c2", "Bob")
	c3 := testutil.NewMockClient("c3", "Carol")

	r, err := m.CreateRoom(c1)
	require.NoError(t, err)
	_, err = m.JoinRoom(c2, r.Code)
	require.NoError(t, err)
	_, err = m.JoinRoom(c3, r.Code)
	require.NoError(t, err)

	m.LeaveRoom(c2)

	assert.Equal(t, "", c2.GetRoom())
	assert.Equal(t, []string{"c1", "c3"}, r.MemberIDs())
	assert.Equal(t, 1, r.Member("c3").Seat, "seats close up after a leave")

	left := c3.LastOfType(protocol.MsgPlayerLeft)
	require.NotNil(t, left, "remaining members hear about the leave")
}

func TestLeaveRoomDissolvesEmptyRoom(t *testing.T) {
	t.Parallel()

	m := newTestManager()
	c1 := testutil.NewMockClient("c1", "Alice")
	r, err := m.CreateRoom(c1)
	require.NoError(t, err)

	m.LeaveRoom(c1)

	assert.Equal(t, 0, m.RoomCount())
	_, err = m.GetRoom(r.Code)
	assert.ErrorIs(t, err, apperrors.ErrRoomNotFound)
}

func TestLeaveRoomDissolvesRunningGame(t *testing.T) {
	t.Parallel()

	m := newTestManager()
	c1 := testutil.NewMockClient("c1", "Alice")
	c2 := testutil.NewMockClient("c2", "Bob")

	r, err := m.CreateRoom(c1)
	require.NoError(t, err)
	_, err = m.JoinRoom(c2, r.Code)
	require.NoError(t, err)
	r.SetState(StatePlaying)

	m.LeaveRoom(c1)

	assert.Equal(t, 0, m.RoomCount(), "a running game cannot continue short-handed")
}

func TestRoomCodesAreUnique(t *testing.T) {
	t.Parallel()

	m := newTestManager()
	codes := make(map[string]bool)
	for i := range 50 {
		r, err := m.CreateRoom(testutil.NewMockClient(fmt.Sprintf("c%d", i), "x"))
		require.NoError(t, err)
		assert.False(t, codes[r.Code], "duplicate code %s", r.Code)
		codes[r.Code] = true
	}
}

func TestBroadcastExcept(t *testing.T) {
	t.Parallel()

	m := newTestManager()
	c1 := testutil.NewMockClient("c1", "Alice")
	c2 := testutil.NewMockClient("c2", "Bob")

	r, err := m.CreateRoom(c1)
	require.NoError(t, err)
	_, err = m.JoinRoom(c2, r.Code)
	require.NoError(t, err)

	msg := protocol.MustNewMessage(protocol.MsgPong, nil)
	r.BroadcastExcept("c1", msg)

	assert.Empty(t, c1.MessagesOfType(protocol.MsgPong))
	assert.Len(t, c2.MessagesOfType(protocol.MsgPong), 1)
}

func TestWithLockSerializesEngineAccess(t *testing.T) {
	t.Parallel()

	m := newTestManager()
	r, err := m.CreateRoom(testutil.NewMockClient("c1", "Alice"))
	require.NoError(t, err)

	counter := 0
	done := make(chan struct{})
	for range 10 {
		go func() {
			r.WithLock(func(*engine.Game) { counter++ })
			done <- struct{}{}
		}()
	}
	for range 10 {
		<-done
	}
	assert.Equal(t, 10, counter)
}
