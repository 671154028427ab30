package handler

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fesius1/Grand/internal/game/engine"
	"github.com/Fesius1/Grand/internal/game/room"
	"github.com/Fesius1/Grand/internal/protocol"
	"github.com/Fesius1/Grand/internal/server/storage"
	"github.com/Fesius1/Grand/internal/testutil"
)

func newTestHandler(t *testing.T, store *storage.RedisStore) *Handler {
	t.Helper()
	rooms := room.NewManager(engine.DefaultRules(), nil, time.Hour)
	return New(Deps{Rooms: rooms, Store: store})
}

func newTestStore(t *testing.T) *storage.RedisStore {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return storage.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

// decodePayload unmarshals a message payload or fails the test.
func decodePayload(t *testing.T, msg *protocol.Message, dst any) {
	t.Helper()
	require.NotNil(t, msg)
	require.NoError(t, protocol.DecodePayload(msg, dst))
}

func errorCode(t *testing.T, c *testutil.MockClient) int {
	t.Helper()
	var payload protocol.ErrorPayload
	decodePayload(t, c.LastOfType(protocol.MsgError), &payload)
	return payload.Code
}

// startTwoPlayerGame creates a room with two clients and starts the
// game. The creator holds seat 0 and acts first.
func startTwoPlayerGame(t *testing.T, h *Handler) (*testutil.MockClient, *testutil.MockClient, *room.Room) {
	t.Helper()

	c1 := testutil.NewMockClient("c1", "Alice")
	c2 := testutil.NewMockClient("c2", "Bob")

	h.Handle(c1, protocol.MustNewMessage(protocol.MsgCreateRoom, nil))

	var created protocol.RoomCreatedPayload
	decodePayload(t, c1.LastOfType(protocol.MsgRoomCreated), &created)

	h.Handle(c2, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{Code: created.Code}))
	h.Handle(c1, protocol.MustNewMessage(protocol.MsgStartGame, nil))

	r, err := h.rooms.GetRoom(created.Code)
	require.NoError(t, err)
	require.Equal(t, room.StatePlaying, r.State())
	return c1, c2, r
}

func TestHandleUnknownMessageType(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil)
	c := testutil.NewMockClient("c1", "Alice")

	h.Handle(c, &protocol.Message{Type: "no_such_type"})
	assert.Equal(t, protocol.ErrCodeInvalidMsg, errorCode(t, c))
}

func TestHandlePing(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil)
	c := testutil.NewMockClient("c1", "Alice")

	h.Handle(c, protocol.MustNewMessage(protocol.MsgPing, nil))
	assert.NotNil(t, c.LastOfType(protocol.MsgPong))
}

func TestHandleAddPlayer(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil)
	c := testutil.NewMockClient("c1", "")

	h.Handle(c, protocol.MustNewMessage(protocol.MsgAddPlayer, protocol.AddPlayerPayload{Name: "Alice", Avatar: "cat"}))

	assert.Equal(t, "Alice", c.GetName())
	assert.Equal(t, "cat", c.GetAvatar())

	var payload protocol.ConnectedPayload
	decodePayload(t, c.LastOfType(protocol.MsgConnected), &payload)
	assert.Equal(t, "Alice", payload.Name)

	// Missing name is rejected.
	h.Handle(c, protocol.MustNewMessage(protocol.MsgAddPlayer, protocol.AddPlayerPayload{}))
	assert.Equal(t, protocol.ErrCodeInvalidMsg, errorCode(t, c))
}

func TestCreateAndJoinRoomFlow(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil)
	c1 := testutil.NewMockClient("c1", "Alice")
	c2 := testutil.NewMockClient("c2", "Bob")

	h.Handle(c1, protocol.MustNewMessage(protocol.MsgCreateRoom, nil))

	var created protocol.RoomCreatedPayload
	decodePayload(t, c1.LastOfType(protocol.MsgRoomCreated), &created)
	assert.Len(t, created.Code, 6)
	assert.Equal(t, created.Code, c1.GetRoom())

	// Creating while already seated is rejected.
	h.Handle(c1, protocol.MustNewMessage(protocol.MsgCreateRoom, nil))
	assert.Equal(t, protocol.ErrCodeGameStarted, errorCode(t, c1))

	h.Handle(c2, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{Code: created.Code}))

	var joined protocol.RoomJoinedPayload
	decodePayload(t, c2.LastOfType(protocol.MsgRoomJoined), &joined)
	assert.Equal(t, created.Code, joined.Code)
	require.Len(t, joined.Players, 2)
	assert.Equal(t, "Alice", joined.Players[0].Name)
	assert.Equal(t, "Bob", joined.Players[1].Name)

	// The creator hears about the join.
	var joinedEvt protocol.PlayerJoinedPayload
	decodePayload(t, c1.LastOfType(protocol.MsgPlayerJoined), &joinedEvt)
	assert.Equal(t, "c2", joinedEvt.Player.ID)
	assert.Equal(t, "Bob", joinedEvt.Player.Name)
}

func TestJoinRoomNotFound(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil)
	c := testutil.NewMockClient("c1", "Alice")

	h.Handle(c, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{Code: "000000"}))
	assert.Equal(t, protocol.ErrCodeRoomNotFound, errorCode(t, c))
}

func TestStartGameNeedsTwoPlayers(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil)
	c := testutil.NewMockClient("c1", "Alice")

	h.Handle(c, protocol.MustNewMessage(protocol.MsgCreateRoom, nil))
	h.Handle(c, protocol.MustNewMessage(protocol.MsgStartGame, nil))
	assert.Equal(t, protocol.ErrCodeNotEnoughPlayers, errorCode(t, c))
}

func TestStartGameDealsHands(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil)
	c1, c2, _ := startTwoPlayerGame(t, h)

	for _, c := range []*testutil.MockClient{c1, c2} {
		var dealt protocol.HandsDealtPayload
		decodePayload(t, c.LastOfType(protocol.MsgHandsDealt), &dealt)
		assert.Len(t, dealt.Cards, 12)

		var counts protocol.CardCountPayload
		decodePayload(t, c.LastOfType(protocol.MsgCardCount), &counts)
		assert.Equal(t, map[string]int{"c1": 12, "c2": 12}, counts.Counts)

		var turn protocol.TurnChangedPayload
		decodePayload(t, c.LastOfType(protocol.MsgTurnChanged), &turn)
		assert.Equal(t, "c1", turn.PlayerID)
		assert.Equal(t, "draw", turn.Phase)
	}
}

func TestDrawOutOfTurn(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil)
	_, c2, _ := startTwoPlayerGame(t, h)

	h.Handle(c2, protocol.MustNewMessage(protocol.MsgDrawCard, nil))
	assert.Equal(t, protocol.ErrCodeNotYourTurn, errorCode(t, c2))
}

func TestDrawAndDiscardTurn(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil)
	c1, c2, _ := startTwoPlayerGame(t, h)

	h.Handle(c1, protocol.MustNewMessage(protocol.MsgDrawCard, nil))

	// Only the drawing player sees the card.
	var drawn protocol.CardDrawnPayload
	decodePayload(t, c1.LastOfType(protocol.MsgCardDrawn), &drawn)
	assert.Nil(t, c2.LastOfType(protocol.MsgCardDrawn))

	h.Handle(c1, protocol.MustNewMessage(protocol.MsgDiscardCard, protocol.DiscardCardPayload{Card: drawn.Card}))

	var discarded protocol.CardDiscardedPayload
	decodePayload(t, c2.LastOfType(protocol.MsgCardDiscarded), &discarded)
	assert.Equal(t, "c1", discarded.PlayerID)
	assert.Equal(t, drawn.Card, discarded.Card)

	var turn protocol.TurnChangedPayload
	decodePayload(t, c2.LastOfType(protocol.MsgTurnChanged), &turn)
	assert.Equal(t, "c2", turn.PlayerID)
	assert.Equal(t, "draw", turn.Phase)
}

func TestGameActionWithoutRoom(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil)
	c := testutil.NewMockClient("c1", "Alice")

	h.Handle(c, protocol.MustNewMessage(protocol.MsgDrawCard, nil))
	assert.Equal(t, protocol.ErrCodeNotInRoom, errorCode(t, c))
}

func TestChatBroadcast(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil)
	c1, c2, _ := startTwoPlayerGame(t, h)

	h.Handle(c1, protocol.MustNewMessage(protocol.MsgChat, protocol.ChatPayload{Text: "good luck"}))

	var chat protocol.ChatMessagePayload
	decodePayload(t, c2.LastOfType(protocol.MsgChatMessage), &chat)
	assert.Equal(t, "Alice", chat.Name)
	assert.Equal(t, "good luck", chat.Text)

	// Empty text is rejected.
	h.Handle(c1, protocol.MustNewMessage(protocol.MsgChat, protocol.ChatPayload{}))
	assert.Equal(t, protocol.ErrCodeInvalidMsg, errorCode(t, c1))
}

func TestHandleDisconnectLeavesRoom(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil)
	c1 := testutil.NewMockClient("c1", "Alice")
	c2 := testutil.NewMockClient("c2", "Bob")

	h.Handle(c1, protocol.MustNewMessage(protocol.MsgCreateRoom, nil))
	h.Handle(c2, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{Code: c1.GetRoom()}))

	code := c1.GetRoom()
	h.HandleDisconnect(c1)

	assert.Equal(t, "", c1.GetRoom())
	r, err := h.rooms.GetRoom(code)
	require.NoError(t, err)
	assert.Equal(t, []string{"c2"}, r.MemberIDs())
}

func TestGetStats(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	h := newTestHandler(t, store)
	ctx := context.Background()

	_, err := store.Register(ctx, "Alice", "pw")
	require.NoError(t, err)
	require.NoError(t, store.RecordGameResult(ctx, "Alice", true))

	c := testutil.NewMockClient("c1", "Alice")
	h.Handle(c, protocol.MustNewMessage(protocol.MsgGetStats, nil))

	var stats protocol.StatsResultPayload
	decodePayload(t, c.LastOfType(protocol.MsgStatsResult), &stats)
	assert.Equal(t, "Alice", stats.Username)
	assert.Equal(t, 1, stats.GamesPlayed)
	assert.Equal(t, 1, stats.GamesWon)

	// Unregistered guests get a zeroed record, not an error.
	guest := testutil.NewMockClient("c2", "Guest")
	h.Handle(guest, protocol.MustNewMessage(protocol.MsgGetStats, nil))
	decodePayload(t, guest.LastOfType(protocol.MsgStatsResult), &stats)
	assert.Equal(t, "Guest", stats.Username)
	assert.Equal(t, 0, stats.GamesPlayed)
}

func TestGetLeaderboard(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	h := newTestHandler(t, store)
	ctx := context.Background()

	for _, name := range []string{"Alice", "Bob"} {
		_, err := store.Register(ctx, name, "pw")
		require.NoError(t, err)
	}
	require.NoError(t, store.RecordGameResult(ctx, "Bob", true))

	c := testutil.NewMockClient("c1", "Alice")
	h.Handle(c, protocol.MustNewMessage(protocol.MsgGetLeaderboard, nil))

	var board protocol.LeaderboardResultPayload
	decodePayload(t, c.LastOfType(protocol.MsgLeaderboardResult), &board)
	require.Len(t, board.Entries, 1)
	assert.Equal(t, protocol.LeaderboardEntry{Username: "Bob", Wins: 1}, board.Entries[0])
}

func TestChangeAvatar(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	h := newTestHandler(t, store)

	_, err := store.Register(context.Background(), "Alice", "pw")
	require.NoError(t, err)

	c := testutil.NewMockClient("c1", "Alice")
	h.Handle(c, protocol.MustNewMessage(protocol.MsgChangeAvatar, protocol.ChangeAvatarPayload{Avatar: "dog"}))

	assert.Equal(t, "dog", c.GetAvatar())
	profile, err := store.LoadProfile(context.Background(), "Alice")
	require.NoError(t, err)
	assert.Equal(t, "dog", profile.Avatar)
}
