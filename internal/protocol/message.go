package protocol

import "encoding/json"

// Message is the envelope for everything sent over the wire.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType identifies a message.
type MessageType string

// Client → server message types.
const (
	MsgPing MessageType = "ping" // heartbeat

	// Lobby and room operations
	MsgAddPlayer  MessageType = "add_player"  // announce name/avatar after connecting
	MsgCreateRoom MessageType = "create_room" // create a room
	MsgJoinRoom   MessageType = "join_room"   // join a room by code
	MsgLeaveRoom  MessageType = "leave_room"  // leave the current room
	MsgStartGame  MessageType = "start_game"  // start the game in the current room

	// Game actions
	MsgDrawCard    MessageType = "draw_card"    // draw the top card of the deck
	MsgDrawDiscard MessageType = "draw_discard" // take a card (and everything above it) from the discard pile
	MsgLayDown     MessageType = "lay_down"     // commit a meld from the hand
	MsgDiscardCard MessageType = "discard_card" // discard a card, ending the turn
	MsgReorderHand MessageType = "reorder_hand" // rearrange own hand (display only)

	// Profile and misc
	MsgChangeAvatar   MessageType = "change_avatar"   // update avatar reference
	MsgGetStats       MessageType = "get_stats"       // fetch own win/loss record
	MsgGetLeaderboard MessageType = "get_leaderboard" // fetch the win leaderboard
	MsgChat           MessageType = "chat"            // chat message to the room
)

// Server → client message types.
const (
	MsgPong      MessageType = "pong"
	MsgConnected MessageType = "connected" // connection established, carries player ID

	// Lobby and room
	MsgLobbyUpdate  MessageType = "lobby_update"  // room member list changed
	MsgRoomCreated  MessageType = "room_created"  // room created, carries code
	MsgRoomJoined   MessageType = "room_joined"   // joined a room
	MsgPlayerJoined MessageType = "player_joined" // someone else joined
	MsgPlayerLeft   MessageType = "player_left"   // someone left

	// Game flow
	MsgHandsDealt    MessageType = "hands_dealt"    // private: your dealt hand
	MsgCardCount     MessageType = "card_count"     // public: cards held per player
	MsgCardDrawn     MessageType = "card_drawn"     // private: the card you drew
	MsgDiscardTaken  MessageType = "discard_taken"  // someone took from the discard pile
	MsgMeldCommitted MessageType = "meld_committed" // someone laid down a meld
	MsgCardDiscarded MessageType = "card_discarded" // someone discarded
	MsgTurnChanged   MessageType = "turn_changed"   // active player / phase changed
	MsgRoundComplete MessageType = "round_complete" // round over, totals updated
	MsgGameComplete  MessageType = "game_complete"  // game over, winner declared

	// Profile and misc
	MsgStatsResult       MessageType = "stats_result"
	MsgLeaderboardResult MessageType = "leaderboard_result"
	MsgChatMessage       MessageType = "chat_message"

	MsgError MessageType = "error"
)
