package protocol

// CardInfo is the wire representation of a single card.
// Rank is one of "2".."10", "J", "Q", "K", "A", "JOKER"; suit is
// "hearts", "diamonds", "clubs", "spades" or "none" for jokers.
type CardInfo struct {
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}

// PlayerInfo is the public view of a player in a room.
type PlayerInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Avatar     string `json:"avatar,omitempty"`
	Seat       int    `json:"seat"`
	CardCount  int    `json:"card_count"`
	RoundScore int    `json:"round_score"`
	TotalScore int    `json:"total_score"`
}

// --- client → server payloads ---

type AddPlayerPayload struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

type JoinRoomPayload struct {
	Code string `json:"code"`
}

type DrawCardPayload struct {
	Source string `json:"source,omitempty"` // "deck" (default) or "discard" for the pile top
}

type DrawDiscardPayload struct {
	Index int `json:"index"`
}

type LayDownPayload struct {
	Cards []CardInfo `json:"cards"`
	Kind  string     `json:"kind,omitempty"` // "group", "run" or empty for undeclared
}

type DiscardCardPayload struct {
	Card CardInfo `json:"card"`
}

type ReorderHandPayload struct {
	Cards []CardInfo `json:"cards"`
}

type ChangeAvatarPayload struct {
	Avatar string `json:"avatar"`
}

type ChatPayload struct {
	Text string `json:"text"`
}

// --- server → client payloads ---

type ConnectedPayload struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

type RoomCreatedPayload struct {
	Code string `json:"code"`
}

type RoomJoinedPayload struct {
	Code    string       `json:"code"`
	Players []PlayerInfo `json:"players"`
}

type PlayerJoinedPayload struct {
	Player PlayerInfo `json:"player"`
}

type PlayerLeftPayload struct {
	PlayerID string `json:"player_id"`
}

type LobbyUpdatePayload struct {
	Players []PlayerInfo `json:"players"`
}

type HandsDealtPayload struct {
	Cards []CardInfo `json:"cards"`
}

type CardCountPayload struct {
	Counts map[string]int `json:"counts"` // player ID → cards held
}

type CardDrawnPayload struct {
	Card          CardInfo `json:"card"`
	DeckRemaining int      `json:"deck_remaining"`
}

type DiscardTakenPayload struct {
	PlayerID string     `json:"player_id"`
	Index    int        `json:"index"`
	Cards    []CardInfo `json:"cards"`
}

type MeldCommittedPayload struct {
	PlayerID   string     `json:"player_id"`
	Kind       string     `json:"kind"`
	Cards      []CardInfo `json:"cards"`
	Points     int        `json:"points"`
	RoundScore int        `json:"round_score"`
}

type CardDiscardedPayload struct {
	PlayerID string   `json:"player_id"`
	Card     CardInfo `json:"card"`
}

type TurnChangedPayload struct {
	PlayerID string `json:"player_id"`
	Phase    string `json:"phase"`
}

type RoundCompletePayload struct {
	WinnerID string         `json:"winner_id"`
	Totals   map[string]int `json:"totals"` // player ID → cumulative score
}

type GameCompletePayload struct {
	WinnerID string         `json:"winner_id"`
	Totals   map[string]int `json:"totals"`
}

type StatsResultPayload struct {
	Username    string `json:"username"`
	GamesPlayed int    `json:"games_played"`
	GamesWon    int    `json:"games_won"`
}

type LeaderboardEntry struct {
	Username string `json:"username"`
	Wins     int    `json:"wins"`
}

type LeaderboardResultPayload struct {
	Entries []LeaderboardEntry `json:"entries"`
}

type ChatMessagePayload struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Text     string `json:"text"`
}

type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
