package apperrors

import (
	"github.com/Fesius1/Grand/internal/protocol"
)

// GameError is a recoverable, player-local error. Failed actions leave
// engine state unchanged and are reported only to the acting player.
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// Room errors
var (
	ErrRoomNotFound = &GameError{Code: protocol.ErrCodeRoomNotFound, Message: "room not found"}
	ErrRoomFull     = &GameError{Code: protocol.ErrCodeRoomFull, Message: "room is full"}
	ErrNotInRoom    = &GameError{Code: protocol.ErrCodeNotInRoom, Message: "you are not in a room"}
	ErrGameStarted  = &GameError{Code: protocol.ErrCodeGameStarted, Message: "game already started"}
	ErrGameNotStart = &GameError{Code: protocol.ErrCodeGameNotStart, Message: "game has not started"}
)

// Engine errors
var (
	ErrNotYourTurn       = &GameError{Code: protocol.ErrCodeNotYourTurn, Message: "not your turn"}
	ErrNotEnoughPlayers  = &GameError{Code: protocol.ErrCodeNotEnoughPlayers, Message: "at least two players are required"}
	ErrDeckExhausted     = &GameError{Code: protocol.ErrCodeDeckExhausted, Message: "the deck is exhausted"}
	ErrEmptyPile         = &GameError{Code: protocol.ErrCodeEmptyPile, Message: "the discard pile is empty"}
	ErrCardNotInHand     = &GameError{Code: protocol.ErrCodeCardNotInHand, Message: "card is not in your hand"}
	ErrInsufficientScore = &GameError{Code: protocol.ErrCodeInsufficientScore, Message: "not enough round points to pick up from the discard pile"}
	ErrIndexOutOfRange   = &GameError{Code: protocol.ErrCodeIndexOutOfRange, Message: "discard pile index out of range"}
	ErrInvalidMeld       = &GameError{Code: protocol.ErrCodeInvalidMeld, Message: "selected cards do not form a valid meld"}
	ErrWrongPhase        = &GameError{Code: protocol.ErrCodeWrongPhase, Message: "that action is not allowed in the current phase"}
)
