package protocol

// Error codes carried in ErrorPayload.
const (
	ErrCodeUnknown    = 1000
	ErrCodeInvalidMsg = 1001

	ErrCodeRoomNotFound = 2001
	ErrCodeRoomFull     = 2002
	ErrCodeNotInRoom    = 2003
	ErrCodeGameStarted  = 2004

	ErrCodeGameNotStart      = 3001
	ErrCodeNotYourTurn       = 3002
	ErrCodeNotEnoughPlayers  = 3003
	ErrCodeDeckExhausted     = 3004
	ErrCodeEmptyPile         = 3005
	ErrCodeCardNotInHand     = 3006
	ErrCodeInsufficientScore = 3007
	ErrCodeIndexOutOfRange   = 3008
	ErrCodeInvalidMeld       = 3009
	ErrCodeWrongPhase        = 3010

	ErrCodeAuthFailed = 4001
)

// errorMessages maps codes to their default user-facing text.
var errorMessages = map[int]string{
	ErrCodeUnknown:    "unknown error",
	ErrCodeInvalidMsg: "invalid message format",

	ErrCodeRoomNotFound: "room not found",
	ErrCodeRoomFull:     "room is full",
	ErrCodeNotInRoom:    "you are not in a room",
	ErrCodeGameStarted:  "game already started",

	ErrCodeGameNotStart:      "game has not started",
	ErrCodeNotYourTurn:       "not your turn",
	ErrCodeNotEnoughPlayers:  "not enough players",
	ErrCodeDeckExhausted:     "the deck is exhausted",
	ErrCodeEmptyPile:         "the discard pile is empty",
	ErrCodeCardNotInHand:     "card is not in your hand",
	ErrCodeInsufficientScore: "you need at least 30 round points to pick up from the discard pile",
	ErrCodeIndexOutOfRange:   "discard pile index out of range",
	ErrCodeInvalidMeld:       "selected cards do not form a valid meld",
	ErrCodeWrongPhase:        "that action is not allowed right now",

	ErrCodeAuthFailed: "invalid credentials",
}

// ErrorText returns the default text for a code.
func ErrorText(code int) string {
	if text, ok := errorMessages[code]; ok {
		return text
	}
	return errorMessages[ErrCodeUnknown]
}
