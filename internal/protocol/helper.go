package protocol

import (
	"encoding/json"
	"fmt"
)

// NewMessage builds a message with the payload marshaled to JSON.
func NewMessage(msgType MessageType, payload any) (*Message, error) {
	msg := &Message{Type: msgType}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload for %q: %w", msgType, err)
		}
		msg.Payload = data
	}
	return msg, nil
}

// MustNewMessage is NewMessage for payloads that cannot fail to marshal.
func MustNewMessage(msgType MessageType, payload any) *Message {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		panic(err)
	}
	return msg
}

// NewErrorMessage builds an error message with the default text for code.
func NewErrorMessage(code int) *Message {
	return NewErrorMessageWithText(code, ErrorText(code))
}

// NewErrorMessageWithText builds an error message with explicit text.
func NewErrorMessageWithText(code int, text string) *Message {
	return MustNewMessage(MsgError, ErrorPayload{Code: code, Message: text})
}

// Encode serializes a message for the wire.
func Encode(msg *Message) ([]byte, error) {
	return json.Marshal(msg)
}

// Decode parses a wire message.
func Decode(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}
	if msg.Type == "" {
		return nil, fmt.Errorf("decode message: missing type")
	}
	return &msg, nil
}

// DecodePayload parses a message payload into dst.
func DecodePayload(msg *Message, dst any) error {
	if len(msg.Payload) == 0 {
		return fmt.Errorf("message %q has no payload", msg.Type)
	}
	return json.Unmarshal(msg.Payload, dst)
}
