package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	msg, err := NewMessage(MsgJoinRoom, JoinRoomPayload{Code: "123456"})
	require.NoError(t, err)

	data, err := Encode(msg)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, MsgJoinRoom, decoded.Type)

	var payload JoinRoomPayload
	require.NoError(t, DecodePayload(decoded, &payload))
	assert.Equal(t, "123456", payload.Code)
}

func TestDecodeRejectsMissingType(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte(`{"payload":{}}`))
	assert.Error(t, err)

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestDecodePayloadEmpty(t *testing.T) {
	t.Parallel()

	msg := MustNewMessage(MsgPing, nil)
	var payload JoinRoomPayload
	assert.Error(t, DecodePayload(msg, &payload))
}

func TestNewErrorMessage(t *testing.T) {
	t.Parallel()

	msg := NewErrorMessage(ErrCodeNotYourTurn)
	assert.Equal(t, MsgError, msg.Type)

	var payload ErrorPayload
	require.NoError(t, DecodePayload(msg, &payload))
	assert.Equal(t, ErrCodeNotYourTurn, payload.Code)
	assert.Equal(t, ErrorText(ErrCodeNotYourTurn), payload.Message)
	assert.NotEmpty(t, payload.Message)
}

func TestErrorTextUnknownCode(t *testing.T) {
	t.Parallel()

	assert.NotEmpty(t, ErrorText(-42), "unknown codes still produce text")
}
