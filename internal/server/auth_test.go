package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fesius1/Grand/internal/server/storage"
)

func newAuthTestServer(t *testing.T) *Server {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return &Server{store: storage.NewRedisStore(client)}
}

func postJSON(t *testing.T, handlerFn http.HandlerFunc, body string) (int, authResult) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handlerFn(rec, req)

	var result authResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	return rec.Code, result
}

func TestHandleRegister(t *testing.T) {
	t.Parallel()

	s := newAuthTestServer(t)

	status, result := postJSON(t, s.handleRegister, `{"username":"alice","password":"pw"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, result.Success)
	assert.Equal(t, "Registration successful.", result.Message)

	// Duplicate usernames are reported, not treated as server errors.
	status, result = postJSON(t, s.handleRegister, `{"username":"alice","password":"other"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.False(t, result.Success)
	assert.Equal(t, "Username already exists.", result.Message)
}

func TestHandleRegisterRejectsBadRequests(t *testing.T) {
	t.Parallel()

	s := newAuthTestServer(t)

	status, result := postJSON(t, s.handleRegister, `{"username":"alice"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, result.Success)

	status, _ = postJSON(t, s.handleRegister, `not json`)
	assert.Equal(t, http.StatusBadRequest, status)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.handleRegister(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleLogin(t *testing.T) {
	t.Parallel()

	s := newAuthTestServer(t)
	_, result := postJSON(t, s.handleRegister, `{"username":"alice","password":"pw"}`)
	require.True(t, result.Success)

	status, result := postJSON(t, s.handleLogin, `{"username":"alice","password":"pw"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, result.Success)
	assert.Equal(t, "Login successful.", result.Message)

	status, result = postJSON(t, s.handleLogin, `{"username":"alice","password":"wrong"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.False(t, result.Success)
	assert.Equal(t, "Invalid credentials.", result.Message)

	_, result = postJSON(t, s.handleLogin, `{"username":"ghost","password":"pw"}`)
	assert.False(t, result.Success)
	assert.Equal(t, "Invalid credentials.", result.Message)
}
