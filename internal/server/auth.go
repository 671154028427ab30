package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Fesius1/Grand/internal/logger"
	"github.com/Fesius1/Grand/internal/server/storage"
)

// credentials is the request body for /register and /login.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// authResult mirrors what clients expect back from the auth endpoints.
type authResult struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	Avatar      string `json:"avatar,omitempty"`
	GamesPlayed int    `json:"games_played,omitempty"`
	GamesWon    int    `json:"games_won,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func readCredentials(w http.ResponseWriter, r *http.Request) (credentials, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return credentials{}, false
	}
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Username == "" || creds.Password == "" {
		writeJSON(w, http.StatusBadRequest, authResult{Message: "username and password are required"})
		return credentials{}, false
	}
	return creds, true
}

// handleRegister creates a user profile.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	creds, ok := readCredentials(w, r)
	if !ok {
		return
	}

	if _, err := s.store.Register(r.Context(), creds.Username, creds.Password); err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			writeJSON(w, http.StatusOK, authResult{Message: "Username already exists."})
			return
		}
		logger.LogError("register %s: %v", creds.Username, err)
		writeJSON(w, http.StatusInternalServerError, authResult{Message: "Database error."})
		return
	}
	writeJSON(w, http.StatusOK, authResult{Success: true, Message: "Registration successful."})
}

// handleLogin authenticates a user and returns their profile summary.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	creds, ok := readCredentials(w, r)
	if !ok {
		return
	}

	profile, err := s.store.Authenticate(r.Context(), creds.Username, creds.Password)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidCredentials) {
			writeJSON(w, http.StatusOK, authResult{Message: "Invalid credentials."})
			return
		}
		logger.LogError("login %s: %v", creds.Username, err)
		writeJSON(w, http.StatusInternalServerError, authResult{Message: "Database error."})
		return
	}
	writeJSON(w, http.StatusOK, authResult{
		Success:     true,
		Message:     "Login successful.",
		Avatar:      profile.Avatar,
		GamesPlayed: profile.GamesPlayed,
		GamesWon:    profile.GamesWon,
	})
}
