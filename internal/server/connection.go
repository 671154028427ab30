package server

import (
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Fesius1/Grand/internal/logger"
	"github.com/Fesius1/Grand/internal/protocol"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // tighten for production deployments
	},
}

// handleWebSocket upgrades a connection and starts the client pumps.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.LogError("websocket upgrade failed: %v", err)
		return
	}

	client := NewClient(s, conn)
	s.registerClient(client)

	client.SendMessage(protocol.MustNewMessage(protocol.MsgConnected, protocol.ConnectedPayload{
		PlayerID: client.ID,
		Name:     client.GetName(),
	}))
	logger.LogInfo("client %s connected", client.ID)

	go client.ReadPump()
	go client.WritePump()
}

// handleHealth is the health check endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK online=%d rooms=%d", s.GetOnlineCount(), s.roomManager.RoomCount())
}
