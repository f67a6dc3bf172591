package game

import (
	"errors"
	"fmt"
	"log"
	"net/http"
)

// HandleConnections upgrades the request to a WebSocket and joins a player.
func (s *GameServer) HandleConnections(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}

	client := newClient(conn, CodecFor(conn.Subprotocol()), s.sendBuffer)
	id, err := s.Join(client)
	if err != nil {
		log.Printf("Could not join client %s: %v", conn.RemoteAddr(), err)
		conn.Close()
		return
	}
	client.setPlayerID(id)

	go client.writePump()
	go client.readPump(s)
}

// HandleMessage decodes one client frame and applies it. Malformed frames and
// unknown types are counted and dropped; suspicious input is logged. None of
// these close the connection.
func (s *GameServer) HandleMessage(playerID string, codec Codec, data []byte) {
	err := s.dispatch(playerID, codec, data)
	switch {
	case err == nil:
	case errors.Is(err, ErrSuspiciousInput):
		log.Printf("Player %s sent suspicious input: %v", playerID, err)
	default:
		s.malformedMessages.Add(1)
	}
}

func (s *GameServer) dispatch(playerID string, codec Codec, data []byte) error {
	var msg clientMessage
	if err := codec.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	switch msg.Type {
	case MsgInput:
		if msg.Input == nil || msg.Input.X == nil || msg.Input.Y == nil {
			return fmt.Errorf("%w: missing steering fields", ErrMalformedInput)
		}
		return s.ApplyInput(playerID, *msg.Input.X, *msg.Input.Y)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
}

func originAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return true
	}
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}
