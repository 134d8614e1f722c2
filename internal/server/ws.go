package server

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
)

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	s.clientsMu.Lock()
	s.clients[conn] = true
	n := len(s.clients)
	s.clientsMu.Unlock()
	s.logger.Debug("websocket client connected", "clients", n)

	if svg, _ := s.Current(); svg != nil {
		s.clientsMu.Lock()
		err := conn.WriteJSON(Message{Type: MessageTypeSVG, Data: string(svg)})
		s.clientsMu.Unlock()
		if err != nil {
			s.drop(conn)
			return
		}
	}

	// Clients only listen; reading detects the disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.drop(conn)
			return
		}
	}
}

// send queues msg for broadcast without blocking. Messages are dropped
// when the queue is full.
func (s *Server) send(msg Message) {
	select {
	case s.broadcast <- msg:
	default:
		s.logger.Warn("broadcast queue full, dropping message", "type", msg.Type)
	}
}

// fanOut writes queued messages to every client until ctx is done.
func (s *Server) fanOut(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-s.broadcast:
			var failed []*websocket.Conn
			s.clientsMu.Lock()
			for c := range s.clients {
				if err := c.WriteJSON(msg); err != nil {
					failed = append(failed, c)
				}
			}
			s.clientsMu.Unlock()
			for _, c := range failed {
				s.logger.Debug("dropping websocket client", "remote", c.RemoteAddr())
				s.drop(c)
			}
		}
	}
}

func (s *Server) drop(c *websocket.Conn) {
	s.clientsMu.Lock()
	if s.clients[c] {
		delete(s.clients, c)
		c.Close()
	}
	n := len(s.clients)
	s.clientsMu.Unlock()
	s.logger.Debug("websocket client disconnected", "clients", n)
}

func (s *Server) closeClients() {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for c := range s.clients {
		c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
		c.Close()
		delete(s.clients, c)
	}
}
