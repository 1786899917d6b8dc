package websocket

import (
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	// Viewers never send payloads, only control frames.
	maxInboundSize = 512
	sendBuffer     = 16
)

// subscriber is one open activity feed. A user may hold several at once.
type subscriber struct {
	hub    *Hub
	conn   *websocket.Conn
	userID uuid.UUID
	// send is closed by the hub only.
	send chan []byte
}

// Attach registers conn as a feed for userID and blocks until the peer goes
// away.
func (h *Hub) Attach(conn *websocket.Conn, userID uuid.UUID) {
	s := &subscriber{hub: h, conn: conn, userID: userID, send: make(chan []byte, sendBuffer)}
	h.register <- s

	go s.forward()
	s.watch()
}

// watch drains inbound frames until the connection fails, then detaches.
func (s *subscriber) watch() {
	defer func() {
		s.hub.unregister <- s
		s.conn.Close()
	}()

	s.conn.SetReadLimit(maxInboundSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.hub.logger.Warn("Hub", "Feed closed unexpectedly", map[string]interface{}{
					"user_id": s.userID,
					"error":   err.Error(),
				})
			}
			return
		}
	}
}

// forward writes queued activity entries, one JSON document per frame, and
// keeps the connection alive with pings.
func (s *subscriber) forward() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
