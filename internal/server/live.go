package server

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

const liveWriteTimeout = 3 * time.Second

// handleLive pushes every committed manual or scheduled refresh to the
// client. Incoming messages are ignored.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	// Subscribe before the handshake completes so a refresh racing the
	// client's first read is not missed.
	id, updates := s.rankings.Subscribe()
	defer s.rankings.Unsubscribe(id)

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.logger.Warn("Error accepting websocket", "error", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")
	s.logger.Debug("Live subscriber joined", "subscriber", id)

	ctx := conn.CloseRead(r.Context())
	for {
		select {
		case <-ctx.Done():
			return
		case view, ok := <-updates:
			if !ok {
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, liveWriteTimeout)
			err := wsjson.Write(writeCtx, conn, view)
			cancel()
			if err != nil {
				s.logger.Debug("Live subscriber gone", "subscriber", id, "error", err)
				return
			}
		}
	}
}
