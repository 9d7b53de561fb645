// internal/httpserver/ws.go
//
// WebSocket play for one round: GET /round/{id}/ws?ticket=<ticket>.
//
// Frames are JSON text messages:
//   client → server: {"letter":"e"}
//   server → client: {"type":"round","round":{...}}      on connect
//                    {"type":"guess","outcome":{...}}    per accepted guess
//                    {"type":"error","error":"<code>"}   per rejected frame
// The server closes the socket normally once the round is finished.

package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/evilhangman/internal/game"
)

const wsWriteWait = 10 * time.Second

type wsGuess struct {
	Letter string `json:"letter" validate:"required"`
}

type wsFrame struct {
	Type    string        `json:"type"`
	Round   *game.View    `json:"round,omitempty"`
	Outcome *game.Outcome `json:"outcome,omitempty"`
	Error   string        `json:"error,omitempty"`
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.verifyTicket(r.URL.Query().Get("ticket"), id); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid_ticket")
		return
	}
	g, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		log.Warn().Err(err).Str("round", id).Msg("ws upgrade")
		return
	}
	defer conn.Close()

	v := g.View()
	if err := writeFrame(conn, wsFrame{Type: "round", Round: &v}); err != nil {
		return
	}
	if v.State != game.StatePlaying {
		closeNormal(conn)
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Str("round", id).Msg("ws read")
			}
			return
		}

		var msg wsGuess
		if err := json.Unmarshal(data, &msg); err != nil || s.validate.Struct(msg) != nil {
			if err := writeFrame(conn, wsFrame{Type: "error", Error: "bad_request"}); err != nil {
				return
			}
			continue
		}

		out, err := s.play(r.Context(), g, msg.Letter)
		if err != nil {
			_, code := guessError(err)
			if err := writeFrame(conn, wsFrame{Type: "error", Error: code}); err != nil {
				return
			}
			continue
		}
		if err := writeFrame(conn, wsFrame{Type: "guess", Outcome: &out}); err != nil {
			return
		}
		if out.View.State != game.StatePlaying {
			closeNormal(conn)
			return
		}
	}
}

func writeFrame(conn *websocket.Conn, f wsFrame) error {
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		log.Debug().Err(err).Msg("ws write")
		return err
	}
	return nil
}

func closeNormal(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "round finished")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(wsWriteWait))
}
