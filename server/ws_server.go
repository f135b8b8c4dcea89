package server

import (
	"log"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/sanju-subash/Cloudnest-rag/messages"
)

// handleWebSocket serves a chat connection: each inbound JSON frame is an
// ask request and each reply a Response frame. All frames on one connection
// share a session, so the ordering conversation survives across messages.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	log.Printf("✅ Chat connected: %s", sessionID)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("❌ Chat read error [%s]: %v", sessionID, err)
			}
			break
		}

		var req messages.AskRequest
		if err := sonic.Unmarshal(data, &req); err != nil {
			writeFrame(conn, messages.NewMessage("Invalid message format.", messages.State{}))
			continue
		}
		if req.SessionID == "" {
			req.SessionID = sessionID
		}

		resp := s.engine.Ask(r.Context(), req.Question, req.SessionID)
		if !writeFrame(conn, resp) {
			break
		}
	}

	log.Printf("🔌 Chat closed: %s", sessionID)
}

func writeFrame(conn *websocket.Conn, resp messages.Response) bool {
	data, err := sonic.Marshal(resp)
	if err != nil {
		return false
	}
	return conn.WriteMessage(websocket.TextMessage, data) == nil
}
