package chat

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/nlp"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Chat serves the interactive WebSocket front door of the query pipeline.
type Chat struct {
	svc *nlp.Service
}

// New creates a Chat over the given query service.
func New(svc *nlp.Service) *Chat {
	return &Chat{svc: svc}
}

// RegisterRoutes mounts the chat endpoint on the given router.
func (c *Chat) RegisterRoutes(r chi.Router) {
	r.Get("/api/chat/ws", c.handleWebSocket)
}

// chatRequest is the incoming WebSocket message format.
type chatRequest struct {
	Type      string `json:"type"`       // "query" or "admin_query"
	SessionID string `json:"session_id"` // empty for new sessions
	UserID    string `json:"user_id"`
	Query     string `json:"query"`
}

// chatResponse is the outgoing WebSocket message format.
type chatResponse struct {
	Type      string `json:"type"` // "response" or "error"
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
}

func (c *Chat) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("chat: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("chat: websocket read: %v", err)
			}
			return
		}

		var req chatRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			c.sendError(conn, "", "invalid message format")
			continue
		}

		if req.UserID == "" {
			c.sendError(conn, req.SessionID, "user_id is required")
			continue
		}
		if req.Query == "" {
			c.sendError(conn, req.SessionID, "query is required")
			continue
		}

		sessionID := req.SessionID
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		var resp *nlp.NLPResponse
		switch req.Type {
		case "", "query":
			resp = c.svc.ProcessQuery(r.Context(), req.UserID, req.Query)
		case "admin_query":
			resp = c.svc.ProcessAdminQuery(r.Context(), req.UserID, req.Query)
		default:
			c.sendError(conn, sessionID, "unknown message type: "+req.Type)
			continue
		}

		c.send(conn, chatResponse{
			Type:      "response",
			SessionID: sessionID,
			Message:   resp.Message,
			Success:   resp.Success,
			Data:      resp.Data,
		})
	}
}

func (c *Chat) send(conn *websocket.Conn, resp chatResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("chat: websocket write: %v", err)
	}
}

func (c *Chat) sendError(conn *websocket.Conn, sessionID, message string) {
	c.send(conn, chatResponse{Type: "error", SessionID: sessionID, Message: message})
}
