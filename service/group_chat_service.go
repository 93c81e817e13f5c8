package service

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/paperdesk/paperdesk-be/types"
	"github.com/paperdesk/paperdesk-be/utils"
)

// GroupChatService keeps one room of live websocket connections per study
// group. Messages are persisted first, then broadcast to every member
// currently connected to the room. Rooms disappear when their last
// connection leaves.
type GroupChatService struct {
	groupService *GroupService
	upgrader     websocket.Upgrader

	mu    sync.Mutex
	rooms map[string]map[*websocket.Conn]bool
}

func NewGroupChatService(groupService *GroupService) *GroupChatService {
	return &GroupChatService{
		groupService: groupService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // CORS is enforced at the HTTP layer
			},
		},
		rooms: make(map[string]map[*websocket.Conn]bool),
	}
}

func (s *GroupChatService) join(groupID string, conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room := s.rooms[groupID]
	if room == nil {
		room = make(map[*websocket.Conn]bool)
		s.rooms[groupID] = room
	}
	room[conn] = true
}

func (s *GroupChatService) leave(groupID string, conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room := s.rooms[groupID]
	if room == nil {
		return
	}
	delete(room, conn)
	if len(room) == 0 {
		delete(s.rooms, groupID)
	}
}

// write serializes all websocket writes; gorilla connections do not allow
// concurrent writers.
func (s *GroupChatService) write(conn *websocket.Conn, res types.WebsocketResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return conn.WriteJSON(res)
}

func (s *GroupChatService) broadcast(groupID string, message *types.GroupMessage) {
	res := types.WebsocketResponse{
		Type:    types.TypeWebsocketChat,
		Payload: message,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.rooms[groupID] {
		if err := conn.WriteJSON(res); err != nil {
			log.Printf("broadcast write failed: %v", err)
		}
	}
}

// HandleConnection upgrades the request and pumps messages until the client
// disconnects. The caller has already authenticated the user and verified
// group membership.
func (s *GroupChatService) HandleConnection(w http.ResponseWriter, r *http.Request, groupID string, user *utils.UserClaims) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(64 * 1024)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	s.join(groupID, conn)
	defer s.leave(groupID, conn)

	ctx := r.Context()
	for {
		_, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var req types.WebsocketRequest
		if err := json.Unmarshal(p, &req); err != nil {
			s.writeError(conn, "invalid message")
			continue
		}

		switch req.Type {
		case types.TypeWebsocketChat:
			payloadBytes, err := json.Marshal(req.Payload)
			if err != nil {
				s.writeError(conn, "invalid payload")
				continue
			}
			var payload types.WebsocketChatPayload
			if err := json.Unmarshal(payloadBytes, &payload); err != nil {
				s.writeError(conn, "invalid payload")
				continue
			}
			message, err := s.saveMessage(ctx, groupID, user, payload.Content)
			if err != nil {
				s.writeError(conn, err.Error())
				continue
			}
			s.broadcast(groupID, message)
		case types.TypeWebsocketPing:
			if err := s.write(conn, types.WebsocketResponse{Type: types.TypeWebsocketPong}); err != nil {
				log.Println("Write error:", err)
			}
		default:
			s.writeError(conn, "invalid message type")
		}
	}
}

func (s *GroupChatService) saveMessage(ctx context.Context, groupID string, user *utils.UserClaims, content string) (*types.GroupMessage, error) {
	name := user.DisplayName
	if name == "" {
		name = user.Username
	}
	return s.groupService.SaveMessage(ctx, groupID, user.ID, name, content)
}

func (s *GroupChatService) writeError(conn *websocket.Conn, message string) {
	err := s.write(conn, types.WebsocketResponse{
		Type:    types.TypeWebsocketError,
		Payload: message,
	})
	if err != nil {
		log.Println("Write error:", err)
	}
}
