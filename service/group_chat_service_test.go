package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/paperdesk/paperdesk-be/types"
	"github.com/paperdesk/paperdesk-be/utils"
)

type chatFixture struct {
	repo    *fakeGroupRepo
	chat    *GroupChatService
	groupID string
	wsURL   string
}

// newChatFixture starts a ws endpoint the way the handler does: the user is
// already authenticated and membership is already verified.
func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()

	repo := newFakeGroupRepo()
	groupService := NewGroupService(repo)
	group, err := groupService.CreateGroup(context.Background(), "owner-1", &types.CreateGroupRequest{Name: "Physics crew"})
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	chat := NewGroupChatService(groupService)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chat.HandleConnection(w, r, group.ID, &utils.UserClaims{ID: "owner-1", Username: "asha", DisplayName: "Asha"})
	}))
	t.Cleanup(server.Close)

	return &chatFixture{
		repo:    repo,
		chat:    chat,
		groupID: group.ID,
		wsURL:   "ws" + strings.TrimPrefix(server.URL, "http"),
	}
}

func (f *chatFixture) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(f.wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func (f *chatFixture) roomSize() int {
	f.chat.mu.Lock()
	defer f.chat.mu.Unlock()
	return len(f.chat.rooms[f.groupID])
}

func (f *chatFixture) waitForRoomSize(t *testing.T, want int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for f.roomSize() != want {
		if time.Now().After(deadline) {
			t.Fatalf("room size = %d, want %d", f.roomSize(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestChatMessagePersistedThenBroadcast(t *testing.T) {
	fixture := newChatFixture(t)

	sender := fixture.dial(t)
	listener := fixture.dial(t)
	fixture.waitForRoomSize(t, 2)

	err := sender.WriteJSON(types.WebsocketRequest{
		Type:    types.TypeWebsocketChat,
		Payload: types.WebsocketChatPayload{Content: "anyone solved question 4?"},
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	// Every member in the room receives the message, the sender included.
	for _, conn := range []*websocket.Conn{sender, listener} {
		var res struct {
			Type    string             `json:"type"`
			Payload types.GroupMessage `json:"payload"`
		}
		if err := conn.ReadJSON(&res); err != nil {
			t.Fatalf("read: %v", err)
		}
		if res.Type != types.TypeWebsocketChat {
			t.Fatalf("type = %q", res.Type)
		}
		if res.Payload.Content != "anyone solved question 4?" || res.Payload.Username != "Asha" {
			t.Fatalf("payload = %+v", res.Payload)
		}
		if res.Payload.GroupID != fixture.groupID || res.Payload.ID == "" {
			t.Fatalf("payload not persisted form: %+v", res.Payload)
		}
	}

	// The broadcast payload is the stored record.
	if len(fixture.repo.messages) != 1 {
		t.Fatalf("persisted messages = %d, want 1", len(fixture.repo.messages))
	}
	if fixture.repo.messages[0].UserID != "owner-1" {
		t.Fatalf("stored message = %+v", fixture.repo.messages[0])
	}
}

func TestChatEmptyMessageNotPersisted(t *testing.T) {
	fixture := newChatFixture(t)

	conn := fixture.dial(t)
	fixture.waitForRoomSize(t, 1)

	err := conn.WriteJSON(types.WebsocketRequest{
		Type:    types.TypeWebsocketChat,
		Payload: types.WebsocketChatPayload{Content: "   "},
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	var res types.WebsocketResponse
	if err := conn.ReadJSON(&res); err != nil {
		t.Fatalf("read: %v", err)
	}
	if res.Type != types.TypeWebsocketError {
		t.Fatalf("type = %q, want error", res.Type)
	}
	if len(fixture.repo.messages) != 0 {
		t.Fatalf("blank message persisted: %+v", fixture.repo.messages)
	}
}

func TestChatPingPong(t *testing.T) {
	fixture := newChatFixture(t)

	conn := fixture.dial(t)
	fixture.waitForRoomSize(t, 1)

	if err := conn.WriteJSON(types.WebsocketRequest{Type: types.TypeWebsocketPing}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var res types.WebsocketResponse
	if err := conn.ReadJSON(&res); err != nil {
		t.Fatalf("read: %v", err)
	}
	if res.Type != types.TypeWebsocketPong {
		t.Fatalf("type = %q, want pong", res.Type)
	}
}

func TestChatRoomRemovedWhenEmpty(t *testing.T) {
	fixture := newChatFixture(t)

	first := fixture.dial(t)
	second := fixture.dial(t)
	fixture.waitForRoomSize(t, 2)

	first.Close()
	fixture.waitForRoomSize(t, 1)

	second.Close()
	fixture.waitForRoomSize(t, 0)

	// The room itself is gone, not just empty.
	fixture.chat.mu.Lock()
	_, ok := fixture.chat.rooms[fixture.groupID]
	fixture.chat.mu.Unlock()
	if ok {
		t.Fatal("empty room must be dropped from the hub")
	}
}
