package routes

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	ws "society-service-server/websocket"
)

func newFeedClient(t *testing.T, hub *ws.Hub) *ws.Client {
	t.Helper()

	client := &ws.Client{
		Hub:    hub,
		UserID: 99,
		Email:  "feed@example.com",
		Send:   make(chan []byte, 8),
	}
	select {
	case hub.Register <- client:
	case <-time.After(time.Second):
		t.Fatal("hub register timed out")
	}
	return client
}

func nextSnapshot(t *testing.T, client *ws.Client) ws.Message {
	t.Helper()

	select {
	case payload := <-client.Send:
		var msg ws.Message
		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatalf("decode snapshot: %v", err)
		}
		return msg
	case <-time.After(time.Second):
		t.Fatal("no snapshot received")
		return ws.Message{}
	}
}

func TestWritesBroadcastFreshSnapshots(t *testing.T) {
	router := setupTest(t)
	token := registerUser(t, router, "Sana Khan", "sana@example.com")

	hub := ws.NewHub()
	go hub.Run()
	InitFeedHub(hub)
	t.Cleanup(func() { InitFeedHub(nil) })

	client := newFeedClient(t, hub)
	hub.Subscribe(client, ws.TopicChatMessages)
	hub.Subscribe(client, ws.TopicComplaints)

	for _, text := range []string{"first message", "second message"} {
		if code, resp := doJSON(t, router, http.MethodPost, "/api/v1/chat", token, gin.H{
			"message": text,
		}); code != http.StatusCreated {
			t.Fatalf("send %q: expected 201, got %d: %v", text, code, resp)
		}
	}

	// Each write pushed a whole-list replace on its topic
	first := nextSnapshot(t, client)
	if first.Type != "snapshot" || first.Topic != ws.TopicChatMessages {
		t.Fatalf("got %s/%s, want snapshot/%s", first.Type, first.Topic, ws.TopicChatMessages)
	}
	if list := first.Data.([]interface{}); len(list) != 1 {
		t.Fatalf("first snapshot has %d messages, want 1", len(list))
	}

	second := nextSnapshot(t, client)
	list := second.Data.([]interface{})
	if len(list) != 2 {
		t.Fatalf("second snapshot has %d messages, want 2", len(list))
	}
	if got := list[0].(map[string]interface{})["message"]; got != "second message" {
		t.Errorf("snapshot head = %v, want the newest message first", got)
	}

	// A complaint write lands on its own topic
	if code, resp := doJSON(t, router, http.MethodPost, "/api/v1/complaints", token, gin.H{
		"complaint": "gate light broken",
	}); code != http.StatusCreated {
		t.Fatalf("submit complaint: expected 201, got %d: %v", code, resp)
	}
	complaint := nextSnapshot(t, client)
	if complaint.Topic != ws.TopicComplaints {
		t.Fatalf("topic = %s, want %s", complaint.Topic, ws.TopicComplaints)
	}
	if list := complaint.Data.([]interface{}); len(list) != 1 {
		t.Fatalf("complaint snapshot has %d records, want 1", len(list))
	}
}
