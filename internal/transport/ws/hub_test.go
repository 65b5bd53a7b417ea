package ws

import (
	"encoding/json"
	"testing"
	"time"
)

func newConn(h *Hub, formID string) *Connection {
	return &Connection{FormID: formID, OwnerID: "owner_1", Send: make(chan []byte, 16), Hub: h}
}

func receive(t *testing.T, conn *Connection) (Message, bool) {
	t.Helper()
	select {
	case data, ok := <-conn.Send:
		if !ok {
			return Message{}, false
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("bad message %s: %v", data, err)
		}
		return msg, true
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
	return Message{}, false
}

func TestHub_BroadcastReachesOnlyThatForm(t *testing.T) {
	h := NewHub()
	a := newConn(h, "form-a")
	b := newConn(h, "form-b")
	h.Register(a)
	h.Register(b)

	if msg, _ := receive(t, a); msg.Type != MsgViewers || string(msg.Payload) != `{"count":1}` {
		t.Fatalf("first message = %s %s, want viewers count 1", msg.Type, msg.Payload)
	}
	receive(t, b)

	h.BroadcastToForm("form-a", "submission_received", map[string]string{"submissionId": "s1"})
	msg, ok := receive(t, a)
	if !ok || msg.Type != "submission_received" || string(msg.Payload) != `{"submissionId":"s1"}` {
		t.Errorf("got %s %s", msg.Type, msg.Payload)
	}

	select {
	case data := <-b.Send:
		t.Errorf("form-b received %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_ViewerCountFollowsConnections(t *testing.T) {
	h := NewHub()
	first := newConn(h, "form-a")
	second := newConn(h, "form-a")
	h.Register(first)
	receive(t, first)
	h.Register(second)

	if msg, _ := receive(t, second); string(msg.Payload) != `{"count":2}` {
		t.Errorf("second dashboard saw %s", msg.Payload)
	}
	if msg, _ := receive(t, first); string(msg.Payload) != `{"count":2}` {
		t.Errorf("first dashboard saw %s after the second joined", msg.Payload)
	}
	if n := h.Viewers("form-a"); n != 2 {
		t.Errorf("Viewers = %d, want 2", n)
	}

	h.Unregister(second)
	if _, ok := receive(t, second); ok {
		t.Error("unregistered connection still open")
	}
	if msg, _ := receive(t, first); string(msg.Payload) != `{"count":1}` {
		t.Errorf("first dashboard saw %s after the second left", msg.Payload)
	}
}

func TestHub_DisconnectFormDeliversQueuedMessagesFirst(t *testing.T) {
	h := NewHub()
	conn := newConn(h, "form-a")
	h.Register(conn)
	receive(t, conn)

	h.BroadcastToForm("form-a", "form_deleted", map[string]string{"formId": "form-a"})
	h.DisconnectForm("form-a")

	if msg, ok := receive(t, conn); !ok || msg.Type != "form_deleted" {
		t.Fatalf("got %s open=%v, want form_deleted", msg.Type, ok)
	}
	if _, ok := receive(t, conn); ok {
		t.Error("connection still open after DisconnectForm")
	}

	// unregistering after the form closed must not close Send twice
	h.Unregister(conn)
	if n := h.Viewers("form-a"); n != 0 {
		t.Errorf("Viewers = %d, want 0", n)
	}
}
