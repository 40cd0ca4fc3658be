package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(ctx)
	go hub.Run()
	return hub
}

// Клиент без соединения: хабу достаточно канала send.
func newTestClient(hub *Hub, sessionID uuid.UUID) *Client {
	return &Client{hub: hub, sessionID: sessionID, send: make(chan []byte, 4)}
}

func TestHub_RegisterAndUnregister(t *testing.T) {
	hub := newTestHub(t)
	sessionID := uuid.New()

	a := newTestClient(hub, sessionID)
	b := newTestClient(hub, sessionID)
	hub.Register(a)
	hub.Register(b)

	assert.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	hub.Unregister(a)
	hub.Unregister(b)
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestHub_CloseSession(t *testing.T) {
	hub := newTestHub(t)
	closed := uuid.New()
	kept := uuid.New()

	hub.Register(newTestClient(hub, closed))
	hub.Register(newTestClient(hub, closed))
	hub.Register(newTestClient(hub, kept))
	require.Eventually(t, func() bool { return hub.ClientCount() == 3 }, time.Second, 5*time.Millisecond)

	hub.CloseSession(closed)
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	// Сессия без клиентов закрывается без ошибок
	hub.CloseSession(uuid.New())
	assert.Never(t, func() bool { return hub.ClientCount() != 1 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestHub_BroadcastOnlyToOwnSession(t *testing.T) {
	hub := newTestHub(t)
	mine := newTestClient(hub, uuid.New())
	other := newTestClient(hub, uuid.New())
	hub.Register(mine)
	hub.Register(other)

	require.NoError(t, hub.BroadcastToSession(mine.sessionID, EventReportCreated, map[string]string{"title": "Umbrella"}))

	select {
	case raw := <-mine.send:
		var msg struct {
			Type string            `json:"type"`
			Data map[string]string `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, EventReportCreated, msg.Type)
		assert.Equal(t, "Umbrella", msg.Data["title"])
	case <-time.After(time.Second):
		t.Fatal("message was not delivered")
	}

	select {
	case <-other.send:
		t.Fatal("other session received a foreign event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_BroadcastUnserializable(t *testing.T) {
	hub := newTestHub(t)

	err := hub.BroadcastToSession(uuid.New(), EventReportCreated, make(chan int))
	assert.Error(t, err)
}

func TestHub_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(ctx)

	done := make(chan struct{})
	go func() {
		hub.Run()
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	// После остановки вызовы не блокируются
	hub.Register(newTestClient(hub, uuid.New()))
	assert.NoError(t, hub.BroadcastToSession(uuid.New(), EventReportCreated, nil))
}
