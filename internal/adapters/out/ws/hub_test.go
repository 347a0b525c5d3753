package ws

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lechon/internal/adapters/out/events"
	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/core/domain/model/slot"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

// mockClient creates a client without a websocket connection.
func mockClient(hub *Hub, slotID kernel.UUID) *Client {
	return &Client{
		hub:    hub,
		slotID: slotID,
		send:   make(chan []byte, sendBuffer),
		logger: hub.logger,
	}
}

func statusEvent(slotID kernel.UUID) slot.Event {
	return slot.Event{
		Type:       slot.EventSlotStatusChanged,
		SlotID:     slotID,
		Status:     slot.StatusMaintenance,
		Capacity:   1,
		OccurredAt: time.Now(),
	}
}

func receive(t *testing.T, client *Client) events.SlotEvent {
	t.Helper()
	select {
	case msg := <-client.send:
		var e events.SlotEvent
		require.NoError(t, json.Unmarshal(msg, &e))
		return e
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return events.SlotEvent{}
	}
}

func TestHub_RegisterAndUnregister(t *testing.T) {
	hub := startHub(t)
	slotID := kernel.NewUUID()
	client := mockClient(hub, slotID)

	require.True(t, hub.join(client))
	assert.Eventually(t, func() bool { return hub.Subscribers(slotID) == 1 }, time.Second, 5*time.Millisecond)

	hub.leave(client)
	assert.Eventually(t, func() bool { return hub.Subscribers(slotID) == 0 }, time.Second, 5*time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()
	assert.NotContains(t, hub.rooms, slotID)
}

func TestHub_PublishRoutesBySlot(t *testing.T) {
	hub := startHub(t)
	slot1 := kernel.NewUUID()
	slot2 := kernel.NewUUID()

	follower1 := mockClient(hub, slot1)
	follower2 := mockClient(hub, slot2)
	everything := mockClient(hub, AllSlots)
	for _, c := range []*Client{follower1, follower2, everything} {
		require.True(t, hub.join(c))
	}

	require.NoError(t, hub.Publish(context.Background(), statusEvent(slot1)))

	got := receive(t, follower1)
	assert.Equal(t, slot1.String(), got.SlotID)
	assert.Equal(t, "slot_status_changed", got.Type)
	assert.Equal(t, "maintenance", got.SlotStatus)

	got = receive(t, everything)
	assert.Equal(t, slot1.String(), got.SlotID)

	select {
	case <-follower2.send:
		t.Fatal("subscriber of another slot received the event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_DropsSlowClient(t *testing.T) {
	hub := startHub(t)
	slotID := kernel.NewUUID()
	client := mockClient(hub, slotID)
	client.send = make(chan []byte) // never drained
	require.True(t, hub.join(client))

	require.NoError(t, hub.Publish(context.Background(), statusEvent(slotID)))

	assert.Eventually(t, func() bool { return hub.Subscribers(slotID) == 0 }, time.Second, 5*time.Millisecond)
}

func TestHub_StopsWithContext(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	client := mockClient(hub, AllSlots)
	require.True(t, hub.join(client))
	cancel()
	<-stopped

	_, open := <-client.send
	assert.False(t, open)
	assert.False(t, hub.join(mockClient(hub, AllSlots)))
	assert.NoError(t, hub.Publish(context.Background(), statusEvent(kernel.NewUUID())))
}

func TestServeWS_DeliversEvents(t *testing.T) {
	hub := startHub(t)
	slotID := kernel.NewUUID()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = ServeWS(hub, w, r, slotID)
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Subscribers(slotID) == 1 }, time.Second, 5*time.Millisecond)

	orderID := kernel.NewUUID()
	e := statusEvent(slotID)
	e.Type = slot.EventOrderAssigned
	e.OrderID = &orderID
	e.Status = slot.StatusAvailable
	require.NoError(t, hub.Publish(context.Background(), e))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var got events.SlotEvent
	require.NoError(t, json.Unmarshal(msg, &got))
	assert.Equal(t, "order_assigned", got.Type)
	require.NotNil(t, got.OrderID)
	assert.Equal(t, orderID.String(), *got.OrderID)
}
