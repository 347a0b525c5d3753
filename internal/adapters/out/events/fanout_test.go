package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"lechon/internal/adapters/out/events"
	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/core/domain/model/slot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSink struct {
	mock.Mock
}

func (m *MockSink) Publish(ctx context.Context, evs ...slot.Event) error {
	args := m.Called(ctx, evs)
	return args.Error(0)
}

type MockFailureRecorder struct {
	mock.Mock
}

func (m *MockFailureRecorder) PublishFailed(sink string) {
	m.Called(sink)
}

func testEvent() slot.Event {
	orderID := kernel.NewUUID()
	return slot.Event{
		Type:       slot.EventOrderAssigned,
		SlotID:     kernel.NewUUID(),
		OrderID:    &orderID,
		Status:     slot.StatusOccupied,
		Occupancy:  2,
		Capacity:   2,
		OccurredAt: time.Date(2026, 3, 14, 17, 0, 0, 0, time.FixedZone("PHT", 8*3600)),
	}
}

func TestNewSlotEvent_JSON(t *testing.T) {
	e := testEvent()

	raw, err := json.Marshal(events.NewSlotEvent(e))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "order_assigned", decoded["type"])
	assert.Equal(t, e.SlotID.String(), decoded["slotId"])
	assert.Equal(t, e.OrderID.String(), decoded["orderId"])
	assert.Equal(t, "occupied", decoded["slotStatus"])
	assert.InDelta(t, 2, decoded["occupancy"], 0)
	assert.InDelta(t, 2, decoded["capacity"], 0)
	assert.Equal(t, "2026-03-14T09:00:00Z", decoded["occurredAt"])
}

func TestNewSlotEvent_OmitsMissingOrder(t *testing.T) {
	e := testEvent()
	e.Type = slot.EventSlotStatusChanged
	e.OrderID = nil

	raw, err := json.Marshal(events.NewSlotEvent(e))

	require.NoError(t, err)
	assert.NotContains(t, string(raw), "orderId")
}

func TestFanout_Publish(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := t.Context()
	e := testEvent()

	t.Run("delivers to every sink", func(t *testing.T) {
		kafka, ws := new(MockSink), new(MockSink)
		kafka.On("Publish", ctx, []slot.Event{e}).Return(nil).Once()
		ws.On("Publish", ctx, []slot.Event{e}).Return(nil).Once()
		failures := new(MockFailureRecorder)

		fanout := events.NewFanout(failures, logger).Add("kafka", kafka).Add("websocket", ws)

		require.NoError(t, fanout.Publish(ctx, e))
		kafka.AssertExpectations(t)
		ws.AssertExpectations(t)
		failures.AssertNotCalled(t, "PublishFailed", mock.Anything)
	})

	t.Run("failing sink does not block the others", func(t *testing.T) {
		kafka, ws := new(MockSink), new(MockSink)
		kafka.On("Publish", ctx, mock.Anything).Return(errors.New("broker down")).Once()
		ws.On("Publish", ctx, mock.Anything).Return(nil).Once()
		failures := new(MockFailureRecorder)
		failures.On("PublishFailed", "kafka").Once()

		fanout := events.NewFanout(failures, logger).Add("kafka", kafka).Add("websocket", ws)
		err := fanout.Publish(ctx, e)

		require.ErrorContains(t, err, "kafka: broker down")
		ws.AssertExpectations(t)
		failures.AssertExpectations(t)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		sink := new(MockSink)

		fanout := events.NewFanout(new(MockFailureRecorder), logger).Add("kafka", sink)

		require.NoError(t, fanout.Publish(ctx))
		sink.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}
