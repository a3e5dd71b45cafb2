package eventbus

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/canvaslab/flowcanvas/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatermillEventBus_PublishAndSubscribe(t *testing.T) {
	bus := NewGoChannelEventBus(slog.Default())

	defer func() {
		if err := bus.Close(); err != nil {
			t.Logf("failed to close bus: %v", err)
		}
	}()

	received := make(chan any, 1)

	bus.Handle(events.WorkflowDesignSavedEvent, func(_ context.Context, event any) error {
		received <- event

		return nil
	})

	ctx := context.Background()
	require.NoError(t, bus.Subscribe(ctx))

	published := events.WorkflowDesignSaved{
		BaseEvent:       events.NewBaseEvent(events.WorkflowDesignSavedEvent, "wf1"),
		ActivityCount:   3,
		TransitionCount: 2,
	}
	require.NoError(t, bus.Publish(ctx, "wf1", published))

	select {
	case event := <-received:
		saved, ok := event.(*events.WorkflowDesignSaved)
		require.True(t, ok)
		assert.Equal(t, "wf1", saved.WorkflowID)
		assert.Equal(t, 3, saved.ActivityCount)
		assert.Equal(t, 2, saved.TransitionCount)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestWatermillEventBus_UnhandledEventTypeIsDropped(t *testing.T) {
	bus := NewGoChannelEventBus(slog.Default())

	defer func() {
		if err := bus.Close(); err != nil {
			t.Logf("failed to close bus: %v", err)
		}
	}()

	received := make(chan any, 1)

	bus.Handle(events.WorkflowDeletedEvent, func(_ context.Context, event any) error {
		received <- event

		return nil
	})

	ctx := context.Background()
	require.NoError(t, bus.Subscribe(ctx))

	created := events.WorkflowCreated{
		BaseEvent: events.NewBaseEvent(events.WorkflowCreatedEvent, "wf1"),
		Name:      "approval",
	}
	require.NoError(t, bus.Publish(ctx, "wf1", created))

	deleted := events.WorkflowDeleted{
		BaseEvent: events.NewBaseEvent(events.WorkflowDeletedEvent, "wf1"),
	}
	require.NoError(t, bus.Publish(ctx, "wf1", deleted))

	select {
	case event := <-received:
		_, ok := event.(*events.WorkflowDeleted)
		assert.True(t, ok, "only the subscribed type should arrive")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}
