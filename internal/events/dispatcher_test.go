package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestPublishContinuesPastFailingHandler(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	dispatcher := NewInMemoryDispatcher(zap.New(core))

	var calls []string
	dispatcher.Subscribe(EventLoginFailed, func(context.Context, Event) error {
		calls = append(calls, "first")
		return errors.New("sink unavailable")
	})
	dispatcher.Subscribe(EventLoginFailed, func(context.Context, Event) error {
		calls = append(calls, "second")
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{
		ID:        "evt-1",
		Type:      EventLoginFailed,
		Timestamp: time.Now(),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, calls)

	entries := logs.FilterMessage("event handler failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, string(EventLoginFailed), entries[0].ContextMap()["event_type"])
}

func TestPublishWithoutSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(nil)
	err := dispatcher.Publish(context.Background(), Event{Type: EventLogout})
	require.NoError(t, err)
}
