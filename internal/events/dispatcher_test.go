package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bizdash/internal/events"
)

func TestPublishReachesEveryHandler(t *testing.T) {
	d := events.NewInMemoryDispatcher()
	var seen []string
	d.Subscribe(events.EventLoggedOut, func(_ context.Context, e events.Event) error {
		seen = append(seen, "first:"+e.Actor.ID)
		return errors.New("boom")
	})
	d.Subscribe(events.EventLoggedOut, func(_ context.Context, e events.Event) error {
		seen = append(seen, "second:"+e.Actor.ID)
		return nil
	})
	d.Subscribe(events.EventLoggedIn, func(context.Context, events.Event) error {
		seen = append(seen, "other")
		return nil
	})

	err := d.Publish(context.Background(), events.Event{Type: events.EventLoggedOut, Actor: events.Actor{ID: "a1"}})
	require.Error(t, err)
	require.Equal(t, []string{"first:a1", "second:a1"}, seen)
}

func TestPublishWithoutListeners(t *testing.T) {
	d := events.NewInMemoryDispatcher()
	require.NoError(t, d.Publish(context.Background(), events.Event{Type: events.EventSessionExpired}))
	require.NoError(t, events.Nop{}.Publish(context.Background(), events.Event{}))
}
