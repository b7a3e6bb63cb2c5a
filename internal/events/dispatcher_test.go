package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishInvokesSubscribersInOrder(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var calls []string
	dispatcher.Subscribe(EventComplaintCreated, func(ctx context.Context, event Event) error {
		calls = append(calls, "first")
		return nil
	})
	dispatcher.Subscribe(EventComplaintCreated, func(ctx context.Context, event Event) error {
		calls = append(calls, "second")
		return nil
	})
	dispatcher.Subscribe(EventComplaintDeleted, func(ctx context.Context, event Event) error {
		calls = append(calls, "wrong-type")
		return nil
	})

	dispatcher.Publish(context.Background(), Event{Type: EventComplaintCreated, ComplainID: 1})

	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestPublishStampsTimestampAndContainsHandlerErrors(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var stamped Event
	dispatcher.Subscribe(EventComplaintCreated, func(ctx context.Context, event Event) error {
		stamped = event
		return errors.New("handler exploded")
	})
	var reached bool
	dispatcher.Subscribe(EventComplaintCreated, func(ctx context.Context, event Event) error {
		reached = true
		return nil
	})

	dispatcher.Publish(context.Background(), Event{Type: EventComplaintCreated})

	assert.False(t, stamped.Timestamp.IsZero())
	assert.True(t, reached)
}
