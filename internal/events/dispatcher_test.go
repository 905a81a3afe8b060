package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherInvokesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var seen []Event
	d.Subscribe(EventComplaintSubmitted, func(_ context.Context, e Event) error {
		seen = append(seen, e)
		return nil
	})
	d.Subscribe(EventComplaintSubmitted, func(_ context.Context, e Event) error {
		seen = append(seen, e)
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventComplaintSubmitted, ComplaintID: "c1"})
	require.NoError(t, err)
	require.Len(t, seen, 2, "all subscribers of the type run")
	assert.Equal(t, "c1", seen[0].ComplaintID)
}

func TestDispatcherIgnoresOtherTypes(t *testing.T) {
	d := NewInMemoryDispatcher()

	called := false
	d.Subscribe(EventComplaintAssigned, func(_ context.Context, _ Event) error {
		called = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventComplaintCommentAdded}))
	assert.False(t, called)
}

func TestDispatcherHandlerErrorsDoNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var order []string
	d.Subscribe(EventComplaintStatusChanged, func(_ context.Context, _ Event) error {
		order = append(order, "first")
		return errors.New("handler failed")
	})
	d.Subscribe(EventComplaintStatusChanged, func(_ context.Context, _ Event) error {
		order = append(order, "second")
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventComplaintStatusChanged}))
	assert.Equal(t, []string{"first", "second"}, order)
}
