package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestLocalBrokerDeliversPerRestaurant(t *testing.T) {
	b := NewLocalBroker()
	ctx := context.Background()

	mine, err := b.Subscribe(ctx, "rest-1")
	require.NoError(t, err)
	defer mine.Close()
	theirs, err := b.Subscribe(ctx, "rest-2")
	require.NoError(t, err)
	defer theirs.Close()

	require.NoError(t, b.Publish(ctx, "rest-1", Event{
		Event:   EventNewBooking,
		Payload: map[string]any{"_id": "b1", "numberOfGuests": 2},
	}))

	select {
	case msg := <-mine.Messages():
		assert.Equal(t, EventNewBooking, gjson.GetBytes(msg, "event").String())
		assert.Equal(t, "b1", gjson.GetBytes(msg, "payload._id").String())
		assert.Equal(t, int64(2), gjson.GetBytes(msg, "payload.numberOfGuests").Int())
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}

	select {
	case msg := <-theirs.Messages():
		t.Fatalf("unexpected event for another restaurant: %s", msg)
	default:
	}
}

func TestLocalBrokerCloseIsIdempotent(t *testing.T) {
	b := NewLocalBroker()
	sub, err := b.Subscribe(context.Background(), "rest-1")
	require.NoError(t, err)

	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())

	_, open := <-sub.Messages()
	assert.False(t, open)

	// publishing with no subscribers is fine
	assert.NoError(t, b.Publish(context.Background(), "rest-1", Event{Event: EventNewBooking}))
	assert.Empty(t, b.subs)
}

func TestLocalBrokerDropsForSlowSubscriber(t *testing.T) {
	b := NewLocalBroker()
	sub, err := b.Subscribe(context.Background(), "rest-1")
	require.NoError(t, err)
	defer sub.Close()

	for i := 0; i < 20; i++ {
		require.NoError(t, b.Publish(context.Background(), "rest-1", Event{Event: EventNewBooking, Payload: i}))
	}
	assert.Len(t, sub.Messages(), 16)
}

func TestChannelName(t *testing.T) {
	assert.Equal(t, "restaurant:r1:bookings", channelFor("r1"))
}
