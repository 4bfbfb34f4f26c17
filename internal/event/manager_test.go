package event

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestEmitEvent(t *testing.T) {
	received := make(chan Envelope, 1)
	AddEventListener(ListedEvent, func(msg Envelope) {
		received <- msg
	})

	EmitEvent(ListedEvent, Listed{ListingId: 1, Seller: "0x00000000000000000000000000000000000000aa", Price: "100"})

	select {
	case msg := <-received:
		assert.Equal(t, ListedEvent, msg.Type)
		assert.NotEmpty(t, msg.Id)
		assert.False(t, msg.Time.IsZero())

		payload, ok := msg.Payload.(Listed)
		require.True(t, ok)
		assert.Equal(t, uint64(1), payload.ListingId)
		assert.Equal(t, "100", payload.Price)
	case <-time.After(time.Second):
		t.Fatal("listener never received the event")
	}
}

func TestEmitEvent_TypeFiltered(t *testing.T) {
	received := make(chan Envelope, 1)
	AddEventListener(CancelledEvent, func(msg Envelope) {
		received <- msg
	})

	EmitEvent(BoughtEvent, Bought{ListingId: 2})

	select {
	case <-received:
		t.Fatal("listener received an event of another type")
	case <-time.After(100 * time.Millisecond):
	}
}
