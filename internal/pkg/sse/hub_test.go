package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishToTopicAndAll(t *testing.T) {
	hub := NewHub()

	emp, cleanupEmp := hub.Subscribe("emp-1")
	defer cleanupEmp()
	other, cleanupOther := hub.Subscribe("emp-2")
	defer cleanupOther()
	all, cleanupAll := hub.Subscribe(AllTopic)
	defer cleanupAll()

	hub.Publish("emp-1", Event{Event: "alert.created", Data: "x"})

	select {
	case ev := <-emp:
		assert.Equal(t, "emp-1", ev.Topic)
		assert.Equal(t, "alert.created", ev.Event)
	default:
		t.Fatal("topic subscriber did not receive the event")
	}

	select {
	case ev := <-all:
		assert.Equal(t, "emp-1", ev.Topic)
	default:
		t.Fatal("AllTopic subscriber did not receive the event")
	}

	select {
	case ev := <-other:
		t.Fatalf("unexpected event on other topic: %+v", ev)
	default:
	}
}

func TestHub_FullBufferDropsEvents(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("emp-1")
	defer cleanup()

	for i := 0; i < 25; i++ {
		hub.Publish("emp-1", Event{Event: "alert.created", Data: i})
	}
	assert.Len(t, ch, cap(ch))
}

func TestHub_Cleanup(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("emp-1")
	require.Equal(t, 1, hub.SubscriberCount("emp-1"))

	cleanup()
	cleanup()

	assert.Equal(t, 0, hub.SubscriberCount("emp-1"))
	_, open := <-ch
	assert.False(t, open)

	// publishing to a topic without subscribers is a no-op
	hub.Publish("emp-1", Event{Event: "alert.created"})
}
