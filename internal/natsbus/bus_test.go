package natsbus

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjects(t *testing.T) {
	assert.Equal(t, "wizard.abc.>", SubjectForSession("abc"))
	assert.Equal(t, "wizard.abc.step", SubjectForEvent("abc", EventStep))
}

func TestEmbeddedLifecycle(t *testing.T) {
	ns, err := StartEmbedded(t.TempDir())
	require.NoError(t, err)

	nc, err := ConnectInProcess(ns)
	require.NoError(t, err)

	js, err := CreateJetStream(nc)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = SetupStream(ctx, js)
	require.NoError(t, err)

	require.NoError(t, Shutdown(nc, ns))
}

func TestPublishAndReplay(t *testing.T) {
	ns, err := StartEmbedded(t.TempDir())
	require.NoError(t, err)
	nc, err := ConnectInProcess(ns)
	require.NoError(t, err)
	defer Shutdown(nc, ns)

	js, err := CreateJetStream(nc)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	stream, err := SetupStream(ctx, js)
	require.NoError(t, err)

	pub := NewPublisher(js)
	pub.Publish(ctx, Event{SessionID: "abc", Type: EventStarted})
	pub.Publish(ctx, Event{SessionID: "abc", Type: EventStep, Step: 2, StepKey: "genre", Selection: "fantasy"})

	cons, err := stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Durable:       "replay_test",
		AckPolicy:     jetstream.AckExplicitPolicy,
		DeliverPolicy: jetstream.DeliverAllPolicy,
		FilterSubject: SubjectForSession("abc"),
	})
	require.NoError(t, err)

	batch, err := cons.Fetch(2, jetstream.FetchMaxWait(5*time.Second))
	require.NoError(t, err)

	var events []Event
	for msg := range batch.Messages() {
		var ev Event
		require.NoError(t, json.Unmarshal(msg.Data(), &ev))
		events = append(events, ev)
		msg.Ack()
	}
	require.Len(t, events, 2)
	assert.Equal(t, EventStarted, events[0].Type)
	assert.Equal(t, "fantasy", events[1].Selection)
	assert.False(t, events[1].Timestamp.IsZero())
}

func TestNilPublisherDropsEvents(t *testing.T) {
	var pub *Publisher
	pub.Publish(context.Background(), Event{SessionID: "abc", Type: EventStarted})
}
