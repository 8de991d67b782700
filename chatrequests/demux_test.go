package chatrequests

import (
	"context"
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func sendAndClose(ctx context.Context, in chan Request, reqs ...Request) {
	for _, r := range reqs {
		in <- r
	}
	close(in)
}

func TestDemux_QueueEmpty(t *testing.T) {
	ctx := context.Background()
	in := make(chan Request)
	out := Demux(ctx, in)

	go sendAndClose(ctx, in, Request{Verb: "PUT", Path: "/api/v1/queue/empty"})

	ev := <-out
	_, ok := ev.(QueueEmpty)
	assert.Assert(t, ok)

	_, open := <-out
	assert.Assert(t, !open)
}

// property 9 / decision (b): the last matching X-Signal-Timestamp header
// wins, matched case-insensitively.
func TestDemux_LastTimestampHeaderWins(t *testing.T) {
	ctx := context.Background()
	in := make(chan Request)
	out := Demux(ctx, in)

	go sendAndClose(ctx, in, Request{
		Verb: "PUT",
		Path: "/api/v1/message",
		Headers: []string{
			"X-Signal-Timestamp: 100",
			"x-signal-timestamp: 200",
			"Content-Type: application/octet-stream",
		},
		Body: []byte("envelope"),
	})

	ev := <-out
	msg, ok := ev.(IncomingMessage)
	assert.Assert(t, ok)
	assert.Equal(t, msg.ServerDeliveryTimestamp, uint64(200))
	assert.DeepEqual(t, msg.Envelope, []byte("envelope"))
}

func TestDemux_UnrecognizedRequestsAreDropped(t *testing.T) {
	ctx := context.Background()
	in := make(chan Request)
	out := Demux(ctx, in)

	go sendAndClose(ctx, in,
		Request{Verb: "GET", Path: "/unused"},
		Request{Verb: "PUT", Path: "/api/v1/queue/empty"},
	)

	ev := <-out
	_, ok := ev.(QueueEmpty)
	assert.Assert(t, ok)

	_, open := <-out
	assert.Assert(t, !open)
}

func TestDemux_MissingTimestampHeaderStillDelivers(t *testing.T) {
	ctx := context.Background()
	in := make(chan Request)
	out := Demux(ctx, in)

	go sendAndClose(ctx, in, Request{Verb: "PUT", Path: "/api/v1/message", Body: []byte("x")})

	ev := <-out
	msg, ok := ev.(IncomingMessage)
	assert.Assert(t, ok)
	assert.Equal(t, msg.ServerDeliveryTimestamp, uint64(0))
}

// Canceling ctx stops Demux's goroutine even if the consumer never
// drains the output channel.
func TestDemux_ContextCancelStopsWithoutConsumer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	in := make(chan Request)
	out := Demux(ctx, in)

	in <- Request{Verb: "PUT", Path: "/api/v1/queue/empty"}
	cancel()

	select {
	case _, open := <-out:
		assert.Assert(t, !open)
	case <-time.After(time.Second):
		t.Fatal("Demux did not stop after context cancellation")
	}
}
