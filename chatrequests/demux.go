// Package chatrequests demultiplexes the raw server-push requests a
// chat-service WebSocket delivers into typed events: incoming messages,
// or a signal that the server's queue has drained.
package chatrequests

import (
	"context"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Request is one raw server-push request as received on the wire.
type Request struct {
	Verb    string
	Path    string
	Headers []string // "name: value", ordered, as received on the wire
	Body    []byte
	Respond func(ctx context.Context, status int) error
}

// Event is the closed set of demultiplexed push events: QueueEmpty or
// IncomingMessage. Callers switch on the concrete type.
type Event interface{ isEvent() }

// QueueEmpty signals the server has no more queued messages to deliver.
type QueueEmpty struct{}

func (QueueEmpty) isEvent() {}

// IncomingMessage is a single delivered chat envelope.
type IncomingMessage struct {
	RequestID               uint64
	Envelope                []byte
	ServerDeliveryTimestamp uint64
	SendAck                 func(ctx context.Context) error
}

func (IncomingMessage) isEvent() {}

const timestampHeaderName = "x-signal-timestamp"

// Demux reads in, converting each recognized push request into an
// Event on the returned channel, and closes that channel once in
// closes or ctx is canceled. Unrecognized verb/path combinations are
// dropped. A dropped consumer (the returned channel stops being read)
// does not leak the goroutine: it selects on ctx.Done() around the send.
func Demux(ctx context.Context, in <-chan Request) <-chan Event {
	out := make(chan Event)
	go func() {
		defer close(out)
		var nextRequestID uint64
		for {
			select {
			case req, ok := <-in:
				if !ok {
					return
				}
				event, ok := convert(req, &nextRequestID)
				if !ok {
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func convert(req Request, nextRequestID *uint64) (Event, bool) {
	if req.Verb != "PUT" {
		logrus.WithFields(logrus.Fields{"verb": req.Verb, "path": req.Path}).Error("chatrequests: dropping request with unexpected verb")
		return nil, false
	}

	switch req.Path {
	case "/api/v1/queue/empty":
		return QueueEmpty{}, true
	case "/api/v1/message":
		ts, ok := lastTimestamp(req.Headers)
		if !ok {
			logrus.WithField("path", req.Path).Warn("chatrequests: incoming message missing timestamp header")
		}
		*nextRequestID++
		return IncomingMessage{
			RequestID:               *nextRequestID,
			Envelope:                req.Body,
			ServerDeliveryTimestamp: ts,
			SendAck:                 respondFunc(req.Respond).ack(),
		}, true
	default:
		logrus.WithField("path", req.Path).Error("chatrequests: dropping request with unrecognized path")
		return nil, false
	}
}

// ack adapts Respond into the zero-argument "send a 200" shape callers
// of IncomingMessage.SendAck expect.
type respondFunc func(ctx context.Context, status int) error

func (r respondFunc) ack() func(ctx context.Context) error {
	if r == nil {
		return func(context.Context) error { return nil }
	}
	return func(ctx context.Context) error { return r(ctx, 200) }
}

// lastTimestamp returns the value of the last "X-Signal-Timestamp"
// header (case-insensitive name match), matching server_requests.rs's
// .last() over a filter_map of matching headers.
func lastTimestamp(headers []string) (uint64, bool) {
	var (
		found bool
		value uint64
	)
	for _, h := range headers {
		name, rest, ok := strings.Cut(h, ":")
		if !ok {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(name), timestampHeaderName) {
			continue
		}
		parsed, err := strconv.ParseUint(strings.TrimSpace(rest), 10, 64)
		if err != nil {
			continue
		}
		value = parsed
		found = true
	}
	return value, found
}
