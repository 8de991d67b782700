package connmgr

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/time/rate"
	"gotest.tools/v3/assert"

	"github.com/m-abdelghani02/libsignal-client-api/internal/netinfra"
)

var (
	errDial       = errors.New("dial failed")
	testTransport = netinfra.Static{P: netinfra.NewConnectionParams()}
)

func alwaysFail(context.Context, netinfra.TransportConnector) error { return errDial }
func alwaysOK(context.Context, netinfra.TransportConnector) error   { return nil }

// property 7: a failed attempt puts the route into cooldown, and a
// second attempt before the cooldown elapses is rejected without
// invoking dial.
func TestSingleRoute_CooldownAfterFailure(t *testing.T) {
	r := NewSingleRoute(testTransport, 50*time.Millisecond, time.Second, rate.Inf)

	outcome := r.Attempt(context.Background(), alwaysFail)
	attempted, ok := outcome.(Attempted)
	assert.Assert(t, ok)
	assert.ErrorIs(t, attempted.Err, errDial)

	dialed := false
	outcome = r.Attempt(context.Background(), func(context.Context, netinfra.TransportConnector) error {
		dialed = true
		return nil
	})
	_, ok = outcome.(WaitUntil)
	assert.Assert(t, ok)
	assert.Assert(t, !dialed)
}

// property 7 (continued): a success resets the cooldown, so the next
// attempt (after the cooldown window) is allowed through immediately.
func TestSingleRoute_SuccessResetsCooldown(t *testing.T) {
	r := NewSingleRoute(testTransport, time.Millisecond, time.Second, rate.Inf)

	r.Attempt(context.Background(), alwaysFail)
	time.Sleep(2 * time.Millisecond)

	outcome := r.Attempt(context.Background(), alwaysOK)
	attempted, ok := outcome.(Attempted)
	assert.Assert(t, ok)
	assert.NilError(t, attempted.Err)

	outcome = r.Attempt(context.Background(), alwaysOK)
	attempted, ok = outcome.(Attempted)
	assert.Assert(t, ok)
	assert.NilError(t, attempted.Err)
}

// a canceled attempt records no cooldown, so the route is immediately
// retryable afterward.
func TestSingleRoute_CanceledAttemptDoesNotPoisonRoute(t *testing.T) {
	r := NewSingleRoute(testTransport, time.Second, 10*time.Second, rate.Inf)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome := r.Attempt(ctx, alwaysFail)
	_, ok := outcome.(TimedOut)
	assert.Assert(t, ok)

	outcome = r.Attempt(context.Background(), alwaysOK)
	attempted, ok := outcome.(Attempted)
	assert.Assert(t, ok)
	assert.NilError(t, attempted.Err)
}

// property 8: a MultiRoute tries each route in turn and succeeds as soon
// as one does, without touching routes after the first success.
func TestMultiRoute_TriesRoutesInOrderUntilSuccess(t *testing.T) {
	r1 := NewSingleRoute(testTransport, time.Second, time.Second, rate.Inf)
	r2 := NewSingleRoute(testTransport, time.Second, time.Second, rate.Inf)
	m := NewMultiRoute(r1, r2)

	attemptedRoutes := 0
	outcome := m.Attempt(context.Background(), func(context.Context, netinfra.TransportConnector) error {
		attemptedRoutes++
		if attemptedRoutes == 1 {
			return errDial
		}
		return nil
	})

	attempted, ok := outcome.(Attempted)
	assert.Assert(t, ok)
	assert.NilError(t, attempted.Err)
	assert.Equal(t, attemptedRoutes, 2)
}

// property 8 (continued): when every route is in cooldown, MultiRoute
// reports the last route's WaitUntil rather than attempting a dial.
func TestMultiRoute_AllRoutesInCooldown(t *testing.T) {
	r1 := NewSingleRoute(testTransport, time.Minute, time.Minute, rate.Inf)
	r2 := NewSingleRoute(testTransport, time.Minute, time.Minute, rate.Inf)
	r1.Attempt(context.Background(), alwaysFail)
	r2.Attempt(context.Background(), alwaysFail)

	m := NewMultiRoute(r1, r2)
	dialed := false
	outcome := m.Attempt(context.Background(), func(context.Context, netinfra.TransportConnector) error {
		dialed = true
		return nil
	})

	_, ok := outcome.(WaitUntil)
	assert.Assert(t, ok)
	assert.Assert(t, !dialed)
}

// when every route fails outright (no cooldown yet recorded), MultiRoute
// reports the failure rather than a cooldown.
func TestMultiRoute_AllRoutesFail(t *testing.T) {
	r1 := NewSingleRoute(testTransport, time.Second, time.Second, rate.Inf)
	r2 := NewSingleRoute(testTransport, time.Second, time.Second, rate.Inf)
	m := NewMultiRoute(r1, r2)

	outcome := m.Attempt(context.Background(), alwaysFail)
	attempted, ok := outcome.(Attempted)
	assert.Assert(t, ok)
	assert.ErrorContains(t, attempted.Err, "all routes failed")
}
