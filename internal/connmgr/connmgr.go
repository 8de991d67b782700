// Package connmgr implements the throttled connection-attempt state
// machine shared by every route an enclave endpoint may dial: Idle,
// Attempting, Active, or Cooldown(until), with a cooldown window that
// backs off on repeated failure instead of hammering a route that just
// failed.
package connmgr

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m-abdelghani02/libsignal-client-api/internal/netinfra"
)

// Dial is invoked once per attempt, on whichever route is being tried;
// transport is that route's own TransportConnector, so a MultiRoute's
// routes can each dial a genuinely different endpoint/params, not just
// vary in cooldown bookkeeping.
type Dial func(ctx context.Context, transport netinfra.TransportConnector) error

// Manager is the capability an enclave endpoint needs from a connection
// strategy: attempt a connection over whichever route(s) it manages,
// respecting its own cooldown bookkeeping.
type Manager interface {
	Attempt(ctx context.Context, dial Dial) Outcome
}

// Outcome is the closed set of results an Attempt can produce: a dial
// was made (successfully or not), the caller must wait until a given
// time before retrying, or the context was done. Concrete cases are Attempted, WaitUntil, and
// TimedOut; callers switch on the concrete type.
type Outcome interface{ isOutcome() }

// Attempted reports that dial was actually invoked and its error, if
// any. A nil Err means the connection succeeded.
type Attempted struct{ Err error }

func (Attempted) isOutcome() {}

// WaitUntil reports that the route is in cooldown and dial was not
// invoked; the caller should not retry before Until.
type WaitUntil struct{ Until time.Time }

func (WaitUntil) isOutcome() {}

// TimedOut reports that ctx was done before a dial could be attempted,
// or by the time the dial returned; no cooldown is recorded for it.
type TimedOut struct{}

func (TimedOut) isOutcome() {}

// SingleRoute is a Manager over exactly one route. Each failed Attempt
// widens the cooldown window, up to maxCooldown; a success resets it.
// Canceling ctx mid-attempt does not affect the cooldown, so a canceled
// caller never poisons the route for the next one.
type SingleRoute struct {
	mu sync.Mutex

	transport netinfra.TransportConnector

	baseCooldown time.Duration
	maxCooldown  time.Duration
	cooldown     time.Duration
	cooldownEnd  time.Time

	limiter *rate.Limiter
}

// NewSingleRoute returns a SingleRoute whose cooldown starts at base and
// doubles on each consecutive failure, capped at max. limit bounds the
// steady-state attempt rate once a route is healthy again. transport is
// this route's own dial target/params, handed to every Dial invocation
// made through it.
func NewSingleRoute(transport netinfra.TransportConnector, base, max time.Duration, limit rate.Limit) *SingleRoute {
	return &SingleRoute{
		transport:    transport,
		baseCooldown: base,
		maxCooldown:  max,
		limiter:      rate.NewLimiter(limit, 1),
	}
}

func (r *SingleRoute) Attempt(ctx context.Context, dial Dial) Outcome {
	r.mu.Lock()
	if until := r.cooldownEnd; !until.IsZero() && time.Now().Before(until) {
		r.mu.Unlock()
		return WaitUntil{Until: until}
	}
	r.mu.Unlock()

	if err := r.limiter.Wait(ctx); err != nil {
		return TimedOut{}
	}

	err := dial(ctx, r.transport)

	select {
	case <-ctx.Done():
		// A canceled attempt records no cooldown: we don't know whether
		// dial failed because of us or because of the route.
		return TimedOut{}
	default:
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err == nil {
		r.cooldown = 0
		r.cooldownEnd = time.Time{}
		return Attempted{Err: nil}
	}
	r.cooldown = nextCooldown(r.cooldown, r.baseCooldown, r.maxCooldown)
	r.cooldownEnd = time.Now().Add(r.cooldown)
	return Attempted{Err: err}
}

func nextCooldown(current, base, max time.Duration) time.Duration {
	if current == 0 {
		return base
	}
	doubled := current * 2
	if doubled > max {
		return max
	}
	return doubled
}

// MultiRoute tries each of its routes in order, one attempt at a time,
// returning on the first success. It is deliberately sequential (per
// spec), not a concurrent fan-out: plain iteration with ctx for
// cancellation is used instead of golang.org/x/sync/errgroup, whose
// concurrent-by-default semantics don't fit a "try route 1, then route 2"
// requirement.
type MultiRoute struct {
	Routes []*SingleRoute
}

// NewMultiRoute returns a MultiRoute over routes, tried in the given
// order on every Attempt.
func NewMultiRoute(routes ...*SingleRoute) *MultiRoute {
	return &MultiRoute{Routes: routes}
}

func (m *MultiRoute) Attempt(ctx context.Context, dial Dial) Outcome {
	var lastWait *WaitUntil
	for _, route := range m.Routes {
		select {
		case <-ctx.Done():
			return TimedOut{}
		default:
		}

		switch outcome := route.Attempt(ctx, dial).(type) {
		case Attempted:
			if outcome.Err == nil {
				return outcome
			}
			// This route failed; fall through to the next one.
		case WaitUntil:
			w := outcome
			lastWait = &w
		case TimedOut:
			return TimedOut{}
		}
	}
	if lastWait != nil {
		return *lastWait
	}
	return Attempted{Err: errAllRoutesFailed}
}

var errAllRoutesFailed = allRoutesFailedError{}

type allRoutesFailedError struct{}

func (allRoutesFailedError) Error() string { return "all routes failed" }
