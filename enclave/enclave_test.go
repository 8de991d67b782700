package enclave

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/time/rate"
	"gotest.tools/v3/assert"

	"github.com/m-abdelghani02/libsignal-client-api/internal/connmgr"
	"github.com/m-abdelghani02/libsignal-client-api/internal/netinfra"
)

var testTransport = netinfra.Static{P: netinfra.NewConnectionParams()}

// fakeManager lets tests control the connmgr.Outcome an attempt produces
// without dialing a real socket.
type fakeManager struct {
	outcome   connmgr.Outcome
	attempted bool
}

func (m *fakeManager) Attempt(ctx context.Context, dial connmgr.Dial) connmgr.Outcome {
	if m.outcome != nil {
		return m.outcome
	}
	m.attempted = true
	err := dial(ctx, testTransport)
	return connmgr.Attempted{Err: err}
}

func TestEndpointConnection_SingleRouteCooldownReportsTimedOut(t *testing.T) {
	until := time.Now().Add(time.Minute)
	m := &fakeManager{outcome: connmgr.WaitUntil{Until: until}}
	conn := NewEndpointConnection(Cdsi{}, EndpointParams[Cdsi]{MrEnclave: []byte{1, 2, 3}}, m, nil, "wss://example.test")

	_, err := conn.Connect(context.Background(), nil)
	var enclaveErr *Error
	assert.Assert(t, errors.As(err, &enclaveErr))
	assert.Equal(t, enclaveErr.Kind, ConnectionTimedOut)
	assert.Assert(t, !m.attempted)
}

func TestEndpointConnection_ContextCanceledReportsTimedOut(t *testing.T) {
	m := &fakeManager{outcome: connmgr.TimedOut{}}
	conn := NewEndpointConnection(Sgx{}, EndpointParams[Sgx]{MrEnclave: []byte{1}}, m, nil, "wss://example.test")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := conn.Connect(ctx, nil)
	var enclaveErr *Error
	assert.Assert(t, errors.As(err, &enclaveErr))
	assert.Equal(t, enclaveErr.Kind, ConnectionTimedOut)
}

func TestMultiRoute_ExhaustsCooldownAcrossRoutes(t *testing.T) {
	r1 := connmgr.NewSingleRoute(testTransport, time.Minute, time.Minute, rate.Inf)
	r2 := connmgr.NewSingleRoute(testTransport, time.Minute, time.Minute, rate.Inf)
	r1.Attempt(context.Background(), func(context.Context, netinfra.TransportConnector) error { return errors.New("fail") })
	r2.Attempt(context.Background(), func(context.Context, netinfra.TransportConnector) error { return errors.New("fail") })

	m := connmgr.NewMultiRoute(r1, r2)
	conn := NewEndpointConnection(Nitro{}, EndpointParams[Nitro]{MrEnclave: []byte{9}}, m, nil, "wss://example.test")

	_, err := conn.Connect(context.Background(), nil)
	var enclaveErr *Error
	assert.Assert(t, errors.As(err, &enclaveErr))
	assert.Equal(t, enclaveErr.Kind, ConnectionTimedOut)
}

func TestEnclaveKind_URLPath(t *testing.T) {
	hexMeasurement := []byte{0xde, 0xad, 0xbe, 0xef}
	assert.Equal(t, Cdsi{}.URLPath(hexMeasurement), "/v1/deadbeef/discovery")
	assert.Equal(t, Sgx{}.URLPath(hexMeasurement), "/v1/deadbeef")

	// Nitro and Tpm2Snp interpret the measurement as UTF-8, not hex.
	utf8Measurement := []byte("nitro-measurement")
	assert.Equal(t, Nitro{}.URLPath(utf8Measurement), "/v1/nitro-measurement")
	assert.Equal(t, Tpm2Snp{}.URLPath(utf8Measurement), "/v1/nitro-measurement")
}

func TestError_MessageIncludesKind(t *testing.T) {
	err := &Error{Kind: AttestationError, Cause: errors.New("bad signature")}
	assert.ErrorContains(t, err, "attestation")
	assert.Assert(t, err.IsAttestation())
	assert.Assert(t, !err.IsTransport())
}
