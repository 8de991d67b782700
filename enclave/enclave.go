// Package enclave establishes attested connections to remote secure
// enclaves over one or more throttled routes, dispatching the
// attestation handshake by enclave kind.
package enclave

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/m-abdelghani02/libsignal-client-api/auth"
	"github.com/m-abdelghani02/libsignal-client-api/internal/attestedws"
	"github.com/m-abdelghani02/libsignal-client-api/internal/connmgr"
	"github.com/m-abdelghani02/libsignal-client-api/internal/netinfra"
)

// EnclaveKind identifies one of the attestation flavors this module
// supports, each with its own URL path shape and handshake logic.
type EnclaveKind interface {
	// URLPath returns the enclave endpoint's path component with
	// mrEnclave in it: hex-encoded for Cdsi and Sgx, as UTF-8 text for
	// Nitro and Tpm2Snp.
	URLPath(mrEnclave []byte) string
}

// Cdsi is the Contact Discovery Service enclave kind.
type Cdsi struct{}

func (Cdsi) URLPath(mrEnclave []byte) string {
	return fmt.Sprintf("/v1/%s/discovery", hex.EncodeToString(mrEnclave))
}

// Sgx is an Intel SGX-attested enclave kind.
type Sgx struct{}

func (Sgx) URLPath(mrEnclave []byte) string {
	return fmt.Sprintf("/v1/%s", hex.EncodeToString(mrEnclave))
}

// Nitro is an AWS Nitro Enclaves kind.
type Nitro struct{}

func (Nitro) URLPath(mrEnclave []byte) string {
	return fmt.Sprintf("/v1/%s", mrEnclave)
}

// Tpm2Snp is a TPM2/AMD SEV-SNP attested enclave kind.
type Tpm2Snp struct{}

func (Tpm2Snp) URLPath(mrEnclave []byte) string {
	return fmt.Sprintf("/v1/%s", mrEnclave)
}

// RaftConfig overrides the expected raft group configuration an Sgx or
// Nitro enclave reports during attestation. It is nil for kinds that
// don't run a raft-replicated enclave (Cdsi, Tpm2Snp).
type RaftConfig struct {
	GroupID         uint64
	ExpectedMembers []string
}

// EndpointParams names the specific enclave instance to connect to.
type EndpointParams[E EnclaveKind] struct {
	MrEnclave          []byte
	RaftConfigOverride *RaftConfig
}

// Handshake is the result an Attestor returns for a verified
// attestation. It records only the enclave kind and carries no key
// material; the cryptographic verification itself is done by the
// injected Attestor, not by this type.
type Handshake struct {
	Kind EnclaveKind
}

// Attestor verifies an attestation message and produces a Handshake. A
// pluggable interface lets callers inject the real cryptographic
// verifier; this module only implements the call sites and dispatch.
type Attestor interface {
	NewHandshake(mrEnclave, attestationMessage []byte, now time.Time) (*Handshake, error)
}

// AttestorFunc adapts a plain function to the Attestor interface.
type AttestorFunc func(mrEnclave, attestationMessage []byte, now time.Time) (*Handshake, error)

func (f AttestorFunc) NewHandshake(mrEnclave, attestationMessage []byte, now time.Time) (*Handshake, error) {
	return f(mrEnclave, attestationMessage, now)
}

// EndpointConnection dials, attests, and hands back a connection to a
// single named enclave endpoint, using CM to manage retry/cooldown
// behavior over its underlying route(s).
type EndpointConnection[E EnclaveKind, CM connmgr.Manager] struct {
	Kind     E
	Params   EndpointParams[E]
	Manager  CM
	Attestor Attestor
	BaseURL  string
}

// NewEndpointConnection builds an EndpointConnection for kind, reachable
// at baseURL, managed by cm and attested by attestor.
func NewEndpointConnection[E EnclaveKind, CM connmgr.Manager](kind E, params EndpointParams[E], cm CM, attestor Attestor, baseURL string) *EndpointConnection[E, CM] {
	return &EndpointConnection[E, CM]{Kind: kind, Params: params, Manager: cm, Attestor: attestor, BaseURL: baseURL}
}

// Connect establishes the WebSocket connection, runs the attestation
// handshake, and returns the attested connection. Canceling ctx
// propagates into the dial, the WS upgrade, and the attestation read; a
// canceled attempt records no cooldown against the connection manager.
// Dial parameters (root certificates, request decoration) come
// from whichever route c.Manager ends up attempting, not from Connect
// itself: a MultiRoute's routes each carry their own netinfra.TransportConnector.
func (c *EndpointConnection[E, CM]) Connect(ctx context.Context, creds auth.HTTPBasicAuth) (*attestedws.Connection, error) {
	url := c.BaseURL + c.Kind.URLPath(c.Params.MrEnclave)

	var conn *attestedws.Connection
	outcome := c.Manager.Attempt(ctx, func(ctx context.Context, transport netinfra.TransportConnector) error {
		dialed, err := attestedws.Dial(ctx, url, creds, transport.Params())
		if err != nil {
			return &Error{Kind: WebSocketConnect, Cause: err}
		}
		conn = dialed
		return nil
	})

	switch o := outcome.(type) {
	case connmgr.Attempted:
		if o.Err != nil {
			if _, ok := o.Err.(*Error); ok {
				return nil, o.Err
			}
			return nil, &Error{Kind: WebSocketConnect, Cause: o.Err}
		}
	case connmgr.WaitUntil:
		return nil, &Error{Kind: ConnectionTimedOut, Cause: fmt.Errorf("route in cooldown until %s", o.Until)}
	case connmgr.TimedOut:
		return nil, &Error{Kind: ConnectionTimedOut, Cause: ctx.Err()}
	}

	msg, err := conn.ReadMessage()
	if err != nil {
		conn.Close()
		return nil, &Error{Kind: WebSocket, Cause: err}
	}

	if _, err := c.Attestor.NewHandshake(c.Params.MrEnclave, msg, time.Now()); err != nil {
		conn.Close()
		return nil, &Error{Kind: AttestationError, Cause: err}
	}

	return conn, nil
}
