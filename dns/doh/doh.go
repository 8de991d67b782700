// Package doh implements a DNS-over-HTTPS resolver used as a fallback
// when a system resolver is unavailable or blocked.
package doh

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/miekg/dns"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/http2"

	"github.com/m-abdelghani02/libsignal-client-api/internal/dnswire"
)

const dohMediaType = "application/dns-message"

// Kind classifies what stage of a DoH resolution failed.
type Kind int

const (
	TransportFailure Kind = iota
	BadStatus
)

func (k Kind) String() string {
	switch k {
	case TransportFailure:
		return "transport_failure"
	case BadStatus:
		return "bad_status"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is sent on Result.Err by Transport.Resolve. Status
// is only meaningful when Kind is BadStatus.
type Error struct {
	Kind   Kind
	Status int
	Cause  error
}

func (e *Error) Error() string {
	if e.Kind == BadStatus {
		return fmt.Sprintf("doh: bad status %d", e.Status)
	}
	return fmt.Sprintf("doh: %s: %s", e.Kind, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// IsTransport marks TransportFailure errors as errdefs.ErrTransport.
func (e *Error) IsTransport() bool { return e.Kind == TransportFailure }

// Result is one query's outcome: either a set of resolved addresses, or
// an error.
type Result struct {
	Addrs []net.IP
	Err   error
}

// Transport resolves hostnames over DNS-over-HTTPS.
type Transport struct {
	client      *http.Client
	endpoint    string
	ipv6Enabled bool
}

// NewTransport returns a Transport querying the given DoH endpoint
// (e.g. "https://dns.example/dns-query"). AAAA queries are only issued
// when ipv6Enabled is true.
func NewTransport(endpoint string, ipv6Enabled bool) *Transport {
	transport := &http.Transport{}
	if err := http2.ConfigureTransport(transport); err != nil {
		logrus.WithError(err).Warn("doh: failed to configure HTTP/2 transport, falling back to HTTP/1.1")
	}
	client := &http.Client{Timeout: 10 * time.Second, Transport: transport}
	return &Transport{client: client, endpoint: endpoint, ipv6Enabled: ipv6Enabled}
}

// Resolve issues A (and, if enabled, AAAA) queries for hostname
// concurrently, delivering each query's Result on the returned channel
// in completion order. The channel is closed once every query has
// reported, or ctx is canceled.
func (t *Transport) Resolve(ctx context.Context, hostname string) (<-chan Result, error) {
	types := []uint16{dns.TypeA}
	if t.ipv6Enabled {
		types = append(types, dns.TypeAAAA)
	}

	out := make(chan Result)
	go func() {
		defer close(out)
		done := make(chan Result, len(types))
		for _, qtype := range types {
			go func(qtype uint16) {
				addrs, err := t.query(ctx, hostname, qtype)
				done <- Result{Addrs: addrs, Err: err}
			}(qtype)
		}
		for range types {
			select {
			case res := <-done:
				select {
				case out <- res:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (t *Transport) query(ctx context.Context, hostname string, qtype uint16) ([]net.IP, error) {
	wireQuery, err := dnswire.BuildQuery(hostname, qtype)
	if err != nil {
		return nil, &Error{Kind: TransportFailure, Cause: errors.Wrap(err, "doh: build query")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(wireQuery))
	if err != nil {
		return nil, &Error{Kind: TransportFailure, Cause: errors.Wrap(err, "doh: build request")}
	}
	req.Header.Set("Content-Type", dohMediaType)
	req.Header.Set("Accept", dohMediaType)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &Error{Kind: TransportFailure, Cause: errors.Wrap(err, "doh: request failed")}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Kind: BadStatus, Status: resp.StatusCode}
	}

	body := make([]byte, 0, 512)
	buf := make([]byte, 512)
	for {
		n, err := resp.Body.Read(buf)
		body = append(body, buf[:n]...)
		if err != nil {
			break
		}
	}

	addrs, err := dnswire.ParseAddrs(body)
	if err != nil {
		return nil, &Error{Kind: TransportFailure, Cause: err}
	}
	return addrs, nil
}
