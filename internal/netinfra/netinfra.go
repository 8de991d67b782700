// Package netinfra holds the connection parameters shared across the
// transports this module dials out over: TLS roots, request decorators,
// and proxy configuration, assembled with the functional-options pattern.
package netinfra

import (
	"crypto/tls"
	"crypto/x509"
	"net/http"
)

// RequestDecorator mutates an outgoing request's headers before it is
// sent, e.g. to attach Basic auth or a User-Agent.
type RequestDecorator func(req *http.Request)

// DomainConfig names the remote host a connection is made to, independent
// of which route or proxy actually carries the traffic.
type DomainConfig struct {
	Hostname string
	Port     int
}

// ConnectionParams bundles the TLS and decoration policy applied to every
// route a connmgr.Manager may choose.
type ConnectionParams struct {
	RootCAs    *x509.CertPool
	Decorators []RequestDecorator
	ProxyURL   string
}

// Option configures a ConnectionParams.
type Option func(*ConnectionParams)

// WithRootCertificates sets the trust root used to verify the remote's
// TLS certificate. Without it, the system root pool is used.
func WithRootCertificates(pool *x509.CertPool) Option {
	return func(p *ConnectionParams) { p.RootCAs = pool }
}

// WithRequestDecorator appends a decorator run on every outgoing request,
// in the order they were added.
func WithRequestDecorator(d RequestDecorator) Option {
	return func(p *ConnectionParams) { p.Decorators = append(p.Decorators, d) }
}

// WithProxyURL records a proxy URL in ConnectionParams.ProxyURL.
// attestedws.Dial does not read this field, so connections made through
// it are not routed via the proxy.
func WithProxyURL(url string) Option {
	return func(p *ConnectionParams) { p.ProxyURL = url }
}

// NewConnectionParams builds a ConnectionParams from the given options.
func NewConnectionParams(opts ...Option) *ConnectionParams {
	p := &ConnectionParams{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Decorate runs every configured decorator over req, in order.
func (p *ConnectionParams) Decorate(req *http.Request) {
	for _, d := range p.Decorators {
		d(req)
	}
}

// TLSConfig returns a *tls.Config using the configured root pool, or nil
// to signal "use the system defaults" to callers constructing a
// transport.
func (p *ConnectionParams) TLSConfig() *tls.Config {
	if p.RootCAs == nil {
		return nil
	}
	return &tls.Config{RootCAs: p.RootCAs}
}

// TransportConnector is the narrow capability a route hands to each
// dial: the ConnectionParams that dial should apply. It does not dial
// or hold a connection itself.
type TransportConnector interface {
	Params() *ConnectionParams
}

// Static is the simplest TransportConnector: a fixed ConnectionParams.
type Static struct{ P *ConnectionParams }

func (s Static) Params() *ConnectionParams { return s.P }
