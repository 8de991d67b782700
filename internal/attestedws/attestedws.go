// Package attestedws wraps a gorilla/websocket connection with the HTTP
// Basic auth header and attestation handshake exchange an enclave
// endpoint requires before the connection is handed to its caller.
package attestedws

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/m-abdelghani02/libsignal-client-api/auth"
	"github.com/m-abdelghani02/libsignal-client-api/internal/netinfra"
)

// Connection is an established, attested WebSocket connection to a
// remote enclave endpoint.
type Connection struct {
	ws *websocket.Conn
}

// ReadMessage reads one binary attestation-protocol frame.
func (c *Connection) ReadMessage() ([]byte, error) {
	kind, data, err := c.ws.ReadMessage()
	if err != nil {
		return nil, errors.Wrap(err, "attestedws: read")
	}
	if kind != websocket.BinaryMessage {
		return nil, fmt.Errorf("attestedws: unexpected message type %d", kind)
	}
	return data, nil
}

// WriteMessage writes one binary attestation-protocol frame.
func (c *Connection) WriteMessage(data []byte) error {
	if err := c.ws.WriteMessage(websocket.BinaryMessage, data); err != nil {
		return errors.Wrap(err, "attestedws: write")
	}
	return nil
}

// Close closes the underlying WebSocket connection.
func (c *Connection) Close() error { return c.ws.Close() }

var dialer = websocket.Dialer{HandshakeTimeout: 10 * time.Second}

// Dial establishes a WebSocket connection to url, attaching HTTP Basic
// auth credentials and any decorators from params before upgrading.
func Dial(ctx context.Context, url string, creds auth.HTTPBasicAuth, params *netinfra.ConnectionParams) (*Connection, error) {
	header := http.Header{}
	if creds != nil {
		user, pass := creds.BasicAuth()
		req := &http.Request{Header: header}
		req.SetBasicAuth(user, pass)
	}

	d := dialer
	if params != nil {
		if tlsConfig := params.TLSConfig(); tlsConfig != nil {
			d.TLSClientConfig = tlsConfig
		}
		decorated := &http.Request{Header: header}
		params.Decorate(decorated)
	}

	logrus.WithField("url", url).Debug("attestedws: dialing")
	conn, resp, err := d.DialContext(ctx, url, header)
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		return nil, errors.Wrapf(err, "attestedws: dial (status %d)", status)
	}
	return &Connection{ws: conn}, nil
}
