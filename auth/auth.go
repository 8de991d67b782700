// Package auth provides the HTTP Basic auth credential decorator used to
// authenticate enclave and chat-service connections.
package auth

// HTTPBasicAuth supplies the username/password pair for an HTTP Basic
// auth header, the same shape http.Request.SetBasicAuth expects.
type HTTPBasicAuth interface {
	BasicAuth() (username, password string)
}

// StaticAuth is an HTTPBasicAuth backed by a fixed credential pair, set
// once at construction time.
type StaticAuth struct {
	Username string
	Password string
}

func (s StaticAuth) BasicAuth() (string, string) { return s.Username, s.Password }
