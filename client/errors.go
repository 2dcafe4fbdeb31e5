package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthenticated is wrapped by every 401 APIError. Callers check it with
// errors.Is and route the user back to login.
var ErrUnauthenticated = errors.New("client: not authenticated")

// APIError is a non-2xx response from the server. Message carries the
// server's own wording when the body had one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrUnauthenticated
	}
	return nil
}

// ConnectivityError means the request never produced a response: the server
// is unreachable or the connection dropped. The session is left untouched and
// a retry is reasonable.
type ConnectivityError struct {
	URL string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("client: cannot reach %s: %v", e.URL, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }
