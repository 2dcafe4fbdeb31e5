package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/0zturkSamet/task-manager/domain"
)

const defaultTimeout = 30 * time.Second

// Client talks to the task manager API. It attaches the session's bearer
// token to every request and translates error responses into the APIError /
// ConnectivityError taxonomy.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

// New builds a client for the API at baseURL. httpClient may be nil, in
// which case a client with a default timeout is used.
func New(baseURL string, httpClient *http.Client, session *Session) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		session: session,
	}
}

// Session returns the session store backing this client.
func (c *Client) Session() *Session { return c.session }

// Restore validates a persisted session against the server. A 401 clears the
// session and reports ErrUnauthenticated. A connectivity failure keeps the
// token so the next launch can retry.
func (c *Client) Restore(ctx context.Context) (*domain.User, error) {
	if c.session.Token() == "" {
		return nil, ErrUnauthenticated
	}
	user, err := c.Profile(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.session.SetUser(user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		data, err := sonic.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &ConnectivityError{URL: c.baseURL + path, Err: err}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		return c.errorFromResponse(resp)
	}
	if out == nil {
		return nil
	}
	return sonic.ConfigStd.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) errorFromResponse(resp *http.Response) error {
	var payload struct {
		Message string `json:"message"`
	}
	_ = sonic.ConfigStd.NewDecoder(resp.Body).Decode(&payload)

	apiErr := &APIError{StatusCode: resp.StatusCode, Message: payload.Message}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		// The credentials are no longer valid anywhere, not just for this
		// call. Drop them so the next command starts at login.
		_ = c.session.Clear()
	case http.StatusConflict:
		if apiErr.Message == "" {
			apiErr.Message = "conflict with existing data"
		}
	}
	return apiErr
}

// IsNotFound reports whether err is a 404 APIError.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsForbidden reports whether err is a 403 APIError.
func IsForbidden(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden
}
