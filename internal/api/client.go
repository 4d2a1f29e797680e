// Package api is the HTTP/JSON client for the WAR ROOM gateway. All entities
// are owned by the remote API; callers hold only the transient copies these
// methods return.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const userAgent = "warroom-cli"

type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client

	// Logf receives one line per failed request. Nil disables logging.
	Logf func(format string, args ...any)
}

func New(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		Token:      strings.TrimSpace(token),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// StatusError is a non-2xx response with the gateway's decoded detail field.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if strings.TrimSpace(e.Detail) != "" {
		return fmt.Sprintf("api status %d: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("api status %d", e.Code)
}

func (e *StatusError) AuthRequired() bool {
	return e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden
}

type errorEnvelope struct {
	Detail json.RawMessage `json:"detail"`
}

func (c *Client) logf(format string, args ...any) {
	if c.Logf != nil {
		c.Logf(format, args...)
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		c.logf("%s %s failed: %v", method, path, err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{Code: resp.StatusCode, Detail: decodeDetail(resp.Body)}
		c.logf("%s %s failed: %v", method, path, statusErr)
		return statusErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logf("%s %s decode failed: %v", method, path, err)
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// decodeDetail extracts the gateway's {"detail": ...} error field; detail is
// usually a string but validation failures ship structured payloads.
func decodeDetail(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 16*1024))
	if err != nil {
		return ""
	}
	var envelope errorEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(envelope.Detail, &detail); err == nil {
		return detail
	}
	return string(envelope.Detail)
}
