package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"zetra/internal/domain"
)

// StatusError is returned by Client for non-2xx responses.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("zetra-server: %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("zetra-server: %d %s", e.Code, e.Message)
}

// Client talks to a running zetra-server.
type Client struct {
	Base string
	HTTP *http.Client
}

// NewClient returns a client for the server at base, e.g.
// http://127.0.0.1:3000.
func NewClient(base string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{Base: base, HTTP: hc}
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var out Health
	err := c.do(ctx, http.MethodGet, "/health", nil, nil, &out)
	return out, err
}

// Current calls GET /v1/profile. A 404 reports ok=false.
func (c *Client) Current(ctx context.Context) (domain.PublicView, bool, error) {
	var out domain.PublicView
	err := c.do(ctx, http.MethodGet, "/v1/profile", nil, nil, &out)
	var se *StatusError
	if errors.As(err, &se) && se.Code == http.StatusNotFound {
		return domain.PublicView{}, false, nil
	}
	if err != nil {
		return domain.PublicView{}, false, err
	}
	return out, true, nil
}

// Create calls POST /v1/profile.
func (c *Client) Create(ctx context.Context, req domain.CreateRequest) (domain.PublicView, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return domain.PublicView{}, err
	}
	var out domain.PublicView
	err = c.do(ctx, http.MethodPost, "/v1/profile", bytes.NewReader(b), nil, &out)
	return out, err
}

// Import calls POST /v1/profile/import with an export file.
func (c *Client) Import(ctx context.Context, file io.Reader, passphrase string) (domain.PublicView, error) {
	var out domain.PublicView
	err := c.do(ctx, http.MethodPost, "/v1/profile/import", file, passphraseHeader(passphrase), &out)
	return out, err
}

// Export calls GET /v1/profile/export and returns the file and its name.
func (c *Client) Export(ctx context.Context, passphrase string) ([]byte, string, error) {
	resp, err := c.send(ctx, http.MethodGet, "/v1/profile/export", nil, passphraseHeader(passphrase))
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	var filename string
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		filename = params["filename"]
	}
	return data, filename, nil
}

// Reset calls DELETE /v1/profile.
func (c *Client) Reset(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/v1/profile", nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, hdr http.Header, out any) error {
	resp, err := c.send(ctx, method, path, body, hdr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, hdr http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range hdr {
		req.Header[k] = vs
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode/100 != 2 {
		defer resp.Body.Close()
		var eb errorBody
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&eb)
		return nil, &StatusError{Code: resp.StatusCode, Message: eb.Error}
	}
	return resp, nil
}

func passphraseHeader(p string) http.Header {
	if p == "" {
		return nil
	}
	h := http.Header{}
	h.Set(PassphraseHeader, p)
	return h
}
