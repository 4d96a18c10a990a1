// Package supabase talks to the Supabase Storage REST API, which holds the
// original photo files.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/schoolshots/photo-intake/internal/core/ports"
)

const defaultTimeout = 60 * time.Second

// ErrObjectNotFound is returned by Download for a missing object.
var ErrObjectNotFound = errors.New("storage object not found")

// APIError is a non-2xx answer from the storage API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("storage api: %d %s", e.Status, e.Message)
}

// Config points the client at one bucket.
type Config struct {
	URL        string
	ServiceKey string
	Bucket     string
	HTTPClient *http.Client
}

// Client implements ports.ObjectStore for a single bucket.
type Client struct {
	base   string
	key    string
	bucket string
	http   *http.Client
}

var _ ports.ObjectStore = (*Client)(nil)

func NewClient(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		base:   strings.TrimRight(cfg.URL, "/") + "/storage/v1",
		key:    cfg.ServiceKey,
		bucket: cfg.Bucket,
		http:   hc,
	}
}

// Upload writes body under path. Existing objects are never overwritten.
func (c *Client) Upload(ctx context.Context, path string, body io.Reader, size int64, contentType string) error {
	req, err := c.newRequest(ctx, http.MethodPost, c.objectURL(path), body)
	if err != nil {
		return err
	}
	if size > 0 {
		req.ContentLength = size
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "false")
	req.Header.Set("Cache-Control", "max-age=3600")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upload %s: %w", path, err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return fmt.Errorf("upload %s: %w", path, err)
	}
	return nil
}

// Download streams the object at path. The caller closes the reader.
func (c *Client) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.objectURL(path), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", path, err)
	}
	if err := checkResponse(resp); err != nil {
		resp.Body.Close()
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, fmt.Errorf("download %s: %w", path, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("download %s: %w", path, err)
	}
	return resp.Body, nil
}

// Remove deletes the given objects in one call.
func (c *Client) Remove(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}

	payload, err := json.Marshal(map[string][]string{"prefixes": paths})
	if err != nil {
		return fmt.Errorf("remove: encode: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodDelete, c.base+"/object/"+url.PathEscape(c.bucket), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

// PublicURL returns the unauthenticated URL of path in a public bucket.
func (c *Client) PublicURL(path string) string {
	return c.base + "/object/public/" + url.PathEscape(c.bucket) + "/" + escapePath(path)
}

func (c *Client) objectURL(path string) string {
	return c.base + "/object/" + url.PathEscape(c.bucket) + "/" + escapePath(path)
}

func (c *Client) newRequest(ctx context.Context, method, target string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build storage request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("apikey", c.key)
	return req, nil
}

// escapePath escapes each segment and keeps the separators.
func escapePath(path string) string {
	segments := strings.Split(strings.TrimLeft(path, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

func checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var body struct {
		StatusCode string `json:"statusCode"`
		Error      string `json:"error"`
		Message    string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	msg := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &body) == nil && body.Message != "" {
		msg = body.Message
	}

	status := resp.StatusCode
	// The storage API reports a missing object as 400 with statusCode "404".
	if body.StatusCode == "404" {
		status = http.StatusNotFound
	}
	return &APIError{Status: status, Message: msg}
}
