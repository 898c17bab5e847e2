package figma

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

const (
	figmaAPIBase = "https://api.figma.com/v1"
)

// Client represents a Figma API client. It only materializes documents and
// image URLs; extraction never talks to the network.
//
// Every request increments a counter owned by the Client value, so callers
// that need request accounting read it from their own client instance.
type Client struct {
	accessToken string
	baseURL     string
	httpClient  *http.Client
	requests    atomic.Int64
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithBaseURL points the client to a different API root (used by tests).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new Figma API client with the provided personal access token.
// The default transport pools connections and disables HTTP/2, which is unstable
// for very large file payloads.
func NewClient(accessToken string, opts ...ClientOption) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
		ForceAttemptHTTP2:   false,
	}

	c := &Client{
		accessToken: accessToken,
		baseURL:     figmaAPIBase,
		httpClient: &http.Client{
			Timeout:   10 * time.Minute,
			Transport: transport,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Requests returns the number of API requests issued by this client so far.
func (c *Client) Requests() int64 {
	return c.requests.Load()
}

var fileKeyRe = regexp.MustCompile(`^https?://(?:www\.)?figma\.com/(?:file|design)/([A-Za-z0-9]+)(?:/|\?|$)`)

// ExtractFileKey extracts the unique file identifier from a Figma URL.
// Supports both /file/ and /design/ URL patterns (e.g., figma.com/file/ABC123/Design-Name).
// A bare file key (no scheme) is returned unchanged.
func ExtractFileKey(figmaURL string) (string, error) {
	if figmaURL != "" && !strings.Contains(figmaURL, "/") && isAlnum(figmaURL) {
		return figmaURL, nil
	}

	matches := fileKeyRe.FindStringSubmatch(figmaURL)
	if len(matches) < 2 {
		return "", fmt.Errorf("invalid Figma URL format: must be a valid figma.com URL with /file/ or /design/ path")
	}

	return matches[1], nil
}

func isAlnum(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// GetFile retrieves complete file data from the Figma API including document structure,
// styles, components and component sets.
func (c *Client) GetFile(ctx context.Context, fileKey string) (*FileResponse, error) {
	var fileResp FileResponse
	if err := c.get(ctx, "/files/"+url.PathEscape(fileKey), nil, &fileResp); err != nil {
		return nil, err
	}
	return &fileResp, nil
}

// GetImages asks the render API for download URLs of the given nodes.
func (c *Client) GetImages(ctx context.Context, fileKey string, nodeIDs []string, format string, scale float64) (*ImagesResponse, error) {
	q := url.Values{}
	q.Set("ids", strings.Join(nodeIDs, ","))
	q.Set("format", format)
	if format != "svg" && format != "pdf" {
		q.Set("scale", strconv.FormatFloat(scale, 'f', -1, 64))
	}

	var imgResp ImagesResponse
	if err := c.get(ctx, "/images/"+url.PathEscape(fileKey), q, &imgResp); err != nil {
		return nil, err
	}
	if imgResp.Err != "" {
		return nil, fmt.Errorf("render API error: %s", imgResp.Err)
	}
	return &imgResp, nil
}

// Download fetches a rendered asset from a URL returned by GetImages.
func (c *Client) Download(ctx context.Context, assetURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.requests.Add(1)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP GET failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d downloading asset", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Figma-Token", c.accessToken)

	c.requests.Add(1)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
