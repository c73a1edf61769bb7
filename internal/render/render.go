// Package render calls the hosted sketch-to-photorealistic generation
// service. The canvas hands over a raster export and gets back one image;
// nothing here touches scene state.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/modaria/modaria/backend-go/internal/remote"
)

// Request describes one generation call.
type Request struct {
	SketchImage       string `json:"sketchImage"` // data URL of the canvas export
	Prompt            string `json:"prompt"`
	ReferenceStrength int    `json:"referenceStrength"` // 0-100
	Style             string `json:"style"`
	FabricType        string `json:"fabricType,omitempty"`
	LightingStyle     string `json:"lightingStyle,omitempty"`
}

// Result is a successful generation.
type Result struct {
	Image       string `json:"image"` // data URL
	Description string `json:"description,omitempty"`
	Style       string `json:"style"`
	Prompt      string `json:"prompt"`
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

// Generate runs one render call. Rate limiting and quota exhaustion come
// back as remote errors the caller can inspect; cancelling ctx aborts the
// request.
func (c *Client) Generate(ctx context.Context, req Request) (*Result, error) {
	if req.SketchImage == "" {
		return nil, fmt.Errorf("no sketch provided")
	}
	if req.ReferenceStrength < 0 || req.ReferenceStrength > 100 {
		return nil, fmt.Errorf("reference strength must be 0-100, got %d", req.ReferenceStrength)
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal render request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create render request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("render request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, remote.DecodeError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read render response: %w", err)
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse render response: %w", err)
	}
	if result.Image == "" {
		return nil, fmt.Errorf("render response has no image")
	}
	return &result, nil
}

// GenerateWithRetry retries retryable failures with exponential backoff,
// honoring rate-limit hints. Quota exhaustion and ctx cancellation stop the
// loop immediately.
func (c *Client) GenerateWithRetry(ctx context.Context, req Request, maxRetries int) (*Result, error) {
	var lastErr error

	for i := 0; i < maxRetries; i++ {
		result, err := c.Generate(ctx, req)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if re, ok := remote.AsError(err); ok && !re.Retryable() {
			return nil, err
		}

		backoff := time.Duration(1<<uint(i)) * time.Second
		if re, ok := remote.AsError(err); ok && re.RetryAfter > backoff {
			backoff = re.RetryAfter
		}
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("render failed after %d attempts: %w", maxRetries, lastErr)
}
