// Package planner talks to the hosted text-generation service that turns a
// natural-language instruction into a structured action batch. It performs no
// drawing itself; its output flows into the action executor, which owns all
// validation and mutation.
package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/modaria/modaria/backend-go/internal/action"
	"github.com/modaria/modaria/backend-go/internal/canvas"
	"github.com/modaria/modaria/backend-go/internal/remote"
)

// Mode selects what the service should produce.
type Mode string

const (
	ModeAction  Mode = "action"
	ModeSuggest Mode = "suggest"
)

// TemplateSummary describes one placed instance compactly enough for the
// planner to address its regions.
type TemplateSummary struct {
	InstanceID string   `json:"instanceId"`
	TemplateID string   `json:"templateId"`
	RegionIDs  []string `json:"regionIds"`
}

// CanvasState is the compact scene summary sent alongside the prompt.
type CanvasState struct {
	Elements   []canvas.CanvasElement `json:"elements"`
	Templates  []TemplateSummary      `json:"templates"`
	Selected   *canvas.SelectedRegion `json:"selected,omitempty"`
	ActiveTool string                 `json:"activeTool,omitempty"`
	Stage      string                 `json:"stage,omitempty"`
}

// Summarize builds the canvas-state summary from a live scene.
func Summarize(s *canvas.Scene, stage string) *CanvasState {
	state := &CanvasState{
		Elements:   s.Elements(),
		Selected:   s.SelectedRegion(),
		ActiveTool: string(s.Tool()),
		Stage:      stage,
	}
	for _, ti := range s.Instances() {
		summary := TemplateSummary{InstanceID: ti.InstanceID, TemplateID: ti.TemplateID}
		for _, rp := range ti.Regions {
			summary.RegionIDs = append(summary.RegionIDs, rp.RegionID)
		}
		state.Templates = append(state.Templates, summary)
	}
	return state
}

// Plan is a decoded action-mode response.
type Plan struct {
	Actions     []action.Action `json:"actions"`
	Explanation string          `json:"explanation"`
}

// Suggestion is one entry of a suggest-mode response.
type Suggestion struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type planRequest struct {
	Prompt      string       `json:"prompt"`
	Context     string       `json:"context,omitempty"`
	Mode        Mode         `json:"mode"`
	CanvasState *CanvasState `json:"canvasState,omitempty"`
}

// Client calls the planning edge function.
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
			Timeout: 2 * time.Minute,
		},
	}
}

// PlanActions asks the service for an action batch. A malformed or failed
// response surfaces as one error; no partial batch ever escapes.
func (c *Client) PlanActions(ctx context.Context, prompt, contextNote string, state *CanvasState) (*Plan, error) {
	body, err := c.post(ctx, planRequest{
		Prompt:      prompt,
		Context:     contextNote,
		Mode:        ModeAction,
		CanvasState: state,
	})
	if err != nil {
		return nil, err
	}

	var plan Plan
	if err := json.Unmarshal(body, &plan); err != nil {
		return nil, fmt.Errorf("parse planner response: %w", err)
	}
	if plan.Actions == nil {
		return nil, fmt.Errorf("planner response has no actions")
	}
	return &plan, nil
}

// Suggest asks the service for design suggestions instead of actions.
func (c *Client) Suggest(ctx context.Context, prompt, contextNote string, state *CanvasState) ([]Suggestion, error) {
	body, err := c.post(ctx, planRequest{
		Prompt:      prompt,
		Context:     contextNote,
		Mode:        ModeSuggest,
		CanvasState: state,
	})
	if err != nil {
		return nil, err
	}

	var out struct {
		Suggestions []Suggestion `json:"suggestions"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("parse suggestions: %w", err)
	}
	return out.Suggestions, nil
}

// PlanActionsWithRetry retries retryable failures with exponential backoff,
// honoring a rate limit's retry-after hint. Cancelling ctx aborts between
// attempts and mid-request.
func (c *Client) PlanActionsWithRetry(ctx context.Context, prompt, contextNote string, state *CanvasState, maxRetries int) (*Plan, error) {
	var lastErr error

	for i := 0; i < maxRetries; i++ {
		plan, err := c.PlanActions(ctx, prompt, contextNote, state)
		if err == nil {
			return plan, nil
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

	return nil, fmt.Errorf("planner failed after %d attempts: %w", maxRetries, lastErr)
}

func (c *Client) post(ctx context.Context, reqBody planRequest) ([]byte, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal planner request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create planner request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("planner request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, remote.DecodeError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read planner response: %w", err)
	}
	return body, nil
}
