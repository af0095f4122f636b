package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"gmrportal/pkg/logger"
)

type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionGateway opens a streaming chat completion. The returned body is
// the raw event stream and must be closed by the caller.
type CompletionGateway interface {
	StreamCompletion(ctx context.Context, turns []ChatTurn) (io.ReadCloser, error)
}

// GatewayStatusError is returned when the gateway answers with a non-2xx status.
type GatewayStatusError struct {
	StatusCode int
	Body       string
}

func (e *GatewayStatusError) Error() string {
	return fmt.Sprintf("completion gateway returned status %d", e.StatusCode)
}

type LLMGatewayClient struct {
	url    string
	apiKey string
	model  string
	client *http.Client
}

func NewLLMGatewayClient(url, apiKey, model string) *LLMGatewayClient {
	return &LLMGatewayClient{
		url:    url,
		apiKey: apiKey,
		model:  model,
		// no client timeout: streams stay open as long as the request context
		client: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
}

type completionRequest struct {
	Model    string     `json:"model"`
	Messages []ChatTurn `json:"messages"`
	Stream   bool       `json:"stream"`
}

func (c *LLMGatewayClient) StreamCompletion(ctx context.Context, turns []ChatTurn) (io.ReadCloser, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("LLM API key is not configured")
	}

	payload, err := json.Marshal(completionRequest{
		Model:    c.model,
		Messages: turns,
		Stream:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach completion gateway: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		logger.Error("AI gateway error: %d %s", resp.StatusCode, string(body))
		return nil, &GatewayStatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return resp.Body, nil
}
