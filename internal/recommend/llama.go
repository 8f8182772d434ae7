package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// LlamaGenerator implements Generator against a llama.cpp-style completion
// server running on the same box. Inference is CPU-bound on the server side
// and can take tens of seconds, so the HTTP timeout is generous.
type LlamaGenerator struct {
	url        string
	httpClient *http.Client
}

// NewLlamaGenerator creates a generator for the completion endpoint at url.
// timeout <= 0 defaults to two minutes.
func NewLlamaGenerator(url string, timeout time.Duration) *LlamaGenerator {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &LlamaGenerator{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type completionRequest struct {
	Prompt   string `json:"prompt"`
	NPredict int    `json:"n_predict"`
}

type completionResponse struct {
	Content string `json:"content"`
}

// Complete sends one completion request and returns the raw generated text.
// The model being unreachable is an error, not an empty result.
func (g *LlamaGenerator) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	reqBody, err := json.Marshal(completionRequest{
		Prompt:   prompt,
		NPredict: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("local model unavailable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read completion response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("local model error (status %d): %s", resp.StatusCode, string(body))
	}

	var completion completionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", &DecodeError{Raw: string(body), Err: err}
	}

	return completion.Content, nil
}
