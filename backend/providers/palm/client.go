// Package palm implements a generation client for the legacy PaLM
// generateText API (text-bison models). It exists as the last resort in the
// default fallback chain for deployments still carrying the old models.
package palm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/planforge/homeplan/backend/providers"
	"github.com/planforge/homeplan/core"
)

const (
	// DefaultBaseURL is the legacy PaLM API endpoint
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta2"
)

// Client implements core.GenClient for the legacy PaLM text API
type Client struct {
	*providers.BaseClient
	apiKey  string
	baseURL string
}

// NewClient creates a new PaLM client with configuration
func NewClient(apiKey, baseURL string, logger core.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	base := providers.NewBaseClient(30*time.Second, logger)
	base.DefaultModel = "text-bison-001"

	return &Client{
		BaseClient: base,
		apiKey:     apiKey,
		baseURL:    baseURL,
	}
}

// GenerateResponse generates a response using the legacy generateText API
func (c *Client) GenerateResponse(ctx context.Context, prompt string, options *core.GenOptions) (*core.GenResponse, error) {
	ctx, span := c.StartSpan(ctx, "gen.generate_response")
	defer span.End()
	span.SetAttribute("gen.provider", "palm")
	span.SetAttribute("gen.prompt_length", len(prompt))

	if c.apiKey == "" {
		err := fmt.Errorf("palm API key not configured: %w", core.ErrMissingConfiguration)
		span.RecordError(err)
		return nil, err
	}

	options = c.ApplyDefaults(options)
	span.SetAttribute("gen.model", options.Model)

	c.LogRequest("palm", options.Model, prompt)
	startTime := time.Now()

	reqBody := GenerateTextRequest{
		Prompt:          TextPrompt{Text: prompt},
		Temperature:     options.Temperature,
		MaxOutputTokens: options.MaxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	// Format: /models/{model}:generateText?key={api_key}
	url := fmt.Sprintf("%s/models/%s:generateText?key=%s", c.baseURL, options.Model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Error("PaLM request failed - send error", map[string]interface{}{
			"operation": "gen_request_error",
			"provider":  "palm",
			"model":     options.Model,
			"error":     err.Error(),
		})
		span.RecordError(err)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := c.HandleError(resp.StatusCode, body, "PaLM")
		c.Logger.Error("PaLM request failed - API error", map[string]interface{}{
			"operation":   "gen_request_error",
			"provider":    "palm",
			"model":       options.Model,
			"status_code": resp.StatusCode,
		})
		span.RecordError(apiErr)
		span.SetAttribute("http.status_code", resp.StatusCode)
		return nil, apiErr
	}

	var palmResp GenerateTextResponse
	if err := json.Unmarshal(body, &palmResp); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	content := palmResp.text()
	if content == "" {
		content = string(bytes.TrimSpace(body))
	}
	if content == "" {
		emptyErr := fmt.Errorf("palm: %w", core.ErrNoContent)
		span.RecordError(emptyErr)
		return nil, emptyErr
	}

	result := &core.GenResponse{
		Content: content,
		Model:   options.Model,
	}

	span.SetAttribute("gen.response_length", len(result.Content))
	c.LogResponse("palm", result.Model, result.Usage, time.Since(startTime))

	return result, nil
}
