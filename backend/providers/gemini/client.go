// Package gemini implements a generation client for the native Gemini
// GenerateContent API.
package gemini

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
	// DefaultBaseURL is the default Gemini API endpoint
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
)

// Client implements core.GenClient for Google Gemini
type Client struct {
	*providers.BaseClient
	apiKey  string
	baseURL string
}

// NewClient creates a new Gemini client with configuration
func NewClient(apiKey, baseURL string, logger core.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	base := providers.NewBaseClient(30*time.Second, logger)
	base.DefaultModel = "gemini-1.5-flash"

	return &Client{
		BaseClient: base,
		apiKey:     apiKey,
		baseURL:    baseURL,
	}
}

// GenerateResponse generates a response using Gemini's native GenerateContent API
func (c *Client) GenerateResponse(ctx context.Context, prompt string, options *core.GenOptions) (*core.GenResponse, error) {
	ctx, span := c.StartSpan(ctx, "gen.generate_response")
	defer span.End()
	span.SetAttribute("gen.provider", "gemini")
	span.SetAttribute("gen.prompt_length", len(prompt))

	if c.apiKey == "" {
		err := fmt.Errorf("gemini API key not configured: %w", core.ErrMissingConfiguration)
		span.RecordError(err)
		return nil, err
	}

	options = c.ApplyDefaults(options)
	span.SetAttribute("gen.model", options.Model)

	c.LogRequest("gemini", options.Model, prompt)
	startTime := time.Now()

	reqBody := GenerateRequest{
		Contents: []Content{
			{
				Role:  "user",
				Parts: []Part{{Text: prompt}},
			},
		},
		GenerationConfig: &GenerationConfig{
			Temperature:     options.Temperature,
			MaxOutputTokens: options.MaxTokens,
		},
	}
	if options.SystemPrompt != "" {
		reqBody.SystemInstruction = &SystemInstruction{
			Parts: []Part{{Text: options.SystemPrompt}},
		}
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	// Format: /models/{model}:generateContent?key={api_key}
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, options.Model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Error("Gemini request failed - send error", map[string]interface{}{
			"operation": "gen_request_error",
			"provider":  "gemini",
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
		apiErr := c.HandleError(resp.StatusCode, body, "Gemini")
		c.Logger.Error("Gemini request failed - API error", map[string]interface{}{
			"operation":   "gen_request_error",
			"provider":    "gemini",
			"model":       options.Model,
			"status_code": resp.StatusCode,
		})
		span.RecordError(apiErr)
		span.SetAttribute("http.status_code", resp.StatusCode)
		return nil, apiErr
	}

	var geminiResp GenerateResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	// Probe the known payload shapes; as a last resort treat the whole body
	// as the text so downstream extraction still gets a chance at it.
	content := geminiResp.text()
	if content == "" {
		c.Logger.Warn("Gemini response has no recognized text field, using raw body", map[string]interface{}{
			"operation": "gen_response_normalize",
			"provider":  "gemini",
			"model":     options.Model,
		})
		content = string(bytes.TrimSpace(body))
	}
	if content == "" {
		emptyErr := fmt.Errorf("gemini: %w", core.ErrNoContent)
		span.RecordError(emptyErr)
		return nil, emptyErr
	}

	result := &core.GenResponse{
		Content: content,
		Model:   options.Model,
		Usage: core.TokenUsage{
			PromptTokens:     geminiResp.UsageMetadata.PromptTokenCount,
			CompletionTokens: geminiResp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      geminiResp.UsageMetadata.TotalTokenCount,
		},
	}

	span.SetAttribute("gen.total_tokens", result.Usage.TotalTokens)
	span.SetAttribute("gen.response_length", len(result.Content))
	c.LogResponse("gemini", result.Model, result.Usage, time.Since(startTime))

	return result, nil
}
