// Package mock provides a mock generation provider for tests and local
// development.
package mock

import (
	"context"
	"errors"
	"fmt"

	"github.com/planforge/homeplan/backend"
	"github.com/planforge/homeplan/core"
)

func init() {
	if err := backend.Register(&Factory{}); err != nil {
		panic(fmt.Sprintf("failed to register mock provider: %v", err))
	}
}

// Factory creates mock generation clients
type Factory struct{}

// Name returns the provider name
func (f *Factory) Name() string {
	return "mock"
}

// Description returns provider description
func (f *Factory) Description() string {
	return "Mock provider for testing"
}

// Priority returns provider priority
func (f *Factory) Priority() int {
	return 1 // Very low priority
}

// Create creates a new mock client
func (f *Factory) Create(config *backend.Config) core.GenClient {
	return NewClient(config)
}

// DetectEnvironment checks if mock is enabled
func (f *Factory) DetectEnvironment() (priority int, available bool) {
	// Mock is never auto-detected
	return 0, false
}

// Outcome is one scripted call result
type Outcome struct {
	Content string
	Err     error
}

// Client implements core.GenClient for testing
type Client struct {
	Config       *backend.Config
	Outcomes     []Outcome
	OutcomeIndex int
	Error        error
	CallCount    int
	LastPrompt   string
	LastOptions  *core.GenOptions
	ModelsSeen   []string
}

// NewClient creates a new mock client
func NewClient(config *backend.Config) *Client {
	return &Client{
		Config:   config,
		Outcomes: []Outcome{{Content: "Mock response"}},
	}
}

// GenerateResponse returns the next scripted outcome
func (c *Client) GenerateResponse(ctx context.Context, prompt string, options *core.GenOptions) (*core.GenResponse, error) {
	c.CallCount++
	c.LastPrompt = prompt
	c.LastOptions = options

	model := "mock-model"
	if options != nil && options.Model != "" {
		model = options.Model
	}
	c.ModelsSeen = append(c.ModelsSeen, model)

	// Check for context cancellation
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	// Return configured sticky error if set
	if c.Error != nil {
		return nil, c.Error
	}

	if c.OutcomeIndex >= len(c.Outcomes) {
		return nil, errors.New("no more mock outcomes")
	}

	outcome := c.Outcomes[c.OutcomeIndex]
	c.OutcomeIndex++

	if outcome.Err != nil {
		return nil, outcome.Err
	}

	return &core.GenResponse{
		Content: outcome.Content,
		Model:   model,
		Usage: core.TokenUsage{
			PromptTokens:     len(prompt) / 4, // Rough estimate
			CompletionTokens: len(outcome.Content) / 4,
			TotalTokens:      (len(prompt) + len(outcome.Content)) / 4,
		},
	}, nil
}

// Script sets the outcomes to return, in call order
func (c *Client) Script(outcomes ...Outcome) {
	c.Outcomes = outcomes
	c.OutcomeIndex = 0
}

// SetResponses sets successful responses to return, in call order
func (c *Client) SetResponses(responses ...string) {
	c.Outcomes = make([]Outcome, len(responses))
	for i, r := range responses {
		c.Outcomes[i] = Outcome{Content: r}
	}
	c.OutcomeIndex = 0
}

// SetError sets a sticky error to return on every call
func (c *Client) SetError(err error) {
	c.Error = err
}

// Reset resets the mock client
func (c *Client) Reset() {
	c.OutcomeIndex = 0
	c.CallCount = 0
	c.LastPrompt = ""
	c.LastOptions = nil
	c.ModelsSeen = nil
	c.Error = nil
}
