package palm

import "strings"

// GenerateTextRequest represents the legacy PaLM generateText API request
type GenerateTextRequest struct {
	Prompt          TextPrompt `json:"prompt"`
	Temperature     float32    `json:"temperature,omitempty"`
	MaxOutputTokens int        `json:"maxOutputTokens,omitempty"`
}

// TextPrompt wraps the prompt text
type TextPrompt struct {
	Text string `json:"text"`
}

// GenerateTextResponse represents the legacy PaLM generateText response.
// The text lives under candidates[].output, a different shape from the
// Gemini GenerateContent API.
type GenerateTextResponse struct {
	Candidates []TextCandidate `json:"candidates"`
}

// TextCandidate represents one completion candidate
type TextCandidate struct {
	Output string `json:"output"`
}

// text returns the first non-empty candidate output
func (r *GenerateTextResponse) text() string {
	for _, c := range r.Candidates {
		if s := strings.TrimSpace(c.Output); s != "" {
			return s
		}
	}
	return ""
}
