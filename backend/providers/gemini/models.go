package gemini

import "strings"

// GenerateRequest represents the native Gemini GenerateContent API request
type GenerateRequest struct {
	Contents          []Content          `json:"contents"`
	GenerationConfig  *GenerationConfig  `json:"generationConfig,omitempty"`
	SystemInstruction *SystemInstruction `json:"systemInstruction,omitempty"`
}

// Content represents a content block in the request
type Content struct {
	Role  string `json:"role"` // "user" or "model"
	Parts []Part `json:"parts"`
}

// Part represents a part of content
type Part struct {
	Text string `json:"text"`
}

// SystemInstruction represents system instructions
type SystemInstruction struct {
	Parts []Part `json:"parts"`
}

// GenerationConfig represents generation configuration
type GenerationConfig struct {
	Temperature     float32 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// GenerateResponse represents the response from the Gemini API. Different
// API generations and proxies put the textual payload in different places:
// a top-level text field, a content field, or nested candidate parts.
type GenerateResponse struct {
	Text          string        `json:"text,omitempty"`
	Content       string        `json:"content,omitempty"`
	Candidates    []Candidate   `json:"candidates"`
	UsageMetadata UsageMetadata `json:"usageMetadata"`
	ModelVersion  string        `json:"modelVersion"`
}

// Candidate represents a response candidate
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason"`
	Index        int     `json:"index"`
}

// UsageMetadata represents token usage information
type UsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

// text normalizes the heterogeneous response shapes to a single string by
// probing the known payload fields in priority order. An empty result means
// none of the shapes carried text.
func (r *GenerateResponse) text() string {
	if s := strings.TrimSpace(r.Text); s != "" {
		return s
	}
	if s := strings.TrimSpace(r.Content); s != "" {
		return s
	}
	if len(r.Candidates) > 0 {
		var sb strings.Builder
		for _, part := range r.Candidates[0].Content.Parts {
			sb.WriteString(part.Text)
		}
		return strings.TrimSpace(sb.String())
	}
	return ""
}
