package palm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planforge/homeplan/core"
)

func TestGenerateTextSuccess(t *testing.T) {
	var gotPath string
	var gotReq GenerateTextRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		resp := GenerateTextResponse{Candidates: []TextCandidate{
			{Output: ""},
			{Output: "{\"summary\":\"from the bison\"}"},
		}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, nil)
	resp, err := client.GenerateResponse(context.Background(), "build a plan", &core.GenOptions{Model: "text-bison-001"})
	require.NoError(t, err)

	assert.Equal(t, "/models/text-bison-001:generateText", gotPath)
	assert.Equal(t, "build a plan", gotReq.Prompt.Text)
	// The first empty candidate is skipped
	assert.Equal(t, "{\"summary\":\"from the bison\"}", resp.Content)
	assert.Equal(t, "text-bison-001", resp.Model)
}

func TestGenerateTextMissingKey(t *testing.T) {
	client := NewClient("", "", nil)
	_, err := client.GenerateResponse(context.Background(), "prompt", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrMissingConfiguration)
}

func TestGenerateTextAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"message":"model retired"}}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, nil)
	_, err := client.GenerateResponse(context.Background(), "prompt", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}
