package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planforge/homeplan/crew"
	"github.com/planforge/homeplan/plan"
)

type stubInvoker struct {
	text string
	err  error
}

func (s *stubInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	return s.text, s.err
}

func decodePlanResponse(t *testing.T, body []byte) (*plan.Plan, map[string]string) {
	t.Helper()
	var resp struct {
		Plan    *plan.Plan        `json:"plan"`
		Request map[string]string `json:"request"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	require.NotNil(t, resp.Plan)
	return resp.Plan, resp.Request
}

func TestGenerateJSONBody(t *testing.T) {
	inv := &stubInvoker{text: "```json\n{\"summary\":\"Backend plan\",\"room_plan\":[],\"materials\":[],\"estimated_cost\":\"low\",\"design_features\":[]}\n```"}
	router := NewRouter(crew.New(inv), nil)

	body := `{"area":"1200","budget":"2500000","rooms":"3","style":"modern","furniture":"yes"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/plans", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	p, echo := decodePlanResponse(t, w.Body.Bytes())
	assert.Equal(t, "Backend plan", p.Summary)
	assert.Equal(t, "1200", echo["area"])
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestGenerateFormBody(t *testing.T) {
	inv := &stubInvoker{err: errors.New("backends down")}
	router := NewRouter(crew.New(inv), nil)

	form := url.Values{}
	form.Set("area", "900")
	form.Set("budget", "1500000")
	form.Set("rooms", "2")
	form.Set("style", "colonial")
	form.Set("furniture", "no")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/plans", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Backend failure still answers 200 with the local fallback
	require.Equal(t, http.StatusOK, w.Code)
	p, _ := decodePlanResponse(t, w.Body.Bytes())
	assert.True(t, strings.HasPrefix(p.Summary, "Local fallback plan:"))
	assert.Len(t, p.RoomPlan, 2)
	assert.Equal(t, "₹1500000 (approx)", p.EstimatedCost)
}

func TestGenerateNoBackend(t *testing.T) {
	router := NewRouter(crew.New(nil), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/plans", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	p, _ := decodePlanResponse(t, w.Body.Bytes())
	assert.True(t, strings.HasPrefix(p.Summary, "Local fallback plan:"))
	assert.NotEmpty(t, p.RoomPlan)
	assert.NotEmpty(t, p.Materials)
}

func TestGenerateMalformedJSON(t *testing.T) {
	router := NewRouter(crew.New(nil), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/plans", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthReportsBackendAvailability(t *testing.T) {
	tests := []struct {
		name      string
		c         *crew.Crew
		available bool
	}{
		{"with backend", crew.New(&stubInvoker{text: "x"}), true},
		{"without backend", crew.New(nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := NewRouter(tt.c, nil)

			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "ok", body["status"])
			assert.Equal(t, tt.available, body["backend_available"])
		})
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	router := NewRouter(crew.New(nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
}
