package crew

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planforge/homeplan/plan"
)

// stubInvoker scripts one backend layer outcome per test
type stubInvoker struct {
	text       string
	err        error
	callCount  int
	lastPrompt string
}

func (s *stubInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	s.callCount++
	s.lastPrompt = prompt
	return s.text, s.err
}

func testRequest() plan.Request {
	return plan.Request{
		Area:      "1200",
		Budget:    "2500000",
		Rooms:     "3",
		Style:     "modern",
		Furniture: "yes",
	}
}

func TestGeneratePlanFromBackend(t *testing.T) {
	inv := &stubInvoker{text: "Here is your plan:\n```json\n{" +
		`"summary":"Modern 3-room home",` +
		`"room_plan":[{"room":"Master Bedroom","size":"12x14 ft"}],` +
		`"materials":["Cement - 30 bags"],` +
		`"estimated_cost":"₹2500000 (approx)",` +
		`"design_features":["Natural ventilation"]` +
		"}\n```\nEnjoy!"}
	c := New(inv)

	p := c.GeneratePlan(context.Background(), testRequest())
	require.NotNil(t, p)
	assert.Equal(t, "Modern 3-room home", p.Summary)
	require.Len(t, p.RoomPlan, 1)
	assert.Equal(t, "Master Bedroom", p.RoomPlan[0].Room)
	assert.Equal(t, 1, inv.callCount)
}

func TestGeneratePlanPromptCarriesRequestFields(t *testing.T) {
	inv := &stubInvoker{text: "```json\n{\"summary\":\"ok\"}\n```"}
	c := New(inv)

	c.GeneratePlan(context.Background(), plan.Request{
		Area:      " 900 ",
		Budget:    "1800000",
		Rooms:     "2",
		Style:     "colonial",
		Furniture: "no",
	})

	// Fields are whitespace-trimmed before prompt synthesis
	assert.Contains(t, inv.lastPrompt, "Area: 900 sq ft")
	assert.Contains(t, inv.lastPrompt, "Budget: ₹1800000")
	assert.Contains(t, inv.lastPrompt, "Rooms: 2")
	assert.Contains(t, inv.lastPrompt, "Style: colonial")
	assert.Contains(t, inv.lastPrompt, "Furniture included: no")
}

func TestGeneratePlanBackendFailureFallsBack(t *testing.T) {
	inv := &stubInvoker{err: errors.New("all backends exhausted")}
	c := New(inv)

	p := c.GeneratePlan(context.Background(), testRequest())
	require.NotNil(t, p)
	assert.Equal(t, 1, inv.callCount)
	assert.True(t, strings.HasPrefix(p.Summary, "Local fallback plan:"), "summary %q", p.Summary)
	assert.Len(t, p.RoomPlan, 3)
	assert.Equal(t, "₹2500000 (approx)", p.EstimatedCost)
}

func TestGeneratePlanExtractionFailureFallsBack(t *testing.T) {
	inv := &stubInvoker{text: "I am sorry, I cannot produce JSON today."}
	c := New(inv)

	p := c.GeneratePlan(context.Background(), testRequest())
	require.NotNil(t, p)
	assert.Equal(t, 1, inv.callCount)
	assert.True(t, strings.HasPrefix(p.Summary, "Local fallback plan:"))
}

func TestGeneratePlanNilInvoker(t *testing.T) {
	c := New(nil)
	assert.False(t, c.Available())

	p := c.GeneratePlan(context.Background(), testRequest())
	require.NotNil(t, p)
	assert.True(t, strings.HasPrefix(p.Summary, "Local fallback plan:"))
	assert.Contains(t, p.Summary, "rooms, style=modern, furniture=yes")
}

func TestGeneratePlanAlwaysComplete(t *testing.T) {
	tests := []struct {
		name string
		inv  Invoker
	}{
		{"backend success", &stubInvoker{text: "```json\n{\"summary\":\"s\"}\n```"}},
		{"backend failure", &stubInvoker{err: errors.New("down")}},
		{"garbage response", &stubInvoker{text: "{{{"}},
		{"no backend", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.inv).GeneratePlan(context.Background(), testRequest())
			require.NotNil(t, p)
			assert.NotNil(t, p.RoomPlan)
			assert.NotNil(t, p.Materials)
			assert.NotNil(t, p.DesignFeatures)
		})
	}
}
