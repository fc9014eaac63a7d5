package crew

import (
	"fmt"

	"github.com/planforge/homeplan/plan"
)

// promptTemplate instructs the model to answer with a single JSON object
// matching the plan schema. Models still wrap the object in prose or code
// fences often enough that extraction stays fence-aware regardless.
const promptTemplate = `You are an expert architect AI. Create a HOUSE CONSTRUCTION PLAN with details.
Return EXACTLY a single valid JSON object (no extra text). Keys:
summary, room_plan (array of {room, size}), materials (array), estimated_cost, design_features (array).

Input:
- Area: %s sq ft
- Budget: ₹%s
- Rooms: %s
- Style: %s
- Furniture included: %s
`

// buildPrompt formats the five request fields into the generation instruction
func buildPrompt(req plan.Request) string {
	return fmt.Sprintf(promptTemplate, req.Area, req.Budget, req.Rooms, req.Style, req.Furniture)
}
