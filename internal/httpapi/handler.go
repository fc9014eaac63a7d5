// Package httpapi is the HTTP front end: a thin gin layer over the plan
// crew. Plan generation never fails from the caller's point of view, so the
// generate endpoint always answers 200 with a complete plan; only malformed
// transport-level input earns a 4xx.
package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/planforge/homeplan/core"
	"github.com/planforge/homeplan/crew"
	"github.com/planforge/homeplan/plan"
)

// planRequest is the wire form of a generation request. All fields are
// free-form strings; unusable values steer the plan toward the local
// fallback rather than erroring.
type planRequest struct {
	Area      string `form:"area" json:"area"`
	Budget    string `form:"budget" json:"budget"`
	Rooms     string `form:"rooms" json:"rooms"`
	Style     string `form:"style" json:"style"`
	Furniture string `form:"furniture" json:"furniture"`
}

// planResponse echoes the request alongside the generated plan
type planResponse struct {
	Plan    *plan.Plan  `json:"plan"`
	Request planRequest `json:"request"`
}

// PlanHandler serves plan generation requests
type PlanHandler struct {
	crew   *crew.Crew
	logger core.Logger
}

// NewPlanHandler creates a plan handler
func NewPlanHandler(c *crew.Crew, logger core.Logger) *PlanHandler {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	return &PlanHandler{crew: c, logger: logger}
}

// Generate handles POST /api/v1/plans. It accepts JSON or form bodies.
func (h *PlanHandler) Generate(c *gin.Context) {
	var req planRequest
	if err := h.bind(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	p := h.crew.GeneratePlan(c.Request.Context(), plan.Request{
		Area:      req.Area,
		Budget:    req.Budget,
		Rooms:     req.Rooms,
		Style:     req.Style,
		Furniture: req.Furniture,
	})

	c.JSON(http.StatusOK, planResponse{Plan: p, Request: req})
}

// bind decodes the body by content type: JSON for application/json,
// form parsing for everything else (the original front end submits forms).
func (h *PlanHandler) bind(c *gin.Context, req *planRequest) error {
	ct := c.ContentType()
	if strings.Contains(ct, "application/json") {
		return c.ShouldBindJSON(req)
	}
	return c.ShouldBind(req)
}

// Health handles GET /healthz. The service is healthy even when no backend
// is reachable; the flag tells operators which mode they are in.
func (h *PlanHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":            "ok",
		"backend_available": h.crew.Available(),
	})
}
