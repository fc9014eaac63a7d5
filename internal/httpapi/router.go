package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/planforge/homeplan/core"
	"github.com/planforge/homeplan/crew"
)

// NewRouter builds the gin engine with middleware and routes installed
func NewRouter(c *crew.Crew, logger core.Logger) *gin.Engine {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(Recovery(logger))
	engine.Use(RequestID())
	engine.Use(RequestLogger(logger))

	handler := NewPlanHandler(c, logger)

	engine.GET("/healthz", handler.Health)

	v1 := engine.Group("/api/v1")
	{
		v1.POST("/plans", handler.Generate)
	}

	return engine
}
