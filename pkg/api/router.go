package api

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"

	"diabetes-risk/pkg/middleware"
)

//go:embed templates/*.html
var templatesFS embed.FS

// NewRouter wires every route onto a new gin engine. corsOrigins lists the
// origins allowed to call the JSON API from a browser.
func NewRouter(h *Handlers, corsOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logger(), middleware.CORS(corsOrigins))
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	router.GET("/health", h.HealthCheck)
	router.GET("/metrics", h.Metrics)

	// Server-rendered survey
	ui := router.Group("/", h.WithSession())
	ui.GET("/", h.Index)
	ui.POST("/submit", h.Submit)
	ui.POST("/dismiss", h.Dismiss)

	// JSON view of the same session
	apiGroup := router.Group("/api", h.WithSession())
	apiGroup.GET("/state", h.State)
	apiGroup.POST("/submit", h.SubmitJSON)
	apiGroup.POST("/dismiss", h.DismissJSON)

	return router
}
