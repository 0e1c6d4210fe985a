// Package httpapi exposes the planner over HTTP.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dshills/gobabygo/internal/planner"
)

// Options configure the router.
type Options struct {
	AllowedOrigins []string
}

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(svc *planner.Service, log *zap.Logger, opts Options) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	r := gin.New()
	r.Use(RequestID(), Logger(log), Recovery(log), CORS(opts.AllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	h := &Handler{svc: svc, log: log}
	r.GET("/health", h.Health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/strategies", h.Strategies)
		v1.GET("/destinations", h.Destinations)
		v1.GET("/destinations/:name", h.Destination)
		v1.GET("/suggestions", h.Suggestions)

		analyze := v1.Group("/analyze")
		analyze.POST("", h.Analyze)
		analyze.POST("/markdown", h.AnalyzeMarkdown)
		analyze.POST("/pdf", h.AnalyzePDF)
	}
	return r
}
