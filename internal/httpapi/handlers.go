package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dshills/gobabygo/internal/locations"
	"github.com/dshills/gobabygo/internal/planner"
	"github.com/dshills/gobabygo/internal/refdata"
	"github.com/dshills/gobabygo/internal/render"
	"github.com/dshills/gobabygo/internal/report"
	"github.com/dshills/gobabygo/internal/schema"
	"github.com/dshills/gobabygo/internal/trip"
)

const maxSearchLimit = 50

// Handler serves the planner's HTTP endpoints.
type Handler struct {
	svc *planner.Service
	log *zap.Logger
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"version":      planner.Version,
		"destinations": h.svc.Directory().Len(),
	})
}

// Strategies lists the scoring strategies.
func (h *Handler) Strategies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"strategies": h.svc.Strategies()})
}

// Destinations searches the directory; an empty query lists popular destinations.
func (h *Handler) Destinations(c *gin.Context) {
	limit, err := parseLimit(c.Query("limit"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	results := h.svc.Directory().Search(c.Query("q"), limit)
	if results == nil {
		results = []refdata.Destination{}
	}
	c.JSON(http.StatusOK, gin.H{"destinations": results, "count": len(results)})
}

// Destination looks up a destination by name and returns it with its insights.
func (h *Handler) Destination(c *gin.Context) {
	dir := h.svc.Directory()
	dest, ok := dir.Lookup(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "destination not found", "name": c.Param("name")})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"destination": dest,
		"region":      dir.Region(dest.Country),
		"climate":     h.svc.Climate().Info(dest),
		"insights":    dir.Insights(dest),
		"nearby":      dir.Nearby(dest, 0),
	})
}

// Suggestions completes a destination name prefix.
func (h *Handler) Suggestions(c *gin.Context) {
	out := h.svc.Directory().Suggestions(c.Query("prefix"))
	if out == nil {
		out = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": out})
}

// Analyze returns the JSON report for a trip request.
func (h *Handler) Analyze(c *gin.Context) {
	rep, ok := h.analyze(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rep)
}

// AnalyzeMarkdown returns the report rendered as Markdown.
func (h *Handler) AnalyzeMarkdown(c *gin.Context) {
	rep, ok := h.analyze(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(render.Markdown(rep)))
}

// AnalyzePDF returns the report as a PDF attachment.
func (h *Handler) AnalyzePDF(c *gin.Context) {
	rep, ok := h.analyze(c)
	if !ok {
		return
	}
	data, err := render.PDF(rep)
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "baby-travel-report.pdf"))
	c.Data(http.StatusOK, "application/pdf", data)
}

// analyze binds the request and runs the planner, writing an error response on failure.
func (h *Handler) analyze(c *gin.Context) (*report.Report, bool) {
	var req trip.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body: "+err.Error())
		return nil, false
	}

	rep, err := h.svc.Analyze(c.Request.Context(), &req, planner.Options{Strategy: c.Query("strategy")})
	if err != nil {
		var verrs schema.Errors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": verrs})
			return nil, false
		}
		h.internalError(c, err)
		return nil, false
	}
	return rep, true
}

func (h *Handler) internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	h.log.Error("request failed", zap.String("request_id", GetRequestID(c)), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func parseLimit(s string) (int, error) {
	if s == "" {
		return locations.DefaultSearchLimit, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("limit must be a positive integer")
	}
	if n > maxSearchLimit {
		n = maxSearchLimit
	}
	return n, nil
}
