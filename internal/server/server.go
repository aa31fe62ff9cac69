// Package server exposes the projection pipeline over HTTP for the genome
// browser UI.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inodb/vibe-structure/internal/interval"
	"github.com/inodb/vibe-structure/internal/represent"
	"github.com/inodb/vibe-structure/internal/structure"
	"github.com/inodb/vibe-structure/internal/transcript"
)

// HighlightRequest is the body of POST /highlight.
type HighlightRequest struct {
	Transcript *transcript.Transcript `json:"transcript"`
	Region     *transcript.Region     `json:"region"`
	Position   string                 `json:"position"`
}

// HighlightResponse is returned by POST /highlight. Highlight is null when
// the region does not touch any exon.
type HighlightResponse struct {
	Highlight       *interval.Range            `json:"highlight"`
	ChainHighlights []structure.ChainHighlight `json:"chainHighlights"`
	Errors          []string                   `json:"errors,omitempty"`
}

// PlanRequest is the body of POST /plan.
type PlanRequest struct {
	Chains          []represent.Chain          `json:"chains"`
	ChainID         string                     `json:"chainId"`
	DisplayMode     string                     `json:"displayMode"`
	DisplayColor    string                     `json:"displayColor"`
	ChainHighlights []structure.ChainHighlight `json:"chainHighlights"`
}

// PlanResponse is returned by POST /plan.
type PlanResponse struct {
	Representations []represent.Representation `json:"representations"`
}

// NewHighlightHandler projects a region through a transcript and a
// position mapping table.
func NewHighlightHandler(logger *zap.Logger) func(c *gin.Context) {
	return func(c *gin.Context) {
		var req HighlightRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		resp := HighlightResponse{ChainHighlights: []structure.ChainHighlight{}}
		if h, ok := transcript.Project(req.Transcript, req.Region); ok {
			resp.Highlight = &h
		}
		entries, err := structure.ParseMapping(req.Position)
		if err != nil {
			logger.Warn("skipped malformed position mapping entries", zap.Error(err))
			resp.Errors = mappingErrors(err)
		}
		if chs := structure.Resolve(entries, resp.Highlight); chs != nil {
			resp.ChainHighlights = chs
		}
		c.JSON(http.StatusOK, resp)
	}
}

// NewPlanHandler builds a representation plan.
func NewPlanHandler() func(c *gin.Context) {
	return func(c *gin.Context) {
		var req PlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		reps := represent.Plan(represent.Options{
			Chains:       req.Chains,
			ChainFilter:  req.ChainID,
			DisplayMode:  req.DisplayMode,
			DisplayColor: req.DisplayColor,
			Highlights:   req.ChainHighlights,
		})
		if reps == nil {
			reps = []represent.Representation{}
		}
		c.JSON(http.StatusOK, PlanResponse{Representations: reps})
	}
}

// NewRouter wires the handlers with request logging and panic recovery.
func NewRouter(logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))
	r.POST("/highlight", NewHighlightHandler(logger))
	r.POST("/plan", NewPlanHandler())
	return r
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

// mappingErrors flattens a joined mapping error into one message per entry.
func mappingErrors(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var msgs []string
		for _, e := range joined.Unwrap() {
			msgs = append(msgs, e.Error())
		}
		return msgs
	}
	return []string{err.Error()}
}
