// Package httpapi exposes the analysis pipeline over HTTP.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"flavorscout/internal/analysis"
)

// NewRouter builds the gin engine around an orchestrator.
func NewRouter(orch *analysis.Orchestrator) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	r.GET("/analyze", func(c *gin.Context) {
		forceRefresh := c.Query("refresh") == "true"
		result, perr := orch.Run(c.Request.Context(), forceRefresh)
		if perr != nil {
			status, body := errorResponse(perr)
			c.JSON(status, body)
			return
		}
		c.JSON(http.StatusOK, result)
	})

	// Diagnostic view of the fetch+dedup stage; not part of the pipeline
	// contract.
	r.GET("/content", func(c *gin.Context) {
		forceRefresh := c.Query("refresh") == "true"
		items, excerpts, err := orch.FetchContent(c.Request.Context(), forceRefresh)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to fetch content",
				"message": err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"articles":  items,
			"excerpts":  excerpts,
			"fetchedAt": time.Now().UTC().Format(time.RFC3339),
		})
	})

	return r
}

// errorResponse maps a terminal pipeline error to a status and JSON body.
// Responses carry a human-readable message and a hint; never a stack trace.
func errorResponse(perr *analysis.PipelineError) (int, gin.H) {
	switch perr.Kind {
	case analysis.KindConfiguration:
		return http.StatusServiceUnavailable, gin.H{
			"error":       "Missing API credentials",
			"message":     perr.Message,
			"missingVars": perr.MissingVars,
			"hint":        "Get your free NewsAPI key at https://newsapi.org/register and Groq key at https://console.groq.com/keys",
		}
	case analysis.KindFetch:
		return http.StatusNotFound, gin.H{
			"error":   "No data found",
			"message": perr.Message,
			"hint":    "Could not fetch any relevant news articles. Please try again later.",
		}
	default:
		switch analysis.ClassifyModelError(perr.Message) {
		case analysis.ModelErrorAuth:
			return http.StatusUnauthorized, gin.H{
				"error":   "Authentication failed",
				"message": perr.Message,
				"hint":    "Please verify your NewsAPI and Groq API keys are correct.",
			}
		case analysis.ModelErrorRateLimit:
			return http.StatusTooManyRequests, gin.H{
				"error":   "Rate limit exceeded",
				"message": perr.Message,
				"hint":    "API rate limit reached. Please wait a few minutes and try again.",
			}
		default:
			return http.StatusInternalServerError, gin.H{
				"error":   "Analysis failed",
				"message": perr.Message,
				"hint":    "Please try again. If the problem persists, check your API credentials.",
			}
		}
	}
}
