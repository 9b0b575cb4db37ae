package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mintfeed/mintfeed/internal/content"
	"github.com/mintfeed/mintfeed/internal/errors"
	"github.com/mintfeed/mintfeed/internal/logger"
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	content *content.Service
}

// NewHandlers creates a new handlers instance
func NewHandlers(svc *content.Service) *Handlers {
	return &Handlers{content: svc}
}

// RegisterRoutes attaches the API surface to a router group. Extra
// middleware applies to the create endpoint only, which carries a stricter
// rate limit than the reads.
func (h *Handlers) RegisterRoutes(api *gin.RouterGroup, createMiddleware ...gin.HandlerFunc) {
	api.GET("/posts", h.GetPosts)
	api.GET("/posts/:id", h.GetPost)
	api.GET("/posts/:id/replies", h.GetReplies)
	api.GET("/users/:address/posts", h.GetUserPosts)
	api.GET("/profiles/:address", h.GetProfile)
	api.POST("/content", append(createMiddleware, h.CreateContent)...)
}

// Health reports service liveness.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"service":   "mintfeed",
	})
}

// respondError maps a classified error onto its HTTP shape.
func respondError(c *gin.Context, err error) {
	appErr := errors.AsAppError(err)

	if appErr.Status() >= http.StatusInternalServerError {
		logger.Log.Error("API error",
			zap.String("code", string(appErr.Code)),
			zap.String("path", c.Request.URL.Path),
			zap.Error(appErr),
		)
	} else {
		logger.Log.Warn("API error",
			zap.String("code", string(appErr.Code)),
			zap.String("path", c.Request.URL.Path),
			zap.String("message", appErr.Message),
		)
	}

	body := gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	}
	if appErr.Reason != "" {
		body["reason"] = appErr.Reason
	}
	c.AbortWithStatusJSON(appErr.Status(), gin.H{"error": body})
}
