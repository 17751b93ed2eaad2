package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rayspace/blog-service/internal/dto"
	"github.com/rayspace/blog-service/internal/service"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

func (h *Handler) requestMiddleware(c *gin.Context) {
	requestID := c.GetHeader(requestIDHeader)
	if _, err := uuid.Parse(requestID); err != nil {
		requestID = uuid.NewString()
	}
	c.Header(requestIDHeader, requestID)

	start := time.Now()
	c.Next()

	h.logger.Info("request",
		zap.String("request_id", requestID),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", c.Writer.Status()),
		zap.Duration("latency", time.Since(start)),
	)
}

// sessionMiddleware classifies every request. A missing or broken session
// cookie yields an anonymous principal, never an error.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	principal := h.services.Auth.Classify(nil)

	token, err := c.Cookie(h.session.CookieName)
	if err == nil && token != "" {
		identity, err := h.services.Auth.DecodeSession(token)
		if err == nil {
			principal = h.services.Auth.Classify(identity)
		}
	}

	c.Set(principalKey, principal)

	c.Next()
}

func (h *Handler) authMiddleware(c *gin.Context) {
	if !h.getPrincipalFromRequest(c).IsAuthenticated() {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(service.ErrUnauthorized))
		c.Abort()
		return
	}

	c.Next()
}

func (h *Handler) adminMiddleware(c *gin.Context) {
	principal := h.getPrincipalFromRequest(c)
	if !principal.IsAuthenticated() {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(service.ErrUnauthorized))
		c.Abort()
		return
	}
	if !principal.IsAdmin() {
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(service.ErrForbidden))
		c.Abort()
		return
	}

	c.Next()
}
