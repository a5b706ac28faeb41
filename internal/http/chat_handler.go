package http

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medchat/internal/service"
)

// ChatHandler atiende el endpoint de chat.
type ChatHandler struct {
	logger  *zap.Logger
	chat    *service.ChatService
	limiter service.RateLimiter
}

// NewChatHandler crea una instancia de ChatHandler; limiter puede ser nil.
func NewChatHandler(logger *zap.Logger, chat *service.ChatService, limiter service.RateLimiter) *ChatHandler {
	return &ChatHandler{
		logger:  logger,
		chat:    chat,
		limiter: limiter,
	}
}

// Chat maneja POST /chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req struct {
		Message *string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chat request", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "message field required"})
		return
	}

	if h.limiter != nil {
		if ok, retryAfter := h.limiter.Allow(c.Request.Context(), c.ClientIP()); !ok {
			h.logger.Warn("chat rate limited", zap.String("client_ip", c.ClientIP()), zap.Duration("retry_after", retryAfter))
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			c.JSON(http.StatusTooManyRequests, gin.H{"detail": "too many requests"})
			return
		}
	}

	reply, err := h.chat.Reply(c.Request.Context(), *req.Message)
	if err != nil {
		h.logger.Error("chat reply failed", zap.Error(err), zap.String("request_id", requestID(c)))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": reply})
}

// Health maneja GET /health.
func (h *ChatHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Chatbot API is running"})
}
