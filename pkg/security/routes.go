package security

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emmeril/assets/internal/config"
	"github.com/emmeril/assets/internal/rate_limiter"
)

// LoginHandler exchanges the configured admin credential pair for a signed
// token. Attempts are rate limited per client IP.
type LoginHandler struct {
	cfg         *config.Config
	rateLimiter *rate_limiter.RateLimiter
	log         *zap.Logger
}

func NewLoginHandler(cfg *config.Config, log *zap.Logger) *LoginHandler {
	return &LoginHandler{
		cfg:         cfg,
		rateLimiter: rate_limiter.New(10, 5*time.Minute), // 10 attempts per 5 minutes
		log:         log,
	}
}

func (l *LoginHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/login", l.Login)
}

type loginRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=6"`
}

func (l *LoginHandler) Login(c *gin.Context) {
	clientIP := c.GetHeader("X-Forwarded-For")
	if clientIP == "" {
		clientIP = c.ClientIP()
	}
	if !l.rateLimiter.IsAllowed(clientIP) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many login attempts, try again later"})
		return
	}
	c.Header("X-RateLimit-Remaining", strconv.Itoa(l.rateLimiter.Remaining(clientIP)))

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required", "details": err.Error()})
		return
	}

	if !CheckCredentials(req.Username, req.Password, l.cfg.AdminUsername, l.cfg.AdminPassword) {
		l.log.Warn("failed login attempt", zap.String("username", req.Username), zap.String("ip", clientIP))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, err := GenerateJWT(req.Username, []byte(l.cfg.JWTSecret), l.cfg.JWTExpiration)
	if err != nil {
		l.log.Error("failed to sign token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
