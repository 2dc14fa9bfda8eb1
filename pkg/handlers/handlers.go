package handlers

import (
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/arnavshah/sandwich-orders-api/pkg/auth"
	"github.com/arnavshah/sandwich-orders-api/pkg/database"
	"github.com/arnavshah/sandwich-orders-api/pkg/menu"
	"github.com/arnavshah/sandwich-orders-api/pkg/orders"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed static/*
var staticEmbed embed.FS

// Handler contains dependencies for the route handlers
type Handler struct {
	DB       *gorm.DB
	Auth     *auth.Authenticator
	Orders   *orders.Service
	Menu     *menu.Service
	Log      *zap.Logger
	Now      func() time.Time
	Throttle *KeyThrottle
}

func (h *Handler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

func bearer(c *gin.Context) string {
	return strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
}

// AuthMiddleware verifies the JWT token for admin routes
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearer(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		claims, err := h.Auth.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("username", claims.Username)
		c.Next()
	}
}

// APIKeyMiddleware verifies the HMAC API key, enforces the key's daily limit
// and records the request
func (h *Handler) APIKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := bearer(c)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API Key required"})
			return
		}

		accountID, err := h.Auth.VerifyHMACKey(key)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API Key signature"})
			return
		}

		if h.Throttle != nil && !h.Throttle.Allow(accountID) {
			h.Log.Warn("Rate limit exceeded", zap.String("account", accountID))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Try again later."})
			return
		}

		// Only keys registered through POST /admin/keys are accepted; revoked keys are deleted
		var apiKey database.APIKey
		err = h.DB.Where(&database.APIKey{Key: key}).First(&apiKey).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API Key not registered or revoked"})
			return
		}
		if err != nil {
			h.Log.Error("api key lookup failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not load API key"})
			return
		}

		now := h.now()
		var today database.APIUsage
		err = h.DB.Where("key_id = ? AND date = ?", apiKey.ID, now.Format("2006-01-02")).Limit(1).Find(&today).Error
		if err != nil {
			h.Log.Error("usage lookup failed", zap.Uint("key_id", apiKey.ID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not check usage"})
			return
		}
		if apiKey.RateLimit > 0 && today.RequestCount >= apiKey.RateLimit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Daily request limit reached"})
			return
		}

		if err := h.DB.Model(&apiKey).Update("last_used", now).Error; err != nil {
			h.Log.Warn("last_used not updated", zap.Uint("key_id", apiKey.ID), zap.Error(err))
		}
		h.RecordUsage(apiKey.ID, 1, 0)

		c.Set("apiKey", &apiKey)
		c.Set("accountID", accountID)
		c.Next()
	}
}

func accountID(c *gin.Context) string {
	return c.GetString("accountID")
}

// RecordUsage adds to today's counters using a single-query upsert
// (supported by both Postgres and SQLite)
func (h *Handler) RecordUsage(keyID uint, requests, ordersPlaced int) {
	today := h.now().Format("2006-01-02")

	err := h.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count": gorm.Expr("request_count + ?", requests),
			"total_orders":  gorm.Expr("total_orders + ?", ordersPlaced),
		}),
	}).Create(&database.APIUsage{
		KeyID:        keyID,
		Date:         today,
		RequestCount: requests,
		TotalOrders:  ordersPlaced,
	}).Error
	if err != nil {
		h.Log.Warn("usage not recorded", zap.Uint("key_id", keyID), zap.Error(err))
	}
}

func (h *Handler) recordOrder(c *gin.Context) {
	if raw, ok := c.Get("apiKey"); ok {
		h.RecordUsage(raw.(*database.APIKey).ID, 0, 1)
	}
}

// respondError maps service errors to status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, orders.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, orders.ErrDateUnavailable), errors.Is(err, menu.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, orders.ErrInvalidOrder), errors.Is(err, menu.ErrInvalidSchema):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, menu.ErrNoSchema):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		h.Log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}
}

// Login handles admin login
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user database.MasterUser
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.Auth.CreateToken(user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	h.Log.Info("admin login", zap.String("username", user.Username))
	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

// GenerateKey creates a new API key for a family account
func (h *Handler) GenerateKey(c *gin.Context) {
	var req struct {
		Name      string `json:"name"`
		RateLimit int    `json:"rate_limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || strings.Contains(req.Name, ".") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required and cannot contain '.'"})
		return
	}

	if req.RateLimit == 0 {
		req.RateLimit = 10000
	}

	key := h.Auth.GenerateHMACKey(req.Name)
	apiKey := database.APIKey{
		Key:        key,
		Name:       req.Name,
		KeyPreview: auth.KeyPreview(key),
		RateLimit:  req.RateLimit,
	}

	if err := h.DB.Create(&apiKey).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Could not create key record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":   apiKey.ID,
		"name": req.Name,
		"key":  key,
	})
}

// ListKeys returns all API keys
func (h *Handler) ListKeys(c *gin.Context) {
	var keys []database.APIKey
	if err := h.DB.Order("id asc").Find(&keys).Error; err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"keys": keys})
}

// RevokeKey deletes an API key
func (h *Handler) RevokeKey(c *gin.Context) {
	res := h.DB.Delete(&database.APIKey{}, c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete key"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Key not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Key revoked"})
}

// UpdateKeyLimit updates the daily request limit for a key
func (h *Handler) UpdateKeyLimit(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		RateLimit int `json:"rate_limit" form:"rate_limit"`
	}

	// Try JSON first, then Form/Query
	if err := c.ShouldBindJSON(&req); err != nil {
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rate_limit is required"})
			return
		}
	}

	if req.RateLimit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rate limit"})
		return
	}

	res := h.DB.Model(&database.APIKey{}).Where("id = ?", id).Update("rate_limit", req.RateLimit)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update key limit"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Key not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rate limit updated successfully"})
}

// AdminInterface serves the admin web interface from embedded files
func (h *Handler) AdminInterface(c *gin.Context) {
	data, err := staticEmbed.ReadFile("static/index.html")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "static/index.html not found in embedded FS"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}

// GetStaticFS returns the embedded filesystem for static assets
func (h *Handler) GetStaticFS() http.FileSystem {
	sub, err := fs.Sub(staticEmbed, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
