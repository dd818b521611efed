// Package middleware はAPI全体に適用するginミドルウェアを提供します。
package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"trading_dashboard/internal/shared/env"
)

// APIKeyConfig holds configuration for the static API key check.
type APIKeyConfig struct {
	Enabled bool
	Header  string // Request header carrying the key
	Key     string // Expected key value
}

// LoadAPIKeyConfig loads API key configuration from environment variables.
// The check is active only when explicitly enabled and a key is configured.
func LoadAPIKeyConfig() APIKeyConfig {
	key := env.String("API_SECURITY_KEY", "")
	return APIKeyConfig{
		Enabled: env.Bool("API_SECURITY_ENABLED", false) && key != "",
		Header:  env.String("API_SECURITY_HEADER", "X-API-Key"),
		Key:     key,
	}
}

// APIKeyAuth はリクエストヘッダーのAPIキーを検証するミドルウェアを返します。
// キーの比較はタイミング攻撃を防ぐため定数時間で行います。
// 無効化されている場合は素通しします。
func APIKeyAuth(cfg APIKeyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.Next()
			return
		}

		provided := c.GetHeader(cfg.Header)
		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(cfg.Key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_api_key"})
			return
		}

		c.Next()
	}
}
