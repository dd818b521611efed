package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"trading_dashboard/internal/api"
	"trading_dashboard/internal/shared/ratelimit"
)

const (
	rateLimitRemainingHeader  = "X-RateLimit-Remaining"
	rateLimitRetryAfterHeader = "Retry-After"
)

// RateLimit はクライアント単位のトークンバケットでリクエストを制限する
// ミドルウェアを返します。quoteエンドポイントは上流クォータ保護のため
// 一般エンドポイントとは別のバジェットで判定します。
// apiKeyHeaderはクライアントキー導出に使うAPIキーヘッダー名です。
func RateLimit(limiter *ratelimit.Limiter, apiKeyHeader string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Enabled() {
			c.Next()
			return
		}

		clientKey := resolveClientKey(c, apiKeyHeader)
		class := ratelimit.ClassGeneral
		if strings.HasPrefix(c.Request.URL.Path, "/api/quotes") {
			class = ratelimit.ClassQuote
		}

		decision := limiter.Admit(clientKey, class)
		if decision.Allowed {
			c.Header(rateLimitRemainingHeader, strconv.Itoa(decision.Remaining))
			c.Next()
			return
		}

		slog.Warn("rate limit exceeded",
			"client", clientKey,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)

		c.Header(rateLimitRemainingHeader, "0")
		c.Header(rateLimitRetryAfterHeader, strconv.Itoa(decision.RetryAfterSeconds))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, api.ErrorResponse{
			Code:    "RATE_LIMITED",
			Message: "Too many requests. Please try again later.",
		})
	}
}

// resolveClientKey はレートリミットのキーを導出します。
// 優先順: APIキーの先頭8文字 → X-Forwarded-Forの先頭アドレス → 直接の接続元。
func resolveClientKey(c *gin.Context, apiKeyHeader string) string {
	if apiKeyHeader != "" {
		if key := c.GetHeader(apiKeyHeader); key != "" {
			if len(key) > 8 {
				key = key[:8]
			}
			return "apikey:" + key
		}
	}

	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		return "ip:" + strings.TrimSpace(strings.Split(xff, ",")[0])
	}

	return "ip:" + c.ClientIP()
}
