package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"trading_dashboard/internal/feature/quotes/health"
)

// HealthProber は上流ヘルスプローブのインターフェースを定義します。
type HealthProber interface {
	Probe(ctx context.Context) health.Verdict
}

// MarketDataHealthHandler は上流プロバイダのヘルスチェックを処理します。
type MarketDataHealthHandler struct {
	prober HealthProber
}

// NewMarketDataHealthHandler は指定されたproberでハンドラーを生成します。
func NewMarketDataHealthHandler(prober HealthProber) *MarketDataHealthHandler {
	return &MarketDataHealthHandler{prober: prober}
}

// Check は /healthz/marketdata エンドポイントを処理します。
// 判定はprober側でキャッシュされるため、ライブネスチェックのたびに
// 上流を叩くことはありません。UPなら200、DOWNなら503を返します。
func (h *MarketDataHealthHandler) Check(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	verdict := h.prober.Probe(c.Request.Context())

	status := http.StatusOK
	if verdict.Status == health.StatusDown {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, verdict)
}
