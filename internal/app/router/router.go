package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	financehandler "trading_dashboard/internal/feature/finance/transport/handler"
	portfoliohandler "trading_dashboard/internal/feature/portfolio/transport/handler"
	quotehandler "trading_dashboard/internal/feature/quotes/transport/handler"
	"trading_dashboard/internal/platform/http/handler"
	"trading_dashboard/internal/platform/middleware"
	"trading_dashboard/internal/shared/ratelimit"
)

// NewRouter はHTTPルートとミドルウェアを組み立てます。
// /healthz 系は認証・レートリミットの対象外、/api 配下はどちらも適用されます。
func NewRouter(
	quotes *quotehandler.QuoteHandler,
	marketHealth *quotehandler.MarketDataHealthHandler,
	portfolio *portfoliohandler.PortfolioHandler,
	finance *financehandler.FinanceHandler,
	limiter *ratelimit.Limiter,
	apiKeyCfg middleware.APIKeyConfig,
) *gin.Engine {
	r := gin.Default()

	// ダッシュボードのブラウザクライアント用
	r.Use(cors.Default())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 上流マーケットデータプロバイダの死活確認
	r.GET("/healthz/marketdata", marketHealth.Check)

	// APIキー認証とレートリミットを適用するルートグループ
	api := r.Group("/api")
	api.Use(middleware.APIKeyAuth(apiKeyCfg))
	api.Use(middleware.RateLimit(limiter, apiKeyCfg.Header))
	{
		api.GET("/quotes", quotes.Index)
		api.GET("/quotes/:symbol", quotes.GetQuote)

		api.GET("/portfolio/positions", portfolio.ListPositions)
		api.POST("/portfolio/positions", portfolio.CreatePosition)
		api.PUT("/portfolio/positions/:id", portfolio.UpdatePosition)
		api.DELETE("/portfolio/positions/:id", portfolio.DeletePosition)
		api.GET("/portfolio/summary", portfolio.GetSummary)

		api.GET("/finance/summary", finance.GetSummary)
		api.GET("/finance/transactions", finance.ListTransactions)
		api.POST("/finance/transactions", finance.CreateTransaction)
		api.GET("/finance/transactions/:id", finance.GetTransaction)
		api.PUT("/finance/transactions/:id", finance.UpdateTransaction)
		api.DELETE("/finance/transactions/:id", finance.DeleteTransaction)
	}

	return r
}
