package main

import (
	"log"
	"os"
	"strings"

	redisv9 "github.com/redis/go-redis/v9"

	"trading_dashboard/internal/app/router"
	financeadapters "trading_dashboard/internal/feature/finance/adapters"
	financehandler "trading_dashboard/internal/feature/finance/transport/handler"
	financeusecase "trading_dashboard/internal/feature/finance/usecase"
	portfolioadapters "trading_dashboard/internal/feature/portfolio/adapters"
	portfoliohandler "trading_dashboard/internal/feature/portfolio/transport/handler"
	portfoliousecase "trading_dashboard/internal/feature/portfolio/usecase"
	"trading_dashboard/internal/feature/quotes/adapters/alphavantage"
	"trading_dashboard/internal/feature/quotes/adapters/fakeprovider"
	quotecache "trading_dashboard/internal/feature/quotes/cache"
	"trading_dashboard/internal/feature/quotes/health"
	quotehandler "trading_dashboard/internal/feature/quotes/transport/handler"
	quoteusecase "trading_dashboard/internal/feature/quotes/usecase"
	"trading_dashboard/internal/platform/cache"
	platformdb "trading_dashboard/internal/platform/db"
	platformhttp "trading_dashboard/internal/platform/http"
	"trading_dashboard/internal/platform/middleware"
	platformredis "trading_dashboard/internal/platform/redis"
	"trading_dashboard/internal/shared/env"
	"trading_dashboard/internal/shared/ratelimit"
)

func main() {
	// db
	db := platformdb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// マーケットデータ上流クライアント。
	// devモードでは上流を呼ばないフェイク実装に差し替える。
	avCfg := alphavantage.LoadConfig()
	var provider quoteusecase.QuoteProvider
	if strings.EqualFold(env.String("APP_ENV", ""), "dev") {
		log.Println("[WARN] APP_ENV=dev: serving fixed fake quotes instead of live market data.")
		provider = fakeprovider.NewProvider()
	} else {
		if avCfg.APIKey == "" {
			log.Println("[WARN] ALPHAVANTAGE_API_KEY is not set. Upstream quote calls will fail.")
		}
		httpClient := platformhttp.NewHTTPClient(avCfg.ConnectTimeout, avCfg.ReadTimeout+avCfg.WriteTimeout)
		provider = alphavantage.NewClient(avCfg, httpClient)
	}

	// 株価のリードスルーキャッシュ
	qcCfg := quotecache.LoadConfig()
	quoteCache := quotecache.NewQuoteCache(qcCfg.MaxSize)
	quoteUC := quoteusecase.NewQuoteUsecase(provider, quoteCache, qcCfg.TTL)

	// 上流ヘルスプローブ
	prober := health.NewProber(provider, avCfg.HealthSymbol, avCfg.HealthCacheTTL)

	// Repository
	positionRepo := portfolioadapters.NewPositionRepository(db)
	transactionRepo := financeadapters.NewTransactionRepository(db)

	// Redisキャッシュでラップ
	cachedPositionRepo := cache.NewCachingPositionRepository(rdb, platformredis.CacheTTL(), positionRepo, "positions")

	// Usecase
	portfolioUC := portfoliousecase.NewPortfolioUsecase(cachedPositionRepo)
	financeUC := financeusecase.NewFinanceUsecase(transactionRepo)

	// Handler
	quoteH := quotehandler.NewQuoteHandler(quoteUC)
	marketHealthH := quotehandler.NewMarketDataHealthHandler(prober)
	portfolioH := portfoliohandler.NewPortfolioHandler(portfolioUC)
	financeH := financehandler.NewFinanceHandler(financeUC)

	// レートリミッターとAPIキー認証
	limiter := ratelimit.NewLimiter(ratelimit.LoadConfig())
	apiKeyCfg := middleware.LoadAPIKeyConfig()
	if !apiKeyCfg.Enabled {
		log.Println("[WARN] API key check is disabled. Enable API_SECURITY_ENABLED in production.")
	}

	// ルータ生成
	r := router.NewRouter(quoteH, marketHealthH, portfolioH, financeH, limiter, apiKeyCfg)

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
