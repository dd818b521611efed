// Package usecase は株価取得のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"time"

	"trading_dashboard/internal/feature/quotes/cache"
	"trading_dashboard/internal/feature/quotes/domain"
	"trading_dashboard/internal/feature/quotes/domain/entity"
)

// QuoteProvider は上流の株価プロバイダを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type QuoteProvider interface {
	// GetQuote は指定シンボルの最新株価を取得します。
	GetQuote(ctx context.Context, symbol string) (entity.Quote, error)
}

// QuoteCache は株価キャッシュを抽象化します。
type QuoteCache interface {
	Get(symbol string) (cache.Entry, bool)
	Put(symbol string, quote entity.Quote)
	IsStale(symbol string, ttl time.Duration) bool
}

// quoteUsecase は株価取得ユースケース（リードスルーキャッシュ付きゲートウェイ）です。
type quoteUsecase struct {
	provider QuoteProvider
	cache    QuoteCache
	ttl      time.Duration
}

// NewQuoteUsecase はquoteUsecaseの新しいインスタンスを生成します。
func NewQuoteUsecase(provider QuoteProvider, cache QuoteCache, ttl time.Duration) *quoteUsecase {
	return &quoteUsecase{provider: provider, cache: cache, ttl: ttl}
}

// GetQuote は指定シンボルの株価を返します。シンボルは境界層で正規化済みの前提です。
//
// キャッシュに新鮮なエントリがあれば上流を呼ばずに即座に返します。
// それ以外は上流から取得してキャッシュに保存します。上流がErrRateLimitedで
// 失敗した場合に限り、古いキャッシュエントリへフォールバックします
// （クォータ枯渇は頻発かつ自然回復が見込める唯一の失敗モードのため）。
// その他の失敗はキャッシュに触れずそのまま伝播します。
func (u *quoteUsecase) GetQuote(ctx context.Context, symbol string) (entity.Quote, error) {
	cached, ok := u.cache.Get(symbol)
	if ok && !u.cache.IsStale(symbol, u.ttl) {
		return cached.Quote, nil
	}

	fresh, err := u.provider.GetQuote(ctx, symbol)
	if err == nil {
		u.cache.Put(symbol, fresh)
		return fresh, nil
	}

	if errors.Is(err, domain.ErrRateLimited) {
		// 取得中に他のリクエストが保存した可能性があるため読み直す。
		// 古くてもキャッシュがあれば可用性を優先して返す。
		if fallback, ok := u.cache.Get(symbol); ok {
			return fallback.Quote, nil
		}
	}

	return entity.Quote{}, err
}
