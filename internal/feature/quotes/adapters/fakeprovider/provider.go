// Package fakeprovider は開発環境向けの固定値QuoteProvider実装を提供します。
package fakeprovider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"trading_dashboard/internal/feature/quotes/domain"
	"trading_dashboard/internal/feature/quotes/domain/entity"
	"trading_dashboard/internal/feature/quotes/usecase"
)

// fakePrice は全シンボルに対して返す固定価格です。
const fakePrice = 100.00

// Provider は上流APIを呼ばずに固定価格を返すQuoteProviderです。
// APIキーなしで開発・動作確認するためのもので、本番モードでは配線されません。
type Provider struct {
	now func() time.Time
}

// ProviderがQuoteProviderを実装していることをコンパイル時に検証します。
var _ usecase.QuoteProvider = (*Provider)(nil)

// NewProvider はProviderの新しいインスタンスを生成します。
func NewProvider() *Provider {
	return &Provider{now: time.Now}
}

// GetQuote は常に価格100.00の株価を現在時刻（UTC）付きで返します。
// シンボルの空チェックだけは実プロバイダと同じ契約で行います。
func (p *Provider) GetQuote(ctx context.Context, symbol string) (entity.Quote, error) {
	if strings.TrimSpace(symbol) == "" {
		return entity.Quote{}, fmt.Errorf("%w: symbol must not be blank", domain.ErrInvalidSymbol)
	}
	return entity.Quote{
		Symbol:    strings.ToUpper(strings.TrimSpace(symbol)),
		Price:     fakePrice,
		Timestamp: p.now().UTC(),
	}, nil
}
