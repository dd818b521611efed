// Package health は上流株価プロバイダのヘルスプローブを実装します。
package health

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"trading_dashboard/internal/feature/quotes/domain/entity"
)

// Status はヘルス判定の結果です。
type Status string

const (
	StatusUp   Status = "UP"
	StatusDown Status = "DOWN"
)

// QuoteProvider は上流の株価プロバイダを抽象化します。
type QuoteProvider interface {
	GetQuote(ctx context.Context, symbol string) (entity.Quote, error)
}

// Verdict は1回のプローブ結果です。プローブごとに丸ごと上書きされます。
type Verdict struct {
	Status    Status    `json:"status"`
	Symbol    string    `json:"symbol,omitempty"`
	Price     float64   `json:"price,omitempty"`
	Timestamp time.Time `json:"timestamp,omitzero"`
	Error     string    `json:"error,omitempty"`
	ProbedAt  time.Time `json:"probedAt"`
}

// Prober は上流プロバイダをセンチネルシンボルでプローブし、判定をTTLの間
// キャッシュします。ライブネスチェックのたびに上流を叩かないためのものです。
//
// キャッシュが古くなった際の再プローブはシングルフライト保証付きです:
// 同時に到達した呼び出しはミューテックス下で条件を再チェックし、
// 1回の上流呼び出しに集約されます。プローブは決して呼び出し元へ
// エラーを返さず、失敗はDOWN判定として返します。
type Prober struct {
	provider QuoteProvider
	symbol   string
	ttl      time.Duration

	mu      sync.Mutex
	verdict atomic.Pointer[Verdict]
	now     func() time.Time
}

// NewProber は指定されたプロバイダとセンチネルシンボルでProberを生成します。
func NewProber(provider QuoteProvider, symbol string, ttl time.Duration) *Prober {
	return &Prober{
		provider: provider,
		symbol:   symbol,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Probe は現在のヘルス判定を返します。
// TTLが0以下の場合はキャッシュせず毎回上流をプローブします。
func (p *Prober) Probe(ctx context.Context) Verdict {
	if p.ttl <= 0 {
		return p.check(ctx)
	}

	if v := p.verdict.Load(); v != nil && p.now().Sub(v.ProbedAt) < p.ttl {
		return *v
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// ロック取得待ちの間に他の呼び出しが更新した可能性があるため再チェック
	if v := p.verdict.Load(); v != nil && p.now().Sub(v.ProbedAt) < p.ttl {
		return *v
	}

	refreshed := p.check(ctx)
	p.verdict.Store(&refreshed)
	return refreshed
}

// check は上流を1回プローブして判定を作ります。
func (p *Prober) check(ctx context.Context) Verdict {
	quote, err := p.provider.GetQuote(ctx, p.symbol)
	probedAt := p.now()
	if err != nil {
		return Verdict{Status: StatusDown, Error: err.Error(), ProbedAt: probedAt}
	}
	return Verdict{
		Status:    StatusUp,
		Symbol:    quote.Symbol,
		Price:     quote.Price,
		Timestamp: quote.Timestamp,
		ProbedAt:  probedAt,
	}
}
