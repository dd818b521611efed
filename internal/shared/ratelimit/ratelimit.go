// Package ratelimit はクライアント単位のトークンバケットレートリミッターを提供します。
package ratelimit

import (
	"math"
	"sync"
	"time"
)

// Class はエンドポイントの分類です。quoteエンドポイントは上流クォータ保護のため
// 一般エンドポイントとは別の（通常より小さい）バジェットを持ちます。
type Class string

const (
	ClassGeneral Class = "general"
	ClassQuote   Class = "quote"
)

// Decision は1リクエスト分の許可判定です。
type Decision struct {
	Allowed           bool // トークンを消費できたか
	Remaining         int  // 消費後の残トークン数（拒否時は0）
	RetryAfterSeconds int  // 拒否時、1トークン回復までの推定待ち秒数
}

// bucket は1つの(クライアントキー, クラス)ペアのトークンバケットです。
// トークンは capacity/60 毎秒のレートで連続的に補充され、capacityを超えません。
type bucket struct {
	mu       sync.Mutex
	capacity float64
	tokens   float64
	last     time.Time
}

// Limiter は(クライアントキー, エンドポイントクラス)ごとのトークンバケットを管理します。
//
// バケットは初回利用時に遅延生成され、以後保持し続けます（クライアントキーの
// 基数は運用上有界なため追い出しは行いません）。バケットの探索とトークン操作の
// ロックは分離されており、無関係なクライアント同士が直列化されることはありません。
type Limiter struct {
	cfg Config

	mu      sync.Mutex
	buckets map[string]*bucket

	now func() time.Time
}

// NewLimiter は指定された設定でLimiterの新しいインスタンスを生成します。
func NewLimiter(cfg Config) *Limiter {
	return &Limiter{
		cfg:     cfg,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Enabled はレートリミットが有効かどうかを返します。
func (l *Limiter) Enabled() bool {
	return l.cfg.Enabled
}

// Admit は指定クライアントの1リクエストを許可するか判定し、トークンを1消費します。
// 無効化されている場合は常に許可し、バケットの記帳は一切行いません。
func (l *Limiter) Admit(clientKey string, class Class) Decision {
	if !l.cfg.Enabled {
		return Decision{Allowed: true}
	}

	b := l.resolve(clientKey, class)

	b.mu.Lock()
	defer b.mu.Unlock()

	now := l.now()
	// 経過時間ぶんのトークンを連続補充（capacity/60 毎秒、上限capacity）
	elapsed := now.Sub(b.last).Seconds()
	if elapsed > 0 {
		b.tokens += elapsed * b.capacity / 60
		if b.tokens > b.capacity {
			b.tokens = b.capacity
		}
		b.last = now
	}

	if b.tokens >= 1 {
		b.tokens--
		return Decision{Allowed: true, Remaining: int(b.tokens)}
	}

	deficit := 1 - b.tokens
	waitSeconds := deficit / (b.capacity / 60)
	return Decision{
		Allowed:           false,
		Remaining:         0,
		RetryAfterSeconds: int(math.Ceil(waitSeconds)),
	}
}

// resolve は(クライアントキー, クラス)のバケットを取得し、なければ満杯で生成します。
func (l *Limiter) resolve(clientKey string, class Class) *bucket {
	key := clientKey + ":" + string(class)

	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		return b
	}

	limit := l.cfg.RequestsPerMinute
	if class == ClassQuote {
		limit = l.cfg.QuoteRequestsPerMinute
	}
	if limit < 1 {
		limit = 1
	}

	b := &bucket{
		capacity: float64(limit),
		tokens:   float64(limit),
		last:     l.now(),
	}
	l.buckets[key] = b
	return b
}
