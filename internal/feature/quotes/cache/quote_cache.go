// Package cache は株価のプロセスローカルなインメモリキャッシュを提供します。
package cache

import (
	"container/list"
	"sync"
	"time"

	"trading_dashboard/internal/feature/quotes/domain/entity"
)

// DefaultMaxSize はキャッシュに常駐できるエントリ数のデフォルト上限です。
const DefaultMaxSize = 1024

// Entry は1銘柄分のキャッシュエントリです。キャッシュが排他的に所有し、
// リフレッシュ時は追記ではなく上書きされます。
type Entry struct {
	Quote     entity.Quote
	FetchedAt time.Time
}

// item は書き込み順キューの要素です。
type item struct {
	symbol string
	entry  Entry
}

// QuoteCache はシンボルをキーとする有界のキャッシュです。
//
// 鮮度の判定（TTL）は呼び出し側の責務で、キャッシュ自体は受け取ったエントリを
// そのまま返すだけです。サイズ上限を超えた場合は最も古く書き込まれたエントリから
// 追い出します（get/putはO(1)償却）。複数goroutineからの同時アクセスに対して安全で、
// 同一シンボルへの書き込みは最後の書き込みが勝ちます。
type QuoteCache struct {
	mu      sync.Mutex
	maxSize int
	items   map[string]*list.Element
	order   *list.List // 書き込み順（先頭が最古）

	now func() time.Time
}

// NewQuoteCache は指定された最大サイズでQuoteCacheの新しいインスタンスを生成します。
// maxSizeが0以下の場合はDefaultMaxSizeにフォールバックします。
func NewQuoteCache(maxSize int) *QuoteCache {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &QuoteCache{
		maxSize: maxSize,
		items:   make(map[string]*list.Element),
		order:   list.New(),
		now:     time.Now,
	}
}

// Get は指定シンボルのエントリを返します。存在しない場合は2番目の戻り値がfalseです。
// 古いエントリもそのまま返します。鮮度の判定はIsStaleで行ってください。
func (c *QuoteCache) Get(symbol string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[symbol]
	if !ok {
		return Entry{}, false
	}
	return el.Value.(*item).entry, true
}

// Put は指定シンボルの株価を登録します。既存エントリは上書きされ、
// FetchedAtは現在時刻にリセットされます。上限を超える場合は
// 最も古く書き込まれたエントリを先に追い出します。
func (c *QuoteCache) Put(symbol string, quote entity.Quote) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := Entry{Quote: quote, FetchedAt: c.now()}

	if el, ok := c.items[symbol]; ok {
		// 上書きは書き込み順キューの末尾へ移動
		el.Value.(*item).entry = entry
		c.order.MoveToBack(el)
		return
	}

	for len(c.items) >= c.maxSize {
		oldest := c.order.Front()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*item).symbol)
	}

	c.items[symbol] = c.order.PushBack(&item{symbol: symbol, entry: entry})
}

// IsStale は指定シンボルのエントリが古いかどうかを判定します。
// TTLが0以下（常にリフレッシュ）、エントリが存在しない、
// または fetchedAt + ttl が現在時刻より前の場合にtrueを返します。
func (c *QuoteCache) IsStale(symbol string, ttl time.Duration) bool {
	if ttl <= 0 {
		return true
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[symbol]
	if !ok {
		return true
	}
	return el.Value.(*item).entry.FetchedAt.Add(ttl).Before(c.now())
}

// Len は現在の常駐エントリ数を返します。
func (c *QuoteCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
