package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"trading_dashboard/internal/feature/quotes/domain/entity"
)

func TestQuoteCache_PutAndGet(t *testing.T) {
	t.Parallel()

	c := NewQuoteCache(10)

	quote := entity.Quote{Symbol: "AAPL", Price: 189.71, Timestamp: time.Now()}
	c.Put("AAPL", quote)

	got, ok := c.Get("AAPL")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.Quote.Price != 189.71 {
		t.Errorf("expected price 189.71, got %f", got.Quote.Price)
	}
	if got.FetchedAt.IsZero() {
		t.Error("expected FetchedAt to be set")
	}

	if _, ok := c.Get("MSFT"); ok {
		t.Error("expected cache miss for unknown symbol")
	}
}

func TestQuoteCache_OverwriteWins(t *testing.T) {
	t.Parallel()

	c := NewQuoteCache(10)

	c.Put("AAPL", entity.Quote{Symbol: "AAPL", Price: 100})
	c.Put("AAPL", entity.Quote{Symbol: "AAPL", Price: 200})

	got, ok := c.Get("AAPL")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.Quote.Price != 200 {
		t.Errorf("expected last write to win with price 200, got %f", got.Quote.Price)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", c.Len())
	}
}

func TestQuoteCache_EvictsOldestWrite(t *testing.T) {
	t.Parallel()

	c := NewQuoteCache(3)

	for i := 0; i < 3; i++ {
		symbol := fmt.Sprintf("SYM%d", i)
		c.Put(symbol, entity.Quote{Symbol: symbol, Price: float64(i)})
	}

	// SYM0 is the oldest write and must go first.
	c.Put("SYM3", entity.Quote{Symbol: "SYM3", Price: 3})

	if c.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", c.Len())
	}
	if _, ok := c.Get("SYM0"); ok {
		t.Error("expected oldest entry SYM0 to be evicted")
	}
	for _, symbol := range []string{"SYM1", "SYM2", "SYM3"} {
		if _, ok := c.Get(symbol); !ok {
			t.Errorf("expected %s to survive eviction", symbol)
		}
	}
}

func TestQuoteCache_OverwriteRefreshesWriteOrder(t *testing.T) {
	t.Parallel()

	c := NewQuoteCache(2)

	c.Put("A", entity.Quote{Symbol: "A", Price: 1})
	c.Put("B", entity.Quote{Symbol: "B", Price: 2})
	// Rewriting A moves it to the back of the write-order queue.
	c.Put("A", entity.Quote{Symbol: "A", Price: 3})

	c.Put("C", entity.Quote{Symbol: "C", Price: 4})

	if _, ok := c.Get("B"); ok {
		t.Error("expected B to be evicted as the oldest write")
	}
	if _, ok := c.Get("A"); !ok {
		t.Error("expected refreshed A to survive")
	}
}

func TestQuoteCache_IsStale(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

	c := NewQuoteCache(10)
	c.now = func() time.Time { return base }
	c.Put("AAPL", entity.Quote{Symbol: "AAPL", Price: 189.71})

	tests := []struct {
		name   string
		symbol string
		ttl    time.Duration
		at     time.Time
		stale  bool
	}{
		{"fresh within ttl", "AAPL", 30 * time.Second, base.Add(10 * time.Second), false},
		{"exactly at ttl boundary", "AAPL", 30 * time.Second, base.Add(30 * time.Second), false},
		{"past ttl", "AAPL", 30 * time.Second, base.Add(31 * time.Second), true},
		{"zero ttl always stale", "AAPL", 0, base, true},
		{"negative ttl always stale", "AAPL", -time.Second, base, true},
		{"missing entry is stale", "MSFT", 30 * time.Second, base, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.now = func() time.Time { return tt.at }
			if got := c.IsStale(tt.symbol, tt.ttl); got != tt.stale {
				t.Errorf("IsStale(%q, %v) = %v, want %v", tt.symbol, tt.ttl, got, tt.stale)
			}
		})
	}
}

func TestQuoteCache_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	const (
		maxSize    = 8
		goroutines = 8
		iterations = 200
	)

	// シンボル数を容量より多くして、競合しながら追い出しも起きる状態を作る。
	symbols := make([]string, 16)
	for i := range symbols {
		symbols[i] = fmt.Sprintf("SYM%d", i)
	}
	// シンボルごとの価格を固定し、生き残ったエントリが必ず整合するようにする。
	price := func(symbol string) float64 { return float64(len(symbol)) * 10 }

	c := NewQuoteCache(maxSize)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				symbol := symbols[(offset+i)%len(symbols)]
				c.Put(symbol, entity.Quote{Symbol: symbol, Price: price(symbol)})
				if got, ok := c.Get(symbol); ok && got.Quote.Symbol != symbol {
					t.Errorf("got entry for %s under key %s", got.Quote.Symbol, symbol)
				}
				c.IsStale(symbol, time.Second)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > maxSize {
		t.Errorf("expected at most %d entries after concurrent writes, got %d", maxSize, c.Len())
	}
	for _, symbol := range symbols {
		got, ok := c.Get(symbol)
		if !ok {
			continue
		}
		if got.Quote.Symbol != symbol || got.Quote.Price != price(symbol) {
			t.Errorf("expected coherent entry for %s, got %+v", symbol, got.Quote)
		}
	}
}

func TestNewQuoteCache_DefaultMaxSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		maxSize int
		want    int
	}{
		{"zero uses default", 0, DefaultMaxSize},
		{"negative uses default", -5, DefaultMaxSize},
		{"positive preserved", 42, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewQuoteCache(tt.maxSize)
			if c.maxSize != tt.want {
				t.Errorf("expected maxSize %d, got %d", tt.want, c.maxSize)
			}
		})
	}
}
