package fakeprovider

import (
	"context"
	"errors"
	"testing"
	"time"

	"trading_dashboard/internal/feature/quotes/domain"
)

func TestProvider_GetQuote_ReturnsFixedPrice(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	p := NewProvider()
	p.now = func() time.Time { return fixed }

	got, err := p.GetQuote(context.Background(), "aapl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Symbol != "AAPL" {
		t.Errorf("expected normalized symbol AAPL, got %s", got.Symbol)
	}
	if got.Price != 100.00 {
		t.Errorf("expected fixed price 100.00, got %f", got.Price)
	}
	if !got.Timestamp.Equal(fixed) {
		t.Errorf("expected timestamp %v, got %v", fixed, got.Timestamp)
	}
}

func TestProvider_GetQuote_BlankSymbolIsInvalid(t *testing.T) {
	t.Parallel()

	p := NewProvider()

	for _, symbol := range []string{"", "   "} {
		if _, err := p.GetQuote(context.Background(), symbol); !errors.Is(err, domain.ErrInvalidSymbol) {
			t.Errorf("expected ErrInvalidSymbol for %q, got %v", symbol, err)
		}
	}
}
