package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"trading_dashboard/internal/feature/quotes/adapters/alphavantage/dto"
	"trading_dashboard/internal/feature/quotes/domain"
	"trading_dashboard/internal/feature/quotes/domain/entity"
	"trading_dashboard/internal/feature/quotes/usecase"
)

// tradingDayFormat は "07. latest trading day" フィールドの日付フォーマットです。
const tradingDayFormat = "2006-01-02"

// Client はAlpha Vantage外部APIから株価を取得するQuoteProvider実装です。
// キャッシュやレートリミット状態は一切持たず、外部呼び出し以外の副作用はありません。
type Client struct {
	cfg    Config
	client *http.Client
}

// ClientがQuoteProviderを実装していることをコンパイル時に検証します。
var _ usecase.QuoteProvider = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// GetQuote はGLOBAL_QUOTEエンドポイントから最新の株価を取得します。
//
// 本番モード（RetryEnabled）かつ MaxAttempts > 1 の場合のみ、ErrProviderに対して
// 指数バックオフ付きでリトライします。ErrRateLimitedはリトライするとクォータを
// さらに消費するため、ErrInvalidSymbol・ErrQuoteNotFoundとともにリトライ対象外です。
// リトライを使い切った場合は最後の失敗をそのまま返します（種別は保持されます）。
func (c *Client) GetQuote(ctx context.Context, symbol string) (entity.Quote, error) {
	if strings.TrimSpace(symbol) == "" {
		return entity.Quote{}, fmt.Errorf("%w: symbol must not be blank", domain.ErrInvalidSymbol)
	}

	if !c.cfg.RetryEnabled || c.cfg.Retry.MaxAttempts <= 1 {
		return c.fetch(ctx, symbol)
	}

	backoff := c.cfg.Retry.InitialBackoff
	var lastErr error
	for attempt := 1; attempt <= c.cfg.Retry.MaxAttempts; attempt++ {
		if attempt > 1 {
			slog.Warn("retrying Alpha Vantage quote request",
				"symbol", symbol,
				"attempt", attempt,
				"max_attempts", c.cfg.Retry.MaxAttempts,
				"backoff", backoff,
				"error", lastErr,
			)
			// バックオフ待機中は共有ロックを一切保持しません
			timer := time.NewTimer(backoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				return entity.Quote{}, ctx.Err()
			case <-timer.C:
			}
			backoff *= 2
			if backoff > c.cfg.Retry.MaxBackoff {
				backoff = c.cfg.Retry.MaxBackoff
			}
		}

		quote, err := c.fetch(ctx, symbol)
		if err == nil {
			return quote, nil
		}
		lastErr = err

		// リトライするのはErrProviderのみ
		if !errors.Is(err, domain.ErrProvider) {
			return entity.Quote{}, err
		}
	}

	return entity.Quote{}, lastErr
}

// fetch は1回分のGLOBAL_QUOTE呼び出しを実行し、レスポンスをQuoteに変換します。
func (c *Client) fetch(ctx context.Context, symbol string) (entity.Quote, error) {
	q := url.Values{}
	q.Set("function", "GLOBAL_QUOTE")
	q.Set("symbol", symbol)
	q.Set("apikey", c.cfg.APIKey)

	u := fmt.Sprintf("%s/query?%s", c.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return entity.Quote{}, fmt.Errorf("%w: create request: %v", domain.ErrProvider, err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		// タイムアウトを含む通信エラーはすべてErrProvider
		return entity.Quote{}, fmt.Errorf("%w: request failed: %v", domain.ErrProvider, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode == http.StatusTooManyRequests {
		return entity.Quote{}, fmt.Errorf("%w: Alpha Vantage returned HTTP 429", domain.ErrRateLimited)
	}
	if res.StatusCode >= 400 {
		return entity.Quote{}, fmt.Errorf("%w: Alpha Vantage returned HTTP %d", domain.ErrProvider, res.StatusCode)
	}

	var body dto.GlobalQuoteResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return entity.Quote{}, fmt.Errorf("%w: decode response: %v", domain.ErrProvider, err)
	}

	return c.toQuote(symbol, body)
}

// toQuote はGLOBAL_QUOTEレスポンスをドメインのQuoteに変換します。
func (c *Client) toQuote(symbol string, body dto.GlobalQuoteResponse) (entity.Quote, error) {
	// クォータ通知フィールドはHTTPステータスに関係なく最優先で扱う
	if note := strings.TrimSpace(body.Note); note != "" {
		return entity.Quote{}, fmt.Errorf("%w: %s", domain.ErrRateLimited, note)
	}
	if info := strings.TrimSpace(body.Information); info != "" {
		return entity.Quote{}, fmt.Errorf("%w: %s", domain.ErrRateLimited, info)
	}

	gq := body.GlobalQuote
	if gq == nil {
		return entity.Quote{}, fmt.Errorf("%w: response missing 'Global Quote'", domain.ErrProvider)
	}

	// 未知のシンボルに対してAlpha Vantageは空の'Global Quote'オブジェクトを返す
	if gq.Symbol == "" && gq.Price == "" && gq.LatestTradingDay == "" {
		return entity.Quote{}, fmt.Errorf("%w: no data for symbol %q", domain.ErrQuoteNotFound, symbol)
	}

	priceValue := strings.TrimSpace(gq.Price)
	if priceValue == "" {
		return entity.Quote{}, fmt.Errorf("%w: response missing price", domain.ErrProvider)
	}
	price, err := strconv.ParseFloat(priceValue, 64)
	if err != nil {
		return entity.Quote{}, fmt.Errorf("%w: price %q was not numeric", domain.ErrProvider, gq.Price)
	}

	timestamp, err := c.extractTimestamp(gq)
	if err != nil {
		return entity.Quote{}, err
	}

	return entity.Quote{Symbol: symbol, Price: price, Timestamp: timestamp}, nil
}

// extractTimestamp は取引日をUTC 0時のタイムスタンプに正規化します。
// 取引日フィールドが無い場合は現在時刻を使用します。
func (c *Client) extractTimestamp(gq *dto.GlobalQuote) (time.Time, error) {
	tradingDay := strings.TrimSpace(gq.LatestTradingDay)
	if tradingDay == "" {
		return time.Now().UTC(), nil
	}

	tm, err := time.ParseInLocation(tradingDayFormat, tradingDay, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: trading day %q malformed", domain.ErrProvider, tradingDay)
	}
	return tm, nil
}
