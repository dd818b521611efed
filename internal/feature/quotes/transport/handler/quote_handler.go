// Package handler はquotesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"trading_dashboard/internal/api"
	"trading_dashboard/internal/feature/quotes/domain"
	"trading_dashboard/internal/feature/quotes/domain/entity"
)

// symbolPattern は受け付けるティッカーシンボルの形式です。
var symbolPattern = regexp.MustCompile(`^[A-Za-z0-9.]{1,12}$`)

// QuoteUsecase は株価取得ユースケースのインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type QuoteUsecase interface {
	GetQuote(ctx context.Context, symbol string) (entity.Quote, error)
}

// QuoteHandler は株価のHTTPリクエストを処理します。
type QuoteHandler struct {
	uc QuoteUsecase
}

// NewQuoteHandler は指定されたusecaseでQuoteHandlerの新しいインスタンスを生成します。
func NewQuoteHandler(uc QuoteUsecase) *QuoteHandler {
	return &QuoteHandler{uc: uc}
}

// Index は /api/quotes のインデックスレスポンスを返します。
func (h *QuoteHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, api.QuotesIndex{
		Message:   "Quote service ready.",
		Endpoints: []string{"/api/quotes/{symbol}"},
	})
}

// GetQuote はシンボルを検証・正規化し、株価をJSONで返します。
//
// エンドポイント例:
// GET /api/quotes/AAPL
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	symbol, err := normalizeSymbol(c.Param("symbol"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Code: "SYMBOL_INVALID", Message: err.Error()})
		return
	}

	quote, err := h.uc.GetQuote(c.Request.Context(), symbol)
	if err != nil {
		status, code := mapQuoteError(err)
		c.JSON(status, api.ErrorResponse{Code: code, Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, api.QuoteResponse{
		Symbol:   quote.Symbol,
		Price:    quote.Price,
		Currency: "USD",
		AsOf:     quote.Timestamp.UTC(),
	})
}

// normalizeSymbol はシンボルを検証し、大文字に正規化します。
func normalizeSymbol(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", fmt.Errorf("ticker symbol must not be blank")
	}
	if !symbolPattern.MatchString(candidate) {
		return "", fmt.Errorf("ticker symbol must be 1-12 characters (A-Z, 0-9, .)")
	}
	return strings.ToUpper(candidate), nil
}

// mapQuoteError はドメインのエラー種別をHTTPステータスとエラーコードに変換します。
func mapQuoteError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidSymbol):
		return http.StatusBadRequest, "SYMBOL_INVALID"
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "RATE_LIMITED"
	case errors.Is(err, domain.ErrQuoteNotFound):
		return http.StatusNotFound, "QUOTE_NOT_FOUND"
	default:
		return http.StatusBadGateway, "PROVIDER_ERROR"
	}
}
