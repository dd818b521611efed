// Package api はHTTPレスポンスのDTOを定義します。
package api

import "time"

// ErrorResponse はエラーレスポンスの共通エンベロープです。
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// QuotesIndex は /api/quotes のインデックスレスポンスです。
type QuotesIndex struct {
	Message   string   `json:"message"`
	Endpoints []string `json:"endpoints"`
}

// QuoteResponse は1銘柄の株価レスポンスです。
type QuoteResponse struct {
	Symbol   string    `json:"symbol"`
	Price    float64   `json:"price"`
	Currency string    `json:"currency"`
	AsOf     time.Time `json:"asOf"`
}
