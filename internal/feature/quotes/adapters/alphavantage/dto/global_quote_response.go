// Package dto defines data transfer objects for the Alpha Vantage API responses.
package dto

// GlobalQuote represents the nested quote object of a GLOBAL_QUOTE response.
// Alpha Vantage returns every field as a string.
type GlobalQuote struct {
	Symbol           string `json:"01. symbol"`
	Price            string `json:"05. price"`
	LatestTradingDay string `json:"07. latest trading day"`
}

// GlobalQuoteResponse represents the outer JSON object of a GLOBAL_QUOTE response.
// Note/Information はクォータ枯渇時にHTTP 200のまま返される通知フィールドで、
// 存在する場合は本文よりも優先して扱う必要があります。
type GlobalQuoteResponse struct {
	Note        string       `json:"Note,omitempty"`
	Information string       `json:"Information,omitempty"`
	GlobalQuote *GlobalQuote `json:"Global Quote,omitempty"`
}
