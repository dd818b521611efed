package api

import "time"

// PortfolioPosition は1保有ポジションのレスポンスです。
type PortfolioPosition struct {
	ID        uint    `json:"id"`
	Ticker    string  `json:"ticker"`
	Quantity  float64 `json:"quantity"`
	CostBasis float64 `json:"costBasis"`
}

// PortfolioPositionsResponse はポジション一覧のレスポンスです。
type PortfolioPositionsResponse struct {
	AsOf      time.Time           `json:"asOf"`
	Positions []PortfolioPosition `json:"positions"`
}

// PortfolioSummary はポートフォリオ集計のレスポンスです。
type PortfolioSummary struct {
	PositionsCount int       `json:"positionsCount"`
	TotalQuantity  float64   `json:"totalQuantity"`
	TotalCostBasis float64   `json:"totalCostBasis"`
	AsOf           time.Time `json:"asOf"`
}

// CreatePortfolioPositionRequest はポジション作成リクエストです。
type CreatePortfolioPositionRequest struct {
	Ticker    string  `json:"ticker" binding:"required"`
	Quantity  float64 `json:"quantity"`
	CostBasis float64 `json:"costBasis"`
}

// UpdatePortfolioPositionRequest はポジション更新リクエストです。
// nilのフィールドは変更しません。
type UpdatePortfolioPositionRequest struct {
	Quantity  *float64 `json:"quantity"`
	CostBasis *float64 `json:"costBasis"`
}
