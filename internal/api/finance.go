package api

import "time"

// FinanceTransaction は1取引のレスポンスです。
type FinanceTransaction struct {
	ID          string    `json:"id"`
	PostedAt    time.Time `json:"postedAt"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

// FinanceTransactionsResponse は取引一覧のレスポンスです。
type FinanceTransactionsResponse struct {
	AsOf         time.Time            `json:"asOf"`
	Transactions []FinanceTransaction `json:"transactions"`
}

// FinanceSummary は家計集計のレスポンスです。
type FinanceSummary struct {
	MonthToDateSpend       float64   `json:"monthToDateSpend"`
	AverageDailySpend      float64   `json:"averageDailySpend"`
	ProjectedMonthEndSpend float64   `json:"projectedMonthEndSpend"`
	AsOf                   time.Time `json:"asOf"`
}

// CreateFinanceTransactionRequest は取引作成リクエストです。
type CreateFinanceTransactionRequest struct {
	PostedAt    time.Time `json:"postedAt" binding:"required"`
	Description string    `json:"description" binding:"required"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Notes       string    `json:"notes"`
}

// UpdateFinanceTransactionRequest は取引更新リクエストです。
// nilのフィールドは変更しません。
type UpdateFinanceTransactionRequest struct {
	PostedAt    *time.Time `json:"postedAt"`
	Description *string    `json:"description"`
	Amount      *float64   `json:"amount"`
	Category    *string    `json:"category"`
	Notes       *string    `json:"notes"`
}
