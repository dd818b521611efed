// Package handler はfinanceフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"trading_dashboard/internal/api"
	"trading_dashboard/internal/feature/finance/domain"
	"trading_dashboard/internal/feature/finance/domain/entity"
	"trading_dashboard/internal/feature/finance/usecase"
)

// FinanceUsecase は家計取引操作のユースケースインターフェースを定義します。
type FinanceUsecase interface {
	GetSummary(ctx context.Context) (usecase.SummaryData, error)
	ListTransactions(ctx context.Context, limit int, category string) ([]entity.Transaction, error)
	FindTransaction(ctx context.Context, id string) (entity.Transaction, error)
	CreateTransaction(ctx context.Context, postedAt time.Time, description string, amount float64, category, notes string) (entity.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, update usecase.TransactionUpdate) (entity.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

// FinanceHandler は家計取引のHTTPリクエストを処理します。
type FinanceHandler struct {
	uc FinanceUsecase
}

// NewFinanceHandler は指定されたusecaseでFinanceHandlerの新しいインスタンスを生成します。
func NewFinanceHandler(uc FinanceUsecase) *FinanceHandler {
	return &FinanceHandler{uc: uc}
}

// GetSummary は当月の支出集計を返します。
//
// エンドポイント例:
// GET /api/finance/summary
func (h *FinanceHandler) GetSummary(c *gin.Context) {
	summary, err := h.uc.GetSummary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Code: "FINANCE_ERROR", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, api.FinanceSummary{
		MonthToDateSpend:       summary.MonthToDateSpend,
		AverageDailySpend:      summary.AverageDailySpend,
		ProjectedMonthEndSpend: summary.ProjectedMonthEndSpend,
		AsOf:                   summary.AsOf,
	})
}

// ListTransactions は取引一覧をJSONで返します。1件もない場合は204を返します。
//
// クエリパラメータ:
//   - limit: 返す最大件数（省略時は無制限）
//   - category: カテゴリ絞り込み（大文字小文字を区別しない）
func (h *FinanceHandler) ListTransactions(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Code: "REQUEST_INVALID", Message: "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	transactions, err := h.uc.ListTransactions(c.Request.Context(), limit, c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Code: "FINANCE_ERROR", Message: err.Error()})
		return
	}
	if len(transactions) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	dtos := make([]api.FinanceTransaction, 0, len(transactions))
	for _, tx := range transactions {
		dtos = append(dtos, toTransactionDTO(tx))
	}

	c.JSON(http.StatusOK, api.FinanceTransactionsResponse{
		AsOf:         time.Now().UTC(),
		Transactions: dtos,
	})
}

// GetTransaction は指定IDの取引を返します。
func (h *FinanceHandler) GetTransaction(c *gin.Context) {
	tx, err := h.uc.FindTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Code: "TRANSACTION_NOT_FOUND", Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Code: "FINANCE_ERROR", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, toTransactionDTO(tx))
}

// CreateTransaction は新しい取引を登録します。
func (h *FinanceHandler) CreateTransaction(c *gin.Context) {
	var req api.CreateFinanceTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Code: "REQUEST_INVALID", Message: err.Error()})
		return
	}

	tx, err := h.uc.CreateTransaction(c.Request.Context(), req.PostedAt, req.Description, req.Amount, req.Category, req.Notes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Code: "FINANCE_ERROR", Message: err.Error()})
		return
	}

	c.Header("Location", fmt.Sprintf("/api/finance/transactions/%s", tx.ID))
	c.JSON(http.StatusCreated, toTransactionDTO(tx))
}

// UpdateTransaction は既存取引を部分更新します。
func (h *FinanceHandler) UpdateTransaction(c *gin.Context) {
	var req api.UpdateFinanceTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Code: "REQUEST_INVALID", Message: err.Error()})
		return
	}

	tx, err := h.uc.UpdateTransaction(c.Request.Context(), c.Param("id"), usecase.TransactionUpdate{
		PostedAt:    req.PostedAt,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Notes:       req.Notes,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Code: "TRANSACTION_NOT_FOUND", Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Code: "FINANCE_ERROR", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, toTransactionDTO(tx))
}

// DeleteTransaction は指定取引を削除します。
func (h *FinanceHandler) DeleteTransaction(c *gin.Context) {
	if err := h.uc.DeleteTransaction(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Code: "TRANSACTION_NOT_FOUND", Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Code: "FINANCE_ERROR", Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func toTransactionDTO(tx entity.Transaction) api.FinanceTransaction {
	return api.FinanceTransaction{
		ID:          tx.ID,
		PostedAt:    tx.PostedAt,
		Description: tx.Description,
		Amount:      tx.Amount,
		Category:    tx.Category,
		Notes:       tx.Notes,
	}
}
