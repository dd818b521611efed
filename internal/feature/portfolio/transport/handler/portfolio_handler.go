// Package handler はportfolioフィーチャーのHTTPハンドラーを提供します。
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
	"trading_dashboard/internal/feature/portfolio/domain"
	"trading_dashboard/internal/feature/portfolio/domain/entity"
	"trading_dashboard/internal/feature/portfolio/usecase"
)

// PortfolioUsecase はポートフォリオ操作のユースケースインターフェースを定義します。
type PortfolioUsecase interface {
	ListHoldings(ctx context.Context) ([]entity.Position, error)
	Summarize(ctx context.Context) (usecase.Snapshot, bool, error)
	CreatePosition(ctx context.Context, ticker string, qty, basis float64) (entity.Position, error)
	UpdatePosition(ctx context.Context, id uint, qty, basis *float64) (entity.Position, error)
	DeletePosition(ctx context.Context, id uint) error
}

// PortfolioHandler はポートフォリオのHTTPリクエストを処理します。
type PortfolioHandler struct {
	uc PortfolioUsecase
}

// NewPortfolioHandler は指定されたusecaseでPortfolioHandlerの新しいインスタンスを生成します。
func NewPortfolioHandler(uc PortfolioUsecase) *PortfolioHandler {
	return &PortfolioHandler{uc: uc}
}

// ListPositions は全ポジションをJSONで返します。1件もない場合は204を返します。
//
// エンドポイント例:
// GET /api/portfolio/positions
func (h *PortfolioHandler) ListPositions(c *gin.Context) {
	holdings, err := h.uc.ListHoldings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Code: "PORTFOLIO_ERROR", Message: err.Error()})
		return
	}
	if len(holdings) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	positions := make([]api.PortfolioPosition, 0, len(holdings))
	for _, holding := range holdings {
		positions = append(positions, toPositionDTO(holding))
	}

	c.JSON(http.StatusOK, api.PortfolioPositionsResponse{
		AsOf:      time.Now().UTC(),
		Positions: positions,
	})
}

// GetSummary はポートフォリオ全体の集計を返します。ポジションがない場合は204を返します。
func (h *PortfolioHandler) GetSummary(c *gin.Context) {
	snapshot, ok, err := h.uc.Summarize(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Code: "PORTFOLIO_ERROR", Message: err.Error()})
		return
	}
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, api.PortfolioSummary{
		PositionsCount: snapshot.PositionsCount,
		TotalQuantity:  snapshot.TotalQuantity,
		TotalCostBasis: snapshot.TotalCostBasis,
		AsOf:           time.Now().UTC(),
	})
}

// CreatePosition は新しいポジションを登録します。
func (h *PortfolioHandler) CreatePosition(c *gin.Context) {
	var req api.CreatePortfolioPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Code: "REQUEST_INVALID", Message: err.Error()})
		return
	}

	position, err := h.uc.CreatePosition(c.Request.Context(), req.Ticker, req.Quantity, req.CostBasis)
	if err != nil {
		if errors.Is(err, domain.ErrTickerAlreadyExists) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Code: "TICKER_EXISTS", Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Code: "PORTFOLIO_ERROR", Message: err.Error()})
		return
	}

	c.Header("Location", fmt.Sprintf("/api/portfolio/positions/%d", position.ID))
	c.JSON(http.StatusCreated, toPositionDTO(position))
}

// UpdatePosition は既存ポジションを更新します。
func (h *PortfolioHandler) UpdatePosition(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Code: "REQUEST_INVALID", Message: err.Error()})
		return
	}

	var req api.UpdatePortfolioPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Code: "REQUEST_INVALID", Message: err.Error()})
		return
	}

	position, err := h.uc.UpdatePosition(c.Request.Context(), id, req.Quantity, req.CostBasis)
	if err != nil {
		if errors.Is(err, domain.ErrPositionNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Code: "POSITION_NOT_FOUND", Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Code: "PORTFOLIO_ERROR", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, toPositionDTO(position))
}

// DeletePosition は指定ポジションを削除します。
func (h *PortfolioHandler) DeletePosition(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Code: "REQUEST_INVALID", Message: err.Error()})
		return
	}

	if err := h.uc.DeletePosition(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrPositionNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Code: "POSITION_NOT_FOUND", Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Code: "PORTFOLIO_ERROR", Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func toPositionDTO(position entity.Position) api.PortfolioPosition {
	return api.PortfolioPosition{
		ID:        position.ID,
		Ticker:    position.Ticker,
		Quantity:  position.Qty,
		CostBasis: position.Basis,
	}
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("id must be a positive integer")
	}
	return uint(id), nil
}
