// Package usecase はポートフォリオ操作のビジネスロジックを実装します。
package usecase

import (
	"context"
	"sort"
	"strings"

	"trading_dashboard/internal/feature/portfolio/domain/entity"
)

// PositionRepository はポジションの永続化レイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PositionRepository interface {
	List(ctx context.Context) ([]entity.Position, error)
	FindByID(ctx context.Context, id uint) (entity.Position, error)
	Create(ctx context.Context, position *entity.Position) error
	Update(ctx context.Context, position *entity.Position) error
	Delete(ctx context.Context, id uint) error
}

// Snapshot はポートフォリオ全体の集計値です。
type Snapshot struct {
	PositionsCount int
	TotalQuantity  float64
	TotalCostBasis float64
}

// portfolioUsecase はポートフォリオ操作のユースケースを定義します。
type portfolioUsecase struct {
	positions PositionRepository
}

// NewPortfolioUsecase はportfolioUsecaseの新しいインスタンスを生成します。
func NewPortfolioUsecase(positions PositionRepository) *portfolioUsecase {
	return &portfolioUsecase{positions: positions}
}

// ListHoldings はticker順（大文字小文字を区別しない）で全ポジションを返します。
func (pu *portfolioUsecase) ListHoldings(ctx context.Context) ([]entity.Position, error) {
	holdings, err := pu.positions.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(holdings, func(i, j int) bool {
		return strings.ToUpper(holdings[i].Ticker) < strings.ToUpper(holdings[j].Ticker)
	})
	return holdings, nil
}

// Summarize はポートフォリオ全体の集計を返します。
// ポジションが1件もない場合は2番目の戻り値がfalseです。
func (pu *portfolioUsecase) Summarize(ctx context.Context) (Snapshot, bool, error) {
	holdings, err := pu.positions.List(ctx)
	if err != nil {
		return Snapshot{}, false, err
	}
	if len(holdings) == 0 {
		return Snapshot{}, false, nil
	}

	var snapshot Snapshot
	snapshot.PositionsCount = len(holdings)
	for _, h := range holdings {
		snapshot.TotalQuantity += h.Qty
		snapshot.TotalCostBasis += h.Basis
	}
	return snapshot, true, nil
}

// CreatePosition は新しいポジションを登録して返します。tickerは大文字に正規化されます。
func (pu *portfolioUsecase) CreatePosition(ctx context.Context, ticker string, qty, basis float64) (entity.Position, error) {
	position := entity.Position{
		Ticker: strings.ToUpper(strings.TrimSpace(ticker)),
		Qty:    qty,
		Basis:  basis,
	}
	if err := pu.positions.Create(ctx, &position); err != nil {
		return entity.Position{}, err
	}
	return position, nil
}

// UpdatePosition は既存ポジションの数量・取得原価を更新して返します。
// nilのフィールドは変更しません。
func (pu *portfolioUsecase) UpdatePosition(ctx context.Context, id uint, qty, basis *float64) (entity.Position, error) {
	position, err := pu.positions.FindByID(ctx, id)
	if err != nil {
		return entity.Position{}, err
	}

	if qty != nil {
		position.Qty = *qty
	}
	if basis != nil {
		position.Basis = *basis
	}

	if err := pu.positions.Update(ctx, &position); err != nil {
		return entity.Position{}, err
	}
	return position, nil
}

// DeletePosition は指定ポジションを削除します。
func (pu *portfolioUsecase) DeletePosition(ctx context.Context, id uint) error {
	return pu.positions.Delete(ctx, id)
}
