// Package adapters はportfolioフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"trading_dashboard/internal/feature/portfolio/domain"
	"trading_dashboard/internal/feature/portfolio/domain/entity"
	"trading_dashboard/internal/feature/portfolio/usecase"
)

// positionGorm はPositionRepositoryインターフェースのgorm実装です。
type positionGorm struct {
	db *gorm.DB
}

var _ usecase.PositionRepository = (*positionGorm)(nil)

// NewPositionRepository は指定されたDB接続でpositionGormリポジトリの新しいインスタンスを生成します。
func NewPositionRepository(db *gorm.DB) *positionGorm {
	return &positionGorm{db: db}
}

// List は全ポジションを返します。
func (r *positionGorm) List(ctx context.Context) ([]entity.Position, error) {
	var positions []entity.Position
	if err := r.db.WithContext(ctx).Find(&positions).Error; err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	return positions, nil
}

// FindByID は指定IDのポジションを返します。
func (r *positionGorm) FindByID(ctx context.Context, id uint) (entity.Position, error) {
	var position entity.Position
	if err := r.db.WithContext(ctx).First(&position, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.Position{}, domain.ErrPositionNotFound
		}
		return entity.Position{}, fmt.Errorf("find position %d: %w", id, err)
	}
	return position, nil
}

// Create は新しいポジションを登録します。ticker重複はErrTickerAlreadyExistsになります。
func (r *positionGorm) Create(ctx context.Context, position *entity.Position) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Position{}).
		Where("ticker = ?", position.Ticker).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check ticker %q: %w", position.Ticker, err)
	}
	if count > 0 {
		return domain.ErrTickerAlreadyExists
	}

	if err := r.db.WithContext(ctx).Create(position).Error; err != nil {
		return fmt.Errorf("create position %q: %w", position.Ticker, err)
	}
	return nil
}

// Update は既存ポジションを保存します。
func (r *positionGorm) Update(ctx context.Context, position *entity.Position) error {
	if err := r.db.WithContext(ctx).Save(position).Error; err != nil {
		return fmt.Errorf("update position %d: %w", position.ID, err)
	}
	return nil
}

// Delete は指定IDのポジションを削除します。存在しない場合はErrPositionNotFoundを返します。
func (r *positionGorm) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Position{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete position %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrPositionNotFound
	}
	return nil
}
