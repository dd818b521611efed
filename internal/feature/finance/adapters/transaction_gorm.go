// Package adapters はfinanceフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"trading_dashboard/internal/feature/finance/domain"
	"trading_dashboard/internal/feature/finance/domain/entity"
	"trading_dashboard/internal/feature/finance/usecase"
)

// transactionGorm はTransactionRepositoryインターフェースのgorm実装です。
type transactionGorm struct {
	db *gorm.DB
}

var _ usecase.TransactionRepository = (*transactionGorm)(nil)

// NewTransactionRepository は指定されたDB接続でtransactionGormリポジトリの新しいインスタンスを生成します。
func NewTransactionRepository(db *gorm.DB) *transactionGorm {
	return &transactionGorm{db: db}
}

// FindWithinRange は postedAt が [from, to) に含まれる取引を返します。
func (r *transactionGorm) FindWithinRange(ctx context.Context, from, to time.Time) ([]entity.Transaction, error) {
	var transactions []entity.Transaction
	if err := r.db.WithContext(ctx).
		Where("posted_at >= ? AND posted_at < ?", from, to).
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("find transactions in range: %w", err)
	}
	return transactions, nil
}

// List は postedAt 降順で取引を返します。
func (r *transactionGorm) List(ctx context.Context, limit int, category string) ([]entity.Transaction, error) {
	query := r.db.WithContext(ctx).Order("posted_at DESC")
	if category != "" {
		query = query.Where("LOWER(category) = LOWER(?)", category)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var transactions []entity.Transaction
	if err := query.Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, nil
}

// FindByID は指定IDの取引を返します。
func (r *transactionGorm) FindByID(ctx context.Context, id string) (entity.Transaction, error) {
	var tx entity.Transaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.Transaction{}, domain.ErrTransactionNotFound
		}
		return entity.Transaction{}, fmt.Errorf("find transaction %q: %w", id, err)
	}
	return tx, nil
}

// Create は新しい取引を登録します。
func (r *transactionGorm) Create(ctx context.Context, tx *entity.Transaction) error {
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// Update は既存取引を保存します。
func (r *transactionGorm) Update(ctx context.Context, tx *entity.Transaction) error {
	if err := r.db.WithContext(ctx).Save(tx).Error; err != nil {
		return fmt.Errorf("update transaction %q: %w", tx.ID, err)
	}
	return nil
}

// Delete は指定IDの取引を削除します。存在しない場合はErrTransactionNotFoundを返します。
func (r *transactionGorm) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&entity.Transaction{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete transaction %q: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}
