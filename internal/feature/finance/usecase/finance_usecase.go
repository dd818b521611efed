// Package usecase は家計取引操作のビジネスロジックを実装します。
package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"trading_dashboard/internal/feature/finance/domain/entity"
)

// TransactionRepository は取引の永続化レイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type TransactionRepository interface {
	// FindWithinRange は postedAt が [from, to) に含まれる取引を返します。
	FindWithinRange(ctx context.Context, from, to time.Time) ([]entity.Transaction, error)
	// List は postedAt 降順で取引を返します。limit<=0 は無制限、categoryは空で全件です。
	List(ctx context.Context, limit int, category string) ([]entity.Transaction, error)
	FindByID(ctx context.Context, id string) (entity.Transaction, error)
	Create(ctx context.Context, tx *entity.Transaction) error
	Update(ctx context.Context, tx *entity.Transaction) error
	Delete(ctx context.Context, id string) error
}

// SummaryData は当月の支出集計です。金額はすべて小数第2位に丸められます。
type SummaryData struct {
	MonthToDateSpend       float64
	AverageDailySpend      float64
	ProjectedMonthEndSpend float64
	AsOf                   time.Time
}

// TransactionUpdate は取引の部分更新です。nilのフィールドは変更しません。
type TransactionUpdate struct {
	PostedAt    *time.Time
	Description *string
	Amount      *float64
	Category    *string
	Notes       *string
}

// financeUsecase は家計取引操作のユースケースを定義します。
type financeUsecase struct {
	transactions TransactionRepository
	now          func() time.Time
}

// NewFinanceUsecase はfinanceUsecaseの新しいインスタンスを生成します。
func NewFinanceUsecase(transactions TransactionRepository) *financeUsecase {
	return &financeUsecase{transactions: transactions, now: time.Now}
}

// GetSummary は当月（UTC）の支出集計を返します。
// 月初来合計、日平均（月初来合計 / 本日の日数）、
// 月末予測（日平均 × 当月の日数）を計算します。
func (fu *financeUsecase) GetSummary(ctx context.Context) (SummaryData, error) {
	now := fu.now().UTC()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	startOfNextMonth := startOfMonth.AddDate(0, 1, 0)
	daysInMonth := startOfNextMonth.Add(-time.Hour).Day()

	monthTransactions, err := fu.transactions.FindWithinRange(ctx, startOfMonth, startOfNextMonth)
	if err != nil {
		return SummaryData{}, err
	}

	var monthToDate float64
	for _, tx := range monthTransactions {
		monthToDate += tx.Amount
	}
	monthToDate = round2(monthToDate)

	averageDaily := round2(monthToDate / float64(now.Day()))
	projected := round2(averageDaily * float64(daysInMonth))

	return SummaryData{
		MonthToDateSpend:       monthToDate,
		AverageDailySpend:      averageDaily,
		ProjectedMonthEndSpend: projected,
		AsOf:                   now,
	}, nil
}

// ListTransactions は postedAt 降順で取引を返します。
// categoryを指定した場合は大文字小文字を区別せず絞り込みます。
func (fu *financeUsecase) ListTransactions(ctx context.Context, limit int, category string) ([]entity.Transaction, error) {
	return fu.transactions.List(ctx, limit, strings.TrimSpace(category))
}

// FindTransaction は指定IDの取引を返します。
func (fu *financeUsecase) FindTransaction(ctx context.Context, id string) (entity.Transaction, error) {
	return fu.transactions.FindByID(ctx, id)
}

// CreateTransaction は新しい取引をUUIDを払い出して登録し、登録結果を返します。
func (fu *financeUsecase) CreateTransaction(ctx context.Context, postedAt time.Time, description string, amount float64, category, notes string) (entity.Transaction, error) {
	tx := entity.Transaction{
		ID:          uuid.NewString(),
		PostedAt:    postedAt,
		Description: description,
		Amount:      amount,
		Category:    category,
		Notes:       notes,
	}
	if err := fu.transactions.Create(ctx, &tx); err != nil {
		return entity.Transaction{}, err
	}
	return tx, nil
}

// UpdateTransaction は既存取引を部分更新して返します。
func (fu *financeUsecase) UpdateTransaction(ctx context.Context, id string, update TransactionUpdate) (entity.Transaction, error) {
	tx, err := fu.transactions.FindByID(ctx, id)
	if err != nil {
		return entity.Transaction{}, err
	}

	if update.PostedAt != nil {
		tx.PostedAt = *update.PostedAt
	}
	if update.Description != nil {
		tx.Description = *update.Description
	}
	if update.Amount != nil {
		tx.Amount = *update.Amount
	}
	if update.Category != nil {
		tx.Category = *update.Category
	}
	if update.Notes != nil {
		tx.Notes = *update.Notes
	}

	if err := fu.transactions.Update(ctx, &tx); err != nil {
		return entity.Transaction{}, err
	}
	return tx, nil
}

// DeleteTransaction は指定取引を削除します。
func (fu *financeUsecase) DeleteTransaction(ctx context.Context, id string) error {
	return fu.transactions.Delete(ctx, id)
}

// round2 は小数第2位へ四捨五入します。
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
