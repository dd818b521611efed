// Package entity はfinanceフィーチャーのドメインエンティティを定義します。
package entity

import "time"

// Transaction は1件の家計取引です。IDは36文字のUUIDです。
type Transaction struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	PostedAt    time.Time `gorm:"not null;index" json:"postedAt"`
	Description string    `gorm:"size:255;not null" json:"description"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Category    string    `gorm:"size:64" json:"category"`
	Notes       string    `json:"notes"`
}

// TableName はgormが使用するテーブル名を指定します。
func (Transaction) TableName() string {
	return "finance_transaction"
}
