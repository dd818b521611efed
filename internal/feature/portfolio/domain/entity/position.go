// Package entity はportfolioフィーチャーのドメインエンティティを定義します。
package entity

// Position は1銘柄の保有ポジションです。tickerはポートフォリオ内で一意です。
type Position struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	Ticker string  `gorm:"size:12;not null;uniqueIndex" json:"ticker"`
	Qty    float64 `gorm:"not null" json:"qty"`
	Basis  float64 `gorm:"not null" json:"basis"`
}

// TableName はgormが使用するテーブル名を指定します。
func (Position) TableName() string {
	return "portfolio_position"
}
