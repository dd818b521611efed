// Package entity はquotesフィーチャーのドメインエンティティを定義します。
package entity

import "time"

// Quote は1銘柄の株価スナップショットを表す不変の値オブジェクトです。
// 生成後に書き換えてはいけません。
type Quote struct {
	Symbol    string    // 正規化済みのティッカーシンボル（大文字）
	Price     float64   // 最新価格（0以上）
	Timestamp time.Time // 価格の基準時刻（取引日の0時UTC、または取得時刻）
}
