// Package domain はportfolioフィーチャーのドメインレベルのエラーを定義します。
package domain

import "errors"

var (
	// ErrPositionNotFound は指定されたポジションが存在しないことを示します。
	ErrPositionNotFound = errors.New("portfolio position not found")

	// ErrTickerAlreadyExists は同一tickerのポジションが既に存在することを示します。
	ErrTickerAlreadyExists = errors.New("position with this ticker already exists")
)
