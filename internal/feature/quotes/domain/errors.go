// Package domain はquotesフィーチャーのドメインレベルのエラーを定義します。
package domain

import "errors"

// 株価取得に関するドメインエラー。
// 上位レイヤーは errors.Is でエラー種別を判定してハンドリングします。
var (
	// ErrInvalidSymbol はシンボルが空または不正な形式であることを示します。
	// リトライ対象外で、クライアントエラーとして返されます。
	ErrInvalidSymbol = errors.New("ticker symbol is invalid")

	// ErrRateLimited は上流プロバイダのクォータが枯渇したことを示します。
	// リトライするとさらに悪化するため、リトライ対象外です。
	// ゲートウェイはキャッシュへのフォールバックでこのエラーを吸収できます。
	ErrRateLimited = errors.New("market data rate limit reached")

	// ErrQuoteNotFound は上流プロバイダが該当シンボルのデータを持たないことを示します。
	// リトライ・キャッシュの対象外です。
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrProvider は上流プロバイダの通信・サーバー・パース失敗を示します。
	// 本番モードではリトライポリシーに従ってリトライされます。
	ErrProvider = errors.New("market data provider error")
)
