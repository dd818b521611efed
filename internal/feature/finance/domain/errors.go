// Package domain はfinanceフィーチャーのドメインレベルのエラーを定義します。
package domain

import "errors"

// ErrTransactionNotFound は指定された取引が存在しないことを示します。
var ErrTransactionNotFound = errors.New("finance transaction not found")
