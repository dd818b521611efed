// Package env は環境変数の読み取りヘルパーを提供します。
package env

import (
	"os"
	"strconv"
	"time"
)

// String は環境変数を読み取り、未設定の場合はデフォルト値を返します。
func String(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Int は環境変数を整数として読み取ります。未設定またはパース不能の場合はデフォルト値を返します。
func Int(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Bool は環境変数を真偽値として読み取ります。未設定またはパース不能の場合はデフォルト値を返します。
func Bool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// Duration は環境変数をtime.Duration（"500ms"、"30s" など）として読み取ります。
// 未設定またはパース不能の場合はデフォルト値を返します。
func Duration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
